package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLoggerCaptures(t *testing.T) {
	defer SetLogger(nil)

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})

	Logf("loaded %d runs", 3)
	if got != "loaded 3 runs" {
		t.Errorf("captured log = %q, want %q", got, "loaded 3 runs")
	}
}

func TestSetLoggerNilIsNoop(t *testing.T) {
	SetLogger(nil)
	defer SetLogger(nil)

	// Must not panic.
	Logf("discarded %s", "message")
}
