package runlog

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/heron-robotics/fieldtest.report/internal/fsutil"
	"github.com/heron-robotics/fieldtest.report/internal/monitoring"
)

const sampleCSV = `time.s,position.x.m,position.y.m,distance_to_target.m
0.0,0.0,0.0,1.0
0.1,0.1,0.0,0.8
0.2,0.2,0.1,0.5
`

func stageRuns(t *testing.T, files map[string]string) *fsutil.MemoryFileSystem {
	t.Helper()
	m := fsutil.NewMemoryFileSystem()
	for path, contents := range files {
		if err := m.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("stage %s: %v", path, err)
		}
	}
	return m
}

func TestLoadCollection(t *testing.T) {
	m := stageRuns(t, map[string]string{
		"logs/leatherback/go_to_position/run_002.csv": sampleCSV,
		"logs/leatherback/go_to_position/run_001.csv": sampleCSV,
		"logs/leatherback/go_to_position/notes.txt":   "not a run",
	})

	runs, err := Load(m, "logs", "leatherback", "go_to_position")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(runs) != 2 {
		t.Fatalf("loaded %d runs, want 2", len(runs))
	}
	wantIDs := []string{"run_001.csv", "run_002.csv"}
	if diff := cmp.Diff(wantIDs, runs.IDs()); diff != "" {
		t.Errorf("run IDs mismatch (-want +got):\n%s", diff)
	}

	r := runs[0]
	if r.Robot() != "leatherback" || r.Task() != "go_to_position" {
		t.Errorf("run tagged (%s, %s), want (leatherback, go_to_position)", r.Robot(), r.Task())
	}
	if r.Len() != 3 {
		t.Errorf("run length = %d, want 3", r.Len())
	}

	dist, ok := r.Column("distance_to_target.m")
	if !ok {
		t.Fatal("distance_to_target.m column missing")
	}
	if diff := cmp.Diff([]float64{1.0, 0.8, 0.5}, dist); diff != "" {
		t.Errorf("distance column mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadUniqueIDsMatchFilenames(t *testing.T) {
	files := map[string]string{}
	n := 7
	for i := 0; i < n; i++ {
		files[fmt.Sprintf("logs/jetbot/go_to_position/run_%03d.csv", i)] = sampleCSV
	}
	m := stageRuns(t, files)

	runs, err := Load(m, "logs", "jetbot", "go_to_position")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(runs) != n {
		t.Fatalf("loaded %d runs, want %d", len(runs), n)
	}

	seen := map[string]bool{}
	for _, id := range runs.IDs() {
		if seen[id] {
			t.Errorf("duplicate run ID %q", id)
		}
		seen[id] = true
		if !strings.HasPrefix(id, "run_") || !strings.HasSuffix(id, ".csv") {
			t.Errorf("run ID %q does not match its source filename", id)
		}
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	m := fsutil.NewMemoryFileSystem()
	if err := m.MkdirAll("logs/kingfisher/go_to_position", 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	runs, err := Load(m, "logs", "kingfisher", "go_to_position")
	if err != nil {
		t.Fatalf("Load on empty directory: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("loaded %d runs from empty directory, want 0", len(runs))
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	m := fsutil.NewMemoryFileSystem()

	runs, err := Load(m, "logs", "kingfisher", "no_such_task")
	if err != nil {
		t.Fatalf("Load on missing directory: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("loaded %d runs from missing directory, want 0", len(runs))
	}
}

func TestLoadMalformedFileAbortsWholeLoad(t *testing.T) {
	m := stageRuns(t, map[string]string{
		"logs/leatherback/go_to_position/run_001.csv": sampleCSV,
		"logs/leatherback/go_to_position/run_002.csv": "time.s,position.x.m\n0.0,not_a_number\n",
	})

	_, err := Load(m, "logs", "leatherback", "go_to_position")
	if err == nil {
		t.Fatal("expected parse error, got nil")
	}
	if !strings.Contains(err.Error(), "run_002.csv") {
		t.Errorf("error %q should name the offending file", err)
	}
}

func TestLoadDuplicateColumnAborts(t *testing.T) {
	m := stageRuns(t, map[string]string{
		"logs/leatherback/go_to_position/run_001.csv": "time.s,position.x.m,time.s\n0.0,1.0,0.1\n",
	})

	_, err := Load(m, "logs", "leatherback", "go_to_position")
	if err == nil {
		t.Fatal("expected error for duplicate header column, got nil")
	}
	if !strings.Contains(err.Error(), "time.s") {
		t.Errorf("error %q should name the duplicated column", err)
	}
}

func TestLoadRaggedRowAborts(t *testing.T) {
	m := stageRuns(t, map[string]string{
		"logs/leatherback/go_to_position/run_001.csv": "time.s,position.x.m\n0.0,1.0\n0.1\n",
	})

	if _, err := Load(m, "logs", "leatherback", "go_to_position"); err == nil {
		t.Fatal("expected error for ragged row, got nil")
	}
}

func TestLoadReportsCount(t *testing.T) {
	var logged string
	monitoring.SetLogger(func(format string, v ...interface{}) {
		logged = fmt.Sprintf(format, v...)
	})
	defer monitoring.SetLogger(nil)

	m := stageRuns(t, map[string]string{
		"logs/leatherback/go_to_position/run_001.csv": sampleCSV,
	})
	if _, err := Load(m, "logs", "leatherback", "go_to_position"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !strings.Contains(logged, "1 runs") {
		t.Errorf("load diagnostic %q should report the run count", logged)
	}
}

func TestSchemaErrorMessage(t *testing.T) {
	err := &SchemaError{Robot: "jetbot", Column: "body_velocity.x.m_s", RunID: "run_004.csv"}
	msg := err.Error()
	for _, want := range []string{"jetbot", "body_velocity.x.m_s", "run_004.csv"} {
		if !strings.Contains(msg, want) {
			t.Errorf("SchemaError %q should mention %q", msg, want)
		}
	}
}
