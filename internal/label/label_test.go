package label

import (
	"strings"
	"testing"

	"github.com/heron-robotics/fieldtest.report/internal/robots"
	"github.com/heron-robotics/fieldtest.report/internal/runlog"
	"github.com/heron-robotics/fieldtest.report/internal/testutil"
)

func labelRun(t *testing.T, id string, distances []float64) *runlog.Run {
	t.Helper()
	run, err := runlog.NewRun(id, "leatherback", "waypoints",
		[]string{runlog.ColDistance},
		map[string][]float64{runlog.ColDistance: distances})
	testutil.AssertNoError(t, err)
	return run
}

func leatherback(t *testing.T) robots.Descriptor {
	t.Helper()
	desc, ok := robots.Builtin().Lookup("leatherback")
	if !ok {
		t.Fatal("leatherback missing from builtin table")
	}
	return desc
}

func TestRenderGoalSeries(t *testing.T) {
	out := RenderGoalSeries("run_001", []int{0, 1, 1, 2, 2})
	if !strings.Contains(out, "run_001") {
		t.Error("rendered chart missing run ID")
	}
	if !strings.Contains(out, "final 2") {
		t.Error("rendered chart missing final total")
	}
}

func TestRenderGoalSeries_Empty(t *testing.T) {
	out := RenderGoalSeries("run_empty", nil)
	if !strings.Contains(out, "final 0") {
		t.Errorf("empty series rendering = %q", out)
	}
}

func TestSession_MapPrompter(t *testing.T) {
	runs := runlog.Collection{
		labelRun(t, "run_001", []float64{0.5, 0.1, 0.5}),
		labelRun(t, "run_002", []float64{0.5, 0.5, 0.5}),
		labelRun(t, "run_003", []float64{0.1, 0.5, 0.1}),
	}

	labels, err := Session(runs, 0.2, leatherback(t), MapPrompter{
		"run_001": "success",
		"run_003": "flaky",
	})
	testutil.AssertNoError(t, err)

	if len(labels) != 3 {
		t.Fatalf("label count = %d, want 3", len(labels))
	}
	if labels["run_001"] != "success" || labels["run_003"] != "flaky" {
		t.Errorf("labels = %v", labels)
	}
}

// Any answer is accepted and stored verbatim: empty strings enter the
// mapping, and surrounding whitespace is kept.
func TestSession_RecordsAnswersVerbatim(t *testing.T) {
	runs := runlog.Collection{
		labelRun(t, "a.csv", []float64{0.5, 0.1}),
		labelRun(t, "b.csv", []float64{0.5, 0.5}),
	}

	labels, err := Session(runs, 0.2, leatherback(t), MapPrompter{
		"a.csv": "",
		"b.csv": "  spiral  ",
	})
	testutil.AssertNoError(t, err)

	got, ok := labels["a.csv"]
	if !ok {
		t.Fatal("empty answer should still enter the mapping")
	}
	if got != "" {
		t.Errorf("labels[a.csv] = %q, want empty string", got)
	}
	if labels["b.csv"] != "  spiral  " {
		t.Errorf("labels[b.csv] = %q, want whitespace preserved", labels["b.csv"])
	}
}

func TestSession_MissingColumnAborts(t *testing.T) {
	run, err := runlog.NewRun("run_bad", "leatherback", "waypoints",
		[]string{runlog.ColTime},
		map[string][]float64{runlog.ColTime: {0, 0.1}})
	testutil.AssertNoError(t, err)

	_, err = Session(runlog.Collection{run}, 0.2, leatherback(t), MapPrompter{})
	testutil.AssertError(t, err)
	if !strings.Contains(err.Error(), "run_bad") {
		t.Errorf("error should name the run: %v", err)
	}
}

func TestTerminalPrompter(t *testing.T) {
	var out strings.Builder
	p := NewTerminalPrompter(strings.NewReader("success\n\n"), &out)

	got, err := p.Prompt("run_001", "chart goes here\n")
	testutil.AssertNoError(t, err)
	if got != "success" {
		t.Errorf("first answer = %q, want success", got)
	}

	got, err = p.Prompt("run_002", "chart goes here\n")
	testutil.AssertNoError(t, err)
	if got != "" {
		t.Errorf("blank line should give empty label, got %q", got)
	}

	if !strings.Contains(out.String(), "label for run_001") {
		t.Error("prompt text missing run ID")
	}
	if !strings.Contains(out.String(), "chart goes here") {
		t.Error("prompt should echo rendered chart")
	}
}

func TestTerminalPrompter_EOF(t *testing.T) {
	p := NewTerminalPrompter(strings.NewReader(""), &strings.Builder{})
	got, err := p.Prompt("run_001", "")
	testutil.AssertNoError(t, err)
	if got != "" {
		t.Errorf("EOF should give empty label, got %q", got)
	}
}
