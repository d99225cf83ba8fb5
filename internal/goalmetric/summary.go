package goalmetric

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/heron-robotics/fieldtest.report/internal/robots"
	"github.com/heron-robotics/fieldtest.report/internal/runlog"
)

// Summary aggregates one run's goal metrics and distance statistics.
type Summary struct {
	RunID   string
	Robot   string
	Task    string
	Samples int

	// Goals is the final value of the cumulative goal series.
	Goals int

	// ReportedGoals is the run's own counter value; valid only when
	// HasReported is true.
	ReportedGoals int
	HasReported   bool

	MeanDistance  float64
	MinDistance   float64
	FinalDistance float64
}

// Summarize computes a Summary for one run. It fails with a schema error
// when the robot's distance column is absent.
func Summarize(run *runlog.Run, threshold float64, desc robots.Descriptor) (Summary, error) {
	series, err := CumulativeGoals(run, threshold, desc)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		RunID:   run.ID(),
		Robot:   run.Robot(),
		Task:    run.Task(),
		Samples: run.Len(),
	}
	if len(series) > 0 {
		s.Goals = series[len(series)-1]
	}
	s.ReportedGoals, s.HasReported = ReportedTotal(run, desc)

	dist, _ := run.Column(desc.DistanceColumn)
	if len(dist) > 0 {
		s.MeanDistance = stat.Mean(dist, nil)
		s.MinDistance = floats.Min(dist)
		s.FinalDistance = dist[len(dist)-1]
	}
	return s, nil
}

// SummarizeAll computes summaries for every run in a collection, aborting
// on the first schema error.
func SummarizeAll(runs runlog.Collection, threshold float64, desc robots.Descriptor) ([]Summary, error) {
	out := make([]Summary, 0, len(runs))
	for _, run := range runs {
		s, err := Summarize(run, threshold, desc)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
