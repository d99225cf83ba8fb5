// Package goalmetric computes the cumulative goal counter for field-test
// runs: a running count of distinct goal-reached events, detected as
// threshold crossings of the robot's distance-to-goal signal.
package goalmetric

import (
	"github.com/heron-robotics/fieldtest.report/internal/monitoring"
	"github.com/heron-robotics/fieldtest.report/internal/robots"
	"github.com/heron-robotics/fieldtest.report/internal/runlog"
)

// DefaultThreshold is the goal-reached distance threshold, in the run's
// native distance unit.
const DefaultThreshold = 0.2

// Cumulative computes the cumulative goal series for a distance sequence.
// A goal fires once when distance drops strictly below the threshold;
// detection re-arms once distance rises strictly above it. A sample
// exactly equal to the threshold neither fires nor re-arms.
//
// The output has the same length as the input and is monotonically
// non-decreasing.
func Cumulative(distances []float64, threshold float64) []int {
	series := make([]int, len(distances))
	total := 0
	latched := false

	for i, d := range distances {
		if d < threshold && !latched {
			total++
			latched = true
		} else if d > threshold {
			latched = false
		}
		series[i] = total
	}
	return series
}

// CumulativeGoals resolves the robot's distance column through its
// descriptor and computes the cumulative goal series for the run. A
// missing distance column is a schema error naming the column and robot.
func CumulativeGoals(run *runlog.Run, threshold float64, desc robots.Descriptor) ([]int, error) {
	dist, ok := run.Column(desc.DistanceColumn)
	if !ok {
		return nil, &runlog.SchemaError{
			Robot:  desc.Name,
			Column: desc.DistanceColumn,
			RunID:  run.ID(),
		}
	}
	return Cumulative(dist, threshold), nil
}

// ReportedTotal reads the run's own goals-reached counter column, when the
// descriptor names one and the run carries it. The second return is false
// when no independently-reported total is available; that case emits a
// diagnostic but is not an error.
func ReportedTotal(run *runlog.Run, desc robots.Descriptor) (int, bool) {
	if desc.CounterColumn == "" {
		return 0, false
	}
	col, ok := run.Column(desc.CounterColumn)
	if !ok {
		monitoring.Logf("run %s: counter column %q not present; no reported total", run.ID(), desc.CounterColumn)
		return 0, false
	}
	if len(col) == 0 {
		return 0, true
	}
	return int(col[len(col)-1] + 0.5), true
}
