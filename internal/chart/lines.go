package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"github.com/heron-robotics/fieldtest.report/internal/runlog"
	"github.com/heron-robotics/fieldtest.report/internal/units"
)

// MetricLines builds a multi-run line chart of one named metric column
// over time, one line per run, legend keyed by run identifier. Runs that
// lack the requested column are silently skipped; the chart never fails
// because one run logged a different schema.
//
// The x-axis is elapsed time when the run carries a time column, sample
// index otherwise.
func MetricLines(runs runlog.Collection, column string, theme Theme) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = column
	p.X.Label.Text = units.AxisLabel(runlog.ColTime)
	p.Y.Label.Text = units.AxisLabel(column)
	p.Legend.Top = true
	p.Legend.Left = false

	colors := palette(len(runs))
	for i, run := range runs {
		values, ok := run.Column(column)
		if !ok {
			continue
		}

		pts := make(plotter.XYs, len(values))
		ts, hasTime := run.Column(runlog.ColTime)
		for j, v := range values {
			if hasTime {
				pts[j].X = ts[j]
			} else {
				pts[j].X = float64(j)
			}
			pts[j].Y = v
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("line for run %s: %w", run.ID(), err)
		}
		line.Color = colors[i]
		line.Width = theme.LineWidth
		p.Add(line)
		p.Legend.Add(run.ID(), line)
	}

	return p, nil
}

// GoalSeriesLines builds a line chart of precomputed cumulative goal
// series, one line per run ID in series order.
func GoalSeriesLines(series map[string][]int, order []string, theme Theme) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "cumulative goals reached"
	p.X.Label.Text = "sample"
	p.Y.Label.Text = "goals"
	p.Legend.Top = true

	colors := palette(len(order))
	for i, id := range order {
		s, ok := series[id]
		if !ok {
			continue
		}
		pts := make(plotter.XYs, len(s))
		for j, v := range s {
			pts[j].X = float64(j)
			pts[j].Y = float64(v)
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("goal series for run %s: %w", id, err)
		}
		line.Color = colors[i]
		line.Width = theme.LineWidth
		p.Add(line)
		p.Legend.Add(id, line)
	}

	return p, nil
}
