package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/heron-robotics/fieldtest.report/internal/runlog"
)

// Trajectories builds a 2-D spatial chart of (x, y) position paths for
// one or more runs, overlaying each run's distinct target positions as
// markers. Duplicate target coordinates collapse to a single marker. When
// withVectors is set, a down-sampled field of velocity vectors is drawn
// along each path, at most Theme.MaxVectors per run.
//
// Position columns are required; requesting vectors requires the velocity
// columns too. A run missing any required column fails the chart with a
// schema error naming the column.
func Trajectories(runs runlog.Collection, theme Theme, withVectors bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "trajectories"
	p.X.Label.Text = "x (meters)"
	p.Y.Label.Text = "y (meters)"
	p.Legend.Top = true

	colors := palette(len(runs))
	targets := make(map[[2]float64]bool)

	for i, run := range runs {
		xs, err := requiredColumn(run, runlog.ColPosX)
		if err != nil {
			return nil, err
		}
		ys, err := requiredColumn(run, runlog.ColPosY)
		if err != nil {
			return nil, err
		}

		pts := make(plotter.XYs, len(xs))
		for j := range xs {
			pts[j].X = xs[j]
			pts[j].Y = ys[j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("trajectory for run %s: %w", run.ID(), err)
		}
		line.Color = colors[i]
		line.Width = theme.LineWidth
		p.Add(line)
		p.Legend.Add(run.ID(), line)

		collectTargets(run, targets)

		if withVectors {
			if err := addVectors(p, run, xs, ys, colors[i], theme); err != nil {
				return nil, err
			}
		}
	}

	if len(targets) > 0 {
		markers := make(plotter.XYs, 0, len(targets))
		for t := range targets {
			markers = append(markers, plotter.XY{X: t[0], Y: t[1]})
		}
		scatter, err := plotter.NewScatter(markers)
		if err != nil {
			return nil, fmt.Errorf("target markers: %w", err)
		}
		scatter.GlyphStyle.Shape = draw.PyramidGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		p.Add(scatter)
		p.Legend.Add("targets", scatter)
	}

	return p, nil
}

// collectTargets records the run's distinct target coordinates, when the
// run logs them. Targets are optional on the trajectory chart.
func collectTargets(run *runlog.Run, targets map[[2]float64]bool) {
	txs, okX := run.Column(runlog.ColTargetX)
	tys, okY := run.Column(runlog.ColTargetY)
	if !okX || !okY {
		return
	}
	for j := range txs {
		targets[[2]float64{txs[j], tys[j]}] = true
	}
}

// addVectors draws velocity vectors as short line segments anchored at
// the sampled path positions, one segment every stride samples.
func addVectors(p *plot.Plot, run *runlog.Run, xs, ys []float64, c color.Color, theme Theme) error {
	vxs, err := requiredColumn(run, runlog.ColVelX)
	if err != nil {
		return err
	}
	vys, err := requiredColumn(run, runlog.ColVelY)
	if err != nil {
		return err
	}

	stride := theme.stride(len(xs))
	for j := 0; j < len(xs); j += stride {
		seg := plotter.XYs{
			{X: xs[j], Y: ys[j]},
			{X: xs[j] + vxs[j]*theme.VectorScale, Y: ys[j] + vys[j]*theme.VectorScale},
		}
		line, err := plotter.NewLine(seg)
		if err != nil {
			return fmt.Errorf("velocity vector for run %s: %w", run.ID(), err)
		}
		line.Color = c
		line.Width = vg.Points(0.5)
		line.Dashes = []vg.Length{vg.Points(1), vg.Points(1)}
		p.Add(line)
	}
	return nil
}

func requiredColumn(run *runlog.Run, name string) ([]float64, error) {
	col, ok := run.Column(name)
	if !ok {
		return nil, &runlog.SchemaError{Robot: run.Robot(), Column: name, RunID: run.ID()}
	}
	return col, nil
}
