package web

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/heron-robotics/fieldtest.report/internal/goalmetric"
	"github.com/heron-robotics/fieldtest.report/internal/httputil"
	"github.com/heron-robotics/fieldtest.report/internal/runlog"
	"github.com/heron-robotics/fieldtest.report/internal/units"
)

// handleDashboard renders a single page with iframes to each chart, so a
// reviewer can eyeball a whole collection without the CLI.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.NotFound(w, "not found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>fieldtest.report — %s/%s</title></head>
<body style="background:#111;color:#eee;font-family:sans-serif">
<h2>%s / %s — %d runs</h2>
<iframe src="/charts/metric?column=%s" style="width:48%%;height:520px;border:0"></iframe>
<iframe src="/charts/goals" style="width:48%%;height:520px;border:0"></iframe>
<iframe src="/charts/trajectory" style="width:96%%;height:640px;border:0"></iframe>
</body>
</html>`,
		s.desc.Name, taskOf(s.runs), s.desc.Name, taskOf(s.runs), len(s.runs), s.desc.DistanceColumn)
}

func taskOf(runs runlog.Collection) string {
	if len(runs) == 0 {
		return ""
	}
	return runs[0].Task()
}

// handleMetricChart renders a multi-run line chart of one named column.
// Runs lacking the column are skipped, matching the PNG renderer.
func (s *Server) handleMetricChart(w http.ResponseWriter, r *http.Request) {
	column := r.URL.Query().Get("column")
	if column == "" {
		httputil.BadRequest(w, "column query parameter required")
		return
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: column, Theme: "dark", Width: "860px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: column, Subtitle: fmt.Sprintf("%d runs", len(s.runs))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: units.AxisLabel(column)}),
	)

	maxLen := 0
	for _, run := range s.runs {
		if run.Len() > maxLen {
			maxLen = run.Len()
		}
	}
	xAxis := make([]int, maxLen)
	for i := range xAxis {
		xAxis[i] = i
	}
	line.SetXAxis(xAxis)

	plotted := 0
	for _, run := range s.runs {
		values, ok := run.Column(column)
		if !ok {
			continue
		}
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(run.ID(), data)
		plotted++
	}
	if plotted == 0 {
		httputil.NotFound(w, fmt.Sprintf("no run carries column %q", column))
		return
	}

	renderChart(w, line)
}

// handleGoalsChart renders the cumulative goal series for every run.
func (s *Server) handleGoalsChart(w http.ResponseWriter, r *http.Request) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "cumulative goals", Theme: "dark", Width: "860px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "cumulative goals reached", Subtitle: fmt.Sprintf("threshold %.2f on %s", s.threshold, s.desc.DistanceColumn)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	maxLen := 0
	for _, run := range s.runs {
		if run.Len() > maxLen {
			maxLen = run.Len()
		}
	}
	xAxis := make([]int, maxLen)
	for i := range xAxis {
		xAxis[i] = i
	}
	line.SetXAxis(xAxis)

	for _, run := range s.runs {
		series, err := goalmetric.CumulativeGoals(run, s.threshold, s.desc)
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		data := make([]opts.LineData, len(series))
		for i, v := range series {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(run.ID(), data)
	}

	renderChart(w, line)
}

// handleTrajectoryChart renders XY paths plus deduplicated target markers
// as scatter series.
func (s *Server) handleTrajectoryChart(w http.ResponseWriter, r *http.Request) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "trajectories", Theme: "dark", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "trajectories", Subtitle: fmt.Sprintf("%d runs", len(s.runs))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (m)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (m)"}),
	)

	targets := make(map[[2]float64]bool)
	for _, run := range s.runs {
		xs, okX := run.Column(runlog.ColPosX)
		ys, okY := run.Column(runlog.ColPosY)
		if !okX || !okY {
			httputil.InternalServerError(w,
				(&runlog.SchemaError{Robot: run.Robot(), Column: runlog.ColPosX, RunID: run.ID()}).Error())
			return
		}

		data := make([]opts.ScatterData, len(xs))
		for i := range xs {
			data[i] = opts.ScatterData{Value: []interface{}{xs[i], ys[i]}, SymbolSize: 4}
		}
		scatter.AddSeries(run.ID(), data)

		if txs, ok := run.Column(runlog.ColTargetX); ok {
			if tys, ok := run.Column(runlog.ColTargetY); ok {
				for i := range txs {
					targets[[2]float64{txs[i], tys[i]}] = true
				}
			}
		}
	}

	if len(targets) > 0 {
		data := make([]opts.ScatterData, 0, len(targets))
		for tgt := range targets {
			data = append(data, opts.ScatterData{Value: []interface{}{tgt[0], tgt[1]}, SymbolSize: 12, Symbol: "diamond"})
		}
		scatter.AddSeries("targets", data)
	}

	renderChart(w, scatter)
}

// handleRuns returns a JSON listing of per-run summaries.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	summaries, err := goalmetric.SummarizeAll(s.runs, s.threshold, s.desc)
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}

	type runInfo struct {
		ID            string  `json:"id"`
		Samples       int     `json:"samples"`
		Goals         int     `json:"goals"`
		ReportedGoals *int    `json:"reported_goals,omitempty"`
		MeanDistance  float64 `json:"mean_distance"`
		FinalDistance float64 `json:"final_distance"`
	}

	out := make([]runInfo, len(summaries))
	for i, s := range summaries {
		out[i] = runInfo{
			ID:            s.RunID,
			Samples:       s.Samples,
			Goals:         s.Goals,
			MeanDistance:  s.MeanDistance,
			FinalDistance: s.FinalDistance,
		}
		if s.HasReported {
			reported := s.ReportedGoals
			out[i].ReportedGoals = &reported
		}
	}
	httputil.WriteJSONOK(w, out)
}

// chartRenderer is the slice of the go-echarts chart API the handlers
// need; both Line and Scatter satisfy it.
type chartRenderer interface {
	Render(w io.Writer) error
}

// renderChart renders an echarts chart into the response, converting
// render failures into JSON errors.
func renderChart(w http.ResponseWriter, c chartRenderer) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
