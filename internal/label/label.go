// Package label implements the interactive run labelling session: each
// run's cumulative goal series is drawn as a terminal chart and the
// operator types a free-form category for it. The prompt side is an
// interface so tests (and future UIs) can drive a session without a
// terminal.
package label

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/heron-robotics/fieldtest.report/internal/goalmetric"
	"github.com/heron-robotics/fieldtest.report/internal/robots"
	"github.com/heron-robotics/fieldtest.report/internal/runlog"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	lineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const (
	chartWidth  = 72
	chartHeight = 16
)

// Prompter asks the operator to label one run. rendered is the chart
// text already drawn for the run; implementations decide how to show
// it. The returned label may be empty, which leaves the run unlabelled.
type Prompter interface {
	Prompt(runID, rendered string) (string, error)
}

// RenderGoalSeries draws a cumulative goal series as a terminal line
// chart with a titled border.
func RenderGoalSeries(runID string, series []int) string {
	maxGoal := 0
	for _, v := range series {
		if v > maxGoal {
			maxGoal = v
		}
	}
	if maxGoal == 0 {
		maxGoal = 1
	}

	chart := streamlinechart.New(chartWidth, chartHeight,
		streamlinechart.WithYRange(0, float64(maxGoal)),
	)
	chart.SetDataSetStyles(runID, runes.ThinLineStyle, lineStyle)
	for _, v := range series {
		chart.PushDataSet(runID, float64(v))
	}
	chart.DrawAll()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s — cumulative goals (final %d)", runID, final(series))))
	sb.WriteString("\n")
	sb.WriteString(chartStyle.Render(chart.View()))
	sb.WriteString("\n")
	return sb.String()
}

func final(series []int) int {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

// Session walks every run in collection order, draws its goal series and
// asks the prompter for a category. Every answer is recorded verbatim,
// empty strings included; callers that treat blank answers as "skip"
// filter the result themselves. The first chart or prompt failure aborts
// the session.
func Session(runs runlog.Collection, threshold float64, desc robots.Descriptor, p Prompter) (map[string]string, error) {
	labels := make(map[string]string, len(runs))
	for _, run := range runs {
		series, err := goalmetric.CumulativeGoals(run, threshold, desc)
		if err != nil {
			return nil, fmt.Errorf("labelling %s: %w", run.ID(), err)
		}

		answer, err := p.Prompt(run.ID(), RenderGoalSeries(run.ID(), series))
		if err != nil {
			return nil, fmt.Errorf("labelling %s: %w", run.ID(), err)
		}
		labels[run.ID()] = answer
	}
	return labels, nil
}
