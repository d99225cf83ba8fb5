package chart

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/plot"

	"github.com/heron-robotics/fieldtest.report/internal/runlog"
)

// Partition splits a collection by category label. Runs without an entry
// in the label mapping are left out; every labelled run appears under
// exactly its one label, preserving collection order within each group.
func Partition(runs runlog.Collection, labels map[string]string) map[string]runlog.Collection {
	groups := make(map[string]runlog.Collection)
	for _, run := range runs {
		label, ok := labels[run.ID()]
		if !ok {
			continue
		}
		groups[label] = append(groups[label], run)
	}
	return groups
}

// GroupedByLabel builds one metric line chart per distinct category
// label, each containing only that label's runs. The returned map is
// keyed by label.
func GroupedByLabel(runs runlog.Collection, labels map[string]string, column string, theme Theme) (map[string]*plot.Plot, error) {
	plots := make(map[string]*plot.Plot)
	for label, group := range Partition(runs, labels) {
		p, err := MetricLines(group, column, theme)
		if err != nil {
			return nil, fmt.Errorf("chart for label %q: %w", label, err)
		}
		p.Title.Text = fmt.Sprintf("%s — %s", column, label)
		plots[label] = p
	}
	return plots, nil
}

// SavePNG writes a plot to a PNG file at the themed dimensions.
func SavePNG(p *plot.Plot, theme Theme, path string) error {
	if err := p.Save(theme.Width, theme.Height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SaveGrouped writes one PNG per label into dir, named after the label,
// in sorted label order so output is deterministic.
func SaveGrouped(plots map[string]*plot.Plot, theme Theme, dir string) ([]string, error) {
	labels := make([]string, 0, len(plots))
	for label := range plots {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var paths []string
	for _, label := range labels {
		path := filepath.Join(dir, fmt.Sprintf("group_%s.png", fileSafeLabel(label)))
		if err := SavePNG(plots[label], theme, path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// fileSafeLabel maps a free-text label onto a filename segment: path
// separators and other unsafe runes become underscores, and an empty
// label gets a stand-in name so the file stays inside dir.
func fileSafeLabel(label string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, label)
	if strings.Trim(safe, ".") == "" {
		return "unlabelled"
	}
	return safe
}

// OutputDir builds a timestamped directory path for one report's charts,
// e.g. plots/leatherback/go_to_position/20260831_141500.
func OutputDir(baseDir, robot, task string, now time.Time) string {
	return filepath.Join(baseDir, robot, task, now.Format("20060102_150405"))
}
