// Command fieldtest-report analyses robot field-test run logs: it loads a
// (robot, task) directory of CSV runs, computes cumulative goal counts,
// renders charts, and optionally labels and archives the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heron-robotics/fieldtest.report/internal/chart"
	"github.com/heron-robotics/fieldtest.report/internal/fsutil"
	"github.com/heron-robotics/fieldtest.report/internal/goalmetric"
	"github.com/heron-robotics/fieldtest.report/internal/label"
	"github.com/heron-robotics/fieldtest.report/internal/robots"
	"github.com/heron-robotics/fieldtest.report/internal/runlog"
	"github.com/heron-robotics/fieldtest.report/internal/runstore"
	"github.com/heron-robotics/fieldtest.report/internal/web"
)

const defaultDBFile = "fieldtest.db"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "report":
		err = runReport(os.Args[2:])
	case "label":
		err = runLabel(os.Args[2:])
	case "serve":
		err = runServe(os.Args[2:])
	case "archive":
		err = runArchive(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: fieldtest-report <command> [flags]

commands:
  report    summarise runs and render PNG charts
  label     interactively label runs, then render grouped charts
  serve     serve interactive HTML charts over HTTP
  archive   store run summaries in the sqlite archive

run 'fieldtest-report <command> -h' for command flags.
`)
}

// options carries the flags shared by every command.
type options struct {
	root       string
	robot      string
	task       string
	robotsPath string
	threshold  float64
}

func addCommonFlags(fs *flag.FlagSet) *options {
	o := &options{}
	fs.StringVar(&o.root, "root", ".", "root directory of the run log tree")
	fs.StringVar(&o.robot, "robot", "", "robot name (required)")
	fs.StringVar(&o.task, "task", "", "task name (required)")
	fs.StringVar(&o.robotsPath, "robots", "", "path to a JSON robot table overriding the builtin one")
	fs.Float64Var(&o.threshold, "threshold", goalmetric.DefaultThreshold, "goal distance threshold in meters")
	return o
}

// resolve validates the common flags and loads the descriptor and run
// collection they name.
func (o *options) resolve() (runlog.Collection, robots.Descriptor, error) {
	if o.robot == "" || o.task == "" {
		return nil, robots.Descriptor{}, fmt.Errorf("-robot and -task are required")
	}

	table := robots.Builtin()
	if o.robotsPath != "" {
		var err error
		table, err = robots.LoadTable(o.robotsPath)
		if err != nil {
			return nil, robots.Descriptor{}, fmt.Errorf("loading robot table: %w", err)
		}
	}
	desc, ok := table.Lookup(o.robot)
	if !ok {
		return nil, robots.Descriptor{}, fmt.Errorf("unknown robot %q (known: %v)", o.robot, table.Names())
	}

	runs, err := runlog.Load(fsutil.OSFileSystem{}, o.root, o.robot, o.task)
	if err != nil {
		return nil, robots.Descriptor{}, err
	}
	return runs, desc, nil
}

func runReport(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	o := addCommonFlags(fs)
	outDir := fs.String("out", "charts", "base directory for rendered charts")
	column := fs.String("column", "", "extra metric column to chart")
	vectors := fs.Bool("vectors", true, "overlay velocity vectors on trajectories")
	fs.Parse(args)

	runs, desc, err := o.resolve()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		log.Printf("no runs for %s/%s, nothing to report", o.robot, o.task)
		return nil
	}

	summaries, err := goalmetric.SummarizeAll(runs, o.threshold, desc)
	if err != nil {
		return err
	}
	printSummaries(summaries, o.threshold)

	theme := chart.DefaultTheme()
	dir := chart.OutputDir(*outDir, o.robot, o.task, time.Now())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	series := make(map[string][]int, len(runs))
	order := make([]string, 0, len(runs))
	for _, run := range runs {
		s, err := goalmetric.CumulativeGoals(run, o.threshold, desc)
		if err != nil {
			return err
		}
		series[run.ID()] = s
		order = append(order, run.ID())
	}
	goals, err := chart.GoalSeriesLines(series, order, theme)
	if err != nil {
		return err
	}
	if err := chart.SavePNG(goals, theme, dir+"/goals.png"); err != nil {
		return err
	}

	traj, err := chart.Trajectories(runs, theme, *vectors)
	if err != nil {
		return err
	}
	if err := chart.SavePNG(traj, theme, dir+"/trajectories.png"); err != nil {
		return err
	}

	if *column != "" {
		lines, err := chart.MetricLines(runs, *column, theme)
		if err != nil {
			return err
		}
		if err := chart.SavePNG(lines, theme, dir+"/metric.png"); err != nil {
			return err
		}
	}

	log.Printf("charts written to %s", dir)
	return nil
}

func runLabel(args []string) error {
	fs := flag.NewFlagSet("label", flag.ExitOnError)
	o := addCommonFlags(fs)
	outDir := fs.String("out", "charts", "base directory for rendered charts")
	column := fs.String("column", runlog.ColDistance, "column for the grouped charts")
	dbPath := fs.String("db", "", "archive labels to this sqlite database")
	fs.Parse(args)

	runs, desc, err := o.resolve()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		log.Printf("no runs for %s/%s, nothing to label", o.robot, o.task)
		return nil
	}

	prompter := label.NewTerminalPrompter(os.Stdin, os.Stdout)
	labels, err := label.Session(runs, o.threshold, desc, prompter)
	if err != nil {
		return err
	}
	// Enter-to-skip: a blank answer leaves the run out of grouping and
	// the archive. The session itself records every answer verbatim.
	for id, v := range labels {
		if v == "" {
			delete(labels, id)
		}
	}
	log.Printf("labelled %d of %d runs", len(labels), len(runs))

	theme := chart.DefaultTheme()
	plots, err := chart.GroupedByLabel(runs, labels, *column, theme)
	if err != nil {
		return err
	}
	dir := chart.OutputDir(*outDir, o.robot, o.task, time.Now())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	files, err := chart.SaveGrouped(plots, theme, dir)
	if err != nil {
		return err
	}
	for _, f := range files {
		log.Printf("wrote %s", f)
	}

	if *dbPath != "" {
		summaries, err := goalmetric.SummarizeAll(runs, o.threshold, desc)
		if err != nil {
			return err
		}
		store, err := runstore.Open(*dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		if _, err := store.ArchiveReport(o.robot, o.task, o.threshold, summaries, labels); err != nil {
			return err
		}
	}
	return nil
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	o := addCommonFlags(fs)
	listen := fs.String("listen", ":8080", "listen address")
	fs.Parse(args)

	runs, desc, err := o.resolve()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return web.NewServer(runs, desc, o.threshold).ListenAndServe(ctx, *listen)
}

func runArchive(args []string) error {
	fs := flag.NewFlagSet("archive", flag.ExitOnError)
	o := addCommonFlags(fs)
	dbPath := fs.String("db", defaultDBFile, "sqlite archive database path")
	fs.Parse(args)

	runs, desc, err := o.resolve()
	if err != nil {
		return err
	}
	summaries, err := goalmetric.SummarizeAll(runs, o.threshold, desc)
	if err != nil {
		return err
	}

	store, err := runstore.Open(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	sessionID, err := store.ArchiveReport(o.robot, o.task, o.threshold, summaries, nil)
	if err != nil {
		return err
	}
	log.Printf("archived session %s (%d runs)", sessionID, len(summaries))
	return nil
}

func printSummaries(summaries []goalmetric.Summary, threshold float64) {
	fmt.Printf("%-20s %8s %6s %9s %10s %10s\n",
		"run", "samples", "goals", "reported", "mean dist", "min dist")
	for _, s := range summaries {
		reported := "-"
		if s.HasReported {
			reported = fmt.Sprintf("%d", s.ReportedGoals)
		}
		fmt.Printf("%-20s %8d %6d %9s %10.3f %10.3f\n",
			s.RunID, s.Samples, s.Goals, reported, s.MeanDistance, s.MinDistance)
	}
	fmt.Printf("threshold: %.2f m\n", threshold)
}
