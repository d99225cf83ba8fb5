// goal-export dumps per-run goal summaries for one (robot, task) tree as
// CSV on a file or stdout, for spreadsheet-side analysis.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/heron-robotics/fieldtest.report/internal/fsutil"
	"github.com/heron-robotics/fieldtest.report/internal/goalmetric"
	"github.com/heron-robotics/fieldtest.report/internal/robots"
	"github.com/heron-robotics/fieldtest.report/internal/runlog"
)

func main() {
	root := flag.String("root", ".", "root directory of the run log tree")
	robot := flag.String("robot", "", "robot name (required)")
	task := flag.String("task", "", "task name (required)")
	threshold := flag.Float64("threshold", goalmetric.DefaultThreshold, "goal distance threshold in meters")
	output := flag.String("output", "", "output CSV path; '-' or empty writes to stdout with a timestamped default name")
	flag.Parse()

	if *robot == "" || *task == "" {
		log.Fatal("-robot and -task are required")
	}

	table := robots.Builtin()
	desc, ok := table.Lookup(*robot)
	if !ok {
		log.Fatalf("unknown robot %q (known: %v)", *robot, table.Names())
	}

	runs, err := runlog.Load(fsutil.OSFileSystem{}, *root, *robot, *task)
	if err != nil {
		log.Fatalf("loading runs: %v", err)
	}
	summaries, err := goalmetric.SummarizeAll(runs, *threshold, desc)
	if err != nil {
		log.Fatalf("summarising runs: %v", err)
	}

	var out io.Writer = os.Stdout
	if *output != "" && *output != "-" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("could not create output file %s: %v", *output, err)
		}
		defer f.Close()
		out = f
	} else if *output == "" {
		name := fmt.Sprintf("goals-%s-%s-%s.csv", *robot, *task, time.Now().Format("20060102-150405"))
		f, err := os.Create(name)
		if err != nil {
			log.Fatalf("could not create output file %s: %v", name, err)
		}
		defer f.Close()
		out = f
		log.Printf("writing %s", name)
	}

	if err := writeSummaries(out, summaries); err != nil {
		log.Fatalf("writing CSV: %v", err)
	}
}

func writeSummaries(out io.Writer, summaries []goalmetric.Summary) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{"run_id", "samples", "goals", "reported_goals", "mean_distance_m", "min_distance_m", "final_distance_m"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range summaries {
		reported := ""
		if s.HasReported {
			reported = strconv.Itoa(s.ReportedGoals)
		}
		record := []string{
			s.RunID,
			strconv.Itoa(s.Samples),
			strconv.Itoa(s.Goals),
			reported,
			strconv.FormatFloat(s.MeanDistance, 'f', 4, 64),
			strconv.FormatFloat(s.MinDistance, 'f', 4, 64),
			strconv.FormatFloat(s.FinalDistance, 'f', 4, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
