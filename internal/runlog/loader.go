package runlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/heron-robotics/fieldtest.report/internal/fsutil"
	"github.com/heron-robotics/fieldtest.report/internal/monitoring"
)

// Load enumerates every CSV file under <root>/<robot>/<task> and parses
// each into a Run tagged with its source filename. A missing or empty
// directory yields an empty collection. A malformed file aborts the whole
// load; per-file errors are not swallowed.
//
// Files are visited in sorted filename order, so collection order is
// deterministic across platforms.
func Load(fsys fsutil.FileSystem, root, robot, task string) (Collection, error) {
	dir := filepath.Join(root, robot, task)

	entries, err := fsys.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			monitoring.Logf("loaded 0 runs from %s (directory missing)", dir)
			return Collection{}, nil
		}
		return nil, fmt.Errorf("enumerate %s: %w", dir, err)
	}

	runs := Collection{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		run, err := parseRun(fsys, filepath.Join(dir, entry.Name()), entry.Name(), robot, task)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		runs = append(runs, run)
	}

	monitoring.Logf("loaded %d runs from %s", len(runs), dir)
	return runs, nil
}

// parseRun reads one delimited log file into a Run. The first record is
// the column header; every subsequent record is one sample row of float
// values. csv.Reader enforces that all rows have the header's width, which
// gives the equal-column-length invariant for free.
func parseRun(fsys fsutil.FileSystem, path, id, robot, task string) (*Run, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
		if header[i] == "" {
			return nil, fmt.Errorf("empty column name at index %d", i)
		}
		if seen[header[i]] {
			return nil, fmt.Errorf("duplicate column %q in header", header[i])
		}
		seen[header[i]] = true
	}

	data := make(map[string][]float64, len(header))
	for _, name := range header {
		data[name] = []float64{}
	}

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rows+1, err)
		}
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", rows+1, header[i], err)
			}
			data[header[i]] = append(data[header[i]], v)
		}
		rows++
	}

	return NewRun(id, robot, task, header, data)
}
