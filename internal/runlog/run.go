// Package runlog loads robot field-test logs into in-memory runs.
//
// A run is one recorded execution of a robot task: a time-ordered table of
// samples parsed from a single delimited log file. Runs are immutable once
// loaded; the loader tags each with its source filename as identifier.
package runlog

import "fmt"

// Run holds the samples of one experiment execution. Columns follow the
// "<semantic_name>.<unit>" naming convention and all have equal length,
// one row per timestep, ordered by elapsed time ascending.
type Run struct {
	id      string
	robot   string
	task    string
	columns []string
	data    map[string][]float64
	rows    int
}

// NewRun builds a run from column-oriented data. All columns must have
// equal length. The loader uses this after parsing; tests use it to stage
// fixtures directly.
func NewRun(id, robot, task string, columns []string, data map[string][]float64) (*Run, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("run %s: no columns", id)
	}
	rows := -1
	for _, name := range columns {
		col, ok := data[name]
		if !ok {
			return nil, fmt.Errorf("run %s: column %q has no data", id, name)
		}
		if rows == -1 {
			rows = len(col)
		} else if len(col) != rows {
			return nil, fmt.Errorf("run %s: column %q has %d rows, want %d", id, name, len(col), rows)
		}
	}
	return &Run{
		id:      id,
		robot:   robot,
		task:    task,
		columns: columns,
		data:    data,
		rows:    rows,
	}, nil
}

// ID returns the run identifier (the source filename).
func (r *Run) ID() string { return r.id }

// Robot returns the robot selector the run was loaded under.
func (r *Run) Robot() string { return r.robot }

// Task returns the task selector the run was loaded under.
func (r *Run) Task() string { return r.task }

// Len returns the number of samples (rows) in the run.
func (r *Run) Len() int { return r.rows }

// Columns returns the column names in file order.
func (r *Run) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// HasColumn reports whether the run contains the named column.
func (r *Run) HasColumn(name string) bool {
	_, ok := r.data[name]
	return ok
}

// Column returns the named column's values. The returned slice is the
// run's backing storage and must not be modified. The second return is
// false when the column is absent.
func (r *Run) Column(name string) ([]float64, bool) {
	col, ok := r.data[name]
	return col, ok
}

// Collection is an ordered sequence of runs for one (robot, task) pair.
// Order is the sorted filename order the loader enumerated.
type Collection []*Run

// IDs returns the run identifiers in collection order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, r := range c {
		ids[i] = r.ID()
	}
	return ids
}

// ByID returns the run with the given identifier, or nil.
func (c Collection) ByID(id string) *Run {
	for _, r := range c {
		if r.ID() == id {
			return r
		}
	}
	return nil
}
