// Package robots holds the robot descriptor table: the per-robot-type
// mapping from robot name to the log columns the metric extractor reads.
//
// The table is data, not code. New robot types are added by editing
// descriptors.json (or supplying an override file); the version field
// tracks revisions of the mapping. The jetbot entry encodes a known
// labelling swap in its source logs and must not be "corrected" here.
package robots

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed descriptors.json
var builtinDescriptors []byte

// Descriptor maps one robot type to the columns the analysis reads.
type Descriptor struct {
	// Name is the robot selector string, matching the directory name
	// under the log root.
	Name string `json:"name"`

	// DistanceColumn is the column holding distance-to-goal for this
	// robot type.
	DistanceColumn string `json:"distance_column"`

	// CounterColumn, when set, names the run's own goals-reached counter
	// column used for the independently-reported total.
	CounterColumn string `json:"counter_column,omitempty"`

	// Note records why a mapping deviates from the column vocabulary.
	Note string `json:"note,omitempty"`
}

// Table is a versioned robot descriptor lookup table.
type Table struct {
	Version int
	byName  map[string]Descriptor
	order   []string
}

type tableFile struct {
	Version int          `json:"version"`
	Robots  []Descriptor `json:"robots"`
}

// Builtin returns the table compiled into the binary.
func Builtin() *Table {
	t, err := parseTable(builtinDescriptors)
	if err != nil {
		// The embedded file is validated by tests; a failure here is a
		// build defect, not a runtime condition.
		panic(fmt.Sprintf("robots: embedded descriptor table invalid: %v", err))
	}
	return t
}

// LoadTable reads a descriptor table from a JSON file, overriding the
// builtin table entirely.
func LoadTable(path string) (*Table, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("descriptor table must have .json extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read descriptor table: %w", err)
	}
	t, err := parseTable(data)
	if err != nil {
		return nil, fmt.Errorf("parse descriptor table %s: %w", cleanPath, err)
	}
	return t, nil
}

func parseTable(data []byte) (*Table, error) {
	var file tableFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.Version <= 0 {
		return nil, fmt.Errorf("missing or invalid version %d", file.Version)
	}

	t := &Table{
		Version: file.Version,
		byName:  make(map[string]Descriptor, len(file.Robots)),
	}
	for _, d := range file.Robots {
		if d.Name == "" {
			return nil, fmt.Errorf("descriptor with empty name")
		}
		if d.DistanceColumn == "" {
			return nil, fmt.Errorf("robot %q: missing distance_column", d.Name)
		}
		if _, dup := t.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate robot %q", d.Name)
		}
		t.byName[d.Name] = d
		t.order = append(t.order, d.Name)
	}
	return t, nil
}

// Lookup returns the descriptor for a robot name.
func (t *Table) Lookup(name string) (Descriptor, bool) {
	d, ok := t.byName[name]
	return d, ok
}

// Names returns the robot names in table order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
