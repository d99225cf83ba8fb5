package robots

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinTable(t *testing.T) {
	table := Builtin()

	if table.Version < 1 {
		t.Errorf("builtin table version = %d, want >= 1", table.Version)
	}

	for _, name := range []string{"leatherback", "kingfisher", "floating_platform", "jetbot"} {
		if _, ok := table.Lookup(name); !ok {
			t.Errorf("builtin table missing robot %q", name)
		}
	}
}

// The jetbot source logs carry distance-to-target in a velocity-named
// column. The table must preserve that mapping verbatim.
func TestJetbotSwappedColumnWorkaround(t *testing.T) {
	d, ok := Builtin().Lookup("jetbot")
	if !ok {
		t.Fatal("jetbot missing from builtin table")
	}
	if d.DistanceColumn != "body_velocity.x.m_s" {
		t.Errorf("jetbot distance column = %q, want body_velocity.x.m_s", d.DistanceColumn)
	}
	if d.Note == "" {
		t.Error("jetbot descriptor should document the labelling swap")
	}
}

func TestLookupUnknownRobot(t *testing.T) {
	if _, ok := Builtin().Lookup("warthog"); ok {
		t.Error("Lookup(warthog) = ok, want miss")
	}
}

func TestLoadTableOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.json")
	contents := `{
		"version": 4,
		"robots": [
			{"name": "warthog", "distance_column": "distance_to_target.m"}
		]
	}`
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	table, err := LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	if table.Version != 4 {
		t.Errorf("version = %d, want 4", table.Version)
	}
	if _, ok := table.Lookup("warthog"); !ok {
		t.Error("override table missing warthog")
	}
	if _, ok := table.Lookup("leatherback"); ok {
		t.Error("override table should replace the builtin entirely")
	}
}

func TestLoadTableRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		filename string
		contents string
	}{
		{"wrong extension", "table.yaml", `{}`},
		{"missing version", "noversion.json", `{"robots": []}`},
		{"missing distance column", "nodist.json", `{"version": 1, "robots": [{"name": "x"}]}`},
		{"duplicate robot", "dup.json", `{"version": 1, "robots": [
			{"name": "x", "distance_column": "distance_to_target.m"},
			{"name": "x", "distance_column": "distance_to_target.m"}
		]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.filename)
			if err := os.WriteFile(path, []byte(tt.contents), 0644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := LoadTable(path); err == nil {
				t.Error("LoadTable succeeded, want error")
			}
		})
	}
}

func TestNamesOrder(t *testing.T) {
	names := Builtin().Names()
	if len(names) == 0 {
		t.Fatal("builtin table has no robots")
	}
	if names[0] != "leatherback" {
		t.Errorf("first robot = %q, want leatherback (file order)", names[0])
	}
}
