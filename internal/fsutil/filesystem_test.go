package fsutil

import (
	"errors"
	"io"
	"io/fs"
	"testing"
)

func TestMemoryFileSystemReadWrite(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := m.WriteFile("logs/leatherback/run_001.csv", []byte("time.s\n0.0\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := m.ReadFile("logs/leatherback/run_001.csv")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "time.s\n0.0\n" {
		t.Errorf("ReadFile = %q, want %q", data, "time.s\n0.0\n")
	}

	if !m.Exists("logs/leatherback") {
		t.Error("parent directory should exist after WriteFile")
	}
}

func TestMemoryFileSystemOpen(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := m.WriteFile("a.csv", []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := m.Open("a.csv")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("read %q, want %q", got, "hello")
	}

	if _, err := m.Open("missing.csv"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryFileSystemReadDir(t *testing.T) {
	m := NewMemoryFileSystem()
	files := []string{
		"root/robot/task/b.csv",
		"root/robot/task/a.csv",
		"root/robot/task/nested/c.csv",
	}
	for _, f := range files {
		if err := m.WriteFile(f, []byte("x"), 0644); err != nil {
			t.Fatalf("WriteFile(%s): %v", f, err)
		}
	}

	entries, err := m.ReadDir("root/robot/task")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	want := []string{"a.csv", "b.csv", "nested"}
	if len(entries) != len(want) {
		t.Fatalf("ReadDir returned %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e.Name() != want[i] {
			t.Errorf("entry[%d] = %q, want %q (sorted order)", i, e.Name(), want[i])
		}
	}
	if !entries[2].IsDir() {
		t.Error("nested should be reported as a directory")
	}
}

func TestMemoryFileSystemReadDirMissing(t *testing.T) {
	m := NewMemoryFileSystem()
	if _, err := m.ReadDir("nope"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDir(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryFileSystemCreateWriter(t *testing.T) {
	m := NewMemoryFileSystem()

	w, err := m.Create("out/summary.csv")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := w.Write([]byte("run_id,goals\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := w.Write([]byte("run_001.csv,2\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := m.ReadFile("out/summary.csv")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "run_id,goals\nrun_001.csv,2\n" {
		t.Errorf("file contents = %q", got)
	}
}

func TestOSFileSystem(t *testing.T) {
	var osfs OSFileSystem
	dir := t.TempDir()

	path := dir + "/x.csv"
	if err := osfs.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !osfs.Exists(path) {
		t.Error("Exists should report written file")
	}

	entries, err := osfs.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "x.csv" {
		t.Errorf("ReadDir = %v, want single x.csv", entries)
	}
}
