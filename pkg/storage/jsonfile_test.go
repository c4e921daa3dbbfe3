package storage

import (
	"path/filepath"
	"testing"

	"github.com/harrisonrobin/goalplan/pkg/model"
)

func TestJSONFileMissingFileIsEmpty(t *testing.T) {
	backend := NewJSONFile(filepath.Join(t.TempDir(), "nope", "tasks.json"))

	tasks, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(tasks))
	}
}

func TestJSONFileRoundTrip(t *testing.T) {
	backend := NewJSONFile(filepath.Join(t.TempDir(), "tasks.json"))

	in := []model.Task{
		{ID: "a", Title: "first", Date: "2026-09-01", Priority: model.PriorityHigh, Type: model.TypeTask},
		{ID: "b", Title: "second", Date: "2026-09-02", Priority: model.PriorityLow, Type: model.TypeEvent, Completed: true},
	}
	if err := backend.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("task %d differs: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestJSONFileSaveNilWritesEmptyList(t *testing.T) {
	backend := NewJSONFile(filepath.Join(t.TempDir(), "tasks.json"))

	if err := backend.Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	out, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty collection, got %d tasks", len(out))
	}
}
