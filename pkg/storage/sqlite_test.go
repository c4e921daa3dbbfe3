package storage

import (
	"path/filepath"
	"testing"

	"github.com/harrisonrobin/goalplan/pkg/model"
)

func TestSQLiteRoundTrip(t *testing.T) {
	backend, err := NewSQLite(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer backend.Close()

	in := []model.Task{
		{ID: "a", Title: "first", Date: "2026-09-01", Priority: model.PriorityHigh, Type: model.TypeTask},
		{ID: "b", Title: "second", Description: "notes", Date: "2026-09-02", StartTime: "09:00", EndTime: "10:30",
			Priority: model.PriorityLow, Completed: true, Type: model.TypeEvent, Location: "office", AttendeeCount: 4},
		{ID: "c", Title: "third", Date: "2026-09-03", Priority: model.PriorityMedium, Type: model.TypeTask},
	}
	if err := backend.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d tasks, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("task %d differs: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestSQLiteSaveOverwrites(t *testing.T) {
	backend, err := NewSQLite(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer backend.Close()

	first := []model.Task{
		{ID: "a", Title: "stale", Date: "2026-09-01", Priority: model.PriorityMedium, Type: model.TypeTask},
		{ID: "b", Title: "also stale", Date: "2026-09-01", Priority: model.PriorityMedium, Type: model.TypeTask},
	}
	if err := backend.Save(first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	second := []model.Task{
		{ID: "c", Title: "current", Date: "2026-09-02", Priority: model.PriorityMedium, Type: model.TypeTask},
	}
	if err := backend.Save(second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := backend.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "c" {
		t.Errorf("expected only the second collection, got %+v", out)
	}
}

func TestSQLitePreservesOrderAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")

	backend, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	in := []model.Task{
		{ID: "z", Title: "first inserted", Date: "2026-09-01", Priority: model.PriorityMedium, Type: model.TypeTask},
		{ID: "a", Title: "second inserted", Date: "2026-09-01", Priority: model.PriorityMedium, Type: model.TypeTask},
	}
	if err := backend.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	backend.Close()

	reopened, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	out, err := reopened.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Insertion order, not id order.
	if len(out) != 2 || out[0].ID != "z" || out[1].ID != "a" {
		t.Errorf("expected insertion order [z a], got %+v", out)
	}
}
