package planner

import (
	"testing"

	"github.com/harrisonrobin/goalplan/pkg/model"
)

func TestDraftsFromTasks(t *testing.T) {
	drafts, err := DraftsFromTasks([]PlanTask{
		{Summary: "Day 1: Basics", Description: "Tour", StartTime: "2026-09-07T09:00:00Z", EndTime: "2026-09-07T10:30:00Z"},
		{Summary: "Day 2: Practice", StartTime: "2026-09-08T09:00:00"}, // naive timestamp, no end
	})
	if err != nil {
		t.Fatalf("DraftsFromTasks failed: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}

	first := drafts[0]
	if first.Title != "Day 1: Basics" || first.Description != "Tour" {
		t.Errorf("unexpected draft fields: %+v", first)
	}
	if first.Date != "2026-09-07" || first.StartTime != "09:00" || first.EndTime != "10:30" {
		t.Errorf("unexpected schedule split: %+v", first)
	}
	if first.Priority != model.PriorityMedium || first.Type != model.TypeTask {
		t.Errorf("unexpected defaults: %+v", first)
	}

	second := drafts[1]
	if second.Date != "2026-09-08" || second.EndTime != "" {
		t.Errorf("unexpected second draft: %+v", second)
	}
}

func TestDraftsFromTasksRejectsBadStart(t *testing.T) {
	if _, err := DraftsFromTasks([]PlanTask{{Summary: "x", StartTime: "whenever"}}); err == nil {
		t.Fatal("expected an error for an unparseable startTime")
	}
}
