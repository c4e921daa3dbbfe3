package planner

import (
	"strings"
	"testing"
	"time"
)

// now is a Tuesday.
var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testDoc() planDoc {
	return planDoc{
		Skill:         "Go",
		DurationDays:  3,
		StartDate:     "2026-09-07",
		PreferredTime: "morning",
		DailyHours:    1.5,
		LearningPlan: []dayEntry{
			{DayNumber: 1, Date: "2026-09-07", Objective: "Basics", ProjectsExercises: "Tour of Go", EstimatedTimeHours: 1.5},
			{DayNumber: 2, Date: "2026-09-08", Objective: "Concurrency", EstimatedTimeHours: 2},
			{DayNumber: 3, Date: "2026-09-09", Objective: "Tooling"},
		},
	}
}

func TestStructurePlan(t *testing.T) {
	plan := structurePlan(testDoc(), PlanRequest{Goal: "Go"}, testNow)

	if plan.Skill != "Go" || plan.StartDate != "2026-09-07" {
		t.Fatalf("unexpected plan header: %+v", plan)
	}
	if len(plan.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(plan.Tasks))
	}

	first := plan.Tasks[0]
	if first.Summary != "Day 1: Basics" {
		t.Errorf("unexpected summary: %q", first.Summary)
	}
	if first.Description != "Tour of Go" {
		t.Errorf("unexpected description: %q", first.Description)
	}
	// Morning preference means a 09:00 start; 1.5 hours gives a 10:30 end.
	if !strings.HasPrefix(first.StartTime, "2026-09-07T09:00:00") {
		t.Errorf("unexpected start: %q", first.StartTime)
	}
	if !strings.HasPrefix(first.EndTime, "2026-09-07T10:30:00") {
		t.Errorf("unexpected end: %q", first.EndTime)
	}

	// Day dates are derived from the start date, one per day.
	if !strings.HasPrefix(plan.Tasks[1].StartTime, "2026-09-08T") {
		t.Errorf("day 2 not on start+1: %q", plan.Tasks[1].StartTime)
	}
	if !strings.HasPrefix(plan.Tasks[2].StartTime, "2026-09-09T") {
		t.Errorf("day 3 not on start+2: %q", plan.Tasks[2].StartTime)
	}

	if !strings.Contains(plan.HumanReadable, "Learning Plan for: Go") {
		t.Errorf("human-readable plan missing header:\n%s", plan.HumanReadable)
	}
	if !strings.Contains(plan.HumanReadable, "Day 2 (2026-09-08): Concurrency") {
		t.Errorf("human-readable plan missing day line:\n%s", plan.HumanReadable)
	}
}

func TestStructurePlanCorrectsPastStartDate(t *testing.T) {
	doc := testDoc()
	doc.StartDate = "2026-08-01" // before testNow

	plan := structurePlan(doc, PlanRequest{}, testNow)

	// Next Monday after Tuesday 2026-09-01 is 2026-09-07.
	if plan.StartDate != "2026-09-07" {
		t.Errorf("expected next-Monday correction, got %q", plan.StartDate)
	}
	if !strings.HasPrefix(plan.Tasks[0].StartTime, "2026-09-07T") {
		t.Errorf("day dates must follow the corrected start: %q", plan.Tasks[0].StartTime)
	}
}

func TestStructurePlanUnparseableStartDate(t *testing.T) {
	doc := testDoc()
	doc.StartDate = "soon"

	plan := structurePlan(doc, PlanRequest{}, testNow)
	if plan.StartDate != "2026-09-07" {
		t.Errorf("expected next-Monday fallback, got %q", plan.StartDate)
	}
}

func TestStructurePlanFallsBackToRequest(t *testing.T) {
	doc := testDoc()
	doc.Skill = ""
	doc.PreferredTime = ""
	doc.DailyHours = 0
	doc.LearningPlan[2].EstimatedTimeHours = 0

	req := PlanRequest{Goal: "Kubernetes", PreferredTime: "evening", DailyHours: 1.0}
	plan := structurePlan(doc, req, testNow)

	if plan.Skill != "Kubernetes" {
		t.Errorf("expected request goal as skill, got %q", plan.Skill)
	}
	// Evening preference: 19:00 start.
	if !strings.HasPrefix(plan.Tasks[0].StartTime, "2026-09-07T19:00:00") {
		t.Errorf("expected evening start, got %q", plan.Tasks[0].StartTime)
	}
	// Day 3 had no estimate, so the request's daily hours apply.
	if !strings.HasPrefix(plan.Tasks[2].EndTime, "2026-09-09T20:00:00") {
		t.Errorf("expected 1.0h fallback duration, got %q", plan.Tasks[2].EndTime)
	}
}

func TestStructurePlanNumbersUnnumberedDays(t *testing.T) {
	doc := testDoc()
	for i := range doc.LearningPlan {
		doc.LearningPlan[i].DayNumber = 0
	}

	plan := structurePlan(doc, PlanRequest{}, testNow)
	if plan.Tasks[0].Summary != "Day 1: Basics" || plan.Tasks[2].Summary != "Day 3: Tooling" {
		t.Errorf("expected positional day numbers, got %q / %q", plan.Tasks[0].Summary, plan.Tasks[2].Summary)
	}
}

func TestNextMonday(t *testing.T) {
	cases := []struct {
		day  time.Time
		want string
	}{
		{time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), "2026-09-07"}, // Monday maps a week out
		{time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), "2026-09-07"},  // Tuesday
		{time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), "2026-09-07"},  // Sunday
	}
	for _, tc := range cases {
		if got := nextMonday(tc.day).Format("2006-01-02"); got != tc.want {
			t.Errorf("nextMonday(%s) = %s, want %s", tc.day.Format("2006-01-02"), got, tc.want)
		}
	}
}
