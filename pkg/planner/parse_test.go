package planner

import (
	"testing"
	"time"
)

func TestParseGoalRequest(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	req := ParseGoalRequest("I want to learn Rust in 2 weeks, 1.5 hours per day, in the evening", now)
	if req.Goal != "Rust" {
		t.Errorf("expected goal Rust, got %q", req.Goal)
	}
	if req.DurationDays != 14 {
		t.Errorf("expected 14 days, got %d", req.DurationDays)
	}
	if req.DailyHours != 1.5 {
		t.Errorf("expected 1.5 daily hours, got %v", req.DailyHours)
	}
	if req.PreferredTime != "evening" {
		t.Errorf("expected evening preference, got %q", req.PreferredTime)
	}
}

func TestParseGoalRequestDefaults(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	req := ParseGoalRequest("studying linear algebra", now)
	if req.Goal != "linear algebra" {
		t.Errorf("expected goal from study phrase, got %q", req.Goal)
	}
	if req.DurationDays != 7 {
		t.Errorf("expected default 7 days, got %d", req.DurationDays)
	}
	if req.DailyHours != 2.0 {
		t.Errorf("expected default 2 daily hours, got %v", req.DailyHours)
	}
	// Default start is tomorrow.
	if req.StartDate != "2026-09-02" {
		t.Errorf("expected tomorrow start, got %q", req.StartDate)
	}
	if req.PreferredTime != "" {
		t.Errorf("expected no time preference, got %q", req.PreferredTime)
	}
}

func TestParseGoalRequestStartDates(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) // Tuesday

	cases := []struct {
		text string
		want string
	}{
		{"learn Go starting 2026-10-01", "2026-10-01"},
		{"learn Go starting 2020-01-01", "2026-09-02"}, // past dates ignored, falls to default
		{"learn Go starting today", "2026-09-01"},
		{"learn Go starting tomorrow", "2026-09-02"},
		{"learn Go starting next week", "2026-09-08"},
		{"learn Go starting next monday", "2026-09-07"},
	}
	for _, tc := range cases {
		if req := ParseGoalRequest(tc.text, now); req.StartDate != tc.want {
			t.Errorf("%q: expected start %s, got %s", tc.text, tc.want, req.StartDate)
		}
	}
}

func TestParseGoalRequestMonths(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	req := ParseGoalRequest("master the piano for 2 months", now)
	if req.Goal != "the piano" {
		t.Errorf("expected goal 'the piano', got %q", req.Goal)
	}
	if req.DurationDays != 60 {
		t.Errorf("expected 60 days, got %d", req.DurationDays)
	}
}
