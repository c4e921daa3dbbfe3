package sync

import (
	"strings"
	"testing"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/goalplan/pkg/model"
)

func TestTaskToEvent(t *testing.T) {
	task := model.Task{
		ID:          "t-1",
		Title:       "Study graphs",
		Description: "BFS and DFS",
		Date:        "2026-09-01",
		StartTime:   "14:00",
		EndTime:     "15:30",
		Priority:    model.PriorityHigh,
		Location:    "library",
	}

	ev, err := TaskToEvent(task, time.UTC)
	if err != nil {
		t.Fatalf("TaskToEvent failed: %v", err)
	}

	if ev.Summary != "Study graphs" || ev.Description != "BFS and DFS" || ev.Location != "library" {
		t.Errorf("unexpected event fields: %+v", ev)
	}
	if ev.ColorId != "11" {
		t.Errorf("expected high priority color 11, got %q", ev.ColorId)
	}
	if !strings.HasPrefix(ev.Start.DateTime, "2026-09-01T14:00:00") {
		t.Errorf("unexpected start: %q", ev.Start.DateTime)
	}
	if !strings.HasPrefix(ev.End.DateTime, "2026-09-01T15:30:00") {
		t.Errorf("unexpected end: %q", ev.End.DateTime)
	}
	if ev.ExtendedProperties == nil || ev.ExtendedProperties.Private[taskIDProperty] != "t-1" {
		t.Errorf("expected private property %s=t-1, got %+v", taskIDProperty, ev.ExtendedProperties)
	}
}

func TestTaskToEventDefaults(t *testing.T) {
	// No times at all: default start, one hour duration.
	ev, err := TaskToEvent(model.Task{ID: "t-2", Title: "x", Date: "2026-09-01"}, time.UTC)
	if err != nil {
		t.Fatalf("TaskToEvent failed: %v", err)
	}
	if !strings.HasPrefix(ev.Start.DateTime, "2026-09-01T09:00:00") {
		t.Errorf("expected default 09:00 start, got %q", ev.Start.DateTime)
	}
	if !strings.HasPrefix(ev.End.DateTime, "2026-09-01T10:00:00") {
		t.Errorf("expected one-hour default duration, got %q", ev.End.DateTime)
	}

	// End before start falls back to one hour after start.
	ev, err = TaskToEvent(model.Task{ID: "t-3", Title: "x", Date: "2026-09-01", StartTime: "14:00", EndTime: "13:00"}, time.UTC)
	if err != nil {
		t.Fatalf("TaskToEvent failed: %v", err)
	}
	if !strings.HasPrefix(ev.End.DateTime, "2026-09-01T15:00:00") {
		t.Errorf("expected end forced to start+1h, got %q", ev.End.DateTime)
	}
}

func TestTaskToEventRejectsBadDate(t *testing.T) {
	if _, err := TaskToEvent(model.Task{ID: "t-4", Title: "x", Date: "not-a-date"}, time.UTC); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestEventToTask(t *testing.T) {
	ev := &calendar.Event{
		Id:          "ev-9",
		Summary:     "Standup",
		Description: "daily sync",
		ColorId:     "2",
		Location:    "room 4",
		Start:       &calendar.EventDateTime{DateTime: "2026-09-01T10:15:00Z"},
		End:         &calendar.EventDateTime{DateTime: "2026-09-01T10:30:00Z"},
		Attendees: []*calendar.EventAttendee{
			{Email: "a@example.com"}, {Email: "b@example.com"},
		},
	}

	task := EventToTask(ev)
	if task.ID != "ev-9" {
		t.Errorf("task id must be the provider event id, got %q", task.ID)
	}
	if task.Date != "2026-09-01" || task.StartTime != "10:15" || task.EndTime != "10:30" {
		t.Errorf("unexpected schedule fields: %+v", task)
	}
	if task.Priority != model.PriorityLow {
		t.Errorf("color 2 must map to low, got %q", task.Priority)
	}
	if task.Type != model.TypeEvent {
		t.Errorf("pulled records are events, got %q", task.Type)
	}
	if task.AttendeeCount != 2 {
		t.Errorf("expected 2 attendees, got %d", task.AttendeeCount)
	}
	if task.Completed {
		t.Error("pulled tasks must start incomplete")
	}
}

func TestEventToTaskAllDay(t *testing.T) {
	ev := &calendar.Event{
		Id:      "ev-10",
		Summary: "Conference",
		Start:   &calendar.EventDateTime{Date: "2026-09-05"},
		End:     &calendar.EventDateTime{Date: "2026-09-06"},
	}

	task := EventToTask(ev)
	if task.Date != "2026-09-05" {
		t.Errorf("expected all-day date, got %q", task.Date)
	}
	if task.StartTime != "" || task.EndTime != "" {
		t.Errorf("all-day events carry no wall-clock times: %+v", task)
	}
}

func TestPriorityColorRoundTrip(t *testing.T) {
	for _, p := range []string{model.PriorityHigh, model.PriorityMedium, model.PriorityLow} {
		if got := priorityForColor(colorForPriority(p)); got != p {
			t.Errorf("priority %q round-tripped to %q", p, got)
		}
	}
	// Unknowns land on medium in both directions.
	if colorForPriority("urgent") != priorityColor[model.PriorityMedium] {
		t.Error("unknown priority must use the medium color")
	}
	if priorityForColor("7") != model.PriorityMedium {
		t.Error("unknown color must map to medium")
	}
}
