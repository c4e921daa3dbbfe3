package sync

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/goalplan/pkg/model"
)

// taskIDProperty is the private extended property carrying the local task id
// on pushed events.
const taskIDProperty = "goalplan_id"

const (
	defaultStartTime = "09:00"
	defaultDuration  = time.Hour
)

// Priority maps onto three fixed Google Calendar color ids; the pull side
// reverses the mapping and anything unrecognized lands on medium.
var priorityColor = map[string]string{
	model.PriorityHigh:   "11", // tomato
	model.PriorityMedium: "5",  // banana
	model.PriorityLow:    "2",  // sage
}

func colorForPriority(priority string) string {
	if id, ok := priorityColor[priority]; ok {
		return id
	}
	return priorityColor[model.PriorityMedium]
}

func priorityForColor(colorID string) string {
	for p, id := range priorityColor {
		if id == colorID {
			return p
		}
	}
	return model.PriorityMedium
}

// TaskToEvent builds the provider representation of a local task. Wall-clock
// times are interpreted in loc.
func TaskToEvent(t model.Task, loc *time.Location) (*calendar.Event, error) {
	start, err := combine(t.Date, t.StartTime, loc)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", t.ID, err)
	}

	var end time.Time
	if t.EndTime != "" {
		end, err = combine(t.Date, t.EndTime, loc)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", t.ID, err)
		}
	}
	if !end.After(start) {
		end = start.Add(defaultDuration)
	}

	ev := &calendar.Event{
		Summary:     t.Title,
		Description: t.Description,
		ColorId:     colorForPriority(t.Priority),
		Location:    t.Location,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				taskIDProperty: t.ID,
			},
		},
	}
	return ev, nil
}

// EventToTask builds the local representation of a provider event. The
// provider-assigned event id becomes the task id, which is what pull
// deduplication keys on.
func EventToTask(ev *calendar.Event) model.Task {
	t := model.Task{
		ID:          ev.Id,
		Title:       ev.Summary,
		Description: ev.Description,
		Priority:    priorityForColor(ev.ColorId),
		Completed:   false,
		Type:        model.TypeEvent,
		Location:    ev.Location,
	}
	if ev.Attendees != nil {
		t.AttendeeCount = len(ev.Attendees)
	}

	if ev.Start != nil {
		switch {
		case ev.Start.DateTime != "":
			if ts, err := time.Parse(time.RFC3339, ev.Start.DateTime); err == nil {
				t.Date = ts.Format("2006-01-02")
				t.StartTime = ts.Format("15:04")
			}
		case ev.Start.Date != "":
			// All-day event.
			t.Date = ev.Start.Date
		}
	}
	if ev.End != nil && ev.End.DateTime != "" {
		if ts, err := time.Parse(time.RFC3339, ev.End.DateTime); err == nil {
			t.EndTime = ts.Format("15:04")
		}
	}
	return t
}

// localTaskID extracts the pushing task's id from an event's extended
// properties, or "" when the event did not originate here.
func localTaskID(ev *calendar.Event) string {
	if ev.ExtendedProperties == nil || ev.ExtendedProperties.Private == nil {
		return ""
	}
	return ev.ExtendedProperties.Private[taskIDProperty]
}

// combine joins an ISO date with a HH:MM wall-clock time in loc. An empty
// time falls back to the default start of day.
func combine(date, clock string, loc *time.Location) (time.Time, error) {
	if clock == "" {
		clock = defaultStartTime
	}
	ts, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time %q %q: %w", date, clock, err)
	}
	return ts, nil
}
