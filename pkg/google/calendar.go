package google

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

// CalendarClient is a thin Google Calendar API client. Sync semantics live in
// pkg/sync; this wrapper only owns the wire calls.
type CalendarClient struct {
	srv *calendar.Service
}

// NewCalendarClient wraps an already-authenticated service.
func NewCalendarClient(srv *calendar.Service) *CalendarClient {
	return &CalendarClient{srv: srv}
}

// ListCalendars returns the id and display name of every calendar visible to
// the account.
func (c *CalendarClient) ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	list, err := c.srv.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	return list.Items, nil
}

// ListEvents fetches events in [from, to), recurring events expanded to
// single occurrences, ordered by start time.
func (c *CalendarClient) ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]*calendar.Event, error) {
	events, err := c.srv.Events.List(calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return events.Items, nil
}

// InsertEvent creates one event and returns the provider's stored copy.
func (c *CalendarClient) InsertEvent(ctx context.Context, calendarID string, ev *calendar.Event) (*calendar.Event, error) {
	return c.srv.Events.Insert(calendarID, ev).Context(ctx).Do()
}
