package google

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harrisonrobin/goalplan/pkg/auth"
)

// NewClient creates a calendar client from the cached OAuth credential.
func NewClient(ctx context.Context) (*CalendarClient, error) {
	srv, err := auth.GetCalendarService(ctx)
	if err != nil {
		return nil, err
	}
	return &CalendarClient{srv: srv}, nil
}

// ResolveCalendar maps a calendar name to its id. "primary" and anything
// already matching a calendar id pass through unchanged.
func (c *CalendarClient) ResolveCalendar(ctx context.Context, nameOrID string) (string, error) {
	if nameOrID == "" || nameOrID == "primary" {
		return "primary", nil
	}

	items, err := c.ListCalendars(ctx)
	if err != nil {
		return "", err
	}
	for _, item := range items {
		if item.Id == nameOrID {
			return item.Id, nil
		}
	}
	for _, item := range items {
		if item.Summary == nameOrID {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar '%s' not found", nameOrID)
}

// RefreshCredentials swaps in a service backed by a freshly refreshed token.
// The sync adapter calls this at most once per failing provider call.
func (c *CalendarClient) RefreshCredentials(ctx context.Context) error {
	if _, err := auth.RefreshToken(ctx); err != nil {
		return err
	}

	client, err := auth.GetClient(ctx)
	if err != nil {
		return err
	}
	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return fmt.Errorf("unable to rebuild Calendar service: %w", err)
	}
	c.srv = srv
	return nil
}
