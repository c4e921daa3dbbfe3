// Package sync bridges the local task store and an external calendar
// provider. Push creates provider events from local tasks; pull imports
// provider events as local tasks, deduplicated by provider-assigned id.
// Neither direction propagates deletes.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/goalplan/pkg/index"
	"github.com/harrisonrobin/goalplan/pkg/model"
)

// Provider is the calendar API surface the adapter consumes. The production
// implementation is pkg/google; tests fake it.
type Provider interface {
	ListEvents(ctx context.Context, calendarID string, from, to time.Time) ([]*calendar.Event, error)
	InsertEvent(ctx context.Context, calendarID string, ev *calendar.Event) (*calendar.Event, error)
	RefreshCredentials(ctx context.Context) error
}

// LocalStore is the slice of the task store the adapter needs.
type LocalStore interface {
	Has(id string) bool
	Append(tasks []model.Task) (int, error)
}

type Adapter struct {
	provider Provider
	store    LocalStore
	idx      *index.EventIndex
	loc      *time.Location
}

// New builds an adapter. idx may be nil, in which case pushed-event tracking
// degrades to the extended-property check alone.
func New(provider Provider, store LocalStore, idx *index.EventIndex, loc *time.Location) *Adapter {
	if loc == nil {
		loc = time.Local
	}
	return &Adapter{provider: provider, store: store, idx: idx, loc: loc}
}

// PushResult reports a push outcome. Partial failure is reported, not rolled
// back: events already created stay on the provider.
type PushResult struct {
	Created int
	Failed  int
	Links   []string
	Errors  []error
}

// FirstError returns the leading per-event failure, classified, or nil.
func (r PushResult) FirstError() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

// Push creates one provider event per task, one at a time. Each event gets at
// most one refresh-and-retry on an authentication failure before its error is
// recorded and the batch moves on.
func (a *Adapter) Push(ctx context.Context, tasks []model.Task, calendarID string) PushResult {
	var res PushResult
	for _, t := range tasks {
		ev, err := TaskToEvent(t, a.loc)
		if err != nil {
			res.Failed++
			res.Errors = append(res.Errors, err)
			continue
		}

		var created *calendar.Event
		err = a.withAuthRetry(ctx, func() error {
			var ierr error
			created, ierr = a.provider.InsertEvent(ctx, calendarID, ev)
			return ierr
		})
		if err != nil {
			log.Printf("push: error creating event for task %s: %v", t.ID, err)
			res.Failed++
			res.Errors = append(res.Errors, err)
			continue
		}

		res.Created++
		if created.HtmlLink != "" {
			res.Links = append(res.Links, created.HtmlLink)
		}
		if a.idx != nil {
			a.idx.Set(t.ID, created.Id)
		}
	}

	if a.idx != nil {
		if err := a.idx.Save(); err != nil {
			log.Printf("push: warning: failed to save event index: %v", err)
		}
	}
	return res
}

// DefaultWindow is the pull range used when the caller does not supply one.
func DefaultWindow(now time.Time, days int) (time.Time, time.Time) {
	if days <= 0 {
		days = 30
	}
	return now, now.AddDate(0, 0, days)
}

// Pull imports provider events in [from, to) as local tasks and returns the
// number added. Events already known locally are skipped, so pulling twice
// against an unchanged window adds nothing the second time.
func (a *Adapter) Pull(ctx context.Context, calendarID string, from, to time.Time) (int, error) {
	var events []*calendar.Event
	err := a.withAuthRetry(ctx, func() error {
		var lerr error
		events, lerr = a.provider.ListEvents(ctx, calendarID, from, to)
		return lerr
	})
	if err != nil {
		return 0, err
	}

	var incoming []model.Task
	for _, ev := range events {
		if ev.Id == "" || a.store.Has(ev.Id) {
			continue
		}
		// Events this instance pushed map back to an existing local task.
		if taskID := localTaskID(ev); taskID != "" && a.store.Has(taskID) {
			continue
		}
		if a.idx != nil && a.idx.HasEvent(ev.Id) {
			continue
		}
		incoming = append(incoming, EventToTask(ev))
	}

	added, err := a.store.Append(incoming)
	if err != nil {
		return added, err
	}
	return added, nil
}

// withAuthRetry runs fn, and on an authentication failure makes exactly one
// credential refresh then one retry. A second failure is terminal; retrying
// further would loop on a dead credential.
func (a *Adapter) withAuthRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}

	classified := Classify(err)
	if !errors.Is(classified, ErrNotAuthenticated) {
		return classified
	}

	if rerr := a.provider.RefreshCredentials(ctx); rerr != nil {
		return fmt.Errorf("%w: credential refresh failed: %v", ErrNotAuthenticated, rerr)
	}
	if err := fn(); err != nil {
		return Classify(err)
	}
	return nil
}
