// Package store is the single source of truth for task records. Operations
// are synchronous; every mutation persists the whole collection through the
// injected storage backend before returning, so a restart reloads the last
// committed state.
package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/harrisonrobin/goalplan/pkg/ids"
	"github.com/harrisonrobin/goalplan/pkg/model"
	"github.com/harrisonrobin/goalplan/pkg/storage"
)

type TaskStore struct {
	mu      sync.RWMutex
	tasks   []model.Task
	byID    map[string]int
	backend storage.Store
}

// New builds a store backed by the given storage. The previously committed
// collection, if any, is loaded up front.
func New(backend storage.Store) (*TaskStore, error) {
	s := &TaskStore{
		byID:    make(map[string]int),
		backend: backend,
	}
	tasks, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load task collection: %w", err)
	}
	for _, t := range tasks {
		s.byID[t.ID] = len(s.tasks)
		s.tasks = append(s.tasks, t)
	}
	return s, nil
}

// Create assigns a fresh unique id, forces completed=false and appends the
// task. The returned record is the stored one.
func (s *TaskStore) Create(draft model.Draft) (model.Task, error) {
	if err := draft.Normalize(); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.admit(draft)
	return t, s.persist()
}

// CreateMany applies Create to a batch, preserving its order. Each task gets
// a distinct id even when the whole batch lands within the same instant, and
// the collection is persisted once at the end.
func (s *TaskStore) CreateMany(drafts []model.Draft) ([]model.Task, error) {
	for i := range drafts {
		if err := drafts[i].Normalize(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Task, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, s.admit(d))
	}
	return out, s.persist()
}

// admit appends a normalized draft under a fresh id. Caller holds the lock.
func (s *TaskStore) admit(draft model.Draft) model.Task {
	id := ids.NewID()
	for s.hasLocked(id) {
		id = ids.NewID()
	}
	t := model.Task{
		ID:            id,
		Title:         draft.Title,
		Description:   draft.Description,
		Date:          draft.Date,
		StartTime:     draft.StartTime,
		EndTime:       draft.EndTime,
		Priority:      draft.Priority,
		Completed:     false,
		Type:          draft.Type,
		Location:      draft.Location,
		AttendeeCount: draft.AttendeeCount,
	}
	s.byID[t.ID] = len(s.tasks)
	s.tasks = append(s.tasks, t)
	return t
}

// Append inserts records that already carry ids, such as events pulled from a
// calendar provider. Records whose id is already present are skipped; the
// number of newly added tasks is returned.
func (s *TaskStore) Append(tasks []model.Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, t := range tasks {
		if t.ID == "" || s.hasLocked(t.ID) {
			continue
		}
		t.Completed = false
		s.byID[t.ID] = len(s.tasks)
		s.tasks = append(s.tasks, t)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.persist()
}

// ToggleCompletion flips the completed flag for the matching record.
func (s *TaskStore) ToggleCompletion(id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], s.persist()
}

// Patch carries the fields of a partial update; nil fields are untouched.
type Patch struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	Date          *string `json:"date,omitempty"`
	StartTime     *string `json:"startTime,omitempty"`
	EndTime       *string `json:"endTime,omitempty"`
	Priority      *string `json:"priority,omitempty"`
	Completed     *bool   `json:"completed,omitempty"`
	Type          *string `json:"type,omitempty"`
	Location      *string `json:"location,omitempty"`
	AttendeeCount *int    `json:"attendeeCount,omitempty"`
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Date == nil &&
		p.StartTime == nil && p.EndTime == nil && p.Priority == nil &&
		p.Completed == nil && p.Type == nil && p.Location == nil &&
		p.AttendeeCount == nil
}

// Update merges the supplied fields into the existing record.
func (s *TaskStore) Update(id string, patch Patch) (model.Task, error) {
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return model.Task{}, model.ErrMissingTitle
		}
		patch.Title = &trimmed
	}
	if patch.Date != nil && !model.ValidDate(*patch.Date) {
		return model.Task{}, model.ErrInvalidDate
	}
	if patch.Priority != nil {
		switch *patch.Priority {
		case model.PriorityHigh, model.PriorityMedium, model.PriorityLow:
		default:
			return model.Task{}, model.ErrInvalidPriority
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}

	t := &s.tasks[i]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Date != nil {
		t.Date = *patch.Date
	}
	if patch.StartTime != nil {
		t.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		t.EndTime = *patch.EndTime
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.Type != nil {
		t.Type = *patch.Type
	}
	if patch.Location != nil {
		t.Location = *patch.Location
	}
	if patch.AttendeeCount != nil {
		t.AttendeeCount = *patch.AttendeeCount
	}
	return *t, s.persist()
}

// Delete removes the record. Deleting an absent id is a no-op, not an error.
func (s *TaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	delete(s.byID, id)
	for j := i; j < len(s.tasks); j++ {
		s.byID[s.tasks[j].ID] = j
	}
	return s.persist()
}

func (s *TaskStore) Get(id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	return s.tasks[i], nil
}

func (s *TaskStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasLocked(id)
}

func (s *TaskStore) hasLocked(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// All returns every task in insertion order.
func (s *TaskStore) All() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// QueryByDate returns tasks whose date matches exactly, in insertion order.
func (s *TaskStore) QueryByDate(date string) []model.Task {
	return s.QueryByDateRange(date, date)
}

// QueryByDateRange returns tasks with start <= date <= end. The comparison is
// lexical, which is equivalent to chronological for ISO dates.
func (s *TaskStore) QueryByDateRange(start, end string) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.Date >= start && t.Date <= end {
			out = append(out, t)
		}
	}
	return out
}

// persist writes the whole collection through the backend. Caller holds the
// lock. On failure the in-memory state keeps the mutation and the error is
// surfaced, so the caller can distinguish committed from uncommitted work.
func (s *TaskStore) persist() error {
	if err := s.backend.Save(s.tasks); err != nil {
		return fmt.Errorf("failed to persist task collection: %w", err)
	}
	return nil
}
