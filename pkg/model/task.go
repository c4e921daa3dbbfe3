package model

import (
	"errors"
	"strings"
	"time"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	TypeTask  = "task"
	TypeEvent = "event"
)

var (
	ErrNotFound        = errors.New("task not found")
	ErrMissingTitle    = errors.New("title is required")
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidPriority = errors.New("priority must be high, medium or low")
)

// Task is the unit of schedulable data in the local store. Dates are ISO
// YYYY-MM-DD strings and times are local wall-clock HH:MM strings. ISO dates
// sort lexically, which the store's range queries rely on.
type Task struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty"`
	Priority      string `json:"priority"`
	Completed     bool   `json:"completed"`
	Type          string `json:"type"`
	Location      string `json:"location,omitempty"`
	AttendeeCount int    `json:"attendeeCount,omitempty"`
}

// Draft is a task as supplied by a caller, before the store assigns an id and
// completion state. Optional fields left empty are defaulted by Normalize.
type Draft struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty"`
	Priority      string `json:"priority,omitempty"`
	Type          string `json:"type,omitempty"`
	Location      string `json:"location,omitempty"`
	AttendeeCount int    `json:"attendeeCount,omitempty"`
}

// Normalize validates required fields and fills defaults. It is called by the
// store before a draft is admitted, so validation failures never mutate state.
func (d *Draft) Normalize() error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return ErrMissingTitle
	}
	if !ValidDate(d.Date) {
		return ErrInvalidDate
	}
	switch d.Priority {
	case "":
		d.Priority = PriorityMedium
	case PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return ErrInvalidPriority
	}
	if d.Type == "" {
		d.Type = TypeTask
	}
	return nil
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD calendar date.
// Zero padding is required; range queries compare dates lexically.
func ValidDate(s string) bool {
	t, err := time.Parse("2006-01-02", s)
	return err == nil && t.Format("2006-01-02") == s
}
