package model

import (
	"errors"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	d := Draft{Title: " Study ", Date: "2026-09-01"}
	if err := d.Normalize(); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if d.Title != "Study" {
		t.Errorf("expected trimmed title, got %q", d.Title)
	}
	if d.Priority != PriorityMedium || d.Type != TypeTask {
		t.Errorf("expected default priority/type, got %q/%q", d.Priority, d.Type)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	d := Draft{Title: "x", Date: "2026-09-01", Priority: PriorityHigh, Type: TypeEvent}
	if err := d.Normalize(); err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if d.Priority != PriorityHigh || d.Type != TypeEvent {
		t.Errorf("explicit values must survive: %q/%q", d.Priority, d.Type)
	}
}

func TestNormalizeErrors(t *testing.T) {
	cases := []struct {
		name  string
		draft Draft
		want  error
	}{
		{"empty title", Draft{Date: "2026-09-01"}, ErrMissingTitle},
		{"whitespace title", Draft{Title: "\t ", Date: "2026-09-01"}, ErrMissingTitle},
		{"no date", Draft{Title: "x"}, ErrInvalidDate},
		{"slash date", Draft{Title: "x", Date: "2026/09/01"}, ErrInvalidDate},
		{"bad priority", Draft{Title: "x", Date: "2026-09-01", Priority: "asap"}, ErrInvalidPriority},
	}
	for _, tc := range cases {
		if err := tc.draft.Normalize(); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestValidDate(t *testing.T) {
	valid := []string{"2026-09-01", "2000-01-01", "2026-02-28"}
	for _, d := range valid {
		if !ValidDate(d) {
			t.Errorf("expected %q to be valid", d)
		}
	}
	invalid := []string{"", "2026-9-1", "2026-13-01", "2026-02-30", "today"}
	for _, d := range invalid {
		if ValidDate(d) {
			t.Errorf("expected %q to be invalid", d)
		}
	}
}
