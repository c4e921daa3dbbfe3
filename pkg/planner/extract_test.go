package planner

import "testing"

func TestExtractJSONFencedBlock(t *testing.T) {
	text := "Here is your plan:\n```json\n{\"skill\": \"Go\", \"duration_days\": 3}\n```\nEnjoy!"

	got, ok := ExtractJSON(text)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"skill": "Go", "duration_days": 3}` {
		t.Errorf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONBareBraces(t *testing.T) {
	text := `Sure! {"skill": "Rust"} hope that helps`

	got, ok := ExtractJSON(text)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"skill": "Rust"}` {
		t.Errorf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONStripsTrailingCommas(t *testing.T) {
	text := "```json\n{\"skill\": \"Go\", \"learningPlan\": [{\"dayNumber\": 1,},],}\n```"

	got, ok := ExtractJSON(text)
	if !ok {
		t.Fatal("expected extraction to succeed despite trailing commas")
	}
	if got != `{"skill": "Go", "learningPlan": [{"dayNumber": 1}]}` {
		t.Errorf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONStripsLineComments(t *testing.T) {
	text := "```json\n{\n// the plan\n\"skill\": \"Go\"\n}\n```"

	got, ok := ExtractJSON(text)
	if !ok {
		t.Fatal("expected extraction to succeed despite a comment line")
	}
	if got != "{\n\n\"skill\": \"Go\"\n}" {
		t.Errorf("unexpected extraction: %q", got)
	}
}

func TestExtractJSONFailures(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no json at all", "I cannot generate a plan for that."},
		{"unbalanced braces", "{\"skill\": "},
		{"invalid payload", "{not json}"},
	}
	for _, tc := range cases {
		if got, ok := ExtractJSON(tc.text); ok {
			t.Errorf("%s: expected failure, extracted %q", tc.name, got)
		}
	}
}
