package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PlanTask is one structured entry of a generated plan. StartTime and EndTime
// are ISO datetime strings as the oracle contract defines them.
type PlanTask struct {
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// Plan is a titled group of generated tasks, plus a human-readable rendering.
type Plan struct {
	Skill         string
	StartDate     string
	HumanReadable string
	Tasks         []PlanTask
}

// PlanRequest carries everything the oracle needs to generate or refine a
// plan.
type PlanRequest struct {
	Goal          string
	DurationDays  int
	StartDate     string // YYYY-MM-DD
	LearningStyle string
	PreferredTime string // e.g. "9 AM", "evening", "Anytime"
	DailyHours    float64

	ChatHistory           []Content
	RefinementInstruction string
	ExistingTasks         []PlanTask
}

// planDoc is the oracle's JSON plan shape.
type planDoc struct {
	Skill         string     `json:"skill"`
	DurationDays  int        `json:"duration_days"`
	StartDate     string     `json:"start_date"`
	PreferredTime string     `json:"preferred_time"`
	DailyHours    float64    `json:"daily_hours"`
	LearningPlan  []dayEntry `json:"learningPlan"`
}

type dayEntry struct {
	DayNumber          int     `json:"dayNumber"`
	Date               string  `json:"date"`
	Objective          string  `json:"objective"`
	ProjectsExercises  string  `json:"projects_exercises"`
	EstimatedTimeHours float64 `json:"estimated_time_hours"`
}

func (c *Client) planSystemInstruction() string {
	lines := []string{
		"You are an AI specialized in generating structured learning plans.",
		"When asked to generate or refine a learning plan, use the following JSON format. Ensure all details (skill, duration_days, start_date, preferred_time, daily_hours) are included at the top level of the JSON, and the learning plan steps are in the 'learningPlan' array. Wrap the JSON in ```json...``` markdown block.",
		"The 'start_date' for the overall plan and the 'date' fields within 'learningPlan' entries should be in YYYY-MM-DD format.",
		"Example Plan JSON Structure:",
		"```json",
		`{"skill": "Example Skill", "duration_days": 3, "start_date": "YYYY-MM-DD", "preferred_time": "morning", "daily_hours": 1.5, "learningPlan": [{"dayNumber": 1, "date": "YYYY-MM-DD", "objective": "Obj 1", "projects_exercises": "Ex 1", "estimated_time_hours": 1.5}]}`,
		"```",
		"If you cannot generate a plan in this format, state that you can't in plain text.",
		"Do not include any other text or comments outside the JSON block when providing a plan.",
		fmt.Sprintf("The current date is %s. Use this as a reference. If the requested start_date is in the past, please adjust it to a sensible future date (e.g., next Monday).", c.now().Format("2006-01-02")),
	}
	return strings.Join(lines, " ")
}

func (c *Client) buildPlanPrompt(req PlanRequest) string {
	var b strings.Builder
	b.WriteString(c.planSystemInstruction())

	if req.RefinementInstruction != "" && len(req.ExistingTasks) > 0 {
		b.WriteString(fmt.Sprintf("\nRefine the existing plan for '%s'.\n", req.Goal))
		b.WriteString("Current plan tasks (JSON to be refined):\n")
		if existing, err := json.Marshal(req.ExistingTasks); err == nil {
			b.Write(existing)
		}
		b.WriteString(fmt.Sprintf("\nRefinement instruction: '%s'\n", req.RefinementInstruction))
		b.WriteString(fmt.Sprintf("The plan should still be for %d days, starting around %s (adjust if the refinement implies changes), with preferred time %s and %.1f daily hours.",
			req.DurationDays, req.StartDate, req.PreferredTime, req.DailyHours))
		return b.String()
	}

	b.WriteString("\nGenerate a learning plan with the following details:\n")
	b.WriteString(fmt.Sprintf("- Skill: %s\n", req.Goal))
	b.WriteString(fmt.Sprintf("- Duration: %d days\n", req.DurationDays))
	b.WriteString(fmt.Sprintf("- Start Date: %s\n", req.StartDate))
	if req.LearningStyle != "" {
		b.WriteString(fmt.Sprintf("- Learning Style: %s\n", req.LearningStyle))
	}
	if req.PreferredTime != "" {
		b.WriteString(fmt.Sprintf("- Preferred Time: %s\n", req.PreferredTime))
	}
	if req.DailyHours > 0 {
		b.WriteString(fmt.Sprintf("- Daily Hours: %.1f\n", req.DailyHours))
	}
	return b.String()
}

// GeneratePlan asks the oracle for a plan and post-processes it into
// structured tasks: JSON extraction, past-date correction and per-day date
// and time derivation.
func (c *Client) GeneratePlan(ctx context.Context, req PlanRequest) (*Plan, error) {
	contents := append([]Content{}, req.ChatHistory...)
	contents = append(contents, Content{Role: "user", Parts: []Part{{Text: c.buildPlanPrompt(req)}}})

	text, err := c.generate(ctx, contents)
	if err != nil {
		return nil, fmt.Errorf("error communicating with AI: %w", err)
	}

	raw, ok := ExtractJSON(text)
	if !ok {
		return nil, fmt.Errorf("AI did not return a valid plan in the expected JSON format: %s", truncate(text, 200))
	}

	var doc planDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("AI plan JSON did not parse: %w", err)
	}
	if len(doc.LearningPlan) == 0 {
		return nil, fmt.Errorf("AI plan contained no learningPlan entries")
	}

	return structurePlan(doc, req, c.now()), nil
}

// structurePlan turns the oracle's plan document into dated, timed tasks.
// Fields the oracle omitted fall back to the request; a start date in the
// past is corrected to next Monday and every day's date is re-derived from
// the corrected start.
func structurePlan(doc planDoc, req PlanRequest, now time.Time) *Plan {
	if doc.Skill == "" {
		doc.Skill = req.Goal
	}
	if doc.PreferredTime == "" {
		doc.PreferredTime = req.PreferredTime
	}
	if doc.DailyHours <= 0 {
		doc.DailyHours = req.DailyHours
	}
	if doc.DailyHours <= 0 {
		doc.DailyHours = 2.0
	}
	if doc.StartDate == "" {
		doc.StartDate = req.StartDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start, err := time.ParseInLocation("2006-01-02", doc.StartDate, now.Location())
	if err != nil || start.Before(today) {
		start = nextMonday(today)
	}

	hour, minute := ParsePreferredTime(doc.PreferredTime)

	plan := &Plan{
		Skill:     doc.Skill,
		StartDate: start.Format("2006-01-02"),
	}
	lines := []string{
		fmt.Sprintf("Learning Plan for: %s", doc.Skill),
		fmt.Sprintf("Starting: %s", plan.StartDate),
		"",
	}

	for i, day := range doc.LearningPlan {
		dayNum := day.DayNumber
		if dayNum == 0 {
			dayNum = i + 1
		}
		date := start.AddDate(0, 0, i)

		objective := day.Objective
		if objective == "" {
			objective = "No objective specified."
		}
		hours := day.EstimatedTimeHours
		if hours <= 0 {
			hours = doc.DailyHours
		}

		startDT := time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location())
		endDT := startDT.Add(time.Duration(hours * float64(time.Hour)))

		plan.Tasks = append(plan.Tasks, PlanTask{
			Summary:     fmt.Sprintf("Day %d: %s", dayNum, objective),
			Description: day.ProjectsExercises,
			StartTime:   startDT.Format(time.RFC3339),
			EndTime:     endDT.Format(time.RFC3339),
		})

		lines = append(lines, fmt.Sprintf("Day %d (%s): %s", dayNum, date.Format("2006-01-02"), objective))
		if day.ProjectsExercises != "" {
			lines = append(lines, fmt.Sprintf("  - Exercises: %s", day.ProjectsExercises))
		}
	}

	plan.HumanReadable = strings.Join(lines, "\n")
	return plan
}

func nextMonday(today time.Time) time.Time {
	days := (8 - int(today.Weekday())) % 7
	if days == 0 {
		days = 7
	}
	return today.AddDate(0, 0, days)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
