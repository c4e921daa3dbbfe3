package planner

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	durationRE = regexp.MustCompile(`(?i)(\d+)\s*(day|week|month)s?`)
	hoursRE    = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*hours?\s*(?:per day|a day|daily|each day)?`)
	isoDateRE  = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	goalRE     = regexp.MustCompile(`(?i)(?:learn(?:ing)?|study(?:ing)?|master(?:ing)?)\s+(.+)`)
	periodRE   = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night)\b|\b\d{1,2}(?::\d{2})?\s*(?:am|pm)\b`)
)

// cutMarkers end the goal phrase when duration or scheduling details follow
// it in the same sentence.
var cutMarkers = []string{" in ", " for ", " over ", " within ", " starting ", " from ", ",", "."}

// ParseGoalRequest extracts plan parameters from free-form chat text. It is a
// best-effort slot-filling heuristic with documented fallback defaults:
// duration 7 days, start date tomorrow, 2 daily hours. Callers should treat
// the result as a pre-filled form for the user to confirm, not as a parse of
// record.
func ParseGoalRequest(text string, now time.Time) PlanRequest {
	req := PlanRequest{
		DurationDays: 7,
		DailyHours:   2.0,
		StartDate:    now.AddDate(0, 0, 1).Format("2006-01-02"),
	}

	if m := durationRE.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch strings.ToLower(m[2]) {
		case "day":
			req.DurationDays = n
		case "week":
			req.DurationDays = n * 7
		case "month":
			req.DurationDays = n * 30
		}
	}

	if m := hoursRE.FindStringSubmatch(text); m != nil {
		if h, err := strconv.ParseFloat(m[1], 64); err == nil && h > 0 {
			req.DailyHours = h
		}
	}

	req.StartDate = parseStartDate(text, now, req.StartDate)

	if m := periodRE.FindString(text); m != "" {
		req.PreferredTime = m
	}

	req.Goal = parseGoal(text)
	return req
}

func parseStartDate(text string, now time.Time, fallback string) string {
	if m := isoDateRE.FindStringSubmatch(text); m != nil {
		if d, err := time.Parse("2006-01-02", m[1]); err == nil && !d.Before(truncateDay(now)) {
			return m[1]
		}
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "today"):
		return now.Format("2006-01-02")
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format("2006-01-02")
	case strings.Contains(lower, "next week"):
		return now.AddDate(0, 0, 7).Format("2006-01-02")
	case strings.Contains(lower, "next monday"):
		return nextMonday(truncateDay(now)).Format("2006-01-02")
	case strings.Contains(lower, "next month"):
		return now.AddDate(0, 1, 0).Format("2006-01-02")
	}
	return fallback
}

func parseGoal(text string) string {
	goal := strings.TrimSpace(text)
	if m := goalRE.FindStringSubmatch(text); m != nil {
		goal = strings.TrimSpace(m[1])
	}
	cut := len(goal)
	for _, marker := range cutMarkers {
		if i := strings.Index(strings.ToLower(goal), marker); i > 0 && i < cut {
			cut = i
		}
	}
	return strings.TrimSpace(goal[:cut])
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
