package planner

import (
	"regexp"
	"strconv"
	"strings"
)

var clockRE = regexp.MustCompile(`(?i)(\d{1,2})(?:[:.](\d{1,2}))?\s*(am|pm)?`)

// ParsePreferredTime turns a free-text study-time preference into a wall
// clock hour and minute. This is a heuristic with documented fallbacks, not a
// contract: explicit clock times win, then the period keywords (morning 9:00,
// afternoon 14:00, evening/night 19:00), and anything else lands on 09:00.
func ParsePreferredTime(s string) (hour, minute int) {
	hour, minute = 9, 0
	if s == "" {
		return hour, minute
	}

	if m := clockRE.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[1])
		min := 0
		if m[2] != "" {
			min, _ = strconv.Atoi(m[2])
		}
		switch strings.ToLower(m[3]) {
		case "pm":
			if h >= 1 && h < 12 {
				h += 12
			}
		case "am":
			if h == 12 {
				h = 0
			}
		}
		if h >= 0 && h <= 23 && min >= 0 && min <= 59 {
			return h, min
		}
		return 9, 0
	}

	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "morning"):
		return 9, 0
	case strings.Contains(lower, "afternoon"):
		return 14, 0
	case strings.Contains(lower, "evening"), strings.Contains(lower, "night"):
		return 19, 0
	}
	return hour, minute
}
