package planner

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	fenceRE         = regexp.MustCompile("(?s)```json\\s*(\\{.*?\\})\\s*```")
	trailingCommaRE = regexp.MustCompile(`,\s*([}\]])`)
	lineCommentRE   = regexp.MustCompile(`(?m)^\s*//.*$`)
)

// ExtractJSON pulls a JSON object out of oracle output: a ```json fenced
// block when present, otherwise the outermost brace pair. Full-line //
// comments and trailing commas, which models emit routinely, are stripped
// before the result is validated.
func ExtractJSON(text string) (string, bool) {
	var candidate string
	if m := fenceRE.FindStringSubmatch(text); m != nil {
		candidate = m[1]
	} else {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start == -1 || end == -1 || end <= start {
			return "", false
		}
		candidate = text[start : end+1]
	}

	candidate = lineCommentRE.ReplaceAllString(candidate, "")
	candidate = trailingCommaRE.ReplaceAllString(candidate, "$1")
	if !json.Valid([]byte(candidate)) {
		return "", false
	}
	return candidate, true
}
