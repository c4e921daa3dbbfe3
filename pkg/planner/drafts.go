package planner

import (
	"fmt"
	"time"

	"github.com/harrisonrobin/goalplan/pkg/model"
)

// DraftsFromTasks splits each plan task's ISO timestamps into the store's
// date and wall-clock fields.
func DraftsFromTasks(tasks []PlanTask) ([]model.Draft, error) {
	drafts := make([]model.Draft, 0, len(tasks))
	for i, pt := range tasks {
		start, err := parsePlanTime(pt.StartTime)
		if err != nil {
			return nil, fmt.Errorf("task %d: invalid startTime %q", i, pt.StartTime)
		}
		draft := model.Draft{
			Title:       pt.Summary,
			Description: pt.Description,
			Date:        start.Format("2006-01-02"),
			StartTime:   start.Format("15:04"),
			Priority:    model.PriorityMedium,
			Type:        model.TypeTask,
		}
		if pt.EndTime != "" {
			if end, err := parsePlanTime(pt.EndTime); err == nil {
				draft.EndTime = end.Format("15:04")
			}
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// parsePlanTime accepts RFC 3339 timestamps and falls back to a naive local
// timestamp, since generated plans may omit the zone.
func parsePlanTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
}
