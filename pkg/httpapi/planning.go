package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/harrisonrobin/goalplan/pkg/model"
	"github.com/harrisonrobin/goalplan/pkg/planner"
	gsync "github.com/harrisonrobin/goalplan/pkg/sync"
)

type chatMessageRequest struct {
	UserMessage string            `json:"userMessage"`
	ChatHistory []planner.Content `json:"chatHistory"`
}

func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	if s.planner == nil {
		writeError(w, http.StatusServiceUnavailable, "planner service is not configured")
		return
	}

	var req chatMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserMessage == "" {
		writeError(w, http.StatusBadRequest, "userMessage is required")
		return
	}

	reply, err := s.planner.Chat(r.Context(), req.UserMessage, req.ChatHistory)
	if err != nil {
		s.logger.Error("chat failed", map[string]any{"err": err.Error()})
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"aiResponse": reply})
}

type generatePlanRequest struct {
	Goal          string  `json:"goal"`
	DurationDays  int     `json:"durationDays"`
	StartDate     string  `json:"startDate"`
	LearningStyle string  `json:"learningStyle,omitempty"`
	PreferredTime string  `json:"preferredTime,omitempty"`
	DailyHours    float64 `json:"dailyHours,omitempty"`

	ChatHistoryForContext          []planner.Content  `json:"chatHistoryForContext,omitempty"`
	RefinementInstruction          string             `json:"refinementInstruction,omitempty"`
	ExistingPlanTasksForRefinement []planner.PlanTask `json:"existingPlanTasksForRefinement,omitempty"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	if s.planner == nil {
		writeError(w, http.StatusServiceUnavailable, "planner service is not configured")
		return
	}

	var req generatePlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Goal == "" {
		writeError(w, http.StatusBadRequest, "goal is required")
		return
	}
	if req.DurationDays <= 0 {
		writeError(w, http.StatusBadRequest, "durationDays must be positive")
		return
	}
	if req.StartDate != "" && !model.ValidDate(req.StartDate) {
		writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}

	plan, err := s.planner.GeneratePlan(r.Context(), planner.PlanRequest{
		Goal:                  req.Goal,
		DurationDays:          req.DurationDays,
		StartDate:             req.StartDate,
		LearningStyle:         req.LearningStyle,
		PreferredTime:         req.PreferredTime,
		DailyHours:            req.DailyHours,
		ChatHistory:           req.ChatHistoryForContext,
		RefinementInstruction: req.RefinementInstruction,
		ExistingTasks:         req.ExistingPlanTasksForRefinement,
	})
	if err != nil {
		s.logger.Error("plan generation failed", map[string]any{"err": err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"humanReadablePlan": plan.HumanReadable,
		"structuredTasks":   plan.Tasks,
	})
}

type integratePlanRequest struct {
	SkillName       string             `json:"skillName"`
	StructuredTasks []planner.PlanTask `json:"structuredTasks"`
	// Push sends the imported tasks to the calendar provider as well.
	Push       bool   `json:"push,omitempty"`
	CalendarID string `json:"calendarId,omitempty"`
}

// handleIntegratePlan imports a generated plan into the local store as a
// batch, and optionally pushes the stored tasks to the provider calendar.
func (s *Server) handleIntegratePlan(w http.ResponseWriter, r *http.Request) {
	var req integratePlanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.StructuredTasks) == 0 {
		writeError(w, http.StatusBadRequest, "structuredTasks is required")
		return
	}

	drafts, err := planner.DraftsFromTasks(req.StructuredTasks)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateMany(drafts)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := map[string]any{
		"message":      fmt.Sprintf("Added %d tasks to the local plan.", len(created)),
		"tasksCreated": len(created),
	}

	if req.Push {
		if s.syncer == nil {
			writeError(w, http.StatusServiceUnavailable, "calendar sync is not configured")
			return
		}
		calendarID := req.CalendarID
		if calendarID == "" {
			calendarID = s.defaultCalendarID
		}
		res := s.syncer.Push(r.Context(), created, calendarID)
		s.logger.Info("plan pushed", map[string]any{
			"calendar": calendarID,
			"created":  res.Created,
			"failed":   res.Failed,
		})

		resp["eventsCreated"] = res.Created
		resp["calendarEventLinks"] = res.Links
		resp["message"] = fmt.Sprintf("Added %d tasks locally; created %d calendar events.", len(created), res.Created)
		if res.Created == 0 && res.Failed > 0 {
			writeSyncError(w, res.FirstError())
			return
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

type syncCalendarRequest struct {
	CalendarID string `json:"calendarId,omitempty"`
	Days       int    `json:"days,omitempty"`
}

// handleSyncCalendar pulls provider events into the local store.
func (s *Server) handleSyncCalendar(w http.ResponseWriter, r *http.Request) {
	if s.syncer == nil {
		writeError(w, http.StatusServiceUnavailable, "calendar sync is not configured")
		return
	}

	var req syncCalendarRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	calendarID := req.CalendarID
	if calendarID == "" {
		calendarID = s.defaultCalendarID
	}
	days := req.Days
	if days <= 0 {
		days = s.syncWindowDays
	}

	from, to := gsync.DefaultWindow(time.Now(), days)
	added, err := s.syncer.Pull(r.Context(), calendarID, from, to)
	if err != nil {
		s.logger.Error("pull sync failed", map[string]any{
			"calendar": calendarID,
			"err":      err.Error(),
		})
		writeSyncError(w, err)
		return
	}

	s.logger.Info("pull sync complete", map[string]any{
		"calendar": calendarID,
		"added":    added,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"added":   added,
		"message": fmt.Sprintf("Imported %d new tasks from the calendar.", added),
	})
}

// writeSyncError maps the sync failure taxonomy onto status codes: the UI
// prompts re-authentication on 401 and offers a retry otherwise.
func writeSyncError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gsync.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, gsync.ErrProviderRejected):
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.Is(err, gsync.ErrTransient):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
