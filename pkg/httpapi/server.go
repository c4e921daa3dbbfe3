package httpapi

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/harrisonrobin/goalplan/pkg/jsonlog"
	"github.com/harrisonrobin/goalplan/pkg/model"
	"github.com/harrisonrobin/goalplan/pkg/planner"
	"github.com/harrisonrobin/goalplan/pkg/store"
	gsync "github.com/harrisonrobin/goalplan/pkg/sync"
)

// Planner is the plan-generation oracle surface the API consumes.
type Planner interface {
	Chat(ctx context.Context, userMessage string, history []planner.Content) (string, error)
	GeneratePlan(ctx context.Context, req planner.PlanRequest) (*planner.Plan, error)
}

// Syncer is the calendar sync adapter surface the API consumes.
type Syncer interface {
	Push(ctx context.Context, tasks []model.Task, calendarID string) gsync.PushResult
	Pull(ctx context.Context, calendarID string, from, to time.Time) (int, error)
}

type Server struct {
	store   *store.TaskStore
	planner Planner
	syncer  Syncer
	logger  *jsonlog.Logger

	defaultCalendarID string
	syncWindowDays    int

	router *mux.Router
}

type Options struct {
	// Planner and Syncer may be nil when the corresponding credential is not
	// configured; their endpoints then answer 503.
	Planner Planner
	Syncer  Syncer
	Logger  *jsonlog.Logger

	DefaultCalendarID string
	SyncWindowDays    int
}

func NewServer(taskStore *store.TaskStore, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = jsonlog.New(os.Stdout)
	}
	if opts.DefaultCalendarID == "" {
		opts.DefaultCalendarID = "primary"
	}
	if opts.SyncWindowDays <= 0 {
		opts.SyncWindowDays = 30
	}

	s := &Server{
		store:             taskStore,
		planner:           opts.Planner,
		syncer:            opts.Syncer,
		logger:            opts.Logger,
		defaultCalendarID: opts.DefaultCalendarID,
		syncWindowDays:    opts.SyncWindowDays,
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/tasks", s.handleCreateTask).Methods(http.MethodPost)
	r.HandleFunc("/tasks", s.handleListTasks).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", s.handleGetTask).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", s.handlePatchTask).Methods(http.MethodPatch)
	r.HandleFunc("/tasks/{id}", s.handleDeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/tasks/{id}/toggle", s.handleToggleTask).Methods(http.MethodPost)

	r.HandleFunc("/chat-message", s.handleChatMessage).Methods(http.MethodPost)
	r.HandleFunc("/generate-plan", s.handleGeneratePlan).Methods(http.MethodPost)
	r.HandleFunc("/integrate-plan", s.handleIntegratePlan).Methods(http.MethodPost)
	r.HandleFunc("/sync-calendar", s.handleSyncCalendar).Methods(http.MethodPost)

	r.Use(s.requestID, s.requestLogging, timeout(60*time.Second))

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
