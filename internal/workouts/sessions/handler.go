package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitrack/internal/auth"
	"github.com/2beens/fitrack/internal/telemetry/metrics"
	"github.com/2beens/fitrack/internal/telemetry/tracing"
	"github.com/2beens/fitrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=sessions_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	List(ctx context.Context, userID string) ([]WorkoutSession, error)
	GetActive(ctx context.Context, userID string) (*WorkoutSession, error)
	Start(ctx context.Context, params StartParams) (*WorkoutSession, error)
	Complete(ctx context.Context, id string, endedAt time.Time) (*WorkoutSession, error)
	Get(ctx context.Context, id string) (*WorkoutSession, error)
}

type ListResponse struct {
	Sessions []WorkoutSession `json:"sessions"`
}

type StartRequest struct {
	Title        string     `json:"title"`
	ActivityType string     `json:"activityType"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
}

type CompleteRequest struct {
	EndedAt *time.Time `json:"endedAt,omitempty"`
}

type Handler struct {
	repo           sessionsRepo
	metricsManager *metrics.Manager
}

func NewHandler(repo sessionsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/workout-sessions", handler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	router.HandleFunc("/api/workout-sessions", handler.HandleStart).Methods("POST", "OPTIONS").Name("start-session")
	router.HandleFunc("/api/workout-sessions/active", handler.HandleGetActive).Methods("GET", "OPTIONS").Name("active-session")
	router.HandleFunc("/api/workout-sessions/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	router.HandleFunc("/api/workout-sessions/{id}/complete", handler.HandleComplete).Methods("POST", "OPTIONS").Name("complete-session")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	list, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("failed to list workout sessions for user %s: %s", userID, err)
		http.Error(w, "failed to list workout sessions", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []WorkoutSession{}
	}

	respJson, err := json.Marshal(ListResponse{Sessions: list})
	if err != nil {
		log.Errorf("failed to marshal workout sessions: %s", err)
		http.Error(w, "failed to list workout sessions", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.getactive")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	active, err := handler.repo.GetActive(ctx, userID)
	if err != nil {
		log.Errorf("failed to get active session for user %s: %s", userID, err)
		http.Error(w, "failed to get active session", http.StatusInternalServerError)
		return
	}

	if active == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handler.writeSession(w, active, http.StatusOK)
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.start")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var startReq StartRequest
	if err := json.NewDecoder(r.Body).Decode(&startReq); err != nil {
		log.Tracef("start session, unmarshal json params: %s", err)
		http.Error(w, "start session failed", http.StatusBadRequest)
		return
	}

	params := StartParams{
		UserID:       userID,
		Title:        startReq.Title,
		ActivityType: startReq.ActivityType,
	}
	if startReq.StartedAt != nil {
		params.StartedAt = *startReq.StartedAt
	}

	started, err := handler.repo.Start(ctx, params)
	if err != nil {
		log.Errorf("failed to start workout session for user %s: %s", userID, err)
		http.Error(w, "failed to start workout session", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterSessionsStarted.Inc()
	}

	log.Debugf("new workout session started: %s [%s]", started.ID, started.ActivityType)
	handler.writeSession(w, started, http.StatusCreated)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var completeReq CompleteRequest
	if r.Body != nil && r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&completeReq); err != nil {
			log.Tracef("complete session, unmarshal json params: %s", err)
			http.Error(w, "complete session failed", http.StatusBadRequest)
			return
		}
	}

	// make sure the session belongs to the logged user
	existing, err := handler.repo.Get(ctx, id)
	if err != nil {
		http.Error(w, "workout session not found", http.StatusNotFound)
		return
	}
	if existing.UserID != userID {
		http.Error(w, "workout session not found", http.StatusNotFound)
		return
	}

	endedAt := time.Now()
	if completeReq.EndedAt != nil {
		endedAt = *completeReq.EndedAt
	}

	completed, err := handler.repo.Complete(ctx, id, endedAt)
	switch {
	case errors.Is(err, ErrAlreadyCompleted):
		http.Error(w, "workout session already completed", http.StatusConflict)
		return
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "workout session not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to complete workout session %s: %s", id, err)
		http.Error(w, "failed to complete workout session", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterSessionsCompleted.Inc()
	}

	log.Debugf("workout session completed: %s, duration min: %v", completed.ID, completed.DurationMin)
	handler.writeSession(w, completed, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	s, err := handler.repo.Get(ctx, id)
	if err != nil {
		http.Error(w, "workout session not found", http.StatusNotFound)
		return
	}
	if s.UserID != userID {
		http.Error(w, "workout session not found", http.StatusNotFound)
		return
	}

	handler.writeSession(w, s, http.StatusOK)
}

func (handler *Handler) writeSession(w http.ResponseWriter, s *WorkoutSession, statusCode int) {
	sessionJson, err := json.Marshal(s)
	if err != nil {
		log.Errorf("failed to marshal workout session: %s", err)
		http.Error(w, "failed to marshal workout session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, statusCode)
}
