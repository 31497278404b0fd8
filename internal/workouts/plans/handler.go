package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitrack/internal/auth"
	"github.com/2beens/fitrack/internal/telemetry/tracing"
	"github.com/2beens/fitrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=plans_mocks_test.go -package=plans_test

type plansRepo interface {
	GetForDate(ctx context.Context, userID, planDate string) (*PlannedWorkout, error)
	Upsert(ctx context.Context, params UpsertParams) (*PlannedWorkout, error)
	DeleteForDate(ctx context.Context, userID, planDate string) error
	ListRange(ctx context.Context, userID, fromDate, toDate string) ([]PlannedWorkout, error)
}

type ListResponse struct {
	Plans []PlannedWorkout `json:"plans"`
}

type UpsertRequest struct {
	TemplateID    string `json:"templateId"`
	Title         string `json:"title"`
	ScheduledTime string `json:"scheduledTime"`
	Notes         string `json:"notes"`
}

type Handler struct {
	repo plansRepo
}

func NewHandler(repo plansRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/planned-workouts", handler.HandleListRange).Methods("GET", "OPTIONS").Name("list-plans")
	router.HandleFunc("/api/planned-workouts/{date}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-plan")
	router.HandleFunc("/api/planned-workouts/{date}", handler.HandleUpsert).Methods("PUT", "OPTIONS").Name("upsert-plan")
	router.HandleFunc("/api/planned-workouts/{date}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-plan")
}

func (handler *Handler) HandleListRange(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.listrange")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	fromDate := r.URL.Query().Get("from")
	toDate := r.URL.Query().Get("to")
	if !ValidPlanDate(fromDate) || !ValidPlanDate(toDate) {
		http.Error(w, "invalid date range", http.StatusBadRequest)
		return
	}

	list, err := handler.repo.ListRange(ctx, userID, fromDate, toDate)
	if err != nil {
		log.Errorf("failed to list planned workouts for user %s: %s", userID, err)
		http.Error(w, "failed to list planned workouts", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []PlannedWorkout{}
	}

	respJson, err := json.Marshal(ListResponse{Plans: list})
	if err != nil {
		log.Errorf("failed to marshal planned workouts: %s", err)
		http.Error(w, "failed to list planned workouts", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	planDate := mux.Vars(r)["date"]
	if !ValidPlanDate(planDate) {
		http.Error(w, "invalid plan date", http.StatusBadRequest)
		return
	}

	p, err := handler.repo.GetForDate(ctx, userID, planDate)
	if err != nil {
		log.Errorf("failed to get planned workout for user %s: %s", userID, err)
		http.Error(w, "failed to get planned workout", http.StatusInternalServerError)
		return
	}

	if p == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handler.writePlan(w, p, http.StatusOK)
}

func (handler *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.upsert")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	planDate := mux.Vars(r)["date"]
	if !ValidPlanDate(planDate) {
		http.Error(w, "invalid plan date", http.StatusBadRequest)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var upsertReq UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&upsertReq); err != nil {
		log.Tracef("upsert plan, unmarshal json params: %s", err)
		http.Error(w, "upsert plan failed", http.StatusBadRequest)
		return
	}

	if !ValidScheduledTime(upsertReq.ScheduledTime) {
		http.Error(w, "invalid scheduled time", http.StatusBadRequest)
		return
	}

	p, err := handler.repo.Upsert(ctx, UpsertParams{
		UserID:        userID,
		PlanDate:      planDate,
		TemplateID:    upsertReq.TemplateID,
		Title:         upsertReq.Title,
		ScheduledTime: upsertReq.ScheduledTime,
		Notes:         upsertReq.Notes,
	})
	if err != nil {
		log.Errorf("failed to upsert planned workout for user %s: %s", userID, err)
		http.Error(w, "failed to save planned workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("planned workout saved: %s [%s]", p.ID, p.PlanDate)
	handler.writePlan(w, p, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.delete")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	planDate := mux.Vars(r)["date"]
	if !ValidPlanDate(planDate) {
		http.Error(w, "invalid plan date", http.StatusBadRequest)
		return
	}

	err := handler.repo.DeleteForDate(ctx, userID, planDate)
	switch {
	case errors.Is(err, ErrPlanNotFound):
		http.Error(w, "planned workout not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to delete planned workout for user %s: %s", userID, err)
		http.Error(w, "failed to delete planned workout", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *Handler) writePlan(w http.ResponseWriter, p *PlannedWorkout, statusCode int) {
	planJson, err := json.Marshal(p)
	if err != nil {
		log.Errorf("failed to marshal planned workout: %s", err)
		http.Error(w, "failed to marshal planned workout", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, planJson, statusCode)
}
