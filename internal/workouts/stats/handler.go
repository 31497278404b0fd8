package stats

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coocood/freecache"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/fitrack/internal/auth"
	"github.com/2beens/fitrack/internal/telemetry/tracing"
	"github.com/2beens/fitrack/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=stats_mocks_test.go -package=stats_test

const dashboardCacheSize = 10 * 1024 * 1024 // 10 MB

type dashboardAnalyzer interface {
	Dashboard(ctx context.Context, userID string) (*DashboardResponse, error)
}

type Handler struct {
	analyzer dashboardAnalyzer

	// per-user dashboard responses are cached for a short while, the
	// metrics only change when a session gets completed anyway
	cache           *freecache.Cache
	cacheTTLSeconds int
}

func NewHandler(analyzer dashboardAnalyzer, cacheTTLSeconds int) *Handler {
	return &Handler{
		analyzer:        analyzer,
		cache:           freecache.NewCache(dashboardCacheSize),
		cacheTTLSeconds: cacheTTLSeconds,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/api/dashboard", handler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.dashboard")
	defer span.End()

	userID := auth.UserIDFromContext(ctx)
	if userID == "" {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	cacheKey := []byte("dashboard||" + userID)
	if handler.cacheTTLSeconds > 0 {
		if cached, err := handler.cache.Get(cacheKey); err == nil {
			pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cached, http.StatusOK)
			return
		}
	}

	dashboard, err := handler.analyzer.Dashboard(ctx, userID)
	if err != nil {
		log.Errorf("failed to get dashboard metrics for user %s: %s", userID, err)
		http.Error(w, "failed to get dashboard metrics", http.StatusInternalServerError)
		return
	}

	metricsJson, err := json.Marshal(dashboard)
	if err != nil {
		log.Errorf("failed to marshal dashboard metrics: %s", err)
		http.Error(w, "failed to get dashboard metrics", http.StatusInternalServerError)
		return
	}

	if handler.cacheTTLSeconds > 0 {
		if err := handler.cache.Set(cacheKey, metricsJson, handler.cacheTTLSeconds); err != nil {
			log.Tracef("failed to cache dashboard metrics for user %s: %s", userID, err)
		}
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, metricsJson, http.StatusOK)
}
