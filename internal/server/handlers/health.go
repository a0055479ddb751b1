package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"planet-randomizer/internal/shared/database"
	sharedredis "planet-randomizer/internal/shared/redis"
	"planet-randomizer/internal/shared/response"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Baseline  string `json:"baseline"`
}

type HealthHandler struct {
	db       *database.DB
	redis    *sharedredis.Client
	baseline string
}

func NewHealthHandler(db *database.DB, redis *sharedredis.Client, baseline string) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, baseline: baseline}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "disconnected"
	if err := h.db.PingContext(ctx); err == nil {
		dbStatus = "connected"
	} else {
		logger.Warn("Database ping failed", "error", err)
	}

	cacheStatus := h.redis.Status(ctx)

	status := "healthy"
	if dbStatus != "connected" {
		status = "degraded"
	}

	resp := HealthResponse{
		Status:    status,
		Timestamp: time.Now().Format(time.RFC3339),
		Database:  dbStatus,
		Cache:     cacheStatus,
		Baseline:  h.baseline,
	}

	response.Success(w, http.StatusOK, resp)
}
