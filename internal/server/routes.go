package server

import (
	"log/slog"
	"net/http"

	"planet-randomizer/internal/metrics"
	"planet-randomizer/internal/middleware"
	serverHandlers "planet-randomizer/internal/server/handlers"
	"planet-randomizer/internal/shared/config"
	"planet-randomizer/internal/shared/database"
	sharedredis "planet-randomizer/internal/shared/redis"
	"planet-randomizer/internal/system"
	systemHandlers "planet-randomizer/internal/system/handlers"
)

type Routes struct {
	db            *database.DB
	redis         *sharedredis.Client
	systemService *system.Service
	authenticator *middleware.Authenticator
	metrics       *metrics.Collector
	config        *config.Config
	logger        *slog.Logger
}

func NewRoutes(db *database.DB, redis *sharedredis.Client, systemService *system.Service, authenticator *middleware.Authenticator, collector *metrics.Collector, cfg *config.Config, logger *slog.Logger) *Routes {
	return &Routes{
		db:            db,
		redis:         redis,
		systemService: systemService,
		authenticator: authenticator,
		metrics:       collector,
		config:        cfg,
		logger:        logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db, r.redis, r.systemService.BaselineName())
	systemHandler := systemHandlers.NewSystemHandler(r.systemService)
	worldHandler := systemHandlers.NewWorldHandler(r.systemService)
	streamHandler := systemHandlers.NewStreamHandler(r.systemService, r.metrics, r.config.Frontend.Origins())

	admin := func(h http.HandlerFunc) http.Handler {
		return r.authenticator.RequireAdmin(h)
	}

	// Public endpoints
	mux.Handle("GET /api/server/health", healthHandler)
	mux.HandleFunc("GET /api/systems", systemHandler.GetSystems)
	mux.HandleFunc("GET /api/systems/preview", systemHandler.PreviewSystem)
	mux.Handle("GET /api/systems/stream", streamHandler)
	mux.HandleFunc("GET /api/systems/{id}", systemHandler.GetSystem)
	mux.HandleFunc("GET /api/systems/{id}/science", systemHandler.GetScience)
	mux.HandleFunc("GET /api/world", worldHandler.GetWorld)

	// Admin-only endpoints (authenticated + admin role)
	mux.Handle("POST /api/systems", admin(systemHandler.CreateSystem))
	mux.Handle("DELETE /api/systems/{id}", admin(systemHandler.DeleteSystem))
	mux.Handle("POST /api/systems/{id}/apply", admin(worldHandler.ApplySystem))
	mux.Handle("POST /api/world/restore", admin(worldHandler.RestoreWorld))

	if r.config.Metrics.Enabled {
		mux.Handle("GET "+r.config.Metrics.Path, r.metrics.Handler())
	}

	logger.Info("Routes configured successfully",
		"public_endpoints", []string{"/api/server/health", "/api/systems", "/api/systems/preview", "/api/systems/stream", "/api/systems/{id}", "/api/systems/{id}/science", "/api/world"},
		"admin_endpoints", []string{"POST /api/systems", "DELETE /api/systems/{id}", "/api/systems/{id}/apply", "/api/world/restore"},
		"metrics_enabled", r.config.Metrics.Enabled,
	)

	return mux
}

// Handler wraps the routes in the middleware chain: metrics, CORS, rate limiting.
func (r *Routes) Handler(rateLimiter *middleware.RateLimiter) http.Handler {
	var handler http.Handler = r.Setup()
	handler = rateLimiter.Middleware(handler)
	handler = middleware.CORS(r.config.Frontend)(handler)
	handler = middleware.Metrics(r.metrics)(handler)
	return handler
}
