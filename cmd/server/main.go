package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"planet-randomizer/internal/auth"
	"planet-randomizer/internal/baseline"
	"planet-randomizer/internal/metrics"
	"planet-randomizer/internal/middleware"
	"planet-randomizer/internal/server"
	"planet-randomizer/internal/shared/config"
	"planet-randomizer/internal/shared/database"
	"planet-randomizer/internal/shared/logger"
	sharedredis "planet-randomizer/internal/shared/redis"
	"planet-randomizer/internal/system"
	"planet-randomizer/internal/world"
	"planet-randomizer/migrations"
)

func main() {
	if err := config.Init(); err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg := config.GlobalConfig

	logger.Init(cfg)
	log := slog.With("component", "main")
	log.Info("Starting planet randomizer server",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
	)

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("Running database migrations")
	if err := db.RunMigrations(migrations.FS); err != nil {
		return err
	}

	redisClient, err := sharedredis.Connect(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	b, err := baseline.Resolve(cfg.Generator.BaselinePath)
	if err != nil {
		return err
	}
	log.Info("Baseline loaded", "baseline", b.Name, "home", b.Home, "bodies", len(b.Bodies))

	issuer, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiration)
	if err != nil {
		return err
	}

	collector := metrics.New()
	systemLogger := slog.With("component", "system")
	systemService := system.NewService(
		system.NewRepository(db, systemLogger),
		system.NewCache(redisClient, cfg.Redis.TTL, systemLogger),
		b,
		cfg.Generator.Tunables,
		world.New(b, slog.With("component", "world")),
		collector,
		systemLogger,
	)

	routes := server.NewRoutes(db, redisClient, systemService, middleware.NewAuthenticator(issuer), collector, cfg, slog.Default())
	rateLimiter := middleware.NewRateLimiter(ctx, cfg.RateLimit, cfg.Server.TrustProxy)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      routes.Handler(rateLimiter),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", srv.Addr, "url", cfg.Server.URL)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
