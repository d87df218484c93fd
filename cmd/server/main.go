// Package main is the entrypoint for the OcuScreen API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ocuscreen/ocuscreen/internal/ai"
	"github.com/ocuscreen/ocuscreen/internal/api"
	"github.com/ocuscreen/ocuscreen/internal/api/handler"
	mw "github.com/ocuscreen/ocuscreen/internal/api/middleware"
	"github.com/ocuscreen/ocuscreen/internal/api/response"
	"github.com/ocuscreen/ocuscreen/internal/cache"
	"github.com/ocuscreen/ocuscreen/internal/classifier"
	"github.com/ocuscreen/ocuscreen/internal/config"
	"github.com/ocuscreen/ocuscreen/internal/export"
	"github.com/ocuscreen/ocuscreen/internal/narrative"
	"github.com/ocuscreen/ocuscreen/internal/pipeline"
	"github.com/ocuscreen/ocuscreen/internal/store"
	"github.com/ocuscreen/ocuscreen/internal/submission"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config — fail fast on invalid config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded",
		"classifier_backend", cfg.Classifier.Backend,
		"ai_provider", cfg.AI.Provider,
		"env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	// 3. Run migrations
	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 4. Create Redis cache
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 5. Create classifier
	cls, err := classifier.New(cfg.Classifier)
	if err != nil {
		return fmt.Errorf("create classifier: %w", err)
	}
	if err := cls.Ready(ctx); err != nil {
		// Not fatal: the model may still be loading. Submissions report
		// MODEL_NOT_READY until it comes up.
		slog.Warn("classifier not ready", "backend", cls.Name(), "error", err)
	} else {
		slog.Info("classifier ready", "backend", cls.Name(), "model", cfg.Classifier.Model)
	}

	// 6. Create AI provider and narrative generator
	aiProvider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		return fmt.Errorf("create AI provider: %w", err)
	}
	slog.Info("AI provider initialized", "provider", aiProvider.Name(), "model", aiProvider.Model())

	generator := narrative.NewGenerator(aiProvider, cfg.AI.InferenceTimeout)

	// 7. Create store, exporter, and screening service
	pgStore := store.NewPostgresStore(pool)

	exporter, err := export.NewHTMLExporter()
	if err != nil {
		return fmt.Errorf("create exporter: %w", err)
	}

	tracker := submission.NewTracker()
	svc := pipeline.NewService(cls, generator, pgStore, redisCache, tracker, cfg.Classifier.Timeout)

	// 8. Build router with dependencies
	auth := mw.NewAuth(pgStore)
	rateLimit := mw.NewRateLimit(redisCache, 60)

	deps := api.Dependencies{
		Auth:      auth,
		RateLimit: rateLimit,

		HealthHandler:          healthHandler(pgStore, redisCache, cls),
		CreateScreeningHandler: handler.NewCreateScreeningHandler(svc, cfg.Server.MaxUploadBytes),
		GetScreeningHandler:    handler.NewGetScreeningHandler(svc),
		ListScreeningsHandler:  handler.NewListScreeningsHandler(svc),
		ExportScreeningHandler: handler.NewExportScreeningHandler(svc, exporter),
		CreateKeyHandler:       handler.NewCreateKeyHandler(pgStore),
		ListKeysHandler:        handler.NewListKeysHandler(pgStore),
		RevokeKeyHandler:       handler.NewRevokeKeyHandler(pgStore),
	}

	router := api.NewRouter(deps)

	// 9. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// healthHandler checks database, cache, and classifier readiness.
func healthHandler(s store.Store, c cache.Cache, cls classifier.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"database":   "ok",
			"cache":      "ok",
			"classifier": "ok",
		}

		if err := s.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}
		if err := cls.Ready(r.Context()); err != nil {
			checks["classifier"] = "degraded"
		}

		// The classifier being down degrades the response but keeps 200:
		// reads and exports still work without it.
		if checks["database"] != "ok" || checks["cache"] != "ok" {
			response.Error(w, http.StatusServiceUnavailable, "DEGRADED",
				"One or more services degraded", checks)
			return
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
