// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command devapi serves an in-memory copy of the community REST API for local work.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis when CIVIC_REDIS_URL is set (readiness only).
//  4. Seed demo entities.
//  5. Start HTTP server with graceful shutdown.
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

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/devapi"
	"github.com/taibuivan/civicdesk/internal/platform/config"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/metrics"
	redisstore "github.com/taibuivan/civicdesk/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.DevAPIPort),
		slog.Bool("auth", cfg.DevAPIToken != ""),
	)

	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Redis (optional) ───────────────────────────────────────────────
	health := devapi.HealthDependencies{}
	if cfg.RedisURL != "" {
		startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		startupCancel()
		must(log, err, "connect to redis")
		defer closeRedis(log, rdb)

		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}

	// ── 4. State ──────────────────────────────────────────────────────────
	store := devapi.NewStore()
	store.Seed(entity.Event, "evt-1", "Climate Strike")
	store.Seed(entity.Group, "grp-1", "Neighbourhood Watch")
	store.Seed(entity.Organization, "org-123", "Fridays for Future")

	// ── 5. HTTP Server ────────────────────────────────────────────────────
	server := devapi.NewServer(rootCtx, cfg, log, devapi.Options{
		Store:    store,
		Verifier: devapi.NewVerifier(cfg.DevAPIToken),
		Metrics:  metrics.NewRecorder(true),
		Health:   health,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName+"-devapi"))
}

func closeRedis(log *slog.Logger, client *goredis.Client) {
	log.Info("closing_redis_client")
	if err := client.Close(); err != nil {
		log.Error("redis_close_error", slog.Any("error", err))
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
