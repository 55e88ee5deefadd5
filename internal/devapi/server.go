// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package devapi is an in-memory implementation of the community REST API.

It serves the exact endpoints the client services call, with the same envelopes,
status codes and error shapes, so the mutation sets and the file manager can be
exercised end to end without the real backend.

Architecture:

  - Router: chi with the shared middleware chain and a /v1 prefix.
  - State: a single [Store] guarded by a mutex; nothing is persisted.
  - Auth: writes require "Authorization: Token <token>" when a [TokenVerifier] is set.
*/
package devapi

import (
	stdctx "context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/civicdesk/internal/core/entity"
	"github.com/taibuivan/civicdesk/internal/platform/config"
	"github.com/taibuivan/civicdesk/internal/platform/constants"
	"github.com/taibuivan/civicdesk/internal/platform/metrics"
	"github.com/taibuivan/civicdesk/internal/platform/middleware"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	logger     *slog.Logger
}

// Options holds the injected dependencies of a [Server].
type Options struct {
	// Store holds the served state. Nil starts with an empty store.
	Store *Store

	// Verifier guards write endpoints. Nil leaves them open.
	Verifier middleware.TokenVerifier

	// Metrics backs /metrics and request counters. Nil disables both.
	Metrics *metrics.Recorder

	// Health configures /ready.
	Health HealthDependencies
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers every route.
func NewServer(context stdctx.Context, cfg *config.Config, logger *slog.Logger, options Options) *Server {
	store := options.Store
	if store == nil {
		store = NewStore()
	}

	router := chi.NewRouter()

	// # Middleware Chain
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(context, cfg.DevAPIRateLimitRPS, cfg.DevAPIRateLimitBurst))
	router.Use(middleware.PanicRecovery())
	if options.Metrics != nil {
		router.Use(middleware.Metrics(options.Metrics))
	}
	router.Use(middleware.CORS(cfg))
	router.Use(chimw.StripSlashes)

	router.NotFound(notFound)

	// # Infrastructure Endpoints
	liveness, readiness := NewHealthHandlers(options.Health, logger)
	router.Get("/health", liveness)
	router.Get("/ready", readiness)
	if options.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", options.Metrics.Handler())
	}

	// # Application API
	writes := middleware.RequireToken(options.Verifier)
	router.Route("/v1", func(api chi.Router) {
		api.NotFound(notFound)

		for _, kind := range entity.Kinds {
			handler := &contentHandler{kind: kind, store: store, logger: logger}
			handler.routes(api, writes)
		}

		uploads := &uploadHandler{store: store, logger: logger, maxBytes: constants.MaxUploadBytes}
		api.Group(func(protected chi.Router) {
			protected.Use(writes)
			uploads.routes(protected)
		})

		organizations := &organizationHandler{store: store, logger: logger}
		organizations.routes(api, writes)
	})

	return &Server{
		router: router,
		logger: logger,
		httpServer: &http.Server{
			Addr:              ":" + cfg.DevAPIPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler exposes the router (httptest servers).
func (server *Server) Handler() http.Handler {
	return server.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (server *Server) ListenAndServe() error {
	server.logger.Info("devapi_starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (server *Server) Shutdown(timeout time.Duration) error {
	context, cancel := stdctx.WithTimeout(stdctx.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(context)
}
