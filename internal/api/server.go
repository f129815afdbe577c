// Copyright (c) 2026 VideoTube. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/videotube/videotube/internal/comments"
	"github.com/videotube/videotube/internal/dashboard"
	"github.com/videotube/videotube/internal/likes"
	"github.com/videotube/videotube/internal/platform/config"
	"github.com/videotube/videotube/internal/platform/constants"
	"github.com/videotube/videotube/internal/platform/middleware"
	"github.com/videotube/videotube/internal/playlists"
	"github.com/videotube/videotube/internal/subscriptions"
	"github.com/videotube/videotube/internal/users"
	"github.com/videotube/videotube/internal/videos"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Users handles the account lifecycle, authentication, channel
	// profiles, and watch history.
	Users *users.Handler

	// Videos handles the catalog: feed, watch page, publishing, search.
	Videos *videos.Handler

	// Comments handles the comment threads under videos.
	Comments *comments.Handler

	// Likes handles like toggles and the liked-videos collection.
	Likes *likes.Handler

	// Playlists handles user-curated video collections.
	Playlists *playlists.Handler

	// Subscriptions handles the channel subscription graph.
	Subscriptions *subscriptions.Handler

	// Dashboard handles the creator analytics surface.
	Dashboard *dashboard.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		// Upload-carrying mounts stay outside the request deadline, the
		// server read/write timeouts still bound them.
		api.Mount("/users", h.Users.Routes())
		api.Mount("/video", h.Videos.Routes())

		api.Group(func(g chi.Router) {
			g.Use(chimw.Timeout(constants.GlobalRequestTimeout))
			g.Mount("/comments", h.Comments.Routes())
			g.Mount("/likes", h.Likes.Routes())
			g.Mount("/playlist", h.Playlists.Routes())
			g.Mount("/subscription", h.Subscriptions.Routes())
			g.Mount("/dashboard", h.Dashboard.Routes())
			g.Get("/healthCheck", HealthCheck)
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
