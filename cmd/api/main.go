// Copyright (c) 2026 VideoTube. All rights reserved.

// Command api is the entry point for the VideoTube HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Initialize token, mail, Google, and object-storage services.
//  7. Wire domain repositories, services, and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
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

	"github.com/videotube/videotube/internal/api"
	"github.com/videotube/videotube/internal/comments"
	"github.com/videotube/videotube/internal/dashboard"
	"github.com/videotube/videotube/internal/likes"
	"github.com/videotube/videotube/internal/platform/config"
	"github.com/videotube/videotube/internal/platform/constants"
	"github.com/videotube/videotube/internal/platform/googleauth"
	"github.com/videotube/videotube/internal/platform/mail"
	"github.com/videotube/videotube/internal/platform/middleware"
	"github.com/videotube/videotube/internal/platform/migration"
	pgstore "github.com/videotube/videotube/internal/platform/postgres"
	redisstore "github.com/videotube/videotube/internal/platform/redis"
	"github.com/videotube/videotube/internal/platform/sec"
	"github.com/videotube/videotube/internal/platform/storage"
	"github.com/videotube/videotube/internal/playlists"
	"github.com/videotube/videotube/internal/subscriptions"
	"github.com/videotube/videotube/internal/users"
	"github.com/videotube/videotube/internal/videos"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Platform Services ──────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.EmailVerifySecret,
		constants.AuthIssuer,
	)
	must(log, err, "initialize token service")

	mailer, err := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	must(log, err, "initialize mailer")

	googleVerifier, err := googleauth.NewVerifier(cfg.GoogleClientID)
	must(log, err, "initialize google verifier")

	mediaStore, err := storage.NewS3Store(startupCtx, cfg.S3Region, cfg.S3Bucket, cfg.S3Endpoint, cfg.S3PublicURL)
	must(log, err, "initialize object storage")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := users.NewUserRepository(pool)
	authenticator := middleware.NewAuthenticator(tokenService, userRepository)
	sessionRepository := users.NewSessionRepository(pool)
	cooldownRepository := users.NewCooldownRepository(rdb)
	userService := users.NewService(
		userRepository,
		sessionRepository,
		cooldownRepository,
		tokenService,
		mailer,
		googleVerifier,
		mediaStore,
		cfg.FrontendBaseURL,
	)
	userHandler := users.NewHandler(userService, authenticator)

	videoRepository := videos.NewVideoRepository(pool)
	videoService := videos.NewService(videoRepository, mediaStore)
	videoHandler := videos.NewHandler(videoService, authenticator)

	commentRepository := comments.NewCommentRepository(pool)
	commentService := comments.NewService(commentRepository)
	commentHandler := comments.NewHandler(commentService, authenticator)

	likeRepository := likes.NewLikeRepository(pool)
	likeService := likes.NewService(likeRepository)
	likeHandler := likes.NewHandler(likeService, authenticator)

	playlistRepository := playlists.NewPlaylistRepository(pool)
	playlistService := playlists.NewService(playlistRepository)
	playlistHandler := playlists.NewHandler(playlistService, authenticator)

	subscriptionRepository := subscriptions.NewSubscriptionRepository(pool)
	subscriptionService := subscriptions.NewService(subscriptionRepository)
	subscriptionHandler := subscriptions.NewHandler(subscriptionService, authenticator)

	statsRepository := dashboard.NewStatsRepository(pool)
	statsCache := dashboard.NewStatsCache(rdb)
	dashboardService := dashboard.NewService(statsRepository, statsCache, log)
	dashboardHandler := dashboard.NewHandler(dashboardService, authenticator)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:      liveness,
		Readiness:     readiness,
		Users:         userHandler,
		Videos:        videoHandler,
		Comments:      commentHandler,
		Likes:         likeHandler,
		Playlists:     playlistHandler,
		Subscriptions: subscriptionHandler,
		Dashboard:     dashboardHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
