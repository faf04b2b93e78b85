// Resume coach API server.
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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/resumecoach/server/internal/api"
	"github.com/resumecoach/server/internal/archive"
	"github.com/resumecoach/server/internal/coach"
	"github.com/resumecoach/server/internal/config"
	"github.com/resumecoach/server/internal/domain"
	"github.com/resumecoach/server/internal/events"
	"github.com/resumecoach/server/internal/extract"
	"github.com/resumecoach/server/internal/gateway"
	"github.com/resumecoach/server/internal/middleware"
	"github.com/resumecoach/server/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Session store: Postgres when DB_URL is set, otherwise in-memory.
	var sessions domain.SessionStore
	if cfg.DBURL != "" {
		pg, err := store.NewPostgres(ctx, cfg.DBURL)
		if err != nil {
			slog.Error("Failed to initialize database", "error", err)
			os.Exit(1)
		}
		defer func() {
			if closeErr := pg.Close(); closeErr != nil {
				slog.Error("Failed to close database", "error", closeErr)
			}
		}()
		slog.Info("Using Postgres session store")
		sessions = pg
	} else {
		slog.Info("Using in-memory session store")
		sessions = store.NewMemory()
	}

	// Model gateway: mock for local development, Gemini otherwise.
	var model domain.ModelGateway
	if cfg.UseMockModel {
		slog.Info("Using mock model gateway")
		model = gateway.NewMock()
	} else {
		gemini, err := gateway.NewGemini(ctx, cfg.GoogleAPIKey, cfg.ModelName, cfg.ModelTimeout)
		if err != nil {
			slog.Error("Failed to initialize model gateway", "error", err)
			os.Exit(1)
		}
		slog.Info("Using Gemini model gateway", "model", cfg.ModelName)
		model = gemini
	}

	opts := []coach.Option{}
	if cfg.RabbitMQURL != "" {
		publisher, err := events.NewPublisher(cfg.RabbitMQURL)
		if err != nil {
			slog.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("Session update publishing enabled")
		opts = append(opts, coach.WithEvents(publisher))
	}
	if cfg.R2.Enabled() {
		archiver, err := archive.NewR2(ctx, cfg.R2)
		if err != nil {
			slog.Error("Failed to initialize archive storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Resume archival enabled", "bucket", cfg.R2.Bucket)
		opts = append(opts, coach.WithArchiver(archiver))
	}

	svc := coach.NewService(sessions, model, extract.New(), logger, opts...)
	handler := api.NewHandler(svc, logger, cfg.MaxUploadBytes)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))
	handler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * cfg.ModelTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
