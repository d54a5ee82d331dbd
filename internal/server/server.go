// Package server wires the router, middleware, and handlers, and owns
// the HTTP server lifecycle. main.go stays minimal; all dependency
// assembly happens here.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sag-insper/schedule-api/internal/auth"
	sqlitebackend "github.com/sag-insper/schedule-api/internal/backend/sqlite"
	"github.com/sag-insper/schedule-api/internal/handler"
	"github.com/sag-insper/schedule-api/internal/middleware"
	"github.com/sag-insper/schedule-api/internal/repository"
)

// The activity collection lives in one backend document.
const (
	activityCollection = "activities_raw"
	documentID         = "unique"
)

// Config holds everything the server needs beyond its dependencies.
type Config struct {
	Port           int
	DBPath         string
	HashedPassword string
}

// Server owns the router and the backend database connection. The
// connection is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqlitebackend.DB
}

// New assembles the dependency chain: backend database → collection
// document → synchronizing repository → handlers → routes. The token
// secrets are derived in main and threaded in, never global.
func New(cfg Config, secrets auth.Secrets, logger *slog.Logger) (*Server, error) {
	db, err := sqlitebackend.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening backend database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(secrets); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Handler exposes the router, mainly for tests driving the full HTTP
// surface without a listening socket.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the backend database. Start does this itself; call
// Close only when the server was never started.
func (s *Server) Close() error {
	return s.db.Close()
}

func (s *Server) setupRoutes(secrets auth.Secrets) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens := auth.NewTokenService(secrets)
	requireAuth := auth.RequireAuth(tokens)

	activities := repository.NewActivities(
		s.db.Document(activityCollection, documentID), s.logger)

	// A fresh embedded database has no collection document yet; seed
	// an empty snapshot so the first request does not 500.
	if err := activities.Initialize(context.Background()); err != nil {
		return fmt.Errorf("initializing activity collection: %w", err)
	}

	activityHandler := handler.NewActivityHandler(activities, s.logger)
	authHandler := handler.NewAuthHandler(tokens, s.config.HashedPassword, s.logger)

	s.router.Route("/activity", func(r chi.Router) {
		r.Get("/", activityHandler.HandleList)
		r.With(requireAuth).Post("/", activityHandler.HandleCreate)
		r.With(requireAuth).Patch("/{id}", activityHandler.HandleUpdate)
		r.With(requireAuth).Delete("/{id}", activityHandler.HandleDelete)
	})

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.HandleLogin)
		r.With(requireAuth).Get("/temp", authHandler.HandleTemp)
	})

	s.router.Get("/healthcheck/ping", handler.HandlePing)

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds, close the backend database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
