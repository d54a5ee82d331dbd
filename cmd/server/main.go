// Package main is the entry point for the schedule API server. Its
// job is to read configuration, build the process-wide dependencies
// (logger, token secrets), and hand off to internal/server.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sag-insper/schedule-api/internal/auth"
	"github.com/sag-insper/schedule-api/internal/config"
	"github.com/sag-insper/schedule-api/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	// Token secrets are derived fresh on every start, so tokens never
	// survive a restart and clients must log in again.
	secrets := auth.DeriveSecrets(cfg.CryptoSalt)

	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Port:           cfg.Port,
		DBPath:         cfg.DBPath,
		HashedPassword: cfg.HashedPassword,
	}, secrets, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until the server is shut down via SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
