package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "data/schedule.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.CryptoSalt != "salt" {
		t.Errorf("CryptoSalt = %q", cfg.CryptoSalt)
	}
	if cfg.HashedPassword == "" {
		t.Error("HashedPassword default is empty")
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_PATH", "/var/lib/schedule/prod.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.DBPath != "/var/lib/schedule/prod.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
}

func TestLevel_UnknownFallsBackToInfo(t *testing.T) {
	cfg := Config{LogLevel: "verbose"}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}
