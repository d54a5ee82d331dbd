// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"

	"github.com/joeshaw/envdecode"
)

// Config is the full process configuration. Every field has a default
// so a bare environment still starts a working server. The default
// HASHED_PASSWORD matches the credential shipped with the hosted
// deployment; override it in any real environment.
type Config struct {
	Port           int    `env:"PORT,default=8080"`
	DBPath         string `env:"DB_PATH,default=data/schedule.db"`
	CryptoSalt     string `env:"CRYPTO_SALT,default=salt"`
	HashedPassword string `env:"HASHED_PASSWORD,default=c53625861f8f8f713f67ea9c10bb89f87cc6e8c50bb4545df70004d1fbb23e17"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`
}

// Load decodes the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding environment: %w", err)
	}
	return cfg, nil
}

// Level translates the LOG_LEVEL string into a slog level.
// Unknown values fall back to info.
func (c Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
