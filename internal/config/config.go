package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/jsongrid/backend/internal/models"
)

// Config is the process configuration, read once at startup.
type Config struct {
	Port                   string
	Env                    string
	GinMode                string
	CORSOrigin             string
	LogLevel               string
	LogFile                string
	DefaultMode            models.Mode
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration
	JWTSecret              string
	AccessPasswordHash     string
	TokenTTL               time.Duration
	ShutdownTimeout        time.Duration
}

// AuthEnabled reports whether API routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Load reads an optional .env file, then the environment. The returned bool
// is false when no .env file was found.
func Load(files ...string) (*Config, bool, error) {
	envLoaded := godotenv.Load(files...) == nil

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                os.Getenv("ENV"),
		GinMode:            os.Getenv("GIN_MODE"),
		CORSOrigin:         getEnv("CORS_ORIGIN", "http://localhost:5173"),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		LogFile:            os.Getenv("LOG_FILE"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessPasswordHash: os.Getenv("ACCESS_PASSWORD_HASH"),
	}

	mode, err := models.ParseMode(getEnv("DEFAULT_MODE", string(models.ModeJSON)))
	if err != nil {
		return nil, envLoaded, fmt.Errorf("DEFAULT_MODE: %w", err)
	}
	cfg.DefaultMode = mode

	durations := []struct {
		key      string
		fallback string
		target   *time.Duration
	}{
		{"SESSION_TTL", "30m", &cfg.SessionTTL},
		{"SESSION_CLEANUP_INTERVAL", "10m", &cfg.SessionCleanupInterval},
		{"TOKEN_TTL", "24h", &cfg.TokenTTL},
		{"SHUTDOWN_TIMEOUT", "30s", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		value, err := time.ParseDuration(getEnv(d.key, d.fallback))
		if err != nil {
			return nil, envLoaded, fmt.Errorf("%s: %w", d.key, err)
		}
		if value <= 0 {
			return nil, envLoaded, fmt.Errorf("%s: must be positive, got %s", d.key, value)
		}
		*d.target = value
	}

	return cfg, envLoaded, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
