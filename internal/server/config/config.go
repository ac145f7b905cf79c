package config

import (
	"log/slog"
	"os"
	"time"
)

const devSecret = "dev-secret-change"

type Config struct {
	HTTPAddr    string
	DatabaseDSN string
	JWTSecret   string
	TokenTTL    time.Duration
}

func Load() Config {
	cfg := Config{
		HTTPAddr:    getEnv("NOTES_HTTP_ADDR", ":8080"),
		DatabaseDSN: getEnv("NOTES_DB_DSN", "file:notes.db?cache=shared&mode=rwc"),
		JWTSecret:   getEnv("NOTES_JWT_SECRET", devSecret),
		TokenTTL:    getDuration("NOTES_TOKEN_TTL", 30*24*time.Hour),
	}
	if cfg.JWTSecret == devSecret {
		slog.Warn("using development JWT secret; set NOTES_JWT_SECRET")
	}
	return cfg
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", v)
		return def
	}
	return d
}
