// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendSpanner  = "spanner"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	Backend         string
	SQLitePath      string
	PostgresDSN     string
	SpannerDatabase string

	AdminToken string

	ReconcileMode      string
	ReconcileSerialize bool

	LogLevel  string
	LogFormat string

	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
}

// Load reads the configuration. DOTENV_PATH (default ".env") is loaded first
// and never overrides variables that are already set.
func Load() (Config, error) {
	if err := LoadDotEnv(env("DOTENV_PATH", ".env")); err != nil {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	cfg := Config{
		HTTPAddr:           env("HTTP_ADDR", ":8080"),
		GRPCAddr:           env("GRPC_ADDR", ":50051"),
		Backend:            strings.ToLower(env("STORE_BACKEND", BackendMemory)),
		SQLitePath:         env("SQLITE_PATH", "data/reflist.db"),
		PostgresDSN:        env("POSTGRES_DSN", ""),
		SpannerDatabase:    env("SPANNER_DATABASE", "projects/test-project/instances/emulator-instance/databases/test-db"),
		AdminToken:         env("ADMIN_TOKEN", ""),
		ReconcileMode:      env("RECONCILE_MODE", "best-effort"),
		ReconcileSerialize: envBool("RECONCILE_SERIALIZE", false),
		LogLevel:           env("LOG_LEVEL", "info"),
		LogFormat:          env("LOG_FORMAT", "json"),
		MaxBodyBytes:       int64(envInt("MAX_BODY_BYTES", 1<<20)),
		ShutdownTimeout:    envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	return cfg, cfg.Validate()
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendSpanner:
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Backend)
	}
	if c.AdminToken == "" {
		return fmt.Errorf("ADMIN_TOKEN is required")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
