package config

import (
	"fmt"

	"github.com/aatuh/ulid-toolkit/envvar"
)

type Config struct {
	Addr        string   `env:"API_ADDR"`       // ":8000"
	LogLevel    string   `env:"LOG_LEVEL"`      // "debug"|"info"|"warn"|"error"
	Env         string   `env:"ENV"`            // "development"|"staging"|"production"
	Monotonic   bool     `env:"ULID_MONOTONIC"` // order IDs issued in the same millisecond
	MaxBatch    int      `env:"ULID_MAX_BATCH"` // upper bound for ?count=
	CORSOrigins []string `env:"CORS_ORIGINS"`   // comma-separated
}

// LoadFromEnv loads config with defaults for anything unset.
func LoadFromEnv() (Config, error) {
	adapter := envvar.New()
	cfg := Config{
		Addr:        adapter.GetOr("API_ADDR", ":8000"),
		LogLevel:    adapter.GetOr("LOG_LEVEL", "info"),
		Env:         adapter.GetOr("ENV", "development"),
		Monotonic:   adapter.GetBoolOr("ULID_MONOTONIC", true),
		MaxBatch:    adapter.GetIntOr("ULID_MAX_BATCH", 1000),
		CORSOrigins: adapter.GetListOr("CORS_ORIGINS", []string{"*"}),
	}
	return cfg, cfg.Validate()
}

// Validate reports settings the service cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: API_ADDR must not be empty")
	}
	if c.MaxBatch < 1 {
		return fmt.Errorf("config: ULID_MAX_BATCH must be positive, got %d", c.MaxBatch)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}
