// Package config defines all configuration structures for the aquaboard
// service.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"

	"github.com/aquaboard/aquaboard/internal/infrastructure/monitoring/logging"
	"github.com/aquaboard/aquaboard/internal/infrastructure/source/postgres"
	"github.com/aquaboard/aquaboard/internal/infrastructure/source/postgrest"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Source backend kinds.
const (
	SourceKindPostgREST = "postgrest"
	SourceKindPostgres  = "postgres"
	SourceKindNone      = ""
)

// SourceConfig selects and parameterizes the permit data source.  Leaving
// every backend unset is valid: the dashboard then starts on its built-in
// fallback record instead of refusing to boot.
type SourceConfig struct {
	// Kind picks the backend: "postgrest", "postgres", or "" for
	// auto-detection (postgrest when its endpoint is set, else postgres
	// when its dsn is set, else unconfigured).
	Kind string `mapstructure:"kind"`

	PostgREST postgrest.Config `mapstructure:"postgrest"`
	Postgres  postgres.Config  `mapstructure:"postgres"`
}

// Resolve returns the effective backend kind after auto-detection.
func (s SourceConfig) Resolve() string {
	if s.Kind != "" {
		return s.Kind
	}
	if s.PostgREST.Configured() {
		return SourceKindPostgREST
	}
	if s.Postgres.Configured() {
		return SourceKindPostgres
	}
	return SourceKindNone
}

// ─────────────────────────────────────────────────────────────────────────────
// Top-level Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the aggregate of every configuration section.
type Config struct {
	Server ServerConfig   `mapstructure:"server"`
	Source SourceConfig   `mapstructure:"source"`
	Log    logging.Config `mapstructure:"log"`
}

// Validate checks cross-field consistency.  A missing data source is NOT a
// validation error: the service degrades to its fallback dataset so the
// dashboard stays reachable for demos and local development.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q must be debug, release or test", c.Server.Mode)
	}

	switch c.Source.Kind {
	case SourceKindNone, SourceKindPostgREST, SourceKindPostgres:
	default:
		return fmt.Errorf("source.kind %q must be postgrest or postgres", c.Source.Kind)
	}
	if c.Source.Kind == SourceKindPostgREST && !c.Source.PostgREST.Configured() {
		return fmt.Errorf("source.kind is postgrest but endpoint or api key is missing")
	}
	if c.Source.Kind == SourceKindPostgres && !c.Source.Postgres.Configured() {
		return fmt.Errorf("source.kind is postgres but dsn is missing")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format %q must be json or console", c.Log.Format)
	}

	return nil
}
