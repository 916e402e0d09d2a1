package config

import (
	"fmt"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Catalog sources.
const (
	CatalogEmbedded = "embedded"
	CatalogFile     = "file"
	CatalogSQL      = "sql"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Storage   StorageConfig   `koanf:"storage"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Recommend RecommendConfig `koanf:"recommend"`
}

type ServerConfig struct {
	Mode           Mode          `koanf:"mode"`
	HTTPAddr       string        `koanf:"http_addr"`
	RequestTimeout time.Duration `koanf:"request_timeout"`

	CORSOriginsOnline  []string `koanf:"cors_origins_online"`
	CORSOriginsOffline []string `koanf:"cors_origins_offline"`

	// Per-IP limit on the guidance API; probes and /metrics are exempt.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CORSOrigins returns the allow-list for the configured mode.
func (s ServerConfig) CORSOrigins() []string {
	if s.Mode == ModeOnline {
		return s.CORSOriginsOnline
	}
	return s.CORSOriginsOffline
}

type DatabaseConfig struct {
	Driver string `koanf:"driver"` // sqlite|postgres
	DSN    string `koanf:"dsn"`
}

type CatalogConfig struct {
	Source string `koanf:"source"` // embedded|file|sql
	File   string `koanf:"file"`   // blob key, for source=file
}

type StorageConfig struct {
	BasePath string `koanf:"base_path"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json|console
}

type MetricsConfig struct {
	Enabled bool `koanf:"enabled"`
}

type RecommendConfig struct {
	DefaultMaxColleges int `koanf:"default_max_colleges"`
	LegacyMaxColleges  int `koanf:"legacy_max_colleges"`
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	switch c.Server.Mode {
	case ModeOffline, ModeOnline:
	default:
		return fmt.Errorf("MODE must be %q or %q, got %q", ModeOffline, ModeOnline, c.Server.Mode)
	}
	if strings.TrimSpace(c.Server.HTTPAddr) == "" {
		return fmt.Errorf("HTTP_ADDR is required")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.Server.RequestTimeout)
	}
	if !c.Server.RateLimitDisabled {
		if c.Server.RateLimitRequests < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Server.RateLimitRequests)
		}
		if c.Server.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Server.RateLimitWindow)
		}
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver)
	}
	switch c.Catalog.Source {
	case CatalogEmbedded, CatalogSQL:
	case CatalogFile:
		if c.Catalog.File == "" {
			return fmt.Errorf("CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
	default:
		return fmt.Errorf("CATALOG_SOURCE must be embedded, file or sql, got %q", c.Catalog.Source)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL %q is not a known level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	if c.Recommend.DefaultMaxColleges < 1 {
		return fmt.Errorf("DEFAULT_MAX_COLLEGES must be at least 1, got %d", c.Recommend.DefaultMaxColleges)
	}
	if c.Recommend.LegacyMaxColleges < 1 {
		return fmt.Errorf("LEGACY_MAX_COLLEGES must be at least 1, got %d", c.Recommend.LegacyMaxColleges)
	}
	return nil
}
