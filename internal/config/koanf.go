package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/guidance/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Mode:               ModeOffline,
			HTTPAddr:           ":8080",
			RequestTimeout:     30 * time.Second,
			RateLimitRequests:  120,
			RateLimitWindow:    time.Minute,
			CORSOriginsOnline:  []string{"https://guidance.mindengage.ai"},
			CORSOriginsOffline: []string{"http://localhost:3000", "http://localhost:3010", "http://localhost:3020"},
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
		},
		Catalog: CatalogConfig{
			Source: CatalogEmbedded,
			File:   "catalog.json",
		},
		Storage: StorageConfig{
			BasePath: "./data",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
		Recommend: RecommendConfig{
			DefaultMaxColleges: 5,
			LegacyMaxColleges:  10,
		},
	}
}

// Load layers defaults, an optional YAML file and the environment, then
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"server.cors_origins_online",
	"server.cors_origins_offline",
}

// processSliceFields splits comma-separated env values into string slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	"mode":                 "server.mode",
	"http_addr":            "server.http_addr",
	"request_timeout":      "server.request_timeout",
	"cors_origins_online":  "server.cors_origins_online",
	"cors_origins_offline": "server.cors_origins_offline",
	"rate_limit_requests":  "server.rate_limit_requests",
	"rate_limit_window":    "server.rate_limit_window",
	"disable_rate_limit":   "server.rate_limit_disabled",

	"db_driver": "database.driver",
	"db_dsn":    "database.dsn",

	"catalog_source": "catalog.source",
	"catalog_file":   "catalog.file",
	"blob_base_path": "storage.base_path",

	"log_level":  "logging.level",
	"log_format": "logging.format",

	"metrics_enabled": "metrics.enabled",

	"default_max_colleges": "recommend.default_max_colleges",
	"legacy_max_colleges":  "recommend.legacy_max_colleges",
}

// envTransformFunc maps a known environment variable to its config key.
// Unknown variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
