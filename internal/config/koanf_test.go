package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the loader at an empty directory so a stray config.yaml in
// the working tree is not picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	old := DefaultConfigPaths
	DefaultConfigPaths = nil
	t.Cleanup(func() { DefaultConfigPaths = old })
	for k := range envMappings {
		name := strings.ToUpper(k)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeOffline, cfg.Server.Mode)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 120, cfg.Server.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.Server.RateLimitWindow)
	assert.False(t, cfg.Server.RateLimitDisabled)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, CatalogEmbedded, cfg.Catalog.Source)
	assert.Equal(t, "./data", cfg.Storage.BasePath)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 5, cfg.Recommend.DefaultMaxColleges)
	assert.Equal(t, 10, cfg.Recommend.LegacyMaxColleges)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3010", "http://localhost:3020"}, cfg.Server.CORSOrigins())
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("MODE", "online")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://db/guidance")
	t.Setenv("CORS_ORIGINS_ONLINE", "https://a.example, https://b.example,")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("DEFAULT_MAX_COLLEGES", "3")
	t.Setenv("DISABLE_RATE_LIMIT", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeOnline, cfg.Server.Mode)
	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://db/guidance", cfg.Database.DSN)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins())
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 3, cfg.Recommend.DefaultMaxColleges)
	assert.True(t, cfg.Server.RateLimitDisabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  http_addr: ":7000"
catalog:
  source: file
  file: colleges/catalog.json
logging:
  level: warn
`), 0o644))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.HTTPAddr)
	assert.Equal(t, CatalogFile, cfg.Catalog.Source)
	assert.Equal(t, "colleges/catalog.json", cfg.Catalog.File)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("CATALOG_SOURCE", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_SOURCE")
}
