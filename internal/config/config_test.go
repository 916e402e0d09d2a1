package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad mode", func(c *Config) { c.Server.Mode = "hybrid" }, "MODE"},
		{"empty addr", func(c *Config) { c.Server.HTTPAddr = " " }, "HTTP_ADDR"},
		{"zero timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "REQUEST_TIMEOUT"},
		{"zero rate limit", func(c *Config) { c.Server.RateLimitRequests = 0 }, "RATE_LIMIT_REQUESTS"},
		{"zero rate window", func(c *Config) { c.Server.RateLimitWindow = 0 }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled", func(c *Config) { c.Server.RateLimitRequests = 0; c.Server.RateLimitDisabled = true }, ""},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, "DB_DRIVER"},
		{"file source needs key", func(c *Config) { c.Catalog.Source = CatalogFile; c.Catalog.File = "" }, "CATALOG_FILE"},
		{"sql source", func(c *Config) { c.Catalog.Source = CatalogSQL }, ""},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "LOG_LEVEL"},
		{"upper level", func(c *Config) { c.Logging.Level = "WARN" }, ""},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"zero default max", func(c *Config) { c.Recommend.DefaultMaxColleges = 0 }, "DEFAULT_MAX_COLLEGES"},
		{"zero legacy max", func(c *Config) { c.Recommend.LegacyMaxColleges = 0 }, "LEGACY_MAX_COLLEGES"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	s := ServerConfig{
		Mode:               ModeOnline,
		CORSOriginsOnline:  []string{"https://guidance.example"},
		CORSOriginsOffline: []string{"http://localhost:3000"},
	}
	assert.Equal(t, []string{"https://guidance.example"}, s.CORSOrigins())
	s.Mode = ModeOffline
	assert.Equal(t, []string{"http://localhost:3000"}, s.CORSOrigins())
}
