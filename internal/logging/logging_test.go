package logging

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	Init(Config{Level: level, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })
	return &buf
}

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var m map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &m))
	return m
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"disabled": zerolog.Disabled,
		"":         zerolog.InfoLevel,
		"nonsense": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestInit_LevelFilters(t *testing.T) {
	buf := capture(t, "warn")
	Info().Msg("hidden")
	assert.Empty(t, buf.String())

	Warn().Str("k", "v").Msg("shown")
	m := lastLine(t, buf)
	assert.Equal(t, "shown", m["message"])
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, "v", m["k"])
}

func TestCtx_RequestID(t *testing.T) {
	buf := capture(t, "info")
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")
	Ctx(ctx).Info().Msg("hello")
	assert.Equal(t, "req-42", lastLine(t, buf)["request_id"])

	Ctx(context.Background()).Info().Msg("bare")
	assert.NotContains(t, lastLine(t, buf), "request_id")
}

func TestRequestLogger(t *testing.T) {
	buf := capture(t, "info")
	r := chi.NewRouter()
	r.Use(middleware.RequestID, RequestLogger)
	r.Get("/interests/{stream}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/interests/Nope", nil))
	m := lastLine(t, buf)
	assert.Equal(t, "warn", m["level"])
	assert.Equal(t, "/interests/{stream}", m["route"])
	assert.Equal(t, "/interests/Nope", m["path"])
	assert.EqualValues(t, 400, m["status"])
	assert.NotEmpty(t, m["request_id"])

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	m = lastLine(t, buf)
	assert.Equal(t, "info", m["level"])
	assert.EqualValues(t, 200, m["status"])
	assert.EqualValues(t, 2, m["bytes"])
}

func TestWithComponent(t *testing.T) {
	buf := capture(t, "info")
	l := WithComponent("catalog")
	l.Info().Msg("seeded")
	m := lastLine(t, buf)
	assert.Equal(t, "catalog", m["component"])
	assert.Equal(t, "seeded", m["message"])

	Error().Msg("boom")
	m = lastLine(t, buf)
	assert.Equal(t, "error", m["level"])
	assert.NotContains(t, m, "component")
}
