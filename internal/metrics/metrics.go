// Package metrics holds the Prometheus collectors for the guidance server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recommendation stages.
const (
	StageStream   = "stream"
	StageCareer   = "career"
	StageColleges = "colleges"
)

// Recommendation results.
const (
	ResultOK         = "ok"
	ResultNoDecision = "no_decision"
	ResultEmpty      = "empty"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guidance_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "guidance_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "route"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guidance_recommendations_total",
			Help: "Recommendations served, by stage and result",
		},
		[]string{"stage", "result"},
	)

	StreamPredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guidance_stream_predictions_total",
			Help: "Stream predictions, by predicted stream",
		},
		[]string{"stream"},
	)

	CatalogColleges = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "guidance_catalog_colleges",
			Help: "Number of colleges in the loaded catalog",
		},
	)
)

func RecordRecommendation(stage, result string) {
	RecommendationsTotal.WithLabelValues(stage, result).Inc()
}

func RecordStream(stream string) {
	StreamPredictions.WithLabelValues(stream).Inc()
	RecordRecommendation(StageStream, ResultOK)
}

func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Middleware records request counts and latency labelled by the chi route
// pattern, so path parameters do not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordHTTPRequest(r.Method, route, status, time.Since(start))
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
