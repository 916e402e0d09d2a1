// Package server wires configuration, the catalog and the HTTP API into a
// running guidance server.
package server

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"

	api "github.com/mind-engage/mindengage-guidance/internal/api/http"
	"github.com/mind-engage/mindengage-guidance/internal/config"
	"github.com/mind-engage/mindengage-guidance/internal/logging"
	"github.com/mind-engage/mindengage-guidance/internal/metrics"
	"github.com/mind-engage/mindengage-guidance/internal/recommend"
)

const shutdownTimeout = 10 * time.Second

// ReadyFunc reports whether the server can take traffic.
type ReadyFunc func(ctx context.Context) error

func NewRouter(cfg *config.Config, eng *recommend.Engine, ready ReadyFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.RequestLogger, middleware.Recoverer)
	if cfg.Metrics.Enabled {
		r.Use(metrics.Middleware)
	}
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: cfg.Server.Mode == config.ModeOnline,
		MaxAge:           300,
	}))

	r.Group(func(ar chi.Router) {
		ar.Use(rateLimit(cfg.Server))
		api.Mount(ar, eng, api.Limits{
			DefaultMaxColleges: cfg.Recommend.DefaultMaxColleges,
			LegacyMaxColleges:  cfg.Recommend.LegacyMaxColleges,
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if ready != nil {
			if err := ready(r.Context()); err != nil {
				logging.Ctx(r.Context()).Warn().Err(err).Msg("not ready")
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(200)
	})
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", metrics.Handler())
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	loadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cat, dbh, err := LoadCatalog(loadCtx, cfg)
	if err != nil {
		return err
	}
	var ready ReadyFunc
	if dbh != nil {
		defer dbh.Close()
		ready = pingReady(dbh)
	}
	metrics.CatalogColleges.Set(float64(len(cat.Colleges())))

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           NewRouter(cfg, recommend.NewEngine(cat), ready),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", cfg.Server.HTTPAddr).
			Str("mode", string(cfg.Server.Mode)).
			Str("catalog", cfg.Catalog.Source).
			Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutCtx, shutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown")
		return err
	}
	return nil
}

func rateLimit(s config.ServerConfig) func(http.Handler) http.Handler {
	if s.RateLimitDisabled {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(s.RateLimitRequests, s.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Too many requests"})
		}),
	)
}

func pingReady(dbh *sql.DB) ReadyFunc {
	return func(ctx context.Context) error { return dbh.PingContext(ctx) }
}
