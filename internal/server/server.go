// Package server exposes the holdings store and chart pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wealthmap/wealthmap/pkg/cache"
	"github.com/wealthmap/wealthmap/pkg/chart"
	"github.com/wealthmap/wealthmap/pkg/chart/generation"
	"github.com/wealthmap/wealthmap/pkg/holdings"
	"github.com/wealthmap/wealthmap/pkg/observability"
	"github.com/wealthmap/wealthmap/pkg/pipeline"
)

// Server wires the holdings store, cache, and chart pipeline into an HTTP
// API.
type Server struct {
	store  holdings.Store
	runner *pipeline.Runner
	opts   pipeline.Options
	allow  []holdings.AssetType
	logger *log.Logger
	gen    generation.Counter
}

// New creates a server. Nil collaborators get safe defaults: a fresh
// in-memory store, a runner with caching disabled, and the default logger.
func New(store holdings.Store, runner *pipeline.Runner, opts pipeline.Options, allow []holdings.AssetType, logger *log.Logger) *Server {
	if store == nil {
		store = holdings.NewMemoryStore()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		store:  store,
		runner: runner,
		opts:   opts,
		allow:  allow,
		logger: logger,
	}
}

// Handler builds the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/holdings", func(r chi.Router) {
			r.Get("/", s.handleListHoldings)
			r.Post("/", s.handleCreateHolding)
			r.Get("/{id}", s.handleGetHolding)
			r.Patch("/{id}", s.handleUpdateHolding)
			r.Delete("/{id}", s.handleDeleteHolding)
		})
		r.Route("/allocation", func(r chi.Router) {
			r.Get("/", s.handleAllocation)
			r.Get("/layout", s.handleAllocationLayout)
			r.Get("/chart.svg", s.handleAllocationChart)
		})
		r.Get("/gains/chart.svg", s.handleGainsChart)
	})

	return r
}

// Run serves the API until the context is canceled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// snapshotItems loads holdings and aggregates them into chart items, with
// a short-lived cache so bursts of chart requests share one store read.
// Each recompute is tagged with the write generation observed before the
// store read; if a holding was written while the read was in flight, the
// stale snapshot is returned to the caller but never cached.
func (s *Server) snapshotItems(ctx context.Context, refresh bool) ([]chart.Item, error) {
	key := s.runner.Keyer.HoldingsKey("allocation")

	if !refresh {
		if data, hit, err := s.runner.Cache.Get(ctx, key); err == nil && hit {
			if items, err := chart.UnmarshalItems(data); err == nil {
				return items, nil
			}
		}
	}

	gen := s.gen.Current()
	start := time.Now()
	hs, err := s.store.List(ctx)
	observability.Store().OnStoreOp(ctx, "list", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	items := holdings.Allocation(hs, s.allow)
	if s.gen.Accept(gen) {
		if data, err := chart.MarshalItems(items); err == nil {
			_ = s.runner.Cache.Set(ctx, key, data, cache.TTLHoldings)
		}
	}
	return items, nil
}

// invalidateSnapshot bumps the write generation and drops the cached
// allocation snapshot after a write.
func (s *Server) invalidateSnapshot(ctx context.Context) {
	s.gen.Next()
	_ = s.runner.Cache.Delete(ctx, s.runner.Keyer.HoldingsKey("allocation"))
}
