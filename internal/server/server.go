// Package server exposes the calculators over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rgehrsitz/rmgo/internal/breakeven"
	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/dashboard"
	"github.com/rgehrsitz/rmgo/internal/store"
)

// Server wires the calculators to their stores.
type Server struct {
	Engine       *calculation.CalculationEngine
	Solver       *breakeven.Solver
	Dashboards   *dashboard.Builder
	Profiles     store.ProfileStore
	Cache        store.CacheRepository
	CacheTTL     time.Duration
	MaxBodyBytes int64
	Log          *slog.Logger
}

// New creates a server with in-memory stores. Callers may replace Profiles and Cache.
func New(engine *calculation.CalculationEngine, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		Engine:       engine,
		Solver:       breakeven.NewDefaultSolver(engine),
		Dashboards:   dashboard.NewBuilder(engine),
		Profiles:     store.NewMemoryProfileStore(),
		Cache:        store.NewMemoryCache(),
		CacheTTL:     10 * time.Minute,
		MaxBodyBytes: 1 << 20,
		Log:          log,
	}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(RequestID)
	router.Use(Logger(s.Log))
	router.Use(chimw.Recoverer)
	router.Use(BodyLimit(s.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/payroll", s.handlePayroll)
		r.Post("/retirement/projection", s.handleProjection)
		r.Post("/retirement/withdrawal", s.handleWithdrawal)
		r.Post("/income-reality", s.handleIncomeReality)
		r.Get("/income-tier", s.handleIncomeTier)

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", s.handleListProfiles)
			r.Post("/", s.handleCreateProfile)
			r.Get("/{id}", s.handleGetProfile)
			r.Put("/{id}", s.handleUpdateProfile)
			r.Get("/{id}/dashboard", s.handleDashboard)
		})
	})
	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.Log.Info("rmgo server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
