// Package httpapi serves the dataset queries, the realtime streams and the worldwide
// lookups over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/huangsam/airspot/core"
	"github.com/huangsam/airspot/internal/contract"
	"github.com/huangsam/airspot/internal/realtime"
	"github.com/huangsam/airspot/internal/sse"
	"github.com/urfave/negroni"
	"golang.org/x/sync/errgroup"
)

// ShutdownTimeout bounds the graceful shutdown of the HTTP server.
const ShutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr           string
	StreamInterval time.Duration // realtime snapshot period
	WorldInterval  time.Duration // worldwide stream period
	Logger         *slog.Logger
	Now            func() time.Time
}

// Server wires the HTTP routes to the dataset, the simulator and the air quality provider.
type Server struct {
	ds       *core.Dataset
	sim      *realtime.Simulator
	provider contract.AirQualityProvider

	opts    Options
	logger  *slog.Logger
	metrics *Metrics
	events  *sse.Manager
	now     func() time.Time
}

// NewServer builds a Server. Zero options fall back to the configuration defaults.
func NewServer(ds *core.Dataset, sim *realtime.Simulator, provider contract.AirQualityProvider, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = contract.DefaultHTTPAddr
	}
	if opts.StreamInterval <= 0 {
		opts.StreamInterval = contract.DefaultStreamInterval
	}
	if opts.WorldInterval <= 0 {
		opts.WorldInterval = contract.DefaultWorldInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	metrics := NewMetrics()
	return &Server{
		ds:       ds,
		sim:      sim,
		provider: provider,
		opts:     opts,
		logger:   opts.Logger,
		metrics:  metrics,
		now:      opts.Now,
		events: sse.NewManager(
			sse.WithLogger(opts.Logger),
			sse.WithClientCountHook(func(n int) { metrics.SSEClients.Set(float64(n)) }),
		),
	}
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Events returns the realtime stream manager.
func (s *Server) Events() *sse.Manager {
	return s.events
}

// Router registers every route on a gorilla/mux router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metrics.Middleware)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stats/{city}", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/timeseries/{city}/{pollutant}", s.handleTimeseries).Methods(http.MethodGet)
	api.HandleFunc("/daily/{city}/{pollutant}", s.handleDaily).Methods(http.MethodGet)
	api.HandleFunc("/hourly/{city}/{pollutant}", s.handleHourly).Methods(http.MethodGet)
	api.HandleFunc("/monthly/{city}/{pollutant}", s.handleMonthly).Methods(http.MethodGet)
	api.HandleFunc("/compare", s.handleCompare).Methods(http.MethodGet)
	api.HandleFunc("/who-limits/{city}", s.handleWHOLimits).Methods(http.MethodGet)
	api.HandleFunc("/summary", s.handleSummary).Methods(http.MethodGet)
	// The stream route must precede /realtime/{city}.
	api.Handle("/realtime/stream", sse.NewHandler(s.events, "", s.snapshot)).Methods(http.MethodGet)
	api.HandleFunc("/realtime/{city}", s.handleRealtime).Methods(http.MethodGet)

	world := api.PathPrefix("/worldwide").Subrouter()
	world.HandleFunc("/search/{city}", s.handleWorldSearch).Methods(http.MethodGet)
	world.HandleFunc("/coordinates", s.handleWorldCoordinates).Methods(http.MethodGet)
	world.HandleFunc("/forecast/{city}", s.handleWorldForecast).Methods(http.MethodGet)
	world.HandleFunc("/stream", s.handleWorldStream).Methods(http.MethodGet)
	world.HandleFunc("/popular-cities", s.handlePopularCities).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
	return r
}

// Handler wraps the router with the negroni middleware stack.
func (s *Server) Handler() http.Handler {
	recovery := negroni.NewRecovery()
	recovery.PrintStack = false
	recovery.Logger = slog.NewLogLogger(s.logger.Handler(), slog.LevelError)

	n := negroni.New(recovery, requestLogger(s.logger))
	n.UseHandler(s.Router())
	return n
}

// snapshot produces one realtime stream frame.
func (s *Server) snapshot(context.Context) (any, error) {
	return s.sim.Snapshot()
}

// Run serves until ctx is done, then shuts down gracefully. The realtime broadcaster
// runs alongside the server.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		// Streams end when ctx does, so Shutdown is not held open by them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting HTTP server", "addr", srv.Addr, "demo", s.provider.DemoMode())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sse.NewBroadcaster(s.events, "", s.opts.StreamInterval, s.snapshot).Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		s.logger.Info("shutting down HTTP server", "timeout", ShutdownTimeout)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		s.logger.Info("HTTP server stopped gracefully")
		return nil
	})
	return g.Wait()
}
