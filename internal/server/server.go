// Package server exposes the sizing engine and report rendering over a
// small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/geolab/footing/internal/report"
	"github.com/geolab/footing/internal/sizing"
)

const maxBodyBytes = 1 << 16

// Options configures a Server.
type Options struct {
	Addr            string
	RatePerSecond   float64
	Burst           int
	ShutdownTimeout time.Duration

	// MaxIterations is the engine default and the largest max_iterations
	// a request may ask for.
	MaxIterations int
	ScaleStep     float64
	// Language is the default report language; the zero value is English.
	Language report.Language

	Logger *slog.Logger
	Now    func() time.Time
}

// Server serves the footing API.
type Server struct {
	opts    Options
	engine  atomic.Pointer[engineLimits]
	logger  *slog.Logger
	now     func() time.Time
	handler http.Handler
}

type engineLimits struct {
	maxIterations int
	scaleStep     float64
}

func newEngineLimits(maxIterations int, scaleStep float64) *engineLimits {
	if maxIterations <= 0 {
		maxIterations = sizing.DefaultMaxIterations
	}
	if scaleStep == 0 {
		scaleStep = sizing.DefaultScaleStep
	}
	return &engineLimits{maxIterations: maxIterations, scaleStep: scaleStep}
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{opts: opts, logger: opts.Logger, now: opts.Now}
	s.engine.Store(newEngineLimits(opts.MaxIterations, opts.ScaleStep))
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/api/footing").Subrouter()
	if s.opts.RatePerSecond > 0 {
		api.Use(NewClientRateLimiter(rate.Limit(s.opts.RatePerSecond), s.opts.Burst).Middleware)
	}
	api.HandleFunc("/design", s.handleDesign).Methods(http.MethodPost)
	api.HandleFunc("/report", s.handleReport).Methods(http.MethodPost)

	r.Use(s.logRequests)
	return r
}

// SetEngine replaces the engine defaults and the iteration cap used by
// later requests. Requests already running keep their settings.
func (s *Server) SetEngine(maxIterations int, scaleStep float64) {
	e := newEngineLimits(maxIterations, scaleStep)
	s.engine.Store(e)
	s.logger.Info("engine settings updated", "max_iterations", e.maxIterations, "scale_step", e.scaleStep)
}

// Engine returns the current engine defaults.
func (s *Server) Engine() (maxIterations int, scaleStep float64) {
	e := s.engine.Load()
	return e.maxIterations, e.scaleStep
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", clientKey(r),
			"duration", s.now().Sub(start),
		)
	})
}

// ListenAndServe serves on opts.Addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}
