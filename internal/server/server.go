// Package server implements the Prometheus exporter mode: a background
// sampling loop feeding telemetry gauges plus an HTTP endpoint serving
// them in exposition format.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/pivisor/internal/errors"
	"github.com/agbru/pivisor/internal/logging"
	"github.com/agbru/pivisor/internal/telemetry"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server couples the telemetry sampler with an HTTP exporter.
type Server struct {
	addr     string
	sampler  *telemetry.Sampler
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
}

// New creates a Server listening on addr, sampling once per second.
func New(addr string, sampler *telemetry.Sampler, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		sampler:  sampler,
		metrics:  NewMetrics(),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Run starts the sampling loop and the HTTP server, blocking until ctx
// is canceled or either component fails. Shutdown is graceful: the
// listener drains in-flight requests for up to shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleMetrics)))
	mux.HandleFunc("/healthz", SecurityMiddleware(s.security, s.metricsMiddleware(s.handleHealth)))

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.sampleLoop(ctx)
	})

	g.Go(func() error {
		s.logger.Info("exporter listening",
			logging.String("addr", s.addr),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.WrapError(err, "http server")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if apperrors.IsContextError(err) {
		return nil
	}
	return err
}

// sampleLoop refreshes the telemetry gauges once per second until ctx
// is canceled. An immediate first sample seeds the network baseline so
// the second tick already reports real throughput.
func (s *Server) sampleLoop(ctx context.Context) error {
	s.recordSample(ctx)

	ticker := time.NewTicker(telemetry.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.recordSample(ctx)
		}
	}
}

func (s *Server) recordSample(ctx context.Context) {
	snap := s.sampler.Sample(ctx)
	s.metrics.Record(snap)
}

// metricsMiddleware tracks request counts around next.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition endpoint. Read-only:
// anything but GET is rejected.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("method not allowed",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
		)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
