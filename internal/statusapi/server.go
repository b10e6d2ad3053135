// Package statusapi exposes a minimal operational HTTP surface for a
// running heatscan process: point-in-time run status and Prometheus
// metrics. There is no job-tracking machinery here since one process
// runs exactly one Query Executor job rather than accepting new jobs
// over HTTP.
package statusapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/AIDMI-DataHub/heatscan/internal/executor"
)

// StatusProvider is satisfied by *executor.AtomicStatus.
type StatusProvider interface {
	Snapshot() executor.Snapshot
}

// MetricsHandler is satisfied by *observability.Metrics.
type MetricsHandler interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

// Server serves /health, /status, and /metrics over HTTP.
type Server struct {
	mux     *http.ServeMux
	addr    string
	logger  *slog.Logger
	status  StatusProvider
	metrics MetricsHandler
	srv     *http.Server
}

// NewServer builds a Server bound to addr (e.g. ":8090"). metrics may be
// nil to disable the /metrics route.
func NewServer(addr string, status StatusProvider, metrics MetricsHandler, logger *slog.Logger) *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		addr:    addr,
		logger:  logger.With("component", "status_api"),
		status:  status,
		metrics: metrics,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /status", s.handleStatus)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics)
	}
}

// Start launches the HTTP server in a background, fire-and-forget
// goroutine.
func (s *Server) Start() {
	s.srv = &http.Server{Addr: s.addr, Handler: s.mux}
	s.logger.Info("status api starting", "addr", s.addr)
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status api server error", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server, waiting up to the given context
// deadline for in-flight requests to finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.status == nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"error": "run not started"})
		return
	}
	s.jsonResponse(w, http.StatusOK, s.status.Snapshot())
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Fprintf(w, `{"error":%q}`, err.Error())
	}
}

// WaitForShutdown is a convenience helper used by cmd/heatscan to give
// the server a bounded window to drain in-flight requests on exit.
func WaitForShutdown(s *Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(ctx)
}
