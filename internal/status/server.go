package status

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/turkgate/turkgate/internal/report"
)

const shutdownTimeout = 5 * time.Second

// Server handles HTTP requests for the monitor status API.
//
// Server provides three endpoints:
//   - GET /healthz: liveness probe
//   - GET /api/status: the latest cycle summary as JSON
//   - GET /api/workers: per-worker records as JSON
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	store      *report.MemoryStore
	port       int
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates a new status [Server] backed by the given store.
// The server is not started until [Server.Start] is called.
func NewServer(store *report.MemoryStore, port int, logger *slog.Logger) *Server {
	return &Server{
		store:  store,
		port:   port,
		logger: logger,
	}
}

// routes builds the chi router for the status API.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/status", s.handleStatus)
	r.Get("/api/workers", s.handleWorkers)

	return r
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the
// server is listening, so port conflicts surface synchronously. The server
// runs until the context is cancelled, then shuts down gracefully with a
// 5-second timeout.
//
// Returns an error if the server fails to bind to the configured port.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to port %d: %w", s.port, err)
	}

	s.httpServer = &http.Server{
		Handler: s.routes(),
		// BaseContext derives all request contexts from the server context
		// so in-flight handlers observe shutdown.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status server error", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("status server shutdown error", "error", err)
		}
	}()

	return nil
}

// handleHealthz reports process liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleStatus returns the latest cycle summary as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.store.Latest()
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no completed cycles yet"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		s.logger.Error("failed to encode status response", "error", err)
	}
}

// handleWorkers returns all worker records as JSON.
func (s *Server) handleWorkers(w http.ResponseWriter, r *http.Request) {
	records := s.store.Workers()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		s.logger.Error("failed to encode workers response", "error", err)
	}
}
