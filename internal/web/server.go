// ABOUTME: HTTP server for the dashboard API and Prometheus metrics.
// ABOUTME: Wires router, middleware, CORS and access logging; shuts down with its context.
package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/harperreed/getfit/internal/dashboard"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// Server serves the dashboard API on one address.
type Server struct {
	addr         string
	svc          *dashboard.Service
	metrics      *Metrics
	promRegistry *prometheus.Registry
	accessLog    io.Writer
}

// Option customizes a Server.
type Option func(*Server)

// WithAccessLog sends combined-format access logs to w instead of logrus
// at info level.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

// NewServer creates a Server with its own Prometheus registry.
func NewServer(svc *dashboard.Service, addr string, opts ...Option) *Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		addr:         addr,
		svc:          svc,
		metrics:      NewMetrics("getfit", "api", reg),
		promRegistry: reg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Router builds the routed handler without CORS or access logging.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	NewHandler(s.svc, s.metrics).SetupRoutes(r)
	r.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{})).Methods("GET").Name("metrics")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed on %s", r.Method, r.URL.Path))
	})

	r.Use(PanicRecovery(s.metrics))
	r.Use(RequestID())
	r.Use(RequestMetrics(s.metrics))

	return r
}

// Handler returns the full handler chain served by ListenAndServe.
// Access lines go to the writer set with WithAccessLog.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
	accessLog := s.accessLog
	if accessLog == nil {
		accessLog = io.Discard
	}
	return handlers.CombinedLoggingHandler(accessLog, cors(s.Router()))
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s.accessLog == nil {
		pw := log.StandardLogger().WriterLevel(log.InfoLevel)
		defer pw.Close()
		s.accessLog = pw
	}

	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof(" > getfit api listening on: [%s]", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	log.Debug("graceful shutdown initiated ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server shut down")
	return nil
}
