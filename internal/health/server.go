// Package health serves liveness, readiness and metrics endpoints while the
// collector runs.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// StorePinger checks connectivity to the results store.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// SessionChecker reports whether the remote session is established.
type SessionChecker interface {
	IsAuthenticated() bool
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	LastRun   string `json:"last_run,omitempty"`
	LastError string `json:"last_error,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Server is a lightweight HTTP server for health and metrics endpoints.
type Server struct {
	serviceName    string
	version        string
	port           int
	metricsPath    string
	metricsHandler http.Handler
	server         *http.Server
	logger         *logrus.Logger
	store          StorePinger
	session        SessionChecker

	mu      sync.RWMutex
	ready   bool
	lastRun time.Time
	lastErr error
}

// Config holds the configuration for the health server.
type Config struct {
	ServiceName    string
	Version        string
	Port           int
	MetricsPath    string
	MetricsHandler http.Handler
	Logger         *logrus.Logger
	Store          StorePinger
	Session        SessionChecker
}

// NewServer creates a new health check server.
func NewServer(cfg Config) *Server {
	port := cfg.Port
	if port == 0 {
		port = 9090
	}
	path := cfg.MetricsPath
	if path == "" {
		path = "/metrics"
	}

	return &Server{
		serviceName:    cfg.ServiceName,
		version:        cfg.Version,
		port:           port,
		metricsPath:    path,
		metricsHandler: cfg.MetricsHandler,
		logger:         cfg.Logger,
		store:          cfg.Store,
		session:        cfg.Session,
	}
}

// SetReady marks the server as ready to accept traffic.
func (s *Server) SetReady(ready bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ready = ready
}

// IsReady returns whether the server is ready.
func (s *Server) IsReady() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// RecordRun stores the outcome of the latest pipeline run for /health.
func (s *Server) RecordRun(finished time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastRun = finished
	s.lastErr = err
}

// Handler builds the endpoint mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/live", s.handleLive)
	if s.metricsHandler != nil {
		mux.Handle(s.metricsPath, s.metricsHandler)
	}
	return mux
}

// Start starts the server in the background and shuts it down when ctx ends.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{
				"port":    s.port,
				"service": s.serviceName,
				"metrics": s.metricsPath,
			}).Info("Health server starting")
		}

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.WithError(err).Error("Health server error")
			}
		}
	}()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown()
	}()

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}

	if s.logger != nil {
		s.logger.Info("Health server shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Service:   s.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.version,
	}

	s.mu.RLock()
	if !s.lastRun.IsZero() {
		response.LastRun = s.lastRun.UTC().Format(time.RFC3339)
	}
	if s.lastErr != nil {
		response.LastError = s.lastErr.Error()
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: s.serviceName,
	})
}

// handleReady checks the store and the remote session.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !s.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if s.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			allHealthy = false
			checks["store"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["store"] = "ok"
		}
	}

	if s.session != nil {
		if s.session.IsAuthenticated() {
			checks["session"] = "ok"
		} else {
			allHealthy = false
			checks["session"] = "not_authenticated"
		}
	}

	response := ReadyResponse{
		Service:  s.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}

	status := http.StatusOK
	response.Status = "ok"
	if !allHealthy {
		status = http.StatusServiceUnavailable
		response.Status = "not_ready"
	}

	writeJSON(w, status, response)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
