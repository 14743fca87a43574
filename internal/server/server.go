// Package server exposes the configuration audit as an HTTP JSON API, for
// dashboards that want change logs without shelling out to the CLI.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/clustertools/confaudit/internal/ambari"
	"github.com/clustertools/confaudit/internal/audit"
	"github.com/clustertools/confaudit/internal/report"
)

// Auditor runs one full list, sort, fetch, diff pass for a configuration
// type. Implemented by audit.Runner.
type Auditor interface {
	Run(ctx context.Context, configType string) ([]audit.Event, []ambari.FetchWarning, error)
}

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server serves audit results over HTTP.
type Server struct {
	cfg        Config
	auditor    Auditor
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server backed by the given auditor.
func New(cfg Config, auditor Auditor) *Server {
	s := &Server{
		cfg:     cfg,
		auditor: auditor,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/api/v1/audit", s.handleAudit)

	return r
}

// auditResponse is the payload of GET /api/v1/audit.
type auditResponse struct {
	RunID    string   `json:"run_id"`
	Type     string   `json:"type"`
	Events   []any    `json:"events"`
	Warnings []string `json:"warnings,omitempty"`
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	configType := r.URL.Query().Get("type")
	if configType == "" {
		http.Error(w, "missing required query parameter: type", http.StatusBadRequest)
		return
	}

	events, warnings, err := s.auditor.Run(r.Context(), configType)
	if err != nil {
		status := http.StatusBadGateway
		var statusErr *ambari.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	if pattern := r.URL.Query().Get("match"); pattern != "" {
		events = audit.Filter(events, pattern)
	}

	resp := auditResponse{
		RunID:  uuid.New().String(),
		Type:   configType,
		Events: report.EventsJSON(events),
	}
	for _, warn := range warnings {
		resp.Warnings = append(resp.Warnings,
			fmt.Sprintf("version %d skipped: %v", warn.Descriptor.Version, warn.Err))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port and blocks until the server
// stops.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
