// Package httpapi serves the status daemon's poll-only HTTP surface over
// the latest in-memory health report.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/KothaGPT/monitoring/internal/domain"
	"github.com/KothaGPT/monitoring/internal/httpapi/middleware"
)

// StatusSource is the scheduler's view exposed over HTTP: the latest report
// plus an on-demand probe pass.
type StatusSource interface {
	Latest() *domain.HealthReport
	CheckNow(ctx context.Context) *domain.HealthReport
}

type Server struct {
	Logger  *zap.Logger
	Status  StatusSource
	Metrics http.Handler // /metrics handler; nil disables the route
	Keys    []string     // API keys guarding POST /api/check
	RPM     int          // per-IP rate limit, requests per minute
}

func NewServer(l *zap.Logger, status StatusSource, metrics http.Handler, keys []string, rpm int) *Server {
	return &Server{Logger: l, Status: status, Metrics: metrics, Keys: keys, RPM: rpm}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)
	r.Use(middleware.RateLimit(s.RPM))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/status", s.handleStatus)
	r.Get("/api/summary", s.handleSummary)
	r.With(middleware.RequireKey(s.Keys)).Post("/api/check", s.handleCheck)

	if s.Metrics != nil {
		r.Get("/metrics", s.Metrics.ServeHTTP)
	}

	return r
}

// handleStatus returns the full latest report, 404 before the first pass.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	report := s.Status.Latest()
	if report == nil {
		writeError(w, http.StatusNotFound, "no report yet")
		return
	}
	writeJSON(w, report)
}

// handleSummary returns just the verdict of the latest report.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	report := s.Status.Latest()
	if report == nil {
		writeError(w, http.StatusNotFound, "no report yet")
		return
	}
	writeJSON(w, map[string]any{
		"all_healthy": report.AllHealthy,
		"summary":     report.Summary,
		"timestamp":   report.Timestamp,
	})
}

// handleCheck runs a probe pass right now and returns its report.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	report := s.Status.CheckNow(r.Context())
	s.Logger.Info("on_demand_check",
		zap.Bool("all_healthy", report.AllHealthy),
		zap.String("summary", report.Summary))
	writeJSON(w, report)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
