// Package http exposes the conversation engine over a JSON HTTP API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sereno-labs/sereno/internal/metrics"
	"github.com/sereno-labs/sereno/pkg/conversation"
	"github.com/sereno-labs/sereno/pkg/domain"
)

// Server routes API requests to the orchestrator.
type Server struct {
	orch    *conversation.Orchestrator
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHandler builds the HTTP handler. metrics and logger may be nil.
func NewHandler(orch *conversation.Orchestrator, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{orch: orch, metrics: m, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/v1/commands", s.handleCommand)
	r.Get("/v1/users/{userID}/session", s.handleStatus)
	r.Get("/v1/users/{userID}/mood-history", s.handleMoodHistory)

	return r
}

type commandRequest struct {
	UserID string `json:"user_id"`
	Input  string `json:"input"`
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var body commandRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.UserID) == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	cmd, _ := domain.ParseCommand(body.Input)
	result, err := s.orch.Handle(r.Context(), body.UserID, body.Input)
	if err != nil {
		s.countCommand(cmd, "error")
		if s.metrics != nil && errors.Is(err, domain.ErrStoreUnavailable) {
			s.metrics.StoreErrors.Inc()
		}
		s.logger.Error("command failed", "user_id", body.UserID, "command", cmd, "err", err)
		// The caller may retry; nothing was partially persisted.
		http.Error(w, "temporarily unavailable, please retry", http.StatusServiceUnavailable)
		return
	}

	outcome := "accepted"
	status := http.StatusOK
	if result.Rejected {
		outcome = "rejected"
		status = http.StatusUnprocessableEntity
	}
	s.countCommand(cmd, outcome)
	writeJSON(w, status, result)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	resp, err := s.orch.Status(r.Context(), userID)
	if err != nil {
		s.logger.Error("status failed", "user_id", userID, "err", err)
		http.Error(w, "temporarily unavailable, please retry", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMoodHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := s.orch.MoodHistory(r.Context(), userID, limit)
	if err != nil {
		s.logger.Error("mood history failed", "user_id", userID, "err", err)
		http.Error(w, "temporarily unavailable, please retry", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) countCommand(cmd, outcome string) {
	if s.metrics != nil {
		s.metrics.CommandsTotal.WithLabelValues(cmd, outcome).Inc()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
