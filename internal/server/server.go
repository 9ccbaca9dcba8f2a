// File: internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/xkilldash9x/exposcan/api/schemas"
	"github.com/xkilldash9x/exposcan/internal/orchestrator"
	"github.com/xkilldash9x/exposcan/internal/store"
)

// Scanner is the slice of the orchestrator the HTTP layer needs.
type Scanner interface {
	Scan(ctx context.Context, email, githubUsername string) (*schemas.Assessment, error)
}

// Server exposes the scan pipeline over HTTP.
type Server struct {
	scanner Scanner
	// store is optional; GET /api/v1/scans/{scanID} answers 404 without it.
	store  schemas.AssessmentStore
	logger *zap.Logger
}

// New creates the HTTP server. The store may be nil when persistence is
// disabled.
func New(scanner Scanner, assessmentStore schemas.AssessmentStore, logger *zap.Logger) *Server {
	return &Server{
		scanner: scanner,
		store:   assessmentStore,
		logger:  logger.Named("http"),
	}
}

// scanRequest is the POST /api/v1/scans body.
type scanRequest struct {
	Email          string `json:"email"`
	GithubUsername string `json:"githubUsername"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Routes builds the chi router for the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scans", s.handleCreateScan)
		r.Get("/scans/{scanID}", s.handleGetScan)
	})
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	assessment, err := s.scanner.Scan(r.Context(), req.Email, req.GithubUsername)
	if err != nil {
		if errors.Is(err, orchestrator.ErrEmailRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("Scan failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "scan failed"})
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "persistence is disabled"})
		return
	}

	scanID := chi.URLParam(r, "scanID")
	assessment, err := s.store.GetAssessment(r.Context(), scanID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "assessment not found"})
			return
		}
		s.logger.Error("Failed to load assessment", zap.String("scanID", scanID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load assessment"})
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}

// requestLogger logs one line per request with timing, in lieu of a metrics
// layer.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
