package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"medassist/internal/core"
	"medassist/pkg"
)

// ConsultationService is what the HTTP layer needs from the core.  Defined
// here to decouple handlers from the concrete consultor.
type ConsultationService interface {
	RunConsultation(ctx context.Context, req pkg.ConsultationRequest) (pkg.ConsultationResult, error)
}

// Server bundles together the dependencies required by HTTP handlers.  It
// implements http.Handler so it can be passed to http.ListenAndServe.
type Server struct {
	svc    ConsultationService
	logger *slog.Logger
	router chi.Router
}

// NewServer constructs a Server with the standard middleware stack.
func NewServer(svc ConsultationService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(2 * time.Minute))

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/api/consultations", s.handleConsultation)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleConsultation runs one isolated consultation and returns the result
// union as JSON.  A halted result is a 200: the safety halt is a correct
// outcome, not an error.
func (s *Server) handleConsultation(w http.ResponseWriter, r *http.Request) {
	var req pkg.ConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.svc.RunConsultation(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyInput):
			writeError(w, http.StatusBadRequest, core.EmptyInputPrompt)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			writeError(w, http.StatusServiceUnavailable, core.UnavailableReason)
		default:
			s.logger.Error("consultation error", "err", err)
			writeError(w, http.StatusInternalServerError, core.UnavailableReason)
		}
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
