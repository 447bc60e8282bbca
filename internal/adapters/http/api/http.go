// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/fincore/internal/domain/types"
	"github.com/okian/fincore/pkg/logger"
	"github.com/okian/fincore/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// ServiceName is reported by GET /.
	ServiceName() string

	// CreditScore scores an opaque user id.
	CreditScore(ctx context.Context, userID string) (types.CreditScore, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	rootHandler   *RootHandler
	healthHandler *HealthHandler
	creditHandler *CreditScoreHandler
	log           logger.Logger
}

// NewServer creates a new API server with all handlers. A nil log falls back
// to the global logger.
func NewServer(deps Dependencies, log logger.Logger) *Server {
	if log == nil {
		log = logger.Get()
	}
	return &Server{
		rootHandler:   NewRootHandler(deps),
		healthHandler: NewHealthHandler(),
		creditHandler: NewCreditScoreHandler(deps, log),
		log:           log,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Specific paths first (most specific to least specific)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", s.chain(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/credit-score/", s.chain(s.creditHandler.HandleGetCreditScore, "credit_score"))
	mux.HandleFunc("/", s.chain(s.rootHandler.HandleRoot, "root"))
}

// chain wraps h with the per-route middleware, outermost first:
// recover, request id, tracing, metrics.
func (s *Server) chain(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RecoverMiddleware(
		RequestIDMiddleware(
			TracingMiddleware(
				MetricsMiddleware(h, endpoint),
				endpoint),
		),
		endpoint, s.log)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// allowGet answers non-GET requests with 405 and reports whether the
// handler should continue.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	return false
}
