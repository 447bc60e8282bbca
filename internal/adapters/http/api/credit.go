package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/okian/fincore/internal/domain/types"
	"github.com/okian/fincore/pkg/logger"
)

const creditScorePrefix = "/credit-score/"

// CreditScoreDependencies defines the interface for scoring operations.
type CreditScoreDependencies interface {
	CreditScore(ctx context.Context, userID string) (types.CreditScore, error)
}

// CreditScoreHandler handles credit score requests.
type CreditScoreHandler struct {
	deps CreditScoreDependencies
	log  logger.Logger
}

// NewCreditScoreHandler creates a new credit score handler.
func NewCreditScoreHandler(deps CreditScoreDependencies, log logger.Logger) *CreditScoreHandler {
	return &CreditScoreHandler{deps: deps, log: log}
}

// HandleGetCreditScore handles GET /credit-score/{user_id} requests.
func (h *CreditScoreHandler) HandleGetCreditScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromPath(r.URL)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return
	}
	if !allowGet(w, r) {
		return
	}

	score, err := h.deps.CreditScore(r.Context(), userID)
	if err != nil {
		h.log.Error(r.Context(), "credit score failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrInternal)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// userIDFromPath extracts the single path segment after /credit-score/.
// The escaped path is split so an encoded slash stays inside the id, while a
// literal nested path is rejected. The empty segment is a valid id.
func userIDFromPath(u *url.URL) (string, bool) {
	raw, found := strings.CutPrefix(u.EscapedPath(), creditScorePrefix)
	if !found || strings.Contains(raw, "/") {
		return "", false
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	return id, true
}
