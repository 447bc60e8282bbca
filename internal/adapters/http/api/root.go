package api

import (
	"net/http"

	"github.com/okian/fincore/internal/domain/types"
)

// ServiceNamer reports the service name shown by GET /.
type ServiceNamer interface {
	ServiceName() string
}

// RootHandler handles the service status endpoint.
type RootHandler struct {
	deps ServiceNamer
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps ServiceNamer) *RootHandler {
	return &RootHandler{deps: deps}
}

// HandleRoot handles GET / requests. It is mounted on the catch-all pattern,
// so any other unmatched path is answered with 404 here.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return
	}
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, types.ServiceStatus{
		Status:  "online",
		Service: h.deps.ServiceName(),
	})
}
