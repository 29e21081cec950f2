package handler

import (
	"context"
	"net/http"

	"github.com/forgo/chapel/internal/model"
)

// DiagnosticsReporter produces the store diagnostics report
type DiagnosticsReporter interface {
	Report(ctx context.Context) *model.Diagnostics
}

// SystemHandler serves the root banner, liveness probe and store diagnostics
type SystemHandler struct {
	diagnostics DiagnosticsReporter
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(diagnostics DiagnosticsReporter) *SystemHandler {
	return &SystemHandler{diagnostics: diagnostics}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", Health)
	mux.HandleFunc("GET /test", h.Diagnostics)
}

// Root handles GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, model.MessageResponse{Message: "Church API running"})
}

// Health handles GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Diagnostics handles GET /test. It always responds 200.
func (h *SystemHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.diagnostics.Report(r.Context()))
}
