// Package handler holds the HTTP handlers for the contact form and the
// operational endpoints around it.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ranazonai/enquiry-relay/internal/handler/dto"
)

// Version is reported by GET /. Set with -ldflags "-X .../handler.Version=...".
var Version = "dev"

// Handler serves the informational and fallback routes.
type Handler struct {
	endpoints []string
}

// New returns a Handler advertising the public routes.
func New() *Handler {
	return &Handler{endpoints: []string{
		"POST /send-email",
		"GET /healthz",
		"GET /readyz",
		"GET /metrics",
	}}
}

// Hello reports that the relay is up.
// GET /
func (h *Handler) Hello(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.InfoResponse{
		Message:   "Enquiry relay is running.",
		Version:   Version,
		Endpoints: h.endpoints,
	})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, dto.MessageResponse{Message: dto.MessageNotFound})
}

func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, dto.MessageResponse{Message: dto.MessageBadMethod})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
