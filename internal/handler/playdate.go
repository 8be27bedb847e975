package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// PlaydateHandler handles playdate and RSVP requests
type PlaydateHandler struct {
	service services.PlaydateService
	logger  *slog.Logger
}

// NewPlaydateHandler creates a new playdate handler
func NewPlaydateHandler(service services.PlaydateService, logger *slog.Logger) *PlaydateHandler {
	return &PlaydateHandler{
		service: service,
		logger:  logger,
	}
}

// Create hosts a playdate
// POST /api/playdates
func (h *PlaydateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.PlaydateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playdate, err := h.service.Create(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, playdate)
}

// List returns every playdate, soonest first
// GET /api/playdates
func (h *PlaydateHandler) List(w http.ResponseWriter, r *http.Request) {
	playdates, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, playdates)
}

// Update rewrites a playdate (host only)
// PUT /api/playdates/{id}
func (h *PlaydateHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.PlaydateRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	playdate, err := h.service.Update(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, playdate)
}

// Delete removes a playdate (host only)
// DELETE /api/playdates/{id}
func (h *PlaydateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Playdate deleted successfully"})
}

// RSVP joins a playdate
// POST /api/playdates/{id}/rsvp
func (h *PlaydateHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RSVP(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "RSVP successful"})
}
