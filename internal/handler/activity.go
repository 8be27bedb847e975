package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// ActivityHandler handles activity CRUD and summary requests
type ActivityHandler struct {
	service services.ActivityService
	logger  *slog.Logger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service services.ActivityService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger,
	}
}

// Create records an activity
// POST /api/activities
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.ActivityRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := h.service.Create(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, a)
}

// List returns a pet's activities
// GET /api/activities/pet/{petId}
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.service.List(r.Context(), httputil.GetPrincipal(r), r.PathValue("petId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, activities)
}

// Update rewrites one activity
// PUT /api/activities/{id}
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.ActivityRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	a, err := h.service.Update(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, a)
}

// Delete removes one activity
// DELETE /api/activities/{id}
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Activity deleted successfully"})
}

// Summary aggregates a pet's activities over the trailing week or month
// GET /api/activities/pet/{petId}/summary?period=weekly|monthly
func (h *ActivityHandler) Summary(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = services.PeriodWeekly
	}

	report, err := h.service.Summary(r.Context(), httputil.GetPrincipal(r), r.PathValue("petId"), period)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, report)
}
