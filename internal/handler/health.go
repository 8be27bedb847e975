package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// HealthHandler handles health log and weight trend requests
type HealthHandler struct {
	service services.HealthService
	logger  *slog.Logger
}

// NewHealthHandler creates a new health log handler
func NewHealthHandler(service services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger,
	}
}

// AddLog records a health log
// POST /api/health-logs
func (h *HealthHandler) AddLog(w http.ResponseWriter, r *http.Request) {
	var req services.HealthLogRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	l, err := h.service.AddLog(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, l)
}

// ListLogs returns a pet's health logs
// GET /api/health-logs/pet/{petId}
func (h *HealthHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.service.ListLogs(r.Context(), httputil.GetPrincipal(r), r.PathValue("petId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, logs)
}

// UpdateLog rewrites one health log
// PUT /api/health-logs/{id}
func (h *HealthHandler) UpdateLog(w http.ResponseWriter, r *http.Request) {
	var req services.HealthLogRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	l, err := h.service.UpdateLog(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, l)
}

// DeleteLog removes one health log
// DELETE /api/health-logs/{id}
func (h *HealthHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteLog(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Health log deleted successfully"})
}

// WeightTrend returns a pet's dated weight samples
// GET /api/health-logs/pet/{petId}/weight-trend
func (h *HealthHandler) WeightTrend(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.WeightTrend(r.Context(), httputil.GetPrincipal(r), r.PathValue("petId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, points)
}
