package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// AppointmentHandler handles vet appointment CRUD requests
type AppointmentHandler struct {
	service services.AppointmentService
	logger  *slog.Logger
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service services.AppointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		logger:  logger,
	}
}

// Create books an appointment
// POST /api/appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.AppointmentRequest
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

// List returns the caller's appointments across all pets
// GET /api/appointments
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.List(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, appointments)
}

// Get returns one appointment
// GET /api/appointments/{id}
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, a)
}

// Update rewrites one appointment
// PUT /api/appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.AppointmentRequest
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

// Delete cancels and removes one appointment
// DELETE /api/appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Appointment deleted successfully"})
}
