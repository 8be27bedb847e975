package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// VaccinationHandler handles vaccination CRUD requests
type VaccinationHandler struct {
	service services.VaccinationService
	logger  *slog.Logger
}

// NewVaccinationHandler creates a new vaccination handler
func NewVaccinationHandler(service services.VaccinationService, logger *slog.Logger) *VaccinationHandler {
	return &VaccinationHandler{
		service: service,
		logger:  logger,
	}
}

// Create records a vaccination
// POST /api/vaccinations
func (h *VaccinationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.VaccinationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.service.Create(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, v)
}

// List returns the caller's vaccinations across all pets
// GET /api/vaccinations
func (h *VaccinationHandler) List(w http.ResponseWriter, r *http.Request) {
	vaccinations, err := h.service.List(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, vaccinations)
}

// Get returns one vaccination
// GET /api/vaccinations/{id}
func (h *VaccinationHandler) Get(w http.ResponseWriter, r *http.Request) {
	v, err := h.service.Get(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, v)
}

// Update rewrites one vaccination
// PUT /api/vaccinations/{id}
func (h *VaccinationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.VaccinationRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.service.Update(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, v)
}

// Delete removes one vaccination
// DELETE /api/vaccinations/{id}
func (h *VaccinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Vaccination deleted successfully"})
}
