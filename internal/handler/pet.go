package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// PetHandler handles pet CRUD requests
type PetHandler struct {
	service services.PetService
	logger  *slog.Logger
}

// NewPetHandler creates a new pet handler
func NewPetHandler(service services.PetService, logger *slog.Logger) *PetHandler {
	return &PetHandler{
		service: service,
		logger:  logger,
	}
}

// Create registers a new pet
// POST /api/pets
func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req services.PetRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pet, err := h.service.Create(r.Context(), httputil.GetPrincipal(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, pet)
}

// List returns the caller's pets
// GET /api/pets
func (h *PetHandler) List(w http.ResponseWriter, r *http.Request) {
	pets, err := h.service.List(r.Context(), httputil.GetPrincipal(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pets)
}

// Get returns one pet
// GET /api/pets/{id}
func (h *PetHandler) Get(w http.ResponseWriter, r *http.Request) {
	pet, err := h.service.Get(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pet)
}

// Update rewrites one pet
// PUT /api/pets/{id}
func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req services.PetRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pet, err := h.service.Update(r.Context(), httputil.GetPrincipal(r), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, pet)
}

// Delete removes one pet
// DELETE /api/pets/{id}
func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), httputil.GetPrincipal(r), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"message": "Pet deleted successfully"})
}
