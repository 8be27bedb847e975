package handler

import (
	"log/slog"
	"net/http"

	"pawtrack/internal/domain/services"
	"pawtrack/internal/httputil"
)

// NutritionHandler handles meal plan requests
type NutritionHandler struct {
	service services.NutritionService
	logger  *slog.Logger
}

// NewNutritionHandler creates a new nutrition handler
func NewNutritionHandler(service services.NutritionService, logger *slog.Logger) *NutritionHandler {
	return &NutritionHandler{
		service: service,
		logger:  logger,
	}
}

// MealPlan returns a pet's deterministic daily meal plan
// GET /api/nutrition/{petId}
func (h *NutritionHandler) MealPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := h.service.MealPlan(r.Context(), httputil.GetPrincipal(r), r.PathValue("petId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, plan)
}
