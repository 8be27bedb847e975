package services

import (
	"context"

	"pawtrack/internal/domain/models"
)

// NutritionService computes deterministic meal plans from the feeding
// guideline tables, gated through the pet edge.
type NutritionService interface {
	MealPlan(ctx context.Context, p models.Principal, petID string) (*models.MealPlan, error)
}
