package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
	"pawtrack/internal/nutrition"
)

type nutritionService struct {
	petRepo repositories.PetRepository
	planner *nutrition.Planner
	gate    *authz.Gate
	logger  *slog.Logger
	now     func() time.Time
}

// NewNutritionService creates a new nutrition service
func NewNutritionService(
	petRepo repositories.PetRepository,
	planner *nutrition.Planner,
	gate *authz.Gate,
	logger *slog.Logger,
) services.NutritionService {
	return &nutritionService{
		petRepo: petRepo,
		planner: planner,
		gate:    gate,
		logger:  logger,
		now:     time.Now,
	}
}

// MealPlan computes the deterministic daily plan for one of the
// caller's pets.
func (s *nutritionService) MealPlan(ctx context.Context, p models.Principal, petID string) (*models.MealPlan, error) {
	pet, err := s.petRepo.GetByID(ctx, petID, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourcePet, petID)
		}
		return nil, err
	}

	return s.planner.Plan(pet, s.now())
}
