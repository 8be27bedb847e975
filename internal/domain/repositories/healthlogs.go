package repositories

import (
	"context"

	"pawtrack/internal/domain/models"
)

// HealthLogRepository persists health_logs rows, owned transitively
// through the pet.
type HealthLogRepository interface {
	Create(ctx context.Context, l *models.HealthLog) error
	ListByPet(ctx context.Context, petID string) ([]models.HealthLog, error)
	Update(ctx context.Context, l *models.HealthLog, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
	// WeightTrend returns dated weight samples for a pet, oldest
	// first, skipping rows without a recorded weight.
	WeightTrend(ctx context.Context, petID string) ([]models.WeightPoint, error)
}
