package repositories

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// ActivityRepository persists activities rows, owned transitively
// through the pet.
type ActivityRepository interface {
	Create(ctx context.Context, a *models.Activity) error
	ListByPet(ctx context.Context, petID string) ([]models.Activity, error)
	Update(ctx context.Context, a *models.Activity, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
	// ListBetween returns a pet's activities inside [from, to] for
	// the summary endpoint.
	ListBetween(ctx context.Context, petID string, from, to time.Time) ([]models.Activity, error)
}
