package repositories

import (
	"context"

	"pawtrack/internal/domain/models"
)

// PetRepository persists pets rows. Every query is scoped to the
// owning user; mutations are single conditional statements
// (WHERE id AND user_id) so a zero-row outcome surfaces as
// ErrNotFound for the gate to classify.
type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	GetByID(ctx context.Context, id, ownerID string) (*models.Pet, error)
	List(ctx context.Context, ownerID string) ([]models.Pet, error)
	Update(ctx context.Context, pet *models.Pet) error
	Delete(ctx context.Context, id, ownerID string) error
	// CountByOwner supports the owner dashboard.
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	// Count supports admin analytics.
	Count(ctx context.Context) (int, error)
}
