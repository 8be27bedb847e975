package repositories

import (
	"context"

	"pawtrack/internal/domain/models"
)

// ExpenseRepository persists expenses rows, owned transitively
// through the pet.
type ExpenseRepository interface {
	Create(ctx context.Context, e *models.Expense) error
	GetByID(ctx context.Context, id, ownerID string) (*models.ExpenseWithPet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.ExpenseWithPet, error)
	Update(ctx context.Context, e *models.Expense, ownerID string) error
	Delete(ctx context.Context, id, ownerID string) error
}
