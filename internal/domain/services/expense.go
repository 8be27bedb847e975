package services

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// ExpenseService handles expense CRUD, gated through the pet edge.
type ExpenseService interface {
	Create(ctx context.Context, p models.Principal, req *ExpenseRequest) (*models.Expense, error)
	Get(ctx context.Context, p models.Principal, id string) (*models.ExpenseWithPet, error)
	List(ctx context.Context, p models.Principal) ([]models.ExpenseWithPet, error)
	Update(ctx context.Context, p models.Principal, id string, req *ExpenseRequest) (*models.Expense, error)
	Delete(ctx context.Context, p models.Principal, id string) error
}

// ExpenseRequest represents an expense create or update request.
type ExpenseRequest struct {
	PetID       string     `json:"pet_id"`
	Category    string     `json:"category"`
	Amount      *float64   `json:"amount"`
	Description string     `json:"description,omitempty"`
	Date        *time.Time `json:"date"`
}
