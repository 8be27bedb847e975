package services

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// VaccinationService handles vaccination CRUD, gated through the pet edge.
type VaccinationService interface {
	Create(ctx context.Context, p models.Principal, req *VaccinationRequest) (*models.Vaccination, error)
	Get(ctx context.Context, p models.Principal, id string) (*models.VaccinationWithPet, error)
	List(ctx context.Context, p models.Principal) ([]models.VaccinationWithPet, error)
	Update(ctx context.Context, p models.Principal, id string, req *VaccinationRequest) (*models.Vaccination, error)
	Delete(ctx context.Context, p models.Principal, id string) error
}

// VaccinationRequest represents a vaccination create or update request.
type VaccinationRequest struct {
	PetID       string     `json:"pet_id"`
	VaccineName string     `json:"vaccine_name"`
	GivenDate   *time.Time `json:"given_date"`
	NextDueDate *time.Time `json:"next_due_date,omitempty"`
}
