package services

import (
	"context"
	"time"

	"pawtrack/internal/domain/models"
)

// PetService handles pet CRUD, always scoped to the owning principal.
type PetService interface {
	Create(ctx context.Context, p models.Principal, req *PetRequest) (*models.Pet, error)
	Get(ctx context.Context, p models.Principal, id string) (*models.Pet, error)
	List(ctx context.Context, p models.Principal) ([]models.Pet, error)
	Update(ctx context.Context, p models.Principal, id string, req *PetRequest) (*models.Pet, error)
	Delete(ctx context.Context, p models.Principal, id string) error
}

// PetRequest represents a pet create or update request.
type PetRequest struct {
	Name           string     `json:"name"`
	Species        string     `json:"species"`
	Breed          string     `json:"breed,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	DOB            *time.Time `json:"dob,omitempty"`
	Weight         *float64   `json:"weight,omitempty"`
	MedicalHistory string     `json:"medical_history,omitempty"`
	PhotoURL       string     `json:"photo_url,omitempty"`
}
