package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
)

type petService struct {
	petRepo repositories.PetRepository
	gate    *authz.Gate
	logger  *slog.Logger
}

// NewPetService creates a new pet service
func NewPetService(
	petRepo repositories.PetRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.PetService {
	return &petService{
		petRepo: petRepo,
		gate:    gate,
		logger:  logger,
	}
}

// Create registers a pet under the calling principal.
func (s *petService) Create(ctx context.Context, p models.Principal, req *services.PetRequest) (*models.Pet, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	pet := &models.Pet{
		UserID:         p.ID,
		Name:           req.Name,
		Species:        req.Species,
		Breed:          req.Breed,
		Gender:         req.Gender,
		DOB:            req.DOB,
		Weight:         req.Weight,
		MedicalHistory: req.MedicalHistory,
		PhotoURL:       req.PhotoURL,
	}

	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, err
	}

	s.logger.Info("pet created", "id", pet.ID, "owner", p.ID)

	return pet, nil
}

// Get returns one of the caller's pets. A zero-row outcome is handed
// to the gate so a foreign pet reads as Forbidden, not NotFound.
func (s *petService) Get(ctx context.Context, p models.Principal, id string) (*models.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourcePet, id)
		}
		return nil, err
	}
	return pet, nil
}

// List returns all of the caller's pets, newest first.
func (s *petService) List(ctx context.Context, p models.Principal) ([]models.Pet, error) {
	return s.petRepo.List(ctx, p.ID)
}

// Update rewrites one of the caller's pets.
func (s *petService) Update(ctx context.Context, p models.Principal, id string, req *services.PetRequest) (*models.Pet, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	pet := &models.Pet{
		ID:             id,
		UserID:         p.ID,
		Name:           req.Name,
		Species:        req.Species,
		Breed:          req.Breed,
		Gender:         req.Gender,
		DOB:            req.DOB,
		Weight:         req.Weight,
		MedicalHistory: req.MedicalHistory,
		PhotoURL:       req.PhotoURL,
	}

	if err := s.petRepo.Update(ctx, pet); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourcePet, id)
		}
		return nil, err
	}

	return pet, nil
}

// Delete removes one of the caller's pets.
func (s *petService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.petRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourcePet, id)
		}
		return err
	}

	s.logger.Info("pet deleted", "id", id, "owner", p.ID)

	return nil
}

func (s *petService) validateRequest(req *services.PetRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Species, validation.Required),
		validation.Field(&req.Weight, validation.Min(0.0).Exclusive()),
	)
}
