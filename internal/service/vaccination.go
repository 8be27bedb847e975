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

type vaccinationService struct {
	vaccRepo repositories.VaccinationRepository
	gate     *authz.Gate
	logger   *slog.Logger
}

// NewVaccinationService creates a new vaccination service
func NewVaccinationService(
	vaccRepo repositories.VaccinationRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.VaccinationService {
	return &vaccinationService{
		vaccRepo: vaccRepo,
		gate:     gate,
		logger:   logger,
	}
}

// Create records a vaccination under one of the caller's pets.
func (s *vaccinationService) Create(ctx context.Context, p models.Principal, req *services.VaccinationRequest) (*models.Vaccination, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.gate.AuthorizeParent(ctx, p, authz.ResourceVaccination, req.PetID); err != nil {
		return nil, err
	}

	v := &models.Vaccination{
		PetID:       req.PetID,
		VaccineName: req.VaccineName,
		GivenDate:   *req.GivenDate,
		NextDueDate: req.NextDueDate,
	}

	if err := s.vaccRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vaccination recorded", "id", v.ID, "pet", v.PetID)

	return v, nil
}

func (s *vaccinationService) Get(ctx context.Context, p models.Principal, id string) (*models.VaccinationWithPet, error) {
	v, err := s.vaccRepo.GetByID(ctx, id, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourceVaccination, id)
		}
		return nil, err
	}
	return v, nil
}

func (s *vaccinationService) List(ctx context.Context, p models.Principal) ([]models.VaccinationWithPet, error) {
	return s.vaccRepo.ListByOwner(ctx, p.ID)
}

func (s *vaccinationService) Update(ctx context.Context, p models.Principal, id string, req *services.VaccinationRequest) (*models.Vaccination, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	v := &models.Vaccination{
		ID:          id,
		VaccineName: req.VaccineName,
		GivenDate:   *req.GivenDate,
		NextDueDate: req.NextDueDate,
	}

	if err := s.vaccRepo.Update(ctx, v, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourceVaccination, id)
		}
		return nil, err
	}

	return v, nil
}

func (s *vaccinationService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.vaccRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourceVaccination, id)
		}
		return err
	}

	s.logger.Info("vaccination deleted", "id", id, "owner", p.ID)

	return nil
}

func (s *vaccinationService) validateRequest(req *services.VaccinationRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.PetID, validation.Required),
		validation.Field(&req.VaccineName, validation.Required),
		validation.Field(&req.GivenDate, validation.Required),
	)
}
