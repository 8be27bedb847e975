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

type healthService struct {
	logRepo repositories.HealthLogRepository
	gate    *authz.Gate
	logger  *slog.Logger
}

// NewHealthService creates a new health log service
func NewHealthService(
	logRepo repositories.HealthLogRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.HealthService {
	return &healthService{
		logRepo: logRepo,
		gate:    gate,
		logger:  logger,
	}
}

// AddLog records a health log under one of the caller's pets.
func (s *healthService) AddLog(ctx context.Context, p models.Principal, req *services.HealthLogRequest) (*models.HealthLog, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.gate.AuthorizeParent(ctx, p, authz.ResourceHealthLog, req.PetID); err != nil {
		return nil, err
	}

	l := &models.HealthLog{
		PetID:       req.PetID,
		Weight:      req.Weight,
		Temperature: req.Temperature,
		Symptoms:    req.Symptoms,
		Notes:       req.Notes,
		Date:        *req.Date,
	}

	if err := s.logRepo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("health log recorded", "id", l.ID, "pet", l.PetID)

	return l, nil
}

// ListLogs returns a pet's health logs after gating the pet itself.
func (s *healthService) ListLogs(ctx context.Context, p models.Principal, petID string) ([]models.HealthLog, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourcePet, petID, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.logRepo.ListByPet(ctx, petID)
}

func (s *healthService) UpdateLog(ctx context.Context, p models.Principal, id string, req *services.HealthLogRequest) (*models.HealthLog, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	l := &models.HealthLog{
		ID:          id,
		Weight:      req.Weight,
		Temperature: req.Temperature,
		Symptoms:    req.Symptoms,
		Notes:       req.Notes,
		Date:        *req.Date,
	}

	if err := s.logRepo.Update(ctx, l, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourceHealthLog, id)
		}
		return nil, err
	}

	return l, nil
}

func (s *healthService) DeleteLog(ctx context.Context, p models.Principal, id string) error {
	if err := s.logRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourceHealthLog, id)
		}
		return err
	}

	s.logger.Info("health log deleted", "id", id, "owner", p.ID)

	return nil
}

// WeightTrend returns a pet's weight samples after gating the pet.
func (s *healthService) WeightTrend(ctx context.Context, p models.Principal, petID string) ([]models.WeightPoint, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourcePet, petID, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.logRepo.WeightTrend(ctx, petID)
}

func (s *healthService) validateRequest(req *services.HealthLogRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.PetID, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Weight, validation.Min(0.0).Exclusive()),
		validation.Field(&req.Temperature, validation.Min(0.0).Exclusive()),
	)
}
