package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
)

type activityService struct {
	actRepo repositories.ActivityRepository
	gate    *authz.Gate
	logger  *slog.Logger
	now     func() time.Time
}

// NewActivityService creates a new activity service
func NewActivityService(
	actRepo repositories.ActivityRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.ActivityService {
	return &activityService{
		actRepo: actRepo,
		gate:    gate,
		logger:  logger,
		now:     time.Now,
	}
}

// Create records an activity under one of the caller's pets.
func (s *activityService) Create(ctx context.Context, p models.Principal, req *services.ActivityRequest) (*models.Activity, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.gate.AuthorizeParent(ctx, p, authz.ResourceActivity, req.PetID); err != nil {
		return nil, err
	}

	a := &models.Activity{
		PetID:    req.PetID,
		Type:     req.Type,
		Duration: req.Duration,
		Date:     *req.Date,
		Notes:    req.Notes,
	}

	if err := s.actRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("activity recorded", "id", a.ID, "pet", a.PetID, "type", a.Type)

	return a, nil
}

// List returns a pet's activities after gating the pet itself.
func (s *activityService) List(ctx context.Context, p models.Principal, petID string) ([]models.Activity, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourcePet, petID, authz.ActionRead); err != nil {
		return nil, err
	}
	return s.actRepo.ListByPet(ctx, petID)
}

func (s *activityService) Update(ctx context.Context, p models.Principal, id string, req *services.ActivityRequest) (*models.Activity, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	a := &models.Activity{
		ID:       id,
		Type:     req.Type,
		Duration: req.Duration,
		Date:     *req.Date,
		Notes:    req.Notes,
	}

	if err := s.actRepo.Update(ctx, a, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourceActivity, id)
		}
		return nil, err
	}

	return a, nil
}

func (s *activityService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.actRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourceActivity, id)
		}
		return err
	}

	s.logger.Info("activity deleted", "id", id, "owner", p.ID)

	return nil
}

// Summary aggregates the pet's activities over the trailing week or
// month. The pet is gated before any rows are read.
func (s *activityService) Summary(ctx context.Context, p models.Principal, petID, period string) (*models.ActivityReport, error) {
	if period != services.PeriodWeekly && period != services.PeriodMonthly {
		return nil, fmt.Errorf("%w: period must be weekly or monthly", domain.ErrValidation)
	}

	if err := s.gate.Authorize(ctx, p, authz.ResourcePet, petID, authz.ActionRead); err != nil {
		return nil, err
	}

	to := s.now()
	var from time.Time
	if period == services.PeriodWeekly {
		from = to.AddDate(0, 0, -7)
	} else {
		from = to.AddDate(0, -1, 0)
	}

	activities, err := s.actRepo.ListBetween(ctx, petID, from, to)
	if err != nil {
		return nil, err
	}

	report := &models.ActivityReport{
		Period: period,
		From:   from,
		To:     to,
	}
	for _, a := range activities {
		report.Summary.TotalActivities++
		switch a.Type {
		case models.ActivityWalk:
			report.Summary.Walks++
		case models.ActivityFeeding:
			report.Summary.Feeding++
		case models.ActivityPlay:
			report.Summary.Play++
		case models.ActivityMedication:
			report.Summary.Medication++
		}
		if a.Duration != nil {
			report.Summary.TotalDuration += *a.Duration
		}
	}

	return report, nil
}

func (s *activityService) validateRequest(req *services.ActivityRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.PetID, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.In(
			models.ActivityWalk,
			models.ActivityFeeding,
			models.ActivityPlay,
			models.ActivityMedication,
		)),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Duration, validation.Min(0).Exclusive()),
	)
}
