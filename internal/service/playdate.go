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

type playdateService struct {
	playdateRepo repositories.PlaydateRepository
	notifRepo    repositories.NotificationRepository
	gate         *authz.Gate
	logger       *slog.Logger
}

// NewPlaydateService creates a new playdate service
func NewPlaydateService(
	playdateRepo repositories.PlaydateRepository,
	notifRepo repositories.NotificationRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.PlaydateService {
	return &playdateService{
		playdateRepo: playdateRepo,
		notifRepo:    notifRepo,
		gate:         gate,
		logger:       logger,
	}
}

// Create hosts a new playdate. New playdates start active.
func (s *playdateService) Create(ctx context.Context, p models.Principal, req *services.PlaydateRequest) (*models.Playdate, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	playdate := &models.Playdate{
		HostID:      p.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		EventDate:   *req.EventDate,
		Status:      models.PlaydateActive,
	}

	if err := s.playdateRepo.Create(ctx, playdate); err != nil {
		return nil, err
	}

	s.logger.Info("playdate created", "id", playdate.ID, "host", p.ID)

	return playdate, nil
}

// List returns every playdate, soonest first. Public to authenticated users.
func (s *playdateService) List(ctx context.Context) ([]models.Playdate, error) {
	return s.playdateRepo.List(ctx)
}

// Update rewrites a playdate. Host only. The row's status is left
// alone: expiry is one-way and owned by the sweep, so editing an
// expired playdate keeps it expired.
func (s *playdateService) Update(ctx context.Context, p models.Principal, id string, req *services.PlaydateRequest) (*models.Playdate, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	playdate := &models.Playdate{
		ID:          id,
		HostID:      p.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		EventDate:   *req.EventDate,
	}

	if err := s.playdateRepo.Update(ctx, playdate, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, s.gate.Classify(ctx, p, authz.ResourcePlaydate, id)
		}
		return nil, err
	}

	return playdate, nil
}

// Delete removes a playdate. Host only.
func (s *playdateService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.playdateRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourcePlaydate, id)
		}
		return err
	}

	s.logger.Info("playdate deleted", "id", id, "host", p.ID)

	return nil
}

// RSVP joins a playdate and notifies the host, unless the host is
// joining their own event. A failed notification never fails the RSVP.
func (s *playdateService) RSVP(ctx context.Context, p models.Principal, playdateID string) error {
	playdate, err := s.playdateRepo.GetByID(ctx, playdateID)
	if err != nil {
		return err
	}

	if err := s.playdateRepo.RSVP(ctx, playdateID, p.ID); err != nil {
		return err
	}

	if playdate.HostID != p.ID {
		notification := &models.Notification{
			UserID:      playdate.HostID,
			Type:        "rsvp",
			ReferenceID: playdateID,
			Message:     "Someone joined your playdate",
		}
		if err := s.notifRepo.Create(ctx, notification); err != nil {
			s.logger.Warn("rsvp notification failed", "playdate", playdateID, "host", playdate.HostID, "error", err)
		}
	}

	return nil
}

// ExpirePast transitions past-dated active playdates to expired.
func (s *playdateService) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	return s.playdateRepo.ExpirePast(ctx, now)
}

func (s *playdateService) validateRequest(req *services.PlaydateRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required),
		validation.Field(&req.EventDate, validation.Required),
	)
}
