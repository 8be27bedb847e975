package service

import (
	"context"
	"errors"
	"log/slog"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
)

type notificationService struct {
	notifRepo repositories.NotificationRepository
	gate      *authz.Gate
	logger    *slog.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notifRepo repositories.NotificationRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.NotificationService {
	return &notificationService{
		notifRepo: notifRepo,
		gate:      gate,
		logger:    logger,
	}
}

// List returns the caller's notifications, newest first.
func (s *notificationService) List(ctx context.Context, p models.Principal) ([]models.Notification, error) {
	return s.notifRepo.ListByUser(ctx, p.ID)
}

// MarkRead flags one of the caller's notifications as read.
func (s *notificationService) MarkRead(ctx context.Context, p models.Principal, id string) error {
	if err := s.notifRepo.MarkRead(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourceNotification, id)
		}
		return err
	}
	return nil
}

// Delete removes one of the caller's notifications.
func (s *notificationService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.notifRepo.Delete(ctx, id, p.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.gate.Classify(ctx, p, authz.ResourceNotification, id)
		}
		return err
	}
	return nil
}
