package services

import (
	"context"

	"pawtrack/internal/domain/models"
)

// NotificationService handles the caller's own notifications.
type NotificationService interface {
	List(ctx context.Context, p models.Principal) ([]models.Notification, error)
	MarkRead(ctx context.Context, p models.Principal, id string) error
	Delete(ctx context.Context, p models.Principal, id string) error
}
