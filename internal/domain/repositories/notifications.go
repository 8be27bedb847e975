package repositories

import (
	"context"

	"pawtrack/internal/domain/models"
)

// NotificationRepository persists notifications rows, owned directly
// by user_id.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
}
