package repositories

import (
	"context"

	"pawtrack/internal/domain/models"
)

// UserRepository persists app_users rows.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields a ConflictError.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail returns the user with the given email, including the
	// password hash. ErrNotFound if no such user.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID returns the user with the given id. ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Update writes name, email and phone for the user's own row.
	Update(ctx context.Context, user *models.User) error
	// List returns all users. Admin-only callers.
	List(ctx context.Context) ([]models.User, error)
	// Delete removes a user row. ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)
}
