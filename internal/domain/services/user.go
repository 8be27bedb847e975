package services

import (
	"context"

	"pawtrack/internal/domain/models"
)

// UserService handles profile and admin user management.
type UserService interface {
	// Get returns the user's own profile.
	Get(ctx context.Context, p models.Principal) (*models.User, error)

	// Update writes the user's own profile fields.
	Update(ctx context.Context, p models.Principal, req *UpdateProfileRequest) (*models.User, error)

	// List returns every user. Admin only.
	List(ctx context.Context, p models.Principal) ([]models.User, error)

	// Delete removes a user account. Admin only.
	Delete(ctx context.Context, p models.Principal, id string) error
}

// UpdateProfileRequest represents a profile update request.
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
