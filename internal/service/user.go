package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"pawtrack/internal/authz"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
)

type userService struct {
	userRepo repositories.UserRepository
	gate     *authz.Gate
	logger   *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	gate *authz.Gate,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		userRepo: userRepo,
		gate:     gate,
		logger:   logger,
	}
}

// Get returns the caller's own profile.
func (s *userService) Get(ctx context.Context, p models.Principal) (*models.User, error) {
	return s.userRepo.GetByID(ctx, p.ID)
}

// Update writes the caller's own profile fields.
func (s *userService) Update(ctx context.Context, p models.Principal, req *services.UpdateProfileRequest) (*models.User, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user := &models.User{
		ID:    p.ID,
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "id", p.ID)

	return user, nil
}

// List returns every user. Admin only.
func (s *userService) List(ctx context.Context, p models.Principal) ([]models.User, error) {
	if err := s.gate.Authorize(ctx, p, authz.ResourceUser, "", authz.ActionAdminOnly); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

// Delete removes a user account. Admin only.
func (s *userService) Delete(ctx context.Context, p models.Principal, id string) error {
	if err := s.gate.Authorize(ctx, p, authz.ResourceUser, id, authz.ActionAdminOnly); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", "id", id, "by", p.ID)

	return nil
}

func (s *userService) validateUpdateRequest(req *services.UpdateProfileRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Phone, validation.Required),
	)
}
