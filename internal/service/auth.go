package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"pawtrack/internal/auth"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/repositories"
	"pawtrack/internal/domain/services"
)

type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenService
	logger   *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenService,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Signup registers a new user with a bcrypt-hashed password.
func (s *authService) Signup(ctx context.Context, req *services.SignupRequest) (*models.User, error) {
	if err := s.validateSignupRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         role,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "id", user.ID, "role", user.Role)

	return user, nil
}

// Login verifies credentials and mints a bearer token. A wrong email
// and a wrong password produce the same error.
func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*services.LoginResult, error) {
	if err := s.validateLoginRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", domain.ErrValidation)
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", domain.ErrValidation)
	}

	token, err := s.tokens.Issue(user.ID, user.Role, time.Now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "id", user.ID)

	return &services.LoginResult{Token: token, User: user}, nil
}

func (s *authService) validateSignupRequest(req *services.SignupRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required, validation.Length(6, 72)),
		validation.Field(&req.Phone, validation.Required),
		validation.Field(&req.Role, validation.In(models.RoleAdmin, models.RoleUser)),
	)
}

func (s *authService) validateLoginRequest(req *services.LoginRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
