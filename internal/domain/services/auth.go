package services

import (
	"context"

	"pawtrack/internal/domain/models"
)

// AuthService handles signup and login.
type AuthService interface {
	// Signup registers a new user. A duplicate email yields a ConflictError.
	Signup(ctx context.Context, req *SignupRequest) (*models.User, error)

	// Login verifies credentials and mints a bearer token. A wrong email
	// or password yields a validation error, never a hint about which
	// part was wrong.
	Login(ctx context.Context, req *LoginRequest) (*LoginResult, error)
}

// SignupRequest represents a registration request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Role     string `json:"role,omitempty"` // defaults to user
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is a minted token plus the authenticated user.
type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}
