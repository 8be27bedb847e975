package service

import (
	"context"
	"errors"
	"testing"

	"pawtrack/internal/auth"
	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/domain/services"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return &domain.ConflictError{Message: "Email already registered.", ResourceType: "user"}
	}
	user.ID = "user-" + user.Email
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := f.byID[user.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int, error) {
	return len(f.byID), nil
}

func newTestTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret")
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error: %v", err)
	}
	return tokens
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name     string
		req      *services.SignupRequest
		wantRole string
		wantErr  error
	}{
		{
			name:     "role defaults to user",
			req:      &services.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Phone: "555-0100"},
			wantRole: models.RoleUser,
		},
		{
			name:     "explicit admin role",
			req:      &services.SignupRequest{Name: "Root", Email: "root@example.com", Password: "secret123", Phone: "555-0101", Role: models.RoleAdmin},
			wantRole: models.RoleAdmin,
		},
		{
			name:    "invalid email",
			req:     &services.SignupRequest{Name: "Alice", Email: "not-an-email", Password: "secret123", Phone: "555-0100"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "short password",
			req:     &services.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "abc", Phone: "555-0100"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown role",
			req:     &services.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Phone: "555-0100", Role: "superuser"},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing name",
			req:     &services.SignupRequest{Email: "alice@example.com", Password: "secret123", Phone: "555-0100"},
			wantErr: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(newFakeUserRepo(), newTestTokens(t), testLogger())

			user, err := svc.Signup(context.Background(), tt.req)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Signup() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Signup() unexpected error: %v", err)
			}
			if user.Role != tt.wantRole {
				t.Errorf("Signup() role = %q, want %q", user.Role, tt.wantRole)
			}
			if user.PasswordHash == tt.req.Password {
				t.Error("Signup() stored the plaintext password")
			}
			if !auth.CheckPassword(user.PasswordHash, tt.req.Password) {
				t.Error("Signup() stored hash does not match the password")
			}
		})
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newTestTokens(t), testLogger())

	req := &services.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Phone: "555-0100"}
	if _, err := svc.Signup(context.Background(), req); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
	if _, err := svc.Signup(context.Background(), req); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second Signup() error = %v, want conflict", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newTestTokens(t)
	svc := NewAuthService(repo, tokens, testLogger())

	signup := &services.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Phone: "555-0100"}
	registered, err := svc.Signup(context.Background(), signup)
	if err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	result, err := svc.Login(context.Background(), &services.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if result.User.ID != registered.ID {
		t.Errorf("Login() user id = %q, want %q", result.User.ID, registered.ID)
	}

	principal, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("Verify() on login token unexpected error: %v", err)
	}
	if principal.ID != registered.ID || principal.Role != models.RoleUser {
		t.Errorf("Verify() principal = %+v, want id %q role user", principal, registered.ID)
	}
}

func TestLoginRejections(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newTestTokens(t), testLogger())

	signup := &services.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Phone: "555-0100"}
	if _, err := svc.Signup(context.Background(), signup); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	tests := []struct {
		name string
		req  *services.LoginRequest
	}{
		{"unknown email", &services.LoginRequest{Email: "nobody@example.com", Password: "secret123"}},
		{"wrong password", &services.LoginRequest{Email: "alice@example.com", Password: "wrong-password"}},
		{"missing password", &services.LoginRequest{Email: "alice@example.com"}},
		{"malformed email", &services.LoginRequest{Email: "not-an-email", Password: "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Login() error = %v, want validation failure", err)
			}
		})
	}
}

func TestLoginErrorHidesWhichFieldWasWrong(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newTestTokens(t), testLogger())

	signup := &services.SignupRequest{Name: "Alice", Email: "alice@example.com", Password: "secret123", Phone: "555-0100"}
	if _, err := svc.Signup(context.Background(), signup); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}

	_, wrongEmail := svc.Login(context.Background(), &services.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	_, wrongPassword := svc.Login(context.Background(), &services.LoginRequest{Email: "alice@example.com", Password: "wrong-password"})

	if wrongEmail == nil || wrongPassword == nil {
		t.Fatal("Login() expected errors for both wrong email and wrong password")
	}
	if wrongEmail.Error() != wrongPassword.Error() {
		t.Errorf("Login() errors differ: %q vs %q - a caller can probe which emails exist", wrongEmail, wrongPassword)
	}
}
