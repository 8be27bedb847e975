package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"pawtrack/internal/domain"
	"pawtrack/internal/domain/models"
)

// TokenTTL is the credential lifetime. Because the role is embedded in
// the token and never re-checked against storage, this also bounds the
// stale-privilege window after a role change or user deletion.
const TokenTTL = time.Hour

// Rejection reasons, both mapping to a 401 outcome.
var (
	ErrMissingCredential = fmt.Errorf("missing bearer credential: %w", domain.ErrUnauthorized)
	ErrInvalidCredential = fmt.Errorf("invalid or expired credential: %w", domain.ErrUnauthorized)
)

// TokenService mints and verifies the HS256 bearer credentials issued
// at login. Verification is pure: no storage access, no side effects.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the shared signing secret.
func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue mints a credential for the principal, valid for TokenTTL.
func (s *TokenService) Issue(userID, role string, now time.Time) (string, error) {
	claims := models.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a credential and returns the principal embedded at
// issuance. Any defect - bad signature, malformed payload, wrong
// algorithm, expired - collapses to ErrInvalidCredential; callers
// never see parser internals.
func (s *TokenService) Verify(tokenString string) (models.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{},
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		// Pin the algorithm so a crafted token cannot downgrade
		// verification (alg confusion).
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return models.Principal{}, ErrInvalidCredential
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok || claims.Subject == "" || !models.ValidRole(claims.Role) {
		return models.Principal{}, ErrInvalidCredential
	}

	return models.Principal{ID: claims.Subject, Role: claims.Role}, nil
}

// ParseBearer extracts the token from an Authorization header value.
// Empty headers and non-bearer schemes are rejected as missing.
func ParseBearer(header string) (string, error) {
	const prefix = "Bearer "
	if header == "" || !strings.HasPrefix(header, prefix) {
		return "", ErrMissingCredential
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", ErrMissingCredential
	}
	return token, nil
}
