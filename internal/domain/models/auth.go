package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles a principal can carry. There are exactly two.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Principal is the authenticated actor for one request, produced by
// verifying a bearer credential. It carries exactly the fields embedded
// at issuance and lives for the duration of a single request.
type Principal struct {
	ID   string
	Role string
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Claims is the JWT payload minted at login: the principal's id and
// role plus the registered expiry. The role is trusted for the token
// lifetime (1 hour) and is not re-checked against storage; a role
// change takes effect when the credential is reissued.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// User is a row in app_users. PasswordHash never serializes.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
