package middleware

import (
	"errors"
	"net/http"

	"pawtrack/internal/auth"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/httputil"
)

// TokenVerifier verifies a bearer credential into a principal.
type TokenVerifier interface {
	Verify(token string) (models.Principal, error)
}

// Auth is the principal resolver middleware: it extracts the bearer
// credential, verifies it, and injects the resulting principal into
// the request context. Requests without a valid credential are
// rejected with 401 before any handler runs.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ParseBearer(r.Header.Get("Authorization"))
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "Token is missing")
				return
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				if errors.Is(err, auth.ErrMissingCredential) {
					httputil.RespondError(w, http.StatusUnauthorized, "Token is missing")
					return
				}
				httputil.RespondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithPrincipal(r, principal))
		})
	}
}

// RequireRole guards a route group behind a role. It assumes Auth has
// already run; a request with no principal or the wrong role gets 403.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := httputil.GetPrincipal(r)
			if p.ID == "" || !allowed[p.Role] {
				httputil.RespondError(w, http.StatusForbidden, "You are not authorized to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
