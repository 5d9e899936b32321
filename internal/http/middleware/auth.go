package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/AmirejibiIlia/RateBridge/internal/httputil"
	"github.com/AmirejibiIlia/RateBridge/pkg/auth"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

type contextKey string

// PrincipalKey is the context key for the authenticated user.
const PrincipalKey contextKey = "principal"

// UserResolver resolves a token subject to a live user row.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// Auth creates middleware that validates bearer tokens and resolves the
// subject against the users table. A token whose subject no longer resolves
// is as unauthorized as no token at all.
func Auth(tokens *auth.TokenService, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string
			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenString = parts[1]
				}
			}
			if tokenString == "" {
				httputil.Error(w, http.StatusUnauthorized, "missing authorization")
				return
			}

			claims, err := tokens.Validate(tokenString)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "invalid token subject")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				httputil.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCompany gates company-scoped routes: the principal must carry a
// company reference or be a super-admin.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetPrincipal(r.Context())
		if !ok || (!user.HasCompany() && !user.IsSuperAdmin) {
			httputil.Error(w, http.StatusForbidden, "company user required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin gates cross-tenant routes.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetPrincipal(r.Context())
		if !ok || !user.IsSuperAdmin {
			httputil.Error(w, http.StatusForbidden, "super admin required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipal extracts the authenticated user from the request context.
func GetPrincipal(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(PrincipalKey).(*domain.User)
	return user, ok
}

// CompanyID extracts the principal's company id. Routes that operate on a
// concrete company reject principals without one, super-admin included.
func CompanyID(ctx context.Context) (uuid.UUID, bool) {
	user, ok := GetPrincipal(ctx)
	if !ok || user.CompanyID == nil {
		return uuid.Nil, false
	}
	return *user.CompanyID, true
}
