package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/voyagehub/travel-bookings/internal/domain"
	"github.com/voyagehub/travel-bookings/internal/http/response"
	"github.com/voyagehub/travel-bookings/internal/platform/auth"
	"github.com/voyagehub/travel-bookings/internal/repo/postgres"
	"github.com/voyagehub/travel-bookings/pkg/logger"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// Authenticator resolves a bearer token into an authenticated identity.
// Three ordered checks, first failure short-circuits: header present,
// token verifies, user still exists.
type Authenticator struct {
	tokens *auth.Tokens
	users  postgres.UserRepository
}

func NewAuthenticator(tokens *auth.Tokens, users postgres.UserRepository) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			response.WriteError(w, http.StatusUnauthorized, "no token provided", response.CodeUnauthorized)
			return
		}

		userID, err := a.tokens.Verify(strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				logger.DebugContext(r.Context(), "expired token rejected")
			}
			response.WriteError(w, http.StatusUnauthorized, "invalid token", response.CodeInvalidToken)
			return
		}

		user, err := a.users.FindByID(r.Context(), userID)
		if err != nil {
			response.InternalError(w, "internal server error")
			return
		}
		if user == nil {
			// Account deleted after the token was issued.
			response.WriteError(w, http.StatusUnauthorized, "user not found", response.CodeUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxIdentity, user.ToIdentity())
		ctx = context.WithValue(ctx, logger.UserIDKey, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles allows the request through only when an authenticated
// identity is in context and its role is in the permitted set. A missing
// identity fails closed.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r)
			if !ok {
				response.Forbidden(w, "access denied")
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "access denied")
		})
	}
}

// IdentityFrom returns the identity the Authenticate middleware attached.
func IdentityFrom(r *http.Request) (domain.Identity, bool) {
	identity, ok := r.Context().Value(ctxIdentity).(domain.Identity)
	return identity, ok
}
