// Bearer-token middleware. RequireAuth guards routes that demand an identity;
// OptionalAuth attaches one when present so read endpoints can apply owner
// visibility without forcing login.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/blogging-api-go/apperror"
	"github.com/user/blogging-api-go/config"
)

// contextKey is a private type for context keys to avoid collisions with
// other packages.
type contextKey string

const userIDKey contextKey = "userID"

// UserResolver confirms that a user id carried by a token still refers to an
// existing user. *AuthService satisfies it; tests substitute a stub.
type UserResolver interface {
	GetUserByID(ctx context.Context, userID int64) (*User, error)
}

// UserIDFromContext returns the authenticated user's id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}

// NewContextWithUserID returns a child context carrying the user id. Exposed
// for handler tests that bypass the middleware.
func NewContextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// resolveBearer extracts and verifies the bearer token and resolves the user.
// It returns an AuthError describing the first check that failed.
func resolveBearer(r *http.Request, cfg *config.AuthConfig, resolver UserResolver) (int64, *apperror.AppError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return 0, apperror.NewAuthError("Authorization header is missing", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return 0, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil)
	}

	userID, err := ValidateToken(parts[1], cfg.JWTSecret)
	if err != nil {
		return 0, apperror.NewAuthError("invalid or expired token", err)
	}

	if _, err := resolver.GetUserByID(r.Context(), userID); err != nil {
		return 0, apperror.NewAuthError("user no longer exists", err)
	}

	return userID, nil
}

// RequireAuth rejects the request unless a valid bearer token resolving to an
// existing user is presented.
func RequireAuth(cfg *config.AuthConfig, resolver UserResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, appErr := resolveBearer(r, cfg, resolver)
			if appErr != nil {
				WriteError(w, r, appErr)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContextWithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and otherwise passes the request through anonymously. An invalid token is
// treated the same as no token.
func OptionalAuth(cfg *config.AuthConfig, resolver UserResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, appErr := resolveBearer(r, cfg, resolver)
			if appErr != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(NewContextWithUserID(r.Context(), userID)))
		})
	}
}
