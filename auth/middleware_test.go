package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/user/blogging-api-go/apperror"
	"github.com/user/blogging-api-go/config"
)

// stubResolver stands in for the user lookup behind token verification.
type stubResolver struct {
	user *User
	err  error
}

func (s *stubResolver) GetUserByID(ctx context.Context, userID int64) (*User, error) {
	return s.user, s.err
}

var _ UserResolver = (*stubResolver)(nil)

// echoUserID writes the id from the request context, or "anonymous".
func echoUserID(t *testing.T) (http.Handler, *string) {
	t.Helper()
	seen := "unhandled"
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID, ok := UserIDFromContext(r.Context()); ok {
			seen = "user"
			_ = userID
		} else {
			seen = "anonymous"
		}
		w.WriteHeader(http.StatusOK)
	})
	return handler, &seen
}

func issueTestToken(t *testing.T, cfg config.AuthConfig, userID int64) string {
	t.Helper()
	token, err := NewAuthService(nil, cfg).IssueToken(userID)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func TestRequireAuthRejections(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour}
	resolver := &stubResolver{user: &User{ID: 42}}

	tests := []struct {
		name     string
		header   string
		resolver UserResolver
	}{
		{"missing header", "", resolver},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz", resolver},
		{"malformed bearer", "Bearer", resolver},
		{"garbage token", "Bearer not.a.token", resolver},
		{
			"valid token, deleted user",
			"Bearer " + issueTestToken(t, *cfg, 42),
			&stubResolver{err: apperror.NewNotFoundError("user with id 42 not found", nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, seen := echoUserID(t)
			handler := RequireAuth(cfg, tt.resolver)(next)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
			}
			if *seen != "unhandled" {
				t.Fatalf("next handler must not run on rejection")
			}
		})
	}
}

func TestRequireAuthHappyPath(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour}
	resolver := &stubResolver{user: &User{ID: 42}}

	var gotID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Fatalf("expected user id in context")
		}
		gotID = userID
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, *cfg, 42))
	rec := httptest.NewRecorder()
	RequireAuth(cfg, resolver)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != 42 {
		t.Fatalf("expected user id 42 in context, got %d", gotID)
	}
}

func TestOptionalAuthAnonymousPassthrough(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour}
	resolver := &stubResolver{user: &User{ID: 42}}

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"invalid token treated as anonymous", "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, seen := echoUserID(t)
			handler := OptionalAuth(cfg, resolver)(next)

			req := httptest.NewRequest(http.MethodGet, "/blogs/1", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			if *seen != "anonymous" {
				t.Fatalf("expected anonymous passthrough, got %q", *seen)
			}
		})
	}
}

func TestOptionalAuthAttachesIdentity(t *testing.T) {
	cfg := &config.AuthConfig{JWTSecret: "test-secret", TokenDuration: time.Hour}
	resolver := &stubResolver{user: &User{ID: 42}}

	next, seen := echoUserID(t)
	req := httptest.NewRequest(http.MethodGet, "/blogs/1", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, *cfg, 42))
	rec := httptest.NewRecorder()
	OptionalAuth(cfg, resolver)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if *seen != "user" {
		t.Fatalf("expected identity in context, got %q", *seen)
	}
}
