package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"auth", NewAuthError("nope", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("nope", nil), http.StatusForbidden},
		{"not found", NewNotFoundError("gone", nil), http.StatusNotFound},
		{"validation", NewValidationError("bad input", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("bad request", nil), http.StatusBadRequest},
		{"conflict", NewConflictError("duplicate", nil), http.StatusConflict},
		{"database", NewDatabaseError("db down", nil), http.StatusInternalServerError},
		{"config", NewConfigError("missing var", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("oops", nil), http.StatusInternalServerError},
		{"unknown type", New(UnknownError, "???", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Fatalf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewDatabaseError("failed to query", cause)

	if err.Error() != "failed to query: connection refused" {
		t.Fatalf("unexpected Error(): %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the cause to be reachable via errors.Is")
	}

	bare := NewNotFoundError("blog not found", nil)
	if bare.Error() != "blog not found" {
		t.Fatalf("unexpected Error() without cause: %q", bare.Error())
	}
}

func TestToResponseHidesCause(t *testing.T) {
	err := NewDatabaseError("failed to query", errors.New("password=hunter2 rejected"))
	resp := err.ToResponse()

	if resp.Success {
		t.Fatalf("expected success=false")
	}
	if resp.Message != "failed to query" {
		t.Fatalf("expected the cause to be dropped, got %q", resp.Message)
	}
}

func TestFromError(t *testing.T) {
	appErr := NewConflictError("duplicate", nil)

	if got, ok := FromError(appErr); !ok || got != appErr {
		t.Fatalf("expected direct *AppError to be recognized")
	}
	if got, ok := FromError(fmt.Errorf("wrapped: %w", appErr)); !ok || got != appErr {
		t.Fatalf("expected wrapped *AppError to be unwrapped")
	}
	if _, ok := FromError(errors.New("plain")); ok {
		t.Fatalf("plain errors must not be interpreted as AppError")
	}
	if _, ok := FromError(nil); ok {
		t.Fatalf("nil must not be interpreted as AppError")
	}
}

func TestTypePredicates(t *testing.T) {
	if !IsNotFound(NewNotFoundError("x", nil)) || IsNotFound(NewAuthError("x", nil)) {
		t.Fatalf("IsNotFound misclassified")
	}
	if !IsAuthError(NewAuthError("x", nil)) || IsAuthError(NewForbiddenError("x", nil)) {
		t.Fatalf("IsAuthError misclassified")
	}
	if !IsForbidden(NewForbiddenError("x", nil)) || IsForbidden(NewAuthError("x", nil)) {
		t.Fatalf("IsForbidden misclassified")
	}
	if !IsConflict(NewConflictError("x", nil)) || IsConflict(NewBadRequestError("x", nil)) {
		t.Fatalf("IsConflict misclassified")
	}
}
