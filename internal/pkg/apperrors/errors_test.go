package apperrors

import (
	"errors"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "With Code",
			appError: &AppError{
				Code:    "TEST_CODE",
				Message: "This is a test error",
			},
			expected: "[TEST_CODE] This is a test error",
		},
		{
			name: "Without Code",
			appError: &AppError{
				Message: "This is a test error without code",
			},
			expected: "This is a test error without code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestNewValidationErrorMatchesSentinel(t *testing.T) {
	err := NewValidationError("username", "cannot be empty")

	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected error to match ErrValidation, got %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected error chain to contain *ValidationError, got %v", err)
	}
	if ve.Field != "username" {
		t.Errorf("expected field %q, got %q", "username", ve.Field)
	}
}

func TestWrapDatabaseErrorMatchesSentinel(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapDatabaseError(cause, "failed to insert loan")

	if !errors.Is(err, ErrDatabase) {
		t.Errorf("expected error to match ErrDatabase, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected error to wrap the original cause, got %v", err)
	}
}
