package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestGetType(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")

	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"not found", NotFoundf("system %q not found", "abc"), ErrorTypeNotFound},
		{"validation", Validation("seed is required"), ErrorTypeValidation},
		{"wrapped external", fmt.Errorf("cache: %w", WrapExternal("failed to ping Redis", cause)), ErrorTypeExternal},
		{"plain", cause, ErrorTypeInternal},
		{"nil", nil, ErrorTypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetType(tt.err); got != tt.want {
				t.Errorf("GetType() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := WrapConflict("system already stored", fmt.Errorf("unique violation"))

	if !Is(err, ErrorTypeConflict) {
		t.Error("Is(conflict) = false")
	}
	if Is(err, ErrorTypeNotFound) {
		t.Error("Is(not_found) = true")
	}
	if Is(nil, ErrorTypeInternal) {
		t.Error("Is(nil, internal) = true")
	}
}

func TestAppErrorMessage(t *testing.T) {
	cause := fmt.Errorf("axis reaches infinity")
	err := WrapGeneration("seed 4 could not be generated", cause)

	if got, want := err.Error(), "seed 4 could not be generated: axis reaches infinity"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("cause is not unwrapped")
	}
	if got := Forbidden("admin access required").Error(); got != "admin access required" {
		t.Errorf("Error() = %q", got)
	}
}
