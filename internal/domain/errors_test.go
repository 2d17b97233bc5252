package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_ErrorsIs(t *testing.T) {
	t.Parallel()

	verr := &ValidationError{Fields: map[string]string{"title": MsgRequired}}

	if !errors.Is(verr, ErrValidation) {
		t.Error("errors.Is(ValidationError, ErrValidation) = false, want true")
	}

	// Wrapped further
	wrapped := fmt.Errorf("operation failed: %w", verr)
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("errors.Is(wrapped ValidationError, ErrValidation) = false, want true")
	}
}

func TestValidationError_ErrorsAs(t *testing.T) {
	t.Parallel()

	original := &ValidationError{Fields: map[string]string{
		"title":       MsgRequired,
		"description": MsgRequired,
	}}

	wrapped := fmt.Errorf("operation failed: %w", original)

	var verr *ValidationError
	if !errors.As(wrapped, &verr) {
		t.Fatal("errors.As(wrapped, *ValidationError) = false, want true")
	}

	if len(verr.Fields) != 2 {
		t.Errorf("ValidationError.Fields has %d entries, want 2", len(verr.Fields))
	}
	if verr.Fields["title"] != MsgRequired {
		t.Errorf("Fields[\"title\"] = %q, want %q", verr.Fields["title"], MsgRequired)
	}
}

func TestValidationError_ErrorIsSorted(t *testing.T) {
	t.Parallel()

	verr := &ValidationError{Fields: map[string]string{
		"people": "must be 1-10",
		"title":  MsgRequired,
	}}

	got := verr.Error()
	want := "validation error: people: must be 1-10; title: is required"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewValidationError(t *testing.T) {
	t.Parallel()

	verr := NewValidationError("status", "invalid")
	if verr.Fields["status"] != "invalid" {
		t.Errorf("Fields[\"status\"] = %q, want %q", verr.Fields["status"], "invalid")
	}
	if !strings.HasPrefix(verr.Error(), ErrValidation.Error()) {
		t.Errorf("Error() = %q, want prefix %q", verr.Error(), ErrValidation.Error())
	}
}

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrValidation", ErrValidation},
		{"ErrConflict", ErrConflict},
		{"ErrUnavailable", ErrUnavailable},
	}

	for _, tt := range sentinels {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Wrapping preserves identity
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) = false", tt.name)
			}
		})
	}

	// All sentinels are distinct
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a.err, b.err) {
				t.Errorf("%s and %s should be distinct", a.name, b.name)
			}
		}
	}
}
