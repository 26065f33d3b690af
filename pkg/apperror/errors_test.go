package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("create sale: %w", NewConflictError("Sales record for this date already exists"))

	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected wrapped conflict to match ErrConflict")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatalf("conflict must not match ErrValidation")
	}
}

func TestGetAppError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
		field   string
	}{
		{"validation", NewValidationError("amount", "amount must be 0 or greater"), http.StatusBadRequest, "amount must be 0 or greater", "amount"},
		{"conflict", NewConflictError("dup"), http.StatusBadRequest, "dup", ""},
		{"not found", NewNotFoundError("Expense not found"), http.StatusNotFound, "Expense not found", ""},
		{"precondition", NewPreconditionError("Start date and end date are required"), http.StatusBadRequest, "Start date and end date are required", ""},
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := GetAppError(tc.err)
			if got.Code != tc.code || got.Message != tc.message || got.Field != tc.field {
				t.Fatalf("got %+v, want code=%d message=%q field=%q", got, tc.code, tc.message, tc.field)
			}
		})
	}
}
