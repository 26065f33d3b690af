package validation

import (
	"errors"
	"testing"

	"github.com/sangkips/daybook-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

type sampleInput struct {
	Description string           `json:"description" validate:"notblank"`
	Amount      *decimal.Decimal `json:"amount" validate:"required,gte=0"`
	Method      string           `json:"paymentMethod" validate:"oneof=bankak cash"`
	Date        string           `json:"date" validate:"isodate"`
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestStructReportsOffendingField(t *testing.T) {
	v := New()

	cases := []struct {
		name  string
		in    sampleInput
		field string
	}{
		{"blank description", sampleInput{Description: "  ", Amount: amount("1"), Method: "cash", Date: "2024-01-01"}, "description"},
		{"missing amount", sampleInput{Description: "x", Method: "cash", Date: "2024-01-01"}, "amount"},
		{"negative amount", sampleInput{Description: "x", Amount: amount("-0.5"), Method: "cash", Date: "2024-01-01"}, "amount"},
		{"unknown method", sampleInput{Description: "x", Amount: amount("1"), Method: "card", Date: "2024-01-01"}, "paymentMethod"},
		{"bad date", sampleInput{Description: "x", Amount: amount("1"), Method: "bankak", Date: "2024-13-01"}, "date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.in)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if got := apperror.GetAppError(err).Field; got != tc.field {
				t.Fatalf("field = %q, want %q", got, tc.field)
			}
		})
	}
}

func TestStructAcceptsZeroAmount(t *testing.T) {
	v := New()
	in := sampleInput{Description: "free sample", Amount: amount("0"), Method: "bankak", Date: "2024-02-29"}
	if err := v.Struct(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsISODate(t *testing.T) {
	cases := map[string]bool{
		"2024-01-01": true,
		"2024-02-29": true,
		"2023-02-29": false,
		"2024-1-01":  false,
		"01-01-2024": false,
		"":           false,
	}
	for in, want := range cases {
		if got := IsISODate(in); got != want {
			t.Errorf("IsISODate(%q) = %v, want %v", in, got, want)
		}
	}
}
