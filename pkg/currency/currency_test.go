package currency

import (
	"testing"

	"github.com/shopspring/decimal"
)

func inrSettings(includeTax bool) Settings {
	return Settings{
		Code:           "INR",
		Locale:         "en-IN",
		Subunits:       100,
		IncludeTax:     includeTax,
		TaxRatePercent: 3,
	}
}

func TestCalculateTax(t *testing.T) {
	s := inrSettings(true)

	tests := []struct {
		amount int64
		want   int64
	}{
		{amount: 0, want: 0},
		{amount: 100, want: 3},
		{amount: 10000, want: 300},
		{amount: 50, want: 2},  // 1.5 rounds away from zero
		{amount: -50, want: -2},
		{amount: 33, want: 1}, // 0.99 rounds up
	}
	for _, tt := range tests {
		if got := s.CalculateTax(tt.amount); got != tt.want {
			t.Fatalf("CalculateTax(%d) = %d, want %d", tt.amount, got, tt.want)
		}
	}
}

func TestAddTax(t *testing.T) {
	t.Run("inclusionEnabled", func(t *testing.T) {
		s := inrSettings(true)
		if got := s.AddTax(10000); got != 10300 {
			t.Fatalf("AddTax(10000) = %d, want 10300", got)
		}
	})

	t.Run("inclusionDisabled", func(t *testing.T) {
		s := inrSettings(false)
		if got := s.AddTax(10000); got != 10000 {
			t.Fatalf("AddTax with tax off must be identity, got %d", got)
		}
	})
}

func TestRemoveTax(t *testing.T) {
	t.Run("inclusionEnabled", func(t *testing.T) {
		s := inrSettings(true)
		if got := s.RemoveTax(10300); got != 10000 {
			t.Fatalf("RemoveTax(10300) = %d, want 10000", got)
		}
	})

	t.Run("inclusionDisabled", func(t *testing.T) {
		s := inrSettings(false)
		if got := s.RemoveTax(10300); got != 10300 {
			t.Fatalf("RemoveTax with tax off must be identity, got %d", got)
		}
	})

	t.Run("roundTripsAddTax", func(t *testing.T) {
		s := inrSettings(true)
		for _, amount := range []int64{1, 99, 100, 999, 10000, 123456} {
			gross := s.AddTax(amount)
			if got := s.RemoveTax(gross); got != amount {
				t.Fatalf("RemoveTax(AddTax(%d)) = %d", amount, got)
			}
		}
	})
}

func TestDisplayConversion(t *testing.T) {
	s := inrSettings(true)

	if got := s.ToDisplay(12345); !got.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("ToDisplay(12345) = %s", got)
	}
	if got := s.FromDisplay(decimal.RequireFromString("123.45")); got != 12345 {
		t.Fatalf("FromDisplay(123.45) = %d", got)
	}
	// extra precision rounds half away from zero
	if got := s.FromDisplay(decimal.RequireFromString("0.125")); got != 13 {
		t.Fatalf("FromDisplay(0.125) = %d, want 13", got)
	}
}
