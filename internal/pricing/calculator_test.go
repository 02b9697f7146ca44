package pricing

import (
	"encoding/json"
	"testing"

	"github.com/aarshhmi/luminique-admin-backend/pkg/currency"
)

func taxedSettings() currency.Settings {
	return currency.Settings{Code: "INR", Subunits: 100, IncludeTax: true, TaxRatePercent: 3}
}

func untaxedSettings() currency.Settings {
	return currency.Settings{Code: "INR", Subunits: 100, IncludeTax: false, TaxRatePercent: 3}
}

func TestNewSellingPrice_MarkupAdditivity(t *testing.T) {
	calc := NewCalculator(untaxedSettings())

	costs := CostComponents{MakingCharge: 1000}
	markups := Markups{MakingChargeMarkup: 10}

	if got := calc.NewSellingPrice(1000, costs, markups); got != 1100 {
		t.Fatalf("expected 1100, got %d", got)
	}
}

func TestNewSellingPrice_TaxApplication(t *testing.T) {
	calc := NewCalculator(taxedSettings())

	costs := CostComponents{MakingCharge: 1000}
	markups := Markups{MakingChargeMarkup: 10}

	// increment 100, grossed up once: round(100 * 1.03) = 103
	if got := calc.NewSellingPrice(1000, costs, markups); got != 1103 {
		t.Fatalf("expected 1103, got %d", got)
	}
}

func TestNewSellingPrice_MetalNeverMarkedUp(t *testing.T) {
	calc := NewCalculator(untaxedSettings())

	costs := CostComponents{MetalPrice: 500000, MakingCharge: 1000}
	markups := Markups{MakingChargeMarkup: 10, DiamondMarkup: 50, GemstoneMarkup: 50, PearlMarkup: 50}

	// only the making charge contributes; metal cost is inert
	if got := calc.NewSellingPrice(0, costs, markups); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestNewSellingPrice_PerComponentRounding(t *testing.T) {
	calc := NewCalculator(untaxedSettings())

	// 333*10% = 33.3 -> 33 and 667*10% = 66.7 -> 67, rounded per component
	costs := CostComponents{DiamondPrice: 333, GemstonePrice: 667}
	markups := Markups{DiamondMarkup: 10, GemstoneMarkup: 10}

	if got := calc.NewSellingPrice(0, costs, markups); got != 100 {
		t.Fatalf("expected per-component rounding total 100, got %d", got)
	}
}

func TestNewSellingPrice_AllComponents(t *testing.T) {
	calc := NewCalculator(taxedSettings())

	costs := CostComponents{
		MetalPrice:    250000,
		MakingCharge:  40000,
		DiamondPrice:  120000,
		GemstonePrice: 30000,
		PearlPrice:    10000,
	}
	markups := Markups{
		MakingChargeMarkup: 12,
		DiamondMarkup:      8,
		GemstoneMarkup:     15,
		PearlMarkup:        5,
	}

	// 4800 + 9600 + 4500 + 500 = 19400; round(19400 * 1.03) = 19982
	if got := calc.NewSellingPrice(500000, costs, markups); got != 519982 {
		t.Fatalf("expected 519982, got %d", got)
	}
}

func TestAdditionalMarkupBreakdown(t *testing.T) {
	calc := NewCalculator(taxedSettings())

	costs := CostComponents{MakingCharge: 40000, DiamondPrice: 120000, GemstonePrice: 30000, PearlPrice: 10000}
	markups := Markups{MakingChargeMarkup: 12, DiamondMarkup: 8, GemstoneMarkup: 15, PearlMarkup: 5}

	breakdown := calc.AdditionalMarkupBreakdown(costs, markups)

	if breakdown.MakingChargeMarkup != 4800 {
		t.Fatalf("making charge increment: got %d", breakdown.MakingChargeMarkup)
	}
	if breakdown.DiamondMarkup != 9600 {
		t.Fatalf("diamond increment: got %d", breakdown.DiamondMarkup)
	}
	if breakdown.GemstoneMarkup != 4500 {
		t.Fatalf("gemstone increment: got %d", breakdown.GemstoneMarkup)
	}
	if breakdown.PearlMarkup != 500 {
		t.Fatalf("pearl increment: got %d", breakdown.PearlMarkup)
	}
	if breakdown.Subtotal != 19400 {
		t.Fatalf("subtotal: got %d", breakdown.Subtotal)
	}
	if breakdown.TaxAmount != 582 {
		t.Fatalf("tax amount: got %d", breakdown.TaxAmount)
	}
	if breakdown.Total != 19982 {
		t.Fatalf("total: got %d", breakdown.Total)
	}
}

func TestAdditionalMarkupBreakdown_TaxDisabled(t *testing.T) {
	calc := NewCalculator(untaxedSettings())

	breakdown := calc.AdditionalMarkupBreakdown(
		CostComponents{MakingCharge: 1000},
		Markups{MakingChargeMarkup: 10},
	)
	if breakdown.TaxAmount != 0 {
		t.Fatalf("tax must be zero when inclusion is off, got %d", breakdown.TaxAmount)
	}
	if breakdown.Total != breakdown.Subtotal {
		t.Fatalf("total must equal subtotal, got %d vs %d", breakdown.Total, breakdown.Subtotal)
	}
}

// The breakdown computes tax as an additive line while NewSellingPrice grosses
// the subtotal up in one multiplication. Both paths must round to the same
// total for equal inputs.
func TestBreakdownAgreesWithIncrementalPrice(t *testing.T) {
	for _, settings := range []currency.Settings{taxedSettings(), untaxedSettings()} {
		calc := NewCalculator(settings)

		cases := []struct {
			costs   CostComponents
			markups Markups
		}{
			{CostComponents{MakingCharge: 1000}, Markups{MakingChargeMarkup: 10}},
			{CostComponents{MakingCharge: 333, DiamondPrice: 667}, Markups{MakingChargeMarkup: 10, DiamondMarkup: 10}},
			{CostComponents{DiamondPrice: 99999}, Markups{DiamondMarkup: 7.5}},
			{CostComponents{GemstonePrice: 12345, PearlPrice: 6789}, Markups{GemstoneMarkup: 33, PearlMarkup: 1}},
			{CostComponents{MakingCharge: 1, DiamondPrice: 1, GemstonePrice: 1, PearlPrice: 1}, Markups{MakingChargeMarkup: 50, DiamondMarkup: 50, GemstoneMarkup: 50, PearlMarkup: 50}},
			{CostComponents{}, Markups{}},
		}
		for _, tc := range cases {
			breakdown := calc.AdditionalMarkupBreakdown(tc.costs, tc.markups)
			price := calc.NewSellingPrice(0, tc.costs, tc.markups)
			if breakdown.Total != price {
				t.Fatalf("settings %+v costs %+v markups %+v: breakdown total %d != price %d",
					settings, tc.costs, tc.markups, breakdown.Total, price)
			}
		}
	}
}

func TestExtractCostComponents(t *testing.T) {
	t.Run("emptyDocument", func(t *testing.T) {
		if got := ExtractCostComponents(nil); got != nil {
			t.Fatalf("expected nil for empty input, got %+v", got)
		}
		if got := ExtractCostComponents(json.RawMessage(`{}`)); got != nil {
			t.Fatalf("expected nil when costPrice is absent, got %+v", got)
		}
	})

	t.Run("nullCostPrice", func(t *testing.T) {
		if got := ExtractCostComponents(json.RawMessage(`{"costPrice": null}`)); got != nil {
			t.Fatalf("expected nil for null costPrice, got %+v", got)
		}
	})

	t.Run("malformedShapes", func(t *testing.T) {
		inputs := []string{
			`not json`,
			`{"costPrice": "everything"}`,
			`{"costPrice": [1, 2, 3]}`,
			`{"costPrice": {"diamondPrice": "five hundred"}}`,
		}
		for _, input := range inputs {
			if got := ExtractCostComponents(json.RawMessage(input)); got != nil {
				t.Fatalf("expected nil for %q, got %+v", input, got)
			}
		}
	})

	t.Run("missingFieldsDefaultToZero", func(t *testing.T) {
		got := ExtractCostComponents(json.RawMessage(`{"costPrice": {"diamondPrice": 500}}`))
		if got == nil {
			t.Fatal("expected components, got nil")
		}
		want := CostComponents{DiamondPrice: 500}
		if *got != want {
			t.Fatalf("expected %+v, got %+v", want, *got)
		}
	})

	t.Run("fullDocument", func(t *testing.T) {
		raw := json.RawMessage(`{
			"costPrice": {
				"metalPrice": 250000,
				"makingCharge": 40000,
				"diamondPrice": 120000,
				"gemstonePrice": 30000,
				"pearlPrice": 10000
			},
			"vendor": {"quote": "ignored"}
		}`)
		got := ExtractCostComponents(raw)
		if got == nil {
			t.Fatal("expected components, got nil")
		}
		want := CostComponents{MetalPrice: 250000, MakingCharge: 40000, DiamondPrice: 120000, GemstonePrice: 30000, PearlPrice: 10000}
		if *got != want {
			t.Fatalf("expected %+v, got %+v", want, *got)
		}
	})
}
