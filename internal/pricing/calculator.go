package pricing

import (
	"encoding/json"

	"github.com/aarshhmi/luminique-admin-backend/pkg/currency"
)

// CostComponents is the stored cost-price breakdown of a variant, in the
// currency's smallest unit. Metal is cost-only: no rule carries a metal markup
// lever, so MetalPrice never contributes to an increment.
type CostComponents struct {
	MetalPrice    int64 `json:"metalPrice"`
	MakingCharge  int64 `json:"makingCharge"`
	DiamondPrice  int64 `json:"diamondPrice"`
	GemstonePrice int64 `json:"gemstonePrice"`
	PearlPrice    int64 `json:"pearlPrice"`
}

// Markups holds a rule's markup percentages. The calculator does not
// range-check them; callers sanitize input before calling.
type Markups struct {
	MakingChargeMarkup float64 `json:"makingChargeMarkup"`
	DiamondMarkup      float64 `json:"diamondMarkup"`
	GemstoneMarkup     float64 `json:"gemstoneMarkup"`
	PearlMarkup        float64 `json:"pearlMarkup"`
}

// Breakdown itemizes the incremental markup a rule would add, with tax as an
// explicit line item.
type Breakdown struct {
	MakingChargeMarkup int64 `json:"makingChargeMarkup"`
	DiamondMarkup      int64 `json:"diamondMarkup"`
	GemstoneMarkup     int64 `json:"gemstoneMarkup"`
	PearlMarkup        int64 `json:"pearlMarkup"`
	Subtotal           int64 `json:"subtotal"`
	TaxAmount          int64 `json:"taxAmount"`
	Total              int64 `json:"total"`
}

// Calculator computes incremental selling prices under the process currency
// settings.
type Calculator struct {
	settings currency.Settings
}

// NewCalculator builds a calculator bound to the given currency settings.
func NewCalculator(settings currency.Settings) Calculator {
	return Calculator{settings: settings}
}

// NewSellingPrice previews the selling price after applying a draft rule's
// markups on top of the current price.
//
// Saved rules are additive: the current selling price already embeds every
// previously applied rule, so the preview computes only the increment the new
// rule contributes, always from cost components and never from the marked-up
// price. Each component increment rounds once, then the aggregated subtotal
// rounds once more when grossed up with tax. The two-stage rounding is load
// bearing; collapsing it changes results by a unit for some inputs.
func (c Calculator) NewSellingPrice(currentSellingPrice int64, costs CostComponents, markups Markups) int64 {
	subtotal := incrementSubtotal(costs, markups)

	subtotalWithTax := subtotal
	if c.settings.IncludeTax {
		subtotalWithTax = currency.Round(float64(subtotal) * (1 + float64(c.settings.TaxRatePercent)/100))
	}

	return currentSellingPrice + subtotalWithTax
}

// AdditionalMarkupBreakdown itemizes the increment per component. Tax is
// computed as an additive line on the subtotal rather than through the
// gross-up formula; the two agree on equal inputs, which the tests pin.
func (c Calculator) AdditionalMarkupBreakdown(costs CostComponents, markups Markups) Breakdown {
	breakdown := Breakdown{
		MakingChargeMarkup: markupIncrement(costs.MakingCharge, markups.MakingChargeMarkup),
		DiamondMarkup:      markupIncrement(costs.DiamondPrice, markups.DiamondMarkup),
		GemstoneMarkup:     markupIncrement(costs.GemstonePrice, markups.GemstoneMarkup),
		PearlMarkup:        markupIncrement(costs.PearlPrice, markups.PearlMarkup),
	}
	breakdown.Subtotal = breakdown.MakingChargeMarkup + breakdown.DiamondMarkup +
		breakdown.GemstoneMarkup + breakdown.PearlMarkup

	if c.settings.IncludeTax {
		breakdown.TaxAmount = c.settings.CalculateTax(breakdown.Subtotal)
	}
	breakdown.Total = breakdown.Subtotal + breakdown.TaxAmount
	return breakdown
}

// ExtractCostComponents reads the nested costPrice object out of a variant's
// price-components document. Any shape mismatch yields nil rather than an
// error: nil means "no cost breakdown available", which callers must treat as
// distinct from a valid all-zero breakdown. Individual missing fields default
// to zero.
func ExtractCostComponents(raw json.RawMessage) *CostComponents {
	if len(raw) == 0 {
		return nil
	}
	var doc struct {
		CostPrice json.RawMessage `json:"costPrice"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}
	if len(doc.CostPrice) == 0 || string(doc.CostPrice) == "null" {
		return nil
	}
	var costs CostComponents
	if err := json.Unmarshal(doc.CostPrice, &costs); err != nil {
		return nil
	}
	return &costs
}

func incrementSubtotal(costs CostComponents, markups Markups) int64 {
	return markupIncrement(costs.MakingCharge, markups.MakingChargeMarkup) +
		markupIncrement(costs.DiamondPrice, markups.DiamondMarkup) +
		markupIncrement(costs.GemstonePrice, markups.GemstoneMarkup) +
		markupIncrement(costs.PearlPrice, markups.PearlMarkup)
}

func markupIncrement(cost int64, markupPercent float64) int64 {
	return currency.Round(float64(cost) * markupPercent / 100)
}
