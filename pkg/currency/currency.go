// Package currency implements fixed-point monetary arithmetic on amounts
// expressed in the currency's smallest unit (paise for INR). Floating-point
// values never cross a package boundary; every operation rounds exactly once.
package currency

import (
	"math"

	"github.com/aarshhmi/luminique-admin-backend/pkg/config"
	"github.com/shopspring/decimal"
)

// Settings is the process-wide currency/tax configuration. It is built once at
// boot from config and treated as read-only afterwards.
type Settings struct {
	Code           string
	Locale         string
	Subunits       int64
	IncludeTax     bool
	TaxRatePercent int64
}

// FromConfig converts the env-driven configuration into Settings.
func FromConfig(cfg config.CurrencyConfig) Settings {
	return Settings{
		Code:           cfg.Code,
		Locale:         cfg.Locale,
		Subunits:       int64(cfg.Subunits),
		IncludeTax:     cfg.IncludeTax,
		TaxRatePercent: int64(cfg.TaxRatePercent),
	}
}

// Round applies half-away-from-zero rounding, the semantics used everywhere
// amounts are derived from percentages.
func Round(value float64) int64 {
	return int64(math.Round(value))
}

// CalculateTax returns the tax portion for a pre-tax amount.
func (s Settings) CalculateTax(amountWithoutTax int64) int64 {
	return Round(float64(amountWithoutTax) * float64(s.TaxRatePercent) / 100)
}

// AddTax grosses up the amount when tax inclusion is configured, otherwise
// returns it unchanged.
func (s Settings) AddTax(amount int64) int64 {
	if !s.IncludeTax {
		return amount
	}
	return amount + s.CalculateTax(amount)
}

// RemoveTax strips the configured tax from a tax-inclusive amount.
func (s Settings) RemoveTax(amountWithTax int64) int64 {
	if !s.IncludeTax {
		return amountWithTax
	}
	return Round(float64(amountWithTax) / (1 + float64(s.TaxRatePercent)/100))
}

// ToDisplay converts smallest units into the display denomination.
func (s Settings) ToDisplay(amount int64) decimal.Decimal {
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(s.Subunits))
}

// FromDisplay converts a display amount into smallest units, rounding half away
// from zero when the value carries more precision than the subunit allows.
func (s Settings) FromDisplay(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(s.Subunits)).Round(0).IntPart()
}
