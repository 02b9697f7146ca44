package pricingrules

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aarshhmi/luminique-admin-backend/internal/pricing"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
)

// RuleDTO is the API shape for one pricing rule.
type RuleDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	IsActive    bool            `json:"isActive"`
	Priority    int             `json:"priority"`
	Conditions  json.RawMessage `json:"conditions"`
	Markups     pricing.Markups `json:"markups"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// RuleListResult is the cursor-paginated rule page.
type RuleListResult struct {
	Rules      []RuleDTO `json:"rules"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

// PreviewRow is the projected effect of a draft rule on one matching variant.
// HasCostBreakdown is false when the variant stores no cost components; such
// rows report an unchanged price instead of a zero increment.
type PreviewRow struct {
	ProductID         uuid.UUID         `json:"productId"`
	ProductName       string            `json:"productName"`
	VariantID         uuid.UUID         `json:"variantId"`
	SKU               string            `json:"sku"`
	CurrentPricePaise int64             `json:"currentPricePaise"`
	NewPricePaise     int64             `json:"newPricePaise"`
	HasCostBreakdown  bool              `json:"hasCostBreakdown"`
	Breakdown         *pricing.Breakdown `json:"breakdown,omitempty"`
}

// PreviewResult summarizes a dry run of a draft rule against the catalog.
type PreviewResult struct {
	MatchedVariants int          `json:"matchedVariants"`
	TotalVariants   int          `json:"totalVariants"`
	Rows            []PreviewRow `json:"rows"`
}

// NewRuleDTO maps one rule row to its API shape.
func NewRuleDTO(row *models.PricingRule) *RuleDTO {
	return &RuleDTO{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		IsActive:    row.IsActive,
		Priority:    row.Priority,
		Conditions:  row.Conditions,
		Markups: pricing.Markups{
			MakingChargeMarkup: row.MakingChargeMarkup,
			DiamondMarkup:      row.DiamondMarkup,
			GemstoneMarkup:     row.GemstoneMarkup,
			PearlMarkup:        row.PearlMarkup,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
