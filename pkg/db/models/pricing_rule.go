package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PricingRule stores a named condition set plus the markup percentages applied
// to matching variants. Conditions is the JSON condition envelope list decoded
// by internal/pricing.
type PricingRule struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	Priority    int             `gorm:"column:priority;not null;default:0"`
	Conditions  json.RawMessage `gorm:"column:conditions;type:jsonb;not null"`

	MakingChargeMarkup float64 `gorm:"column:making_charge_markup;type:numeric(6,2);not null;default:0"`
	DiamondMarkup      float64 `gorm:"column:diamond_markup;type:numeric(6,2);not null;default:0"`
	GemstoneMarkup     float64 `gorm:"column:gemstone_markup;type:numeric(6,2);not null;default:0"`
	PearlMarkup        float64 `gorm:"column:pearl_markup;type:numeric(6,2);not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
