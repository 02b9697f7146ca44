package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
)

// Product is the canonical catalog listing.
type Product struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string              `gorm:"column:name;not null"`
	Slug        string              `gorm:"column:slug;not null;uniqueIndex"`
	Description *string             `gorm:"column:description"`
	Status      enums.ProductStatus `gorm:"column:status;not null;default:'draft'"`
	Categories  []Category          `gorm:"many2many:product_categories;constraint:OnDelete:CASCADE"`
	Tags        []Tag               `gorm:"many2many:product_tags;constraint:OnDelete:CASCADE"`
	Badges      []Badge             `gorm:"many2many:product_badges;constraint:OnDelete:CASCADE"`
	Variants    []ProductVariant    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductVariant is one sellable configuration of a product. Attributes holds
// the structured jewellery attributes (metal, purity, stone weights) and
// PriceComponents the nested costPrice breakdown, both as JSON documents.
type ProductVariant struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID         uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index"`
	SKU               string          `gorm:"column:sku;not null;uniqueIndex"`
	SellingPricePaise int64           `gorm:"column:selling_price_paise;not null"`
	Attributes        json.RawMessage `gorm:"column:attributes;type:jsonb"`
	PriceComponents   json.RawMessage `gorm:"column:price_components;type:jsonb"`
	IsDefault         bool            `gorm:"column:is_default;not null;default:false"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
