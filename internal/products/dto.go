package products

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aarshhmi/luminique-admin-backend/internal/pricing"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
)

// ProductDTO is the API shape for one catalog product with its taxonomy and
// variants.
type ProductDTO struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Slug        string              `json:"slug"`
	Description *string             `json:"description,omitempty"`
	Status      enums.ProductStatus `json:"status"`
	CategoryIDs []uuid.UUID         `json:"categoryIds"`
	TagIDs      []uuid.UUID         `json:"tagIds"`
	BadgeIDs    []uuid.UUID         `json:"badgeIds"`
	Variants    []VariantDTO        `json:"variants"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// VariantDTO is the API shape for one sellable variant.
type VariantDTO struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"productId"`
	SKU               string          `json:"sku"`
	SellingPricePaise int64           `json:"sellingPricePaise"`
	Attributes        json.RawMessage `json:"attributes,omitempty"`
	PriceComponents   json.RawMessage `json:"priceComponents,omitempty"`
	IsDefault         bool            `json:"isDefault"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// ProductListResult is the cursor-paginated product page.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"nextCursor,omitempty"`
}

// PricingCandidate pairs one variant with the product-level view the
// condition matcher consumes.
type PricingCandidate struct {
	ProductID         uuid.UUID
	ProductName       string
	VariantID         uuid.UUID
	SKU               string
	SellingPricePaise int64
	PriceComponents   json.RawMessage
	Product           pricing.ProductView
	Attributes        pricing.VariantAttributes
}

// NewProductDTO maps a loaded product row into its API shape.
func NewProductDTO(row *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		Status:      row.Status,
		CategoryIDs: make([]uuid.UUID, 0, len(row.Categories)),
		TagIDs:      make([]uuid.UUID, 0, len(row.Tags)),
		BadgeIDs:    make([]uuid.UUID, 0, len(row.Badges)),
		Variants:    make([]VariantDTO, 0, len(row.Variants)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for _, category := range row.Categories {
		dto.CategoryIDs = append(dto.CategoryIDs, category.ID)
	}
	for _, tag := range row.Tags {
		dto.TagIDs = append(dto.TagIDs, tag.ID)
	}
	for _, badge := range row.Badges {
		dto.BadgeIDs = append(dto.BadgeIDs, badge.ID)
	}
	for i := range row.Variants {
		dto.Variants = append(dto.Variants, *NewVariantDTO(&row.Variants[i]))
	}
	return dto
}

// NewVariantDTO maps a variant row into its API shape.
func NewVariantDTO(row *models.ProductVariant) *VariantDTO {
	return &VariantDTO{
		ID:                row.ID,
		ProductID:         row.ProductID,
		SKU:               row.SKU,
		SellingPricePaise: row.SellingPricePaise,
		Attributes:        row.Attributes,
		PriceComponents:   row.PriceComponents,
		IsDefault:         row.IsDefault,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

// NewPricingCandidates flattens loaded products into per-variant matcher
// views. Products without variants contribute nothing.
func NewPricingCandidates(rows []models.Product) []PricingCandidate {
	var candidates []PricingCandidate
	for i := range rows {
		product := &rows[i]
		view := pricing.ProductView{
			CategoryIDs: make([]string, 0, len(product.Categories)),
			TagIDs:      make([]string, 0, len(product.Tags)),
			BadgeIDs:    make([]string, 0, len(product.Badges)),
		}
		for _, category := range product.Categories {
			view.CategoryIDs = append(view.CategoryIDs, category.ID.String())
		}
		for _, tag := range product.Tags {
			view.TagIDs = append(view.TagIDs, tag.ID.String())
		}
		for _, badge := range product.Badges {
			view.BadgeIDs = append(view.BadgeIDs, badge.ID.String())
		}

		for j := range product.Variants {
			variant := &product.Variants[j]
			candidates = append(candidates, PricingCandidate{
				ProductID:         product.ID,
				ProductName:       product.Name,
				VariantID:         variant.ID,
				SKU:               variant.SKU,
				SellingPricePaise: variant.SellingPricePaise,
				PriceComponents:   variant.PriceComponents,
				Product:           view,
				Attributes:        pricing.DecodeVariantAttributes(variant.Attributes),
			})
		}
	}
	return candidates
}
