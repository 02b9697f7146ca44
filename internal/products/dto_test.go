package products

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
)

func TestNewPricingCandidates(t *testing.T) {
	categoryID := uuid.New()
	tagID := uuid.New()
	productID := uuid.New()
	variantID := uuid.New()

	rows := []models.Product{
		{
			ID:         productID,
			Name:       "Solitaire Ring",
			Categories: []models.Category{{ID: categoryID}},
			Tags:       []models.Tag{{ID: tagID}},
			Variants: []models.ProductVariant{
				{
					ID:                variantID,
					ProductID:         productID,
					SKU:               "RING-001",
					SellingPricePaise: 7_500_000,
					Attributes:        json.RawMessage(`{"metalType":"gold","metalWeight":3.5,"weights":{"diamond":{"carat":0.25}}}`),
					PriceComponents:   json.RawMessage(`{"costPrice":{"metal":{"total":4200000}}}`),
				},
			},
		},
		{
			ID:   uuid.New(),
			Name: "No Variants Yet",
		},
	}

	candidates := NewPricingCandidates(rows)
	require.Len(t, candidates, 1)

	candidate := candidates[0]
	assert.Equal(t, productID, candidate.ProductID)
	assert.Equal(t, "Solitaire Ring", candidate.ProductName)
	assert.Equal(t, variantID, candidate.VariantID)
	assert.Equal(t, "RING-001", candidate.SKU)
	assert.Equal(t, int64(7_500_000), candidate.SellingPricePaise)

	assert.Equal(t, []string{categoryID.String()}, candidate.Product.CategoryIDs)
	assert.Equal(t, []string{tagID.String()}, candidate.Product.TagIDs)
	assert.Empty(t, candidate.Product.BadgeIDs)

	require.NotNil(t, candidate.Attributes.MetalType)
	assert.Equal(t, "gold", *candidate.Attributes.MetalType)
	require.NotNil(t, candidate.Attributes.MetalWeight)
	assert.InDelta(t, 3.5, *candidate.Attributes.MetalWeight, 1e-9)
	require.NotNil(t, candidate.Attributes.Weights)
	require.NotNil(t, candidate.Attributes.Weights.Diamond)
	require.NotNil(t, candidate.Attributes.Weights.Diamond.Carat)
	assert.InDelta(t, 0.25, *candidate.Attributes.Weights.Diamond.Carat, 1e-9)
	assert.Nil(t, candidate.Attributes.Weights.Gemstone)
}

func TestNewProductDTOFlattensAssociations(t *testing.T) {
	categoryID := uuid.New()
	badgeID := uuid.New()

	dto := NewProductDTO(&models.Product{
		ID:         uuid.New(),
		Name:       "Bangle",
		Slug:       "bangle",
		Categories: []models.Category{{ID: categoryID}},
		Badges:     []models.Badge{{ID: badgeID}},
	})

	assert.Equal(t, []uuid.UUID{categoryID}, dto.CategoryIDs)
	assert.Equal(t, []uuid.UUID{badgeID}, dto.BadgeIDs)
	assert.Empty(t, dto.TagIDs)
	assert.Empty(t, dto.Variants)
}
