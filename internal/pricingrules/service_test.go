package pricingrules

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarshhmi/luminique-admin-backend/internal/pricing"
	"github.com/aarshhmi/luminique-admin-backend/internal/products"
	"github.com/aarshhmi/luminique-admin-backend/pkg/currency"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
)

type fakeCandidateLoader struct {
	candidates []products.PricingCandidate
	err        error
}

func (f *fakeCandidateLoader) ListForPricingRule(context.Context) ([]products.PricingCandidate, error) {
	return f.candidates, f.err
}

func newPreviewService(t *testing.T, loader CandidateLoader) Service {
	t.Helper()
	calc := pricing.NewCalculator(currency.Settings{
		Code:           "INR",
		Subunits:       100,
		IncludeTax:     true,
		TaxRatePercent: 3,
	})
	svc, err := NewService(NewRepository(nil), loader, calc, logger.New(logger.Options{
		ServiceName: "pricingrules-test",
		Output:      io.Discard,
	}))
	require.NoError(t, err)
	return svc
}

func strPtr(s string) *string { return &s }

func TestPreviewMatchesAndPrices(t *testing.T) {
	matchingVariant := uuid.New()
	loader := &fakeCandidateLoader{candidates: []products.PricingCandidate{
		{
			ProductID:         uuid.New(),
			ProductName:       "Solitaire Ring",
			VariantID:         matchingVariant,
			SKU:               "RING-001",
			SellingPricePaise: 7_500_000,
			PriceComponents:   json.RawMessage(`{"costPrice":{"makingCharge":1000000,"diamondPrice":2000000}}`),
			Attributes:        pricing.VariantAttributes{MetalType: strPtr("gold")},
		},
		{
			ProductID:         uuid.New(),
			ProductName:       "Silver Band",
			VariantID:         uuid.New(),
			SKU:               "BAND-001",
			SellingPricePaise: 1_200_000,
			Attributes:        pricing.VariantAttributes{MetalType: strPtr("silver")},
		},
	}}
	svc := newPreviewService(t, loader)

	result, err := svc.Preview(context.Background(), PreviewInput{
		Conditions: json.RawMessage(`[{"type":"metal_type","value":{"metalTypeIds":["gold"]}}]`),
		Markups:    pricing.Markups{MakingChargeMarkup: 10, DiamondMarkup: 5},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalVariants)
	assert.Equal(t, 1, result.MatchedVariants)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, matchingVariant, row.VariantID)
	assert.True(t, row.HasCostBreakdown)
	assert.Equal(t, int64(7_500_000), row.CurrentPricePaise)
	// increment 100000 + 100000, grossed up by 3% tax
	assert.Equal(t, int64(7_706_000), row.NewPricePaise)
	require.NotNil(t, row.Breakdown)
	assert.Equal(t, int64(200_000), row.Breakdown.Subtotal)
	assert.Equal(t, int64(6_000), row.Breakdown.TaxAmount)
	assert.Equal(t, int64(206_000), row.Breakdown.Total)
}

func TestPreviewWithoutCostBreakdown(t *testing.T) {
	loader := &fakeCandidateLoader{candidates: []products.PricingCandidate{
		{
			ProductName:       "Plain Chain",
			VariantID:         uuid.New(),
			SKU:               "CHAIN-001",
			SellingPricePaise: 3_000_000,
			Attributes:        pricing.VariantAttributes{MetalType: strPtr("gold")},
		},
	}}
	svc := newPreviewService(t, loader)

	result, err := svc.Preview(context.Background(), PreviewInput{
		Conditions: json.RawMessage(`[{"type":"metal_type","value":{"metalTypeIds":["gold"]}}]`),
		Markups:    pricing.Markups{MakingChargeMarkup: 25},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.False(t, row.HasCostBreakdown)
	assert.Equal(t, row.CurrentPricePaise, row.NewPricePaise)
	assert.Nil(t, row.Breakdown)
}

func TestPreviewEmptyConditionsMatchesNothing(t *testing.T) {
	loader := &fakeCandidateLoader{candidates: []products.PricingCandidate{
		{VariantID: uuid.New(), SKU: "A-1", SellingPricePaise: 100},
		{VariantID: uuid.New(), SKU: "A-2", SellingPricePaise: 200},
	}}
	svc := newPreviewService(t, loader)

	result, err := svc.Preview(context.Background(), PreviewInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalVariants)
	assert.Equal(t, 0, result.MatchedVariants)
	assert.Empty(t, result.Rows)
}

func TestPreviewRejectsBadInput(t *testing.T) {
	svc := newPreviewService(t, &fakeCandidateLoader{})

	_, err := svc.Preview(context.Background(), PreviewInput{
		Conditions: json.RawMessage(`{"not":"a list"}`),
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.Preview(context.Background(), PreviewInput{
		Markups: pricing.Markups{DiamondMarkup: -1},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestNormalizeConditions(t *testing.T) {
	t.Run("canonicalizesKnownConditions", func(t *testing.T) {
		raw := json.RawMessage(`[{"type":"metal_weight","value":{"from":1,"to":5}}]`)
		encoded, err := normalizeConditions(raw)
		require.NoError(t, err)

		decoded, err := pricing.DecodeConditions(encoded)
		require.NoError(t, err)
		require.Len(t, decoded, 1)
	})

	t.Run("nilBecomesEmptyList", func(t *testing.T) {
		encoded, err := normalizeConditions(nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(encoded))
	})

	t.Run("rejectsUnknownType", func(t *testing.T) {
		_, err := normalizeConditions(json.RawMessage(`[{"type":"moon_phase","value":{}}]`))
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("rejectsInvertedRange", func(t *testing.T) {
		_, err := normalizeConditions(json.RawMessage(`[{"type":"diamond_carat","value":{"from":2,"to":1}}]`))
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})
}

func TestValidateMarkups(t *testing.T) {
	assert.NoError(t, validateMarkups(pricing.Markups{}))
	assert.NoError(t, validateMarkups(pricing.Markups{MakingChargeMarkup: 12.5, PearlMarkup: 3}))
	assert.Error(t, validateMarkups(pricing.Markups{GemstoneMarkup: -0.5}))
}
