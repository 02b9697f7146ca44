package products

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
)

func TestValidateVariantInputs(t *testing.T) {
	t.Run("acceptsWellFormedSet", func(t *testing.T) {
		err := validateVariantInputs([]VariantInput{
			{SKU: "RING-001", SellingPricePaise: 7_500_000, IsDefault: true, Attributes: json.RawMessage(`{"metalType":"gold"}`)},
			{SKU: "RING-002", SellingPricePaise: 9_800_000},
		})
		assert.NoError(t, err)
	})

	t.Run("rejectsMissingSKU", func(t *testing.T) {
		err := validateVariantInputs([]VariantInput{{SKU: "  ", SellingPricePaise: 100}})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("rejectsDuplicateSKU", func(t *testing.T) {
		err := validateVariantInputs([]VariantInput{
			{SKU: "RING-001", SellingPricePaise: 100},
			{SKU: "RING-001", SellingPricePaise: 200},
		})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("rejectsNegativePrice", func(t *testing.T) {
		err := validateVariantInputs([]VariantInput{{SKU: "RING-001", SellingPricePaise: -1}})
		require.Error(t, err)
	})

	t.Run("rejectsMalformedAttributes", func(t *testing.T) {
		err := validateVariantInputs([]VariantInput{{SKU: "RING-001", Attributes: json.RawMessage(`{oops`)}})
		require.Error(t, err)
	})

	t.Run("rejectsTwoDefaults", func(t *testing.T) {
		err := validateVariantInputs([]VariantInput{
			{SKU: "RING-001", IsDefault: true},
			{SKU: "RING-002", IsDefault: true},
		})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})
}

func TestDedupeIDs(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	out := dedupeIDs([]uuid.UUID{a, b, a, b, a})
	assert.Equal(t, []uuid.UUID{a, b}, out)

	assert.Empty(t, dedupeIDs(nil))
}
