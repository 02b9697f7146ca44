package products

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

func TestRepositoryProductFlow(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	category := models.Category{ID: uuid.New(), Name: "Rings", Slug: "flow-rings", IsActive: true}
	tag := models.Tag{ID: uuid.New(), Name: "Bestseller", Slug: "flow-bestseller"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&tag).Error)

	product, err := repo.CreateProduct(ctx, &models.Product{
		ID:     uuid.New(),
		Name:   "Solitaire Ring",
		Slug:   "flow-solitaire-ring",
		Status: enums.ProductStatusActive,
	})
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceCategories(ctx, product, []models.Category{category}))
	require.NoError(t, repo.ReplaceTags(ctx, product, []models.Tag{tag}))

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	variants := []models.ProductVariant{
		{
			ID:                uuid.New(),
			ProductID:         product.ID,
			SKU:               "FLOW-RING-002",
			SellingPricePaise: 9_800_000,
			CreatedAt:         base.Add(time.Minute),
		},
		{
			ID:                uuid.New(),
			ProductID:         product.ID,
			SKU:               "FLOW-RING-001",
			SellingPricePaise: 7_500_000,
			Attributes:        json.RawMessage(`{"metalType":"gold","metalWeight":3.5}`),
			IsDefault:         true,
			CreatedAt:         base,
		},
	}
	require.NoError(t, repo.ReplaceVariants(ctx, product.ID, variants))

	detail, err := repo.GetProductDetail(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, detail.Categories, 1)
	require.Len(t, detail.Tags, 1)
	require.Len(t, detail.Variants, 2)
	assert.Equal(t, category.ID, detail.Categories[0].ID)
	// default variant sorts first
	assert.Equal(t, "FLOW-RING-001", detail.Variants[0].SKU)
	assert.True(t, detail.Variants[0].IsDefault)

	require.NoError(t, repo.DeleteProduct(ctx, product.ID))
	_, err = repo.FindByID(ctx, product.ID)
	assert.Error(t, err)
}

func TestRepositoryVariantCRUD(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product, err := repo.CreateProduct(ctx, &models.Product{
		ID:     uuid.New(),
		Name:   "Tennis Bracelet",
		Slug:   "crud-tennis-bracelet",
		Status: enums.ProductStatusDraft,
	})
	require.NoError(t, err)

	created, err := repo.CreateVariant(ctx, &models.ProductVariant{
		ID:                uuid.New(),
		ProductID:         product.ID,
		SKU:               "CRUD-BRC-001",
		SellingPricePaise: 25_000_000,
	})
	require.NoError(t, err)

	created.SellingPricePaise = 26_500_000
	updated, err := repo.UpdateVariant(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, int64(26_500_000), updated.SellingPricePaise)

	found, err := repo.FindVariantByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CRUD-BRC-001", found.SKU)

	require.NoError(t, repo.DeleteVariant(ctx, created.ID))
	_, err = repo.FindVariantByID(ctx, created.ID)
	assert.Error(t, err)
}

func TestRepositoryListProductsPagination(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	for i, slug := range []string{"page-ring-a", "page-ring-b", "page-ring-c"} {
		require.NoError(t, db.Create(&models.Product{
			ID:        uuid.New(),
			Name:      slug,
			Slug:      slug,
			Status:    enums.ProductStatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	status := enums.ProductStatusActive
	first, next, err := repo.ListProducts(ctx, pagination.Params{Limit: 2}, &status)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)

	second, _, err := repo.ListProducts(ctx, pagination.Params{Limit: 2, Cursor: next}, &status)
	require.NoError(t, err)
	require.NotEmpty(t, second)
	for _, row := range second {
		for _, seen := range first {
			assert.NotEqual(t, seen.ID, row.ID)
		}
	}
}

func TestRepositoryAllWithVariantsSkipsArchived(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	live, err := repo.CreateProduct(ctx, &models.Product{
		ID:     uuid.New(),
		Name:   "Live Pendant",
		Slug:   "all-live-pendant",
		Status: enums.ProductStatusActive,
	})
	require.NoError(t, err)
	_, err = repo.CreateVariant(ctx, &models.ProductVariant{
		ID:                uuid.New(),
		ProductID:         live.ID,
		SKU:               "ALL-PND-001",
		SellingPricePaise: 4_200_000,
	})
	require.NoError(t, err)

	_, err = repo.CreateProduct(ctx, &models.Product{
		ID:     uuid.New(),
		Name:   "Retired Pendant",
		Slug:   "all-retired-pendant",
		Status: enums.ProductStatusArchived,
	})
	require.NoError(t, err)

	rows, err := repo.AllWithVariants(ctx)
	require.NoError(t, err)
	for _, row := range rows {
		assert.NotEqual(t, enums.ProductStatusArchived, row.Status)
	}

	var found bool
	for _, row := range rows {
		if row.ID == live.ID {
			found = true
			require.Len(t, row.Variants, 1)
		}
	}
	assert.True(t, found)
}
