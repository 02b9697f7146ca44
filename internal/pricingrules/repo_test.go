package pricingrules

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

func setupPricingRulesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS pricing_rules (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  priority INTEGER NOT NULL DEFAULT 0,
  conditions TEXT NOT NULL,
  making_charge_markup REAL NOT NULL DEFAULT 0,
  diamond_markup REAL NOT NULL DEFAULT 0,
  gemstone_markup REAL NOT NULL DEFAULT 0,
  pearl_markup REAL NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func TestRepositoryRuleFlow(t *testing.T) {
	db := setupPricingRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.PricingRule{
		ID:                 uuid.New(),
		Name:               "Gold making charge",
		Conditions:         json.RawMessage(`[]`),
		IsActive:           true,
		MakingChargeMarkup: 10,
	})
	require.NoError(t, err)

	created.DiamondMarkup = 5
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, updated.DiamondMarkup, 1e-9)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gold making charge", found.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListPagination(t *testing.T) {
	db := setupPricingRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, name := range []string{"page-rule-a", "page-rule-b", "page-rule-c"} {
		require.NoError(t, db.Create(&models.PricingRule{
			ID:         uuid.New(),
			Name:       name,
			Conditions: json.RawMessage(`[]`),
			IsActive:   true,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	active := true
	first, next, err := repo.List(ctx, pagination.Params{Limit: 2}, &active)
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)

	second, _, err := repo.List(ctx, pagination.Params{Limit: 2, Cursor: next}, &active)
	require.NoError(t, err)
	require.NotEmpty(t, second)
	for _, row := range second {
		for _, seen := range first {
			assert.NotEqual(t, seen.ID, row.ID)
		}
	}
}

func TestRepositoryAllActiveOrdering(t *testing.T) {
	db := setupPricingRulesTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.PricingRule{
		ID: uuid.New(), Name: "order-low", Conditions: json.RawMessage(`[]`),
		IsActive: true, Priority: 1, CreatedAt: base,
	}).Error)
	require.NoError(t, db.Create(&models.PricingRule{
		ID: uuid.New(), Name: "order-high", Conditions: json.RawMessage(`[]`),
		IsActive: true, Priority: 9, CreatedAt: base.Add(time.Minute),
	}).Error)
	require.NoError(t, db.Create(&models.PricingRule{
		ID: uuid.New(), Name: "order-inactive", Conditions: json.RawMessage(`[]`),
		IsActive: false, Priority: 20, CreatedAt: base,
	}).Error)

	rows, err := repo.AllActive(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(rows))
	for _, row := range rows {
		assert.True(t, row.IsActive)
		names = append(names, row.Name)
	}
	highIdx, lowIdx := -1, -1
	for i, name := range names {
		switch name {
		case "order-high":
			highIdx = i
		case "order-low":
			lowIdx = i
		}
	}
	require.NotEqual(t, -1, highIdx)
	require.NotEqual(t, -1, lowIdx)
	assert.Less(t, highIdx, lowIdx)
	assert.NotContains(t, names, "order-inactive")
}
