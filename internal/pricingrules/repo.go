package pricingrules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

// Repository wraps pricing-rule persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts one rule row.
func (r *Repository) Create(ctx context.Context, rule *models.PricingRule) (*models.PricingRule, error) {
	if err := r.db.WithContext(ctx).Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// Update saves the full rule row.
func (r *Repository) Update(ctx context.Context, rule *models.PricingRule) (*models.PricingRule, error) {
	if err := r.db.WithContext(ctx).Save(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// Delete removes the rule.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PricingRule{}).Error
}

// FindByID loads one rule.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PricingRule, error) {
	var rule models.PricingRule
	if err := r.db.WithContext(ctx).First(&rule, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

// List returns a keyset page, optionally filtered on active state.
func (r *Repository) List(ctx context.Context, params pagination.Params, isActive *bool) ([]models.PricingRule, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx)
	if isActive != nil {
		qb = qb.Where("is_active = ?", *isActive)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.PricingRule
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(pageSize + 1).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

// AllActive returns every active rule ordered by priority, highest first.
// Ties break on creation time so replays stay deterministic.
func (r *Repository) AllActive(ctx context.Context) ([]models.PricingRule, error) {
	var rows []models.PricingRule
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority DESC").
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
