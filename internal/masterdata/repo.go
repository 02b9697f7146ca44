package masterdata

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

// Repository wires together persistence for all master-data families.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// listPage runs the shared keyset query for a master-data table.
func listPage[T any](ctx context.Context, db *gorm.DB, params pagination.Params, rowCursor func(T) pagination.Cursor) ([]T, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := db.WithContext(ctx)
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []T
	if err := qb.Order("created_at DESC").Order("id DESC").Limit(pageSize + 1).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		nextCursor = pagination.EncodeCursor(rowCursor(rows[len(rows)-1]))
	}
	return rows, nextCursor, nil
}

// Metal types.

func (r *Repository) CreateMetalType(ctx context.Context, row *models.MetalType) (*models.MetalType, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateMetalType(ctx context.Context, row *models.MetalType) (*models.MetalType, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) DeleteMetalType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MetalType{}).Error
}

func (r *Repository) FindMetalTypeByID(ctx context.Context, id uuid.UUID) (*models.MetalType, error) {
	var row models.MetalType
	if err := r.db.WithContext(ctx).Preload("Purities").First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListMetalTypes(ctx context.Context, params pagination.Params) ([]models.MetalType, string, error) {
	return listPage(ctx, r.db.Preload("Purities"), params, func(row models.MetalType) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
}

// AllMetalTypes loads every row ordered by name; used by CSV export and caching.
func (r *Repository) AllMetalTypes(ctx context.Context) ([]models.MetalType, error) {
	var rows []models.MetalType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Metal colors.

func (r *Repository) CreateMetalColor(ctx context.Context, row *models.MetalColor) (*models.MetalColor, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateMetalColor(ctx context.Context, row *models.MetalColor) (*models.MetalColor, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) DeleteMetalColor(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MetalColor{}).Error
}

func (r *Repository) FindMetalColorByID(ctx context.Context, id uuid.UUID) (*models.MetalColor, error) {
	var row models.MetalColor
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListMetalColors(ctx context.Context, params pagination.Params) ([]models.MetalColor, string, error) {
	return listPage(ctx, r.db, params, func(row models.MetalColor) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
}

func (r *Repository) AllMetalColors(ctx context.Context) ([]models.MetalColor, error) {
	var rows []models.MetalColor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Metal purities.

func (r *Repository) CreateMetalPurity(ctx context.Context, row *models.MetalPurity) (*models.MetalPurity, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateMetalPurity(ctx context.Context, row *models.MetalPurity) (*models.MetalPurity, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) DeleteMetalPurity(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MetalPurity{}).Error
}

func (r *Repository) FindMetalPurityByID(ctx context.Context, id uuid.UUID) (*models.MetalPurity, error) {
	var row models.MetalPurity
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListMetalPurities(ctx context.Context, params pagination.Params) ([]models.MetalPurity, string, error) {
	return listPage(ctx, r.db, params, func(row models.MetalPurity) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
}

func (r *Repository) AllMetalPurities(ctx context.Context) ([]models.MetalPurity, error) {
	var rows []models.MetalPurity
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Gemstone types.

func (r *Repository) CreateGemstoneType(ctx context.Context, row *models.GemstoneType) (*models.GemstoneType, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateGemstoneType(ctx context.Context, row *models.GemstoneType) (*models.GemstoneType, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) DeleteGemstoneType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GemstoneType{}).Error
}

func (r *Repository) FindGemstoneTypeByID(ctx context.Context, id uuid.UUID) (*models.GemstoneType, error) {
	var row models.GemstoneType
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListGemstoneTypes(ctx context.Context, params pagination.Params) ([]models.GemstoneType, string, error) {
	return listPage(ctx, r.db, params, func(row models.GemstoneType) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
}

func (r *Repository) AllGemstoneTypes(ctx context.Context) ([]models.GemstoneType, error) {
	var rows []models.GemstoneType
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error
	return rows, err
}

// Diamond clarity/color grades.

func (r *Repository) CreateDiamondClarityColor(ctx context.Context, row *models.DiamondClarityColor) (*models.DiamondClarityColor, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateDiamondClarityColor(ctx context.Context, row *models.DiamondClarityColor) (*models.DiamondClarityColor, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) DeleteDiamondClarityColor(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.DiamondClarityColor{}).Error
}

func (r *Repository) FindDiamondClarityColorByID(ctx context.Context, id uuid.UUID) (*models.DiamondClarityColor, error) {
	var row models.DiamondClarityColor
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListDiamondClarityColors(ctx context.Context, params pagination.Params) ([]models.DiamondClarityColor, string, error) {
	return listPage(ctx, r.db, params, func(row models.DiamondClarityColor) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
}

func (r *Repository) AllDiamondClarityColors(ctx context.Context) ([]models.DiamondClarityColor, error) {
	var rows []models.DiamondClarityColor
	err := r.db.WithContext(ctx).Order("slug ASC").Find(&rows).Error
	return rows, err
}

// Categories.

func (r *Repository) CreateCategory(ctx context.Context, row *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, row *models.Category) (*models.Category, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Category{}).Error
}

func (r *Repository) FindCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var row models.Category
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListCategories(ctx context.Context, params pagination.Params) ([]models.Category, string, error) {
	return listPage(ctx, r.db, params, func(row models.Category) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
}

// Tags.

func (r *Repository) CreateTag(ctx context.Context, row *models.Tag) (*models.Tag, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateTag(ctx context.Context, row *models.Tag) (*models.Tag, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Tag{}).Error
}

func (r *Repository) FindTagByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var row models.Tag
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListTags(ctx context.Context, params pagination.Params) ([]models.Tag, string, error) {
	return listPage(ctx, r.db, params, func(row models.Tag) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
}

// Badges.

func (r *Repository) CreateBadge(ctx context.Context, row *models.Badge) (*models.Badge, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateBadge(ctx context.Context, row *models.Badge) (*models.Badge, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) DeleteBadge(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Badge{}).Error
}

func (r *Repository) FindBadgeByID(ctx context.Context, id uuid.UUID) (*models.Badge, error) {
	var row models.Badge
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) ListBadges(ctx context.Context, params pagination.Params) ([]models.Badge, string, error) {
	return listPage(ctx, r.db, params, func(row models.Badge) pagination.Cursor {
		return pagination.Cursor{CreatedAt: row.CreatedAt, ID: row.ID}
	})
}

// Dependency counts consulted before deletes.

func (r *Repository) CountPuritiesForMetalType(ctx context.Context, metalTypeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MetalPurity{}).
		Where("metal_type_id = ?", metalTypeID).
		Count(&count).Error
	return count, err
}

// CountVariantsWithAttribute counts variants whose attributes document carries
// the given scalar value under the given JSON field.
func (r *Repository) CountVariantsWithAttribute(ctx context.Context, field, value string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("attributes->>? = ?", field, value).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountProductsInCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("product_categories").
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountChildCategories(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountProductsWithTag(ctx context.Context, tagID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("product_tags").
		Where("tag_id = ?", tagID).
		Count(&count).Error
	return count, err
}

func (r *Repository) CountProductsWithBadge(ctx context.Context, badgeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("product_badges").
		Where("badge_id = ?", badgeID).
		Count(&count).Error
	return count, err
}

// ReplaceAll swaps the full contents of a master-data table inside the bound
// transaction; CSV import uses this for its all-or-nothing apply.
func ReplaceAll[T any](ctx context.Context, tx *gorm.DB, rows []T) error {
	var zero T
	if err := tx.WithContext(ctx).Where("1 = 1").Delete(&zero).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&rows).Error
}
