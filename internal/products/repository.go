package products

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

// Repository wires together product and variant persistence.
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

// CreateProduct inserts a new product row without associations.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Categories", "Tags", "Badges", "Variants").Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates the product row without touching associations.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Omit("Categories", "Tags", "Badges", "Variants").Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product; variants and join rows cascade.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Variants").Where("id = ?", id).Delete(&models.Product{}).Error
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductDetail fetches the product with taxonomy and variants preloaded.
func (r *Repository) GetProductDetail(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Tags").
		Preload("Badges").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_default DESC, created_at ASC")
		}).
		First(&product, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts returns a keyset page of products with associations preloaded.
func (r *Repository) ListProducts(ctx context.Context, params pagination.Params, status *enums.ProductStatus) ([]models.Product, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Tags").
		Preload("Badges").
		Preload("Variants")
	if status != nil {
		qb = qb.Where("status = ?", *status)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Product
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

// ReplaceCategories swaps the product's category set.
func (r *Repository) ReplaceCategories(ctx context.Context, product *models.Product, categories []models.Category) error {
	return r.db.WithContext(ctx).Model(product).Association("Categories").Replace(categories)
}

// ReplaceTags swaps the product's tag set.
func (r *Repository) ReplaceTags(ctx context.Context, product *models.Product, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(product).Association("Tags").Replace(tags)
}

// ReplaceBadges swaps the product's badge set.
func (r *Repository) ReplaceBadges(ctx context.Context, product *models.Product, badges []models.Badge) error {
	return r.db.WithContext(ctx).Model(product).Association("Badges").Replace(badges)
}

// ReplaceVariants swaps all variants for the product.
func (r *Repository) ReplaceVariants(ctx context.Context, productID uuid.UUID, variants []models.ProductVariant) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("product_id = ?", productID).Delete(&models.ProductVariant{}).Error; err != nil {
		return err
	}
	if len(variants) == 0 {
		return nil
	}
	return tx.Create(&variants).Error
}

// CreateVariant inserts one variant row.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant updates one variant row.
func (r *Repository) UpdateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Save(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariant removes one variant row.
func (r *Repository) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductVariant{}).Error
}

// FindVariantByID loads one variant row.
func (r *Repository) FindVariantByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	if err := r.db.WithContext(ctx).First(&variant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

// FindCategoriesByIDs loads the referenced categories, erroring on unknown IDs
// at the service layer via length comparison.
func (r *Repository) FindCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

// FindTagsByIDs loads the referenced tags.
func (r *Repository) FindTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Tag
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

// FindBadgesByIDs loads the referenced badges.
func (r *Repository) FindBadgesByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Badge, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Badge
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	return rows, err
}

// AllWithVariants loads every non-archived product with taxonomy and variants,
// the candidate set walked by pricing-rule preview.
func (r *Repository) AllWithVariants(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Preload("Tags").
		Preload("Badges").
		Preload("Variants").
		Where("status <> ?", enums.ProductStatusArchived).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}
