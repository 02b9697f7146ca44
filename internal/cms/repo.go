package cms

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

// Repository wraps CMS persistence.
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

// CreatePage inserts one page row without sections.
func (r *Repository) CreatePage(ctx context.Context, page *models.CMSPage) (*models.CMSPage, error) {
	if err := r.db.WithContext(ctx).Omit("Sections").Create(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// UpdatePage saves the page row without touching sections.
func (r *Repository) UpdatePage(ctx context.Context, page *models.CMSPage) (*models.CMSPage, error) {
	if err := r.db.WithContext(ctx).Omit("Sections").Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// DeletePage removes the page; sections cascade.
func (r *Repository) DeletePage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Sections").Where("id = ?", id).Delete(&models.CMSPage{}).Error
}

// FindPageByID loads the bare page row.
func (r *Repository) FindPageByID(ctx context.Context, id uuid.UUID) (*models.CMSPage, error) {
	var page models.CMSPage
	if err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPageDetail loads the page with its sections in display order.
func (r *Repository) GetPageDetail(ctx context.Context, id uuid.UUID) (*models.CMSPage, error) {
	var page models.CMSPage
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&page, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPages returns a keyset page, optionally filtered by page kind.
func (r *Repository) ListPages(ctx context.Context, params pagination.Params, kind *enums.CMSPageKind) ([]models.CMSPage, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx)
	if kind != nil {
		qb = qb.Where("kind = ?", *kind)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.CMSPage
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

// CreateSection inserts one section row.
func (r *Repository) CreateSection(ctx context.Context, section *models.CMSSection) (*models.CMSSection, error) {
	if err := r.db.WithContext(ctx).Create(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

// UpdateSection saves the full section row.
func (r *Repository) UpdateSection(ctx context.Context, section *models.CMSSection) (*models.CMSSection, error) {
	if err := r.db.WithContext(ctx).Save(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection removes one section.
func (r *Repository) DeleteSection(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CMSSection{}).Error
}

// FindSectionByID loads one section.
func (r *Repository) FindSectionByID(ctx context.Context, id uuid.UUID) (*models.CMSSection, error) {
	var section models.CMSSection
	if err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// SectionsForPage returns the page's sections in display order.
func (r *Repository) SectionsForPage(ctx context.Context, pageID uuid.UUID) ([]models.CMSSection, error) {
	var rows []models.CMSSection
	err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("position ASC").
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SetSectionPosition writes one section's position column.
func (r *Repository) SetSectionPosition(ctx context.Context, sectionID uuid.UUID, position int) error {
	return r.db.WithContext(ctx).
		Model(&models.CMSSection{}).
		Where("id = ?", sectionID).
		Update("position", position).
		Error
}
