package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
)

// CMSPage is an editable storefront page (homepage, policies).
type CMSPage struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind        enums.CMSPageKind   `gorm:"column:kind;not null"`
	Slug        string              `gorm:"column:slug;not null;uniqueIndex"`
	Title       string              `gorm:"column:title;not null"`
	Status      enums.PublishStatus `gorm:"column:status;not null;default:'draft'"`
	PublishedAt *time.Time          `gorm:"column:published_at"`
	Sections    []CMSSection        `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// CMSSection is one ordered content block on a page. Settings carries
// widget-specific options as a JSON document.
type CMSSection struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PageID    uuid.UUID            `gorm:"column:page_id;type:uuid;not null;index"`
	Kind      enums.CMSSectionKind `gorm:"column:kind;not null"`
	Position  int                  `gorm:"column:position;not null;default:0"`
	Heading   *string              `gorm:"column:heading"`
	Body      *string              `gorm:"column:body"`
	MediaURL  *string              `gorm:"column:media_url"`
	Settings  json.RawMessage      `gorm:"column:settings;type:jsonb"`
	Tags      pq.StringArray       `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
