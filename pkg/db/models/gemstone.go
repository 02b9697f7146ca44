package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// GemstoneType is a master-data colored-stone family (ruby, emerald, sapphire).
type GemstoneType struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string         `gorm:"column:name;not null"`
	Slug      string         `gorm:"column:slug;not null;uniqueIndex"`
	Shapes    pq.StringArray `gorm:"column:shapes;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// DiamondClarityColor is a combined clarity/color grade (VVS1-EF, SI-GH).
type DiamondClarityColor struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Clarity   string    `gorm:"column:clarity;not null"`
	Color     string    `gorm:"column:color;not null"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
