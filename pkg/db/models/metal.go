package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MetalType is a master-data metal family (gold, silver, platinum).
type MetalType struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string        `gorm:"column:name;not null"`
	Slug      string        `gorm:"column:slug;not null;uniqueIndex"`
	IsActive  bool          `gorm:"column:is_active;not null;default:true"`
	Purities  []MetalPurity `gorm:"foreignKey:MetalTypeID;constraint:OnDelete:RESTRICT"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// MetalColor is a master-data metal finish (yellow, white, rose).
type MetalColor struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// MetalPurity is a purity grade scoped to a metal type (22K, 18K, 925).
type MetalPurity struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MetalTypeID uuid.UUID       `gorm:"column:metal_type_id;type:uuid;not null;index"`
	Name        string          `gorm:"column:name;not null"`
	Slug        string          `gorm:"column:slug;not null;uniqueIndex"`
	// Fineness is the metal content percentage, e.g. 91.667 for 22K gold.
	Fineness  decimal.Decimal `gorm:"column:fineness;type:numeric(6,3);not null"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
