package masterdata

import (
	"time"

	"github.com/google/uuid"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
)

// MetalTypeDTO is the API shape for a metal family.
type MetalTypeDTO struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug"`
	IsActive  bool             `json:"isActive"`
	Purities  []MetalPurityDTO `json:"purities,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// MetalColorDTO is the API shape for a metal finish.
type MetalColorDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MetalPurityDTO is the API shape for a purity grade.
type MetalPurityDTO struct {
	ID          uuid.UUID `json:"id"`
	MetalTypeID uuid.UUID `json:"metalTypeId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Fineness    string    `json:"fineness"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GemstoneTypeDTO is the API shape for a colored-stone family.
type GemstoneTypeDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Shapes    []string  `json:"shapes"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiamondClarityColorDTO is the API shape for a clarity/color grade.
type DiamondClarityColorDTO struct {
	ID        uuid.UUID `json:"id"`
	Clarity   string    `json:"clarity"`
	Color     string    `json:"color"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryDTO is the API shape for a navigation category.
type CategoryDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ParentID  *uuid.UUID `json:"parentId,omitempty"`
	Position  int        `json:"position"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TagDTO is the API shape for a merchandising tag.
type TagDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BadgeDTO is the API shape for a storefront badge.
type BadgeDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListResult is the shared cursor-paginated list envelope.
type ListResult[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
}

func NewMetalTypeDTO(row *models.MetalType) *MetalTypeDTO {
	dto := &MetalTypeDTO{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for _, purity := range row.Purities {
		dto.Purities = append(dto.Purities, *NewMetalPurityDTO(&purity))
	}
	return dto
}

func NewMetalColorDTO(row *models.MetalColor) *MetalColorDTO {
	return &MetalColorDTO{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func NewMetalPurityDTO(row *models.MetalPurity) *MetalPurityDTO {
	return &MetalPurityDTO{
		ID:          row.ID,
		MetalTypeID: row.MetalTypeID,
		Name:        row.Name,
		Slug:        row.Slug,
		Fineness:    row.Fineness.StringFixed(3),
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func NewGemstoneTypeDTO(row *models.GemstoneType) *GemstoneTypeDTO {
	return &GemstoneTypeDTO{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		Shapes:    append([]string{}, row.Shapes...),
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func NewDiamondClarityColorDTO(row *models.DiamondClarityColor) *DiamondClarityColorDTO {
	return &DiamondClarityColorDTO{
		ID:        row.ID,
		Clarity:   row.Clarity,
		Color:     row.Color,
		Slug:      row.Slug,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func NewCategoryDTO(row *models.Category) *CategoryDTO {
	return &CategoryDTO{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		ParentID:  row.ParentID,
		Position:  row.Position,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func NewTagDTO(row *models.Tag) *TagDTO {
	return &TagDTO{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func NewBadgeDTO(row *models.Badge) *BadgeDTO {
	return &BadgeDTO{
		ID:        row.ID,
		Name:      row.Name,
		Slug:      row.Slug,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
