package cms

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
)

// PageDTO is the API shape for one CMS page.
type PageDTO struct {
	ID          uuid.UUID           `json:"id"`
	Kind        enums.CMSPageKind   `json:"kind"`
	Slug        string              `json:"slug"`
	Title       string              `json:"title"`
	Status      enums.PublishStatus `json:"status"`
	PublishedAt *time.Time          `json:"publishedAt,omitempty"`
	Sections    []SectionDTO        `json:"sections"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

// SectionDTO is the API shape for one page section.
type SectionDTO struct {
	ID        uuid.UUID            `json:"id"`
	PageID    uuid.UUID            `json:"pageId"`
	Kind      enums.CMSSectionKind `json:"kind"`
	Position  int                  `json:"position"`
	Heading   *string              `json:"heading,omitempty"`
	Body      *string              `json:"body,omitempty"`
	MediaURL  *string              `json:"mediaUrl,omitempty"`
	Settings  json.RawMessage      `json:"settings,omitempty"`
	Tags      []string             `json:"tags"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// PageListResult is the cursor-paginated page listing.
type PageListResult struct {
	Pages      []PageDTO `json:"pages"`
	NextCursor string    `json:"nextCursor,omitempty"`
}

// NewPageDTO maps one page row, with any preloaded sections, to its API shape.
func NewPageDTO(row *models.CMSPage) *PageDTO {
	dto := &PageDTO{
		ID:          row.ID,
		Kind:        row.Kind,
		Slug:        row.Slug,
		Title:       row.Title,
		Status:      row.Status,
		PublishedAt: row.PublishedAt,
		Sections:    make([]SectionDTO, 0, len(row.Sections)),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	for i := range row.Sections {
		dto.Sections = append(dto.Sections, *NewSectionDTO(&row.Sections[i]))
	}
	return dto
}

// NewSectionDTO maps one section row to its API shape.
func NewSectionDTO(row *models.CMSSection) *SectionDTO {
	tags := make([]string, 0, len(row.Tags))
	tags = append(tags, row.Tags...)
	return &SectionDTO{
		ID:        row.ID,
		PageID:    row.PageID,
		Kind:      row.Kind,
		Position:  row.Position,
		Heading:   row.Heading,
		Body:      row.Body,
		MediaURL:  row.MediaURL,
		Settings:  row.Settings,
		Tags:      tags,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
