package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/internal/masterdata"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

// Service exposes CMS page and section management.
type Service interface {
	CreatePage(ctx context.Context, input CreatePageInput) (*PageDTO, error)
	UpdatePage(ctx context.Context, pageID uuid.UUID, input UpdatePageInput) (*PageDTO, error)
	DeletePage(ctx context.Context, pageID uuid.UUID) error
	GetPage(ctx context.Context, pageID uuid.UUID) (*PageDTO, error)
	ListPages(ctx context.Context, input ListPagesInput) (*PageListResult, error)

	PublishPage(ctx context.Context, pageID uuid.UUID) (*PageDTO, error)
	UnpublishPage(ctx context.Context, pageID uuid.UUID) (*PageDTO, error)

	AddSection(ctx context.Context, pageID uuid.UUID, input SectionInput) (*SectionDTO, error)
	UpdateSection(ctx context.Context, sectionID uuid.UUID, input UpdateSectionInput) (*SectionDTO, error)
	DeleteSection(ctx context.Context, sectionID uuid.UUID) error
	ReorderSections(ctx context.Context, pageID uuid.UUID, orderedIDs []uuid.UUID) (*PageDTO, error)
}

// CreatePageInput is the validated payload to create a page.
type CreatePageInput struct {
	Kind  enums.CMSPageKind
	Slug  string
	Title string
}

// UpdatePageInput holds optional mutation values for a page.
type UpdatePageInput struct {
	Slug  *string
	Title *string
}

// ListPagesInput carries list filters plus pagination.
type ListPagesInput struct {
	Kind       *enums.CMSPageKind
	Pagination pagination.Params
}

// SectionInput is the payload for one new section.
type SectionInput struct {
	Kind     enums.CMSSectionKind
	Heading  *string
	Body     *string
	MediaURL *string
	Settings json.RawMessage
	Tags     []string
}

// UpdateSectionInput holds optional mutation values for a section.
type UpdateSectionInput struct {
	Heading  *string
	Body     *string
	MediaURL *string
	Settings json.RawMessage
	Tags     *[]string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	logg     *logger.Logger
}

// NewService constructs a CMS service instance.
func NewService(repo *Repository, dbClient *db.Client, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cms repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, dbClient: dbClient, logg: logg}, nil
}

// CreatePage creates a draft page with no sections.
func (s *service) CreatePage(ctx context.Context, input CreatePageInput) (*PageDTO, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid page kind")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page title is required")
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = masterdata.Slugify(title)
	}
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "page slug is required")
	}

	created, err := s.repo.CreatePage(ctx, &models.CMSPage{
		ID:     uuid.New(),
		Kind:   input.Kind,
		Slug:   slug,
		Title:  title,
		Status: enums.PublishStatusDraft,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "page slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cms page")
	}
	return NewPageDTO(created), nil
}

// UpdatePage applies partial updates to the page row.
func (s *service) UpdatePage(ctx context.Context, pageID uuid.UUID, input UpdatePageInput) (*PageDTO, error) {
	page, err := s.repo.FindPageByID(ctx, pageID)
	if err != nil {
		return nil, mapReadErr(err, "page")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "page title cannot be empty")
		}
		page.Title = title
	}
	if input.Slug != nil {
		slug := strings.TrimSpace(*input.Slug)
		if slug == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "page slug cannot be empty")
		}
		page.Slug = slug
	}

	if _, err := s.repo.UpdatePage(ctx, page); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "page slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cms page")
	}
	return s.GetPage(ctx, pageID)
}

// DeletePage removes the page and all its sections.
func (s *service) DeletePage(ctx context.Context, pageID uuid.UUID) error {
	if _, err := s.repo.FindPageByID(ctx, pageID); err != nil {
		return mapReadErr(err, "page")
	}
	if err := s.repo.DeletePage(ctx, pageID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cms page")
	}
	return nil
}

// GetPage loads the page with sections in display order.
func (s *service) GetPage(ctx context.Context, pageID uuid.UUID) (*PageDTO, error) {
	page, err := s.repo.GetPageDetail(ctx, pageID)
	if err != nil {
		return nil, mapReadErr(err, "page")
	}
	return NewPageDTO(page), nil
}

// ListPages returns one keyset page of CMS pages.
func (s *service) ListPages(ctx context.Context, input ListPagesInput) (*PageListResult, error) {
	if input.Kind != nil && !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid page kind filter")
	}
	rows, next, err := s.repo.ListPages(ctx, input.Pagination, input.Kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cms pages")
	}
	result := &PageListResult{NextCursor: next, Pages: make([]PageDTO, 0, len(rows))}
	for i := range rows {
		result.Pages = append(result.Pages, *NewPageDTO(&rows[i]))
	}
	return result, nil
}

// PublishPage marks the page live and stamps the publish time.
func (s *service) PublishPage(ctx context.Context, pageID uuid.UUID) (*PageDTO, error) {
	return s.setPublishStatus(ctx, pageID, enums.PublishStatusPublished)
}

// UnpublishPage reverts the page to draft. The publish timestamp is cleared so
// republishing stamps a fresh time.
func (s *service) UnpublishPage(ctx context.Context, pageID uuid.UUID) (*PageDTO, error) {
	return s.setPublishStatus(ctx, pageID, enums.PublishStatusDraft)
}

func (s *service) setPublishStatus(ctx context.Context, pageID uuid.UUID, status enums.PublishStatus) (*PageDTO, error) {
	page, err := s.repo.FindPageByID(ctx, pageID)
	if err != nil {
		return nil, mapReadErr(err, "page")
	}

	page.Status = status
	if status == enums.PublishStatusPublished {
		now := time.Now().UTC()
		page.PublishedAt = &now
	} else {
		page.PublishedAt = nil
	}

	if _, err := s.repo.UpdatePage(ctx, page); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cms page")
	}
	s.logg.Info(s.logg.WithEntity(ctx, "cms_page"), "page "+page.Slug+" set to "+status.String())
	return s.GetPage(ctx, pageID)
}

// AddSection appends a section at the end of the page.
func (s *service) AddSection(ctx context.Context, pageID uuid.UUID, input SectionInput) (*SectionDTO, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid section kind")
	}
	if len(input.Settings) > 0 && !json.Valid(input.Settings) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings must be a valid json document")
	}
	if _, err := s.repo.FindPageByID(ctx, pageID); err != nil {
		return nil, mapReadErr(err, "page")
	}

	existing, err := s.repo.SectionsForPage(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sections")
	}

	created, err := s.repo.CreateSection(ctx, &models.CMSSection{
		ID:       uuid.New(),
		PageID:   pageID,
		Kind:     input.Kind,
		Position: len(existing),
		Heading:  input.Heading,
		Body:     input.Body,
		MediaURL: input.MediaURL,
		Settings: input.Settings,
		Tags:     input.Tags,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert cms section")
	}
	return NewSectionDTO(created), nil
}

// UpdateSection applies partial updates to one section. Kind and position are
// immutable here; reordering owns position.
func (s *service) UpdateSection(ctx context.Context, sectionID uuid.UUID, input UpdateSectionInput) (*SectionDTO, error) {
	section, err := s.repo.FindSectionByID(ctx, sectionID)
	if err != nil {
		return nil, mapReadErr(err, "section")
	}

	if input.Heading != nil {
		section.Heading = input.Heading
	}
	if input.Body != nil {
		section.Body = input.Body
	}
	if input.MediaURL != nil {
		section.MediaURL = input.MediaURL
	}
	if input.Settings != nil {
		if !json.Valid(input.Settings) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings must be a valid json document")
		}
		section.Settings = input.Settings
	}
	if input.Tags != nil {
		section.Tags = *input.Tags
	}

	updated, err := s.repo.UpdateSection(ctx, section)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update cms section")
	}
	return NewSectionDTO(updated), nil
}

// DeleteSection removes one section. Remaining sections keep their positions;
// gaps are harmless because ordering is relative.
func (s *service) DeleteSection(ctx context.Context, sectionID uuid.UUID) error {
	if _, err := s.repo.FindSectionByID(ctx, sectionID); err != nil {
		return mapReadErr(err, "section")
	}
	if err := s.repo.DeleteSection(ctx, sectionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cms section")
	}
	return nil
}

// ReorderSections rewrites every section position to match the given ID order.
// The list must name each of the page's sections exactly once.
func (s *service) ReorderSections(ctx context.Context, pageID uuid.UUID, orderedIDs []uuid.UUID) (*PageDTO, error) {
	if _, err := s.repo.FindPageByID(ctx, pageID); err != nil {
		return nil, mapReadErr(err, "page")
	}
	existing, err := s.repo.SectionsForPage(ctx, pageID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load sections")
	}

	if len(orderedIDs) != len(existing) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ordered ids must cover every section exactly once")
	}
	known := make(map[uuid.UUID]struct{}, len(existing))
	for _, section := range existing {
		known[section.ID] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := known[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown section id in order list").
				WithDetails(map[string]any{"sectionId": id})
		}
		if _, dup := seen[id]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate section id in order list").
				WithDetails(map[string]any{"sectionId": id})
		}
		seen[id] = struct{}{}
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		for position, id := range orderedIDs {
			if err := txRepo.SetSectionPosition(ctx, id, position); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reorder sections")
	}
	return s.GetPage(ctx, pageID)
}

func mapReadErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load "+entity)
}
