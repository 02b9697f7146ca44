package masterdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

// Service exposes admin master-data management.
type Service interface {
	CreateMetalType(ctx context.Context, input CreateMetalTypeInput) (*MetalTypeDTO, error)
	UpdateMetalType(ctx context.Context, id uuid.UUID, input UpdateMetalTypeInput) (*MetalTypeDTO, error)
	DeleteMetalType(ctx context.Context, id uuid.UUID) error
	GetMetalType(ctx context.Context, id uuid.UUID) (*MetalTypeDTO, error)
	ListMetalTypes(ctx context.Context, params pagination.Params) (*ListResult[MetalTypeDTO], error)

	CreateMetalColor(ctx context.Context, input CreateMetalColorInput) (*MetalColorDTO, error)
	UpdateMetalColor(ctx context.Context, id uuid.UUID, input UpdateMetalColorInput) (*MetalColorDTO, error)
	DeleteMetalColor(ctx context.Context, id uuid.UUID) error
	GetMetalColor(ctx context.Context, id uuid.UUID) (*MetalColorDTO, error)
	ListMetalColors(ctx context.Context, params pagination.Params) (*ListResult[MetalColorDTO], error)

	CreateMetalPurity(ctx context.Context, input CreateMetalPurityInput) (*MetalPurityDTO, error)
	UpdateMetalPurity(ctx context.Context, id uuid.UUID, input UpdateMetalPurityInput) (*MetalPurityDTO, error)
	DeleteMetalPurity(ctx context.Context, id uuid.UUID) error
	GetMetalPurity(ctx context.Context, id uuid.UUID) (*MetalPurityDTO, error)
	ListMetalPurities(ctx context.Context, params pagination.Params) (*ListResult[MetalPurityDTO], error)

	CreateGemstoneType(ctx context.Context, input CreateGemstoneTypeInput) (*GemstoneTypeDTO, error)
	UpdateGemstoneType(ctx context.Context, id uuid.UUID, input UpdateGemstoneTypeInput) (*GemstoneTypeDTO, error)
	DeleteGemstoneType(ctx context.Context, id uuid.UUID) error
	GetGemstoneType(ctx context.Context, id uuid.UUID) (*GemstoneTypeDTO, error)
	ListGemstoneTypes(ctx context.Context, params pagination.Params) (*ListResult[GemstoneTypeDTO], error)

	CreateDiamondClarityColor(ctx context.Context, input CreateDiamondClarityColorInput) (*DiamondClarityColorDTO, error)
	UpdateDiamondClarityColor(ctx context.Context, id uuid.UUID, input UpdateDiamondClarityColorInput) (*DiamondClarityColorDTO, error)
	DeleteDiamondClarityColor(ctx context.Context, id uuid.UUID) error
	GetDiamondClarityColor(ctx context.Context, id uuid.UUID) (*DiamondClarityColorDTO, error)
	ListDiamondClarityColors(ctx context.Context, params pagination.Params) (*ListResult[DiamondClarityColorDTO], error)

	CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDTO, error)
	ListCategories(ctx context.Context, params pagination.Params) (*ListResult[CategoryDTO], error)

	CreateTag(ctx context.Context, input CreateTagInput) (*TagDTO, error)
	UpdateTag(ctx context.Context, id uuid.UUID, input UpdateTagInput) (*TagDTO, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
	ListTags(ctx context.Context, params pagination.Params) (*ListResult[TagDTO], error)

	CreateBadge(ctx context.Context, input CreateBadgeInput) (*BadgeDTO, error)
	UpdateBadge(ctx context.Context, id uuid.UUID, input UpdateBadgeInput) (*BadgeDTO, error)
	DeleteBadge(ctx context.Context, id uuid.UUID) error
	ListBadges(ctx context.Context, params pagination.Params) (*ListResult[BadgeDTO], error)

	ImportCSV(ctx context.Context, input ImportInput) (*ImportResult, error)
	ExportCSV(ctx context.Context, entity string) ([]byte, error)
}

// CreateMetalTypeInput holds the validated payload to create a metal type.
type CreateMetalTypeInput struct {
	Name     string
	Slug     string
	IsActive bool
}

// UpdateMetalTypeInput holds optional mutation values.
type UpdateMetalTypeInput struct {
	Name     *string
	Slug     *string
	IsActive *bool
}

type CreateMetalColorInput struct {
	Name     string
	Slug     string
	IsActive bool
}

type UpdateMetalColorInput struct {
	Name     *string
	Slug     *string
	IsActive *bool
}

type CreateMetalPurityInput struct {
	MetalTypeID uuid.UUID
	Name        string
	Slug        string
	Fineness    float64
	IsActive    bool
}

type UpdateMetalPurityInput struct {
	Name     *string
	Slug     *string
	Fineness *float64
	IsActive *bool
}

type CreateGemstoneTypeInput struct {
	Name     string
	Slug     string
	Shapes   []string
	IsActive bool
}

type UpdateGemstoneTypeInput struct {
	Name     *string
	Slug     *string
	Shapes   *[]string
	IsActive *bool
}

type CreateDiamondClarityColorInput struct {
	Clarity  string
	Color    string
	Slug     string
	IsActive bool
}

type UpdateDiamondClarityColorInput struct {
	Clarity  *string
	Color    *string
	Slug     *string
	IsActive *bool
}

type CreateCategoryInput struct {
	Name     string
	Slug     string
	ParentID *uuid.UUID
	Position int
	IsActive bool
}

type UpdateCategoryInput struct {
	Name     *string
	Slug     *string
	ParentID *uuid.UUID
	Position *int
	IsActive *bool
}

type CreateTagInput struct {
	Name string
	Slug string
}

type UpdateTagInput struct {
	Name *string
	Slug *string
}

type CreateBadgeInput struct {
	Name string
	Slug string
}

type UpdateBadgeInput struct {
	Name *string
	Slug *string
}

// listCache is the redis surface the service needs for list caching.
type listCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// service implements the master-data service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	cache    listCache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService constructs a master-data service instance. The cache is optional;
// a nil cache disables list caching.
func NewService(repo *Repository, dbClient *db.Client, cache listCache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("master-data repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		cache:    cache,
		cacheTTL: cacheTTL,
		logg:     logg,
	}, nil
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9-]+`)

// Slugify normalizes a display name into a URL-safe slug.
func Slugify(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugStripRe.ReplaceAllString(slug, "")
	return strings.Trim(slug, "-")
}

// resolveSlug picks the explicit slug when present, otherwise derives one.
func resolveSlug(explicit, name string) (string, error) {
	slug := strings.TrimSpace(explicit)
	if slug == "" {
		slug = Slugify(name)
	}
	if slug == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "slug cannot be empty")
	}
	return slug, nil
}

// mapWriteErr converts storage errors from create/update paths into API errors.
func mapWriteErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	if db.IsUniqueViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, entity+" slug already in use")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: write "+entity)
}

// mapReadErr converts storage errors from read paths into API errors.
func mapReadErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load "+entity)
}

func (s *service) invalidate(ctx context.Context, entity string) {
	if s.cache == nil {
		return
	}
	key := s.cache.CacheKey("masterdata", entity)
	if err := s.cache.Del(ctx, key); err != nil {
		s.logg.Warn(ctx, "failed to invalidate master-data cache: "+entity)
	}
}

// firstPageFromCache returns the cached first page for an entity, if present.
func firstPageFromCache[T any](ctx context.Context, cache listCache, entity string, params pagination.Params) (*ListResult[T], bool) {
	if cache == nil || params.Cursor != "" || params.Limit > 0 {
		return nil, false
	}
	payload, err := cache.Get(ctx, cache.CacheKey("masterdata", entity))
	if err != nil {
		return nil, false
	}
	var result ListResult[T]
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, false
	}
	return &result, true
}

// storeFirstPage caches the default first page for an entity.
func storeFirstPage[T any](ctx context.Context, cache listCache, entity string, params pagination.Params, ttl time.Duration, result *ListResult[T]) {
	if cache == nil || params.Cursor != "" || params.Limit > 0 {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = cache.Set(ctx, cache.CacheKey("masterdata", entity), string(payload), ttl)
}

// Metal types.

func (s *service) CreateMetalType(ctx context.Context, input CreateMetalTypeInput) (*MetalTypeDTO, error) {
	slug, err := resolveSlug(input.Slug, input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.MetalType{Name: strings.TrimSpace(input.Name), Slug: slug, IsActive: input.IsActive}
	if _, err := s.repo.CreateMetalType(ctx, row); err != nil {
		return nil, mapWriteErr(err, "metal type")
	}
	s.invalidate(ctx, entityMetalTypes)
	return NewMetalTypeDTO(row), nil
}

func (s *service) UpdateMetalType(ctx context.Context, id uuid.UUID, input UpdateMetalTypeInput) (*MetalTypeDTO, error) {
	row, err := s.repo.FindMetalTypeByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "metal type")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug, err := resolveSlug(*input.Slug, row.Name)
		if err != nil {
			return nil, err
		}
		row.Slug = slug
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if _, err := s.repo.UpdateMetalType(ctx, row); err != nil {
		return nil, mapWriteErr(err, "metal type")
	}
	s.invalidate(ctx, entityMetalTypes)
	return NewMetalTypeDTO(row), nil
}

func (s *service) DeleteMetalType(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindMetalTypeByID(ctx, id)
	if err != nil {
		return mapReadErr(err, "metal type")
	}

	purities, err := s.repo.CountPuritiesForMetalType(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count purities")
	}
	variants, err := s.repo.CountVariantsWithAttribute(ctx, "metalType", row.Slug)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variants")
	}
	if purities > 0 || variants > 0 {
		return pkgerrors.New(pkgerrors.CodeDependent, "metal type has dependent records").
			WithDetails(map[string]int64{"purities": purities, "variants": variants})
	}

	if err := s.repo.DeleteMetalType(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete metal type")
	}
	s.invalidate(ctx, entityMetalTypes)
	return nil
}

func (s *service) GetMetalType(ctx context.Context, id uuid.UUID) (*MetalTypeDTO, error) {
	row, err := s.repo.FindMetalTypeByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "metal type")
	}
	return NewMetalTypeDTO(row), nil
}

func (s *service) ListMetalTypes(ctx context.Context, params pagination.Params) (*ListResult[MetalTypeDTO], error) {
	if cached, ok := firstPageFromCache[MetalTypeDTO](ctx, s.cache, entityMetalTypes, params); ok {
		return cached, nil
	}
	rows, next, err := s.repo.ListMetalTypes(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list metal types")
	}
	result := &ListResult[MetalTypeDTO]{NextCursor: next, Items: make([]MetalTypeDTO, 0, len(rows))}
	for i := range rows {
		result.Items = append(result.Items, *NewMetalTypeDTO(&rows[i]))
	}
	storeFirstPage(ctx, s.cache, entityMetalTypes, params, s.cacheTTL, result)
	return result, nil
}

// Metal colors.

func (s *service) CreateMetalColor(ctx context.Context, input CreateMetalColorInput) (*MetalColorDTO, error) {
	slug, err := resolveSlug(input.Slug, input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.MetalColor{Name: strings.TrimSpace(input.Name), Slug: slug, IsActive: input.IsActive}
	if _, err := s.repo.CreateMetalColor(ctx, row); err != nil {
		return nil, mapWriteErr(err, "metal color")
	}
	s.invalidate(ctx, entityMetalColors)
	return NewMetalColorDTO(row), nil
}

func (s *service) UpdateMetalColor(ctx context.Context, id uuid.UUID, input UpdateMetalColorInput) (*MetalColorDTO, error) {
	row, err := s.repo.FindMetalColorByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "metal color")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug, err := resolveSlug(*input.Slug, row.Name)
		if err != nil {
			return nil, err
		}
		row.Slug = slug
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if _, err := s.repo.UpdateMetalColor(ctx, row); err != nil {
		return nil, mapWriteErr(err, "metal color")
	}
	s.invalidate(ctx, entityMetalColors)
	return NewMetalColorDTO(row), nil
}

func (s *service) DeleteMetalColor(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindMetalColorByID(ctx, id)
	if err != nil {
		return mapReadErr(err, "metal color")
	}
	variants, err := s.repo.CountVariantsWithAttribute(ctx, "metalColor", row.Slug)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variants")
	}
	if variants > 0 {
		return pkgerrors.New(pkgerrors.CodeDependent, "metal color has dependent records").
			WithDetails(map[string]int64{"variants": variants})
	}
	if err := s.repo.DeleteMetalColor(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete metal color")
	}
	s.invalidate(ctx, entityMetalColors)
	return nil
}

func (s *service) GetMetalColor(ctx context.Context, id uuid.UUID) (*MetalColorDTO, error) {
	row, err := s.repo.FindMetalColorByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "metal color")
	}
	return NewMetalColorDTO(row), nil
}

func (s *service) ListMetalColors(ctx context.Context, params pagination.Params) (*ListResult[MetalColorDTO], error) {
	if cached, ok := firstPageFromCache[MetalColorDTO](ctx, s.cache, entityMetalColors, params); ok {
		return cached, nil
	}
	rows, next, err := s.repo.ListMetalColors(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list metal colors")
	}
	result := &ListResult[MetalColorDTO]{NextCursor: next, Items: make([]MetalColorDTO, 0, len(rows))}
	for i := range rows {
		result.Items = append(result.Items, *NewMetalColorDTO(&rows[i]))
	}
	storeFirstPage(ctx, s.cache, entityMetalColors, params, s.cacheTTL, result)
	return result, nil
}

// Metal purities.

func (s *service) CreateMetalPurity(ctx context.Context, input CreateMetalPurityInput) (*MetalPurityDTO, error) {
	if err := validateFineness(input.Fineness); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindMetalTypeByID(ctx, input.MetalTypeID); err != nil {
		return nil, mapReadErr(err, "metal type")
	}
	slug, err := resolveSlug(input.Slug, input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.MetalPurity{
		MetalTypeID: input.MetalTypeID,
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Fineness:    decimal.NewFromFloat(input.Fineness),
		IsActive:    input.IsActive,
	}
	if _, err := s.repo.CreateMetalPurity(ctx, row); err != nil {
		return nil, mapWriteErr(err, "metal purity")
	}
	s.invalidate(ctx, entityMetalPurities)
	return NewMetalPurityDTO(row), nil
}

func (s *service) UpdateMetalPurity(ctx context.Context, id uuid.UUID, input UpdateMetalPurityInput) (*MetalPurityDTO, error) {
	row, err := s.repo.FindMetalPurityByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "metal purity")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug, err := resolveSlug(*input.Slug, row.Name)
		if err != nil {
			return nil, err
		}
		row.Slug = slug
	}
	if input.Fineness != nil {
		if err := validateFineness(*input.Fineness); err != nil {
			return nil, err
		}
		row.Fineness = decimal.NewFromFloat(*input.Fineness)
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if _, err := s.repo.UpdateMetalPurity(ctx, row); err != nil {
		return nil, mapWriteErr(err, "metal purity")
	}
	s.invalidate(ctx, entityMetalPurities)
	return NewMetalPurityDTO(row), nil
}

func (s *service) DeleteMetalPurity(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindMetalPurityByID(ctx, id)
	if err != nil {
		return mapReadErr(err, "metal purity")
	}
	variants, err := s.repo.CountVariantsWithAttribute(ctx, "metalPurity", row.Slug)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variants")
	}
	if variants > 0 {
		return pkgerrors.New(pkgerrors.CodeDependent, "metal purity has dependent records").
			WithDetails(map[string]int64{"variants": variants})
	}
	if err := s.repo.DeleteMetalPurity(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete metal purity")
	}
	s.invalidate(ctx, entityMetalPurities)
	return nil
}

func (s *service) GetMetalPurity(ctx context.Context, id uuid.UUID) (*MetalPurityDTO, error) {
	row, err := s.repo.FindMetalPurityByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "metal purity")
	}
	return NewMetalPurityDTO(row), nil
}

func (s *service) ListMetalPurities(ctx context.Context, params pagination.Params) (*ListResult[MetalPurityDTO], error) {
	if cached, ok := firstPageFromCache[MetalPurityDTO](ctx, s.cache, entityMetalPurities, params); ok {
		return cached, nil
	}
	rows, next, err := s.repo.ListMetalPurities(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list metal purities")
	}
	result := &ListResult[MetalPurityDTO]{NextCursor: next, Items: make([]MetalPurityDTO, 0, len(rows))}
	for i := range rows {
		result.Items = append(result.Items, *NewMetalPurityDTO(&rows[i]))
	}
	storeFirstPage(ctx, s.cache, entityMetalPurities, params, s.cacheTTL, result)
	return result, nil
}

// Gemstone types.

func (s *service) CreateGemstoneType(ctx context.Context, input CreateGemstoneTypeInput) (*GemstoneTypeDTO, error) {
	slug, err := resolveSlug(input.Slug, input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.GemstoneType{
		Name:     strings.TrimSpace(input.Name),
		Slug:     slug,
		Shapes:   input.Shapes,
		IsActive: input.IsActive,
	}
	if _, err := s.repo.CreateGemstoneType(ctx, row); err != nil {
		return nil, mapWriteErr(err, "gemstone type")
	}
	s.invalidate(ctx, entityGemstoneTypes)
	return NewGemstoneTypeDTO(row), nil
}

func (s *service) UpdateGemstoneType(ctx context.Context, id uuid.UUID, input UpdateGemstoneTypeInput) (*GemstoneTypeDTO, error) {
	row, err := s.repo.FindGemstoneTypeByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "gemstone type")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug, err := resolveSlug(*input.Slug, row.Name)
		if err != nil {
			return nil, err
		}
		row.Slug = slug
	}
	if input.Shapes != nil {
		row.Shapes = *input.Shapes
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if _, err := s.repo.UpdateGemstoneType(ctx, row); err != nil {
		return nil, mapWriteErr(err, "gemstone type")
	}
	s.invalidate(ctx, entityGemstoneTypes)
	return NewGemstoneTypeDTO(row), nil
}

func (s *service) DeleteGemstoneType(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindGemstoneTypeByID(ctx, id)
	if err != nil {
		return mapReadErr(err, "gemstone type")
	}
	variants, err := s.repo.CountVariantsWithAttribute(ctx, "gemstoneType", row.Slug)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variants")
	}
	if variants > 0 {
		return pkgerrors.New(pkgerrors.CodeDependent, "gemstone type has dependent records").
			WithDetails(map[string]int64{"variants": variants})
	}
	if err := s.repo.DeleteGemstoneType(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete gemstone type")
	}
	s.invalidate(ctx, entityGemstoneTypes)
	return nil
}

func (s *service) GetGemstoneType(ctx context.Context, id uuid.UUID) (*GemstoneTypeDTO, error) {
	row, err := s.repo.FindGemstoneTypeByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "gemstone type")
	}
	return NewGemstoneTypeDTO(row), nil
}

func (s *service) ListGemstoneTypes(ctx context.Context, params pagination.Params) (*ListResult[GemstoneTypeDTO], error) {
	if cached, ok := firstPageFromCache[GemstoneTypeDTO](ctx, s.cache, entityGemstoneTypes, params); ok {
		return cached, nil
	}
	rows, next, err := s.repo.ListGemstoneTypes(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list gemstone types")
	}
	result := &ListResult[GemstoneTypeDTO]{NextCursor: next, Items: make([]GemstoneTypeDTO, 0, len(rows))}
	for i := range rows {
		result.Items = append(result.Items, *NewGemstoneTypeDTO(&rows[i]))
	}
	storeFirstPage(ctx, s.cache, entityGemstoneTypes, params, s.cacheTTL, result)
	return result, nil
}

// Diamond clarity/color grades.

func (s *service) CreateDiamondClarityColor(ctx context.Context, input CreateDiamondClarityColorInput) (*DiamondClarityColorDTO, error) {
	clarity := strings.TrimSpace(input.Clarity)
	color := strings.TrimSpace(input.Color)
	if clarity == "" || color == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clarity and color are required")
	}
	slug, err := resolveSlug(input.Slug, clarity+" "+color)
	if err != nil {
		return nil, err
	}
	row := &models.DiamondClarityColor{Clarity: clarity, Color: color, Slug: slug, IsActive: input.IsActive}
	if _, err := s.repo.CreateDiamondClarityColor(ctx, row); err != nil {
		return nil, mapWriteErr(err, "diamond clarity color")
	}
	s.invalidate(ctx, entityDiamondClarityColors)
	return NewDiamondClarityColorDTO(row), nil
}

func (s *service) UpdateDiamondClarityColor(ctx context.Context, id uuid.UUID, input UpdateDiamondClarityColorInput) (*DiamondClarityColorDTO, error) {
	row, err := s.repo.FindDiamondClarityColorByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "diamond clarity color")
	}
	if input.Clarity != nil {
		row.Clarity = strings.TrimSpace(*input.Clarity)
	}
	if input.Color != nil {
		row.Color = strings.TrimSpace(*input.Color)
	}
	if input.Slug != nil {
		slug, err := resolveSlug(*input.Slug, row.Clarity+" "+row.Color)
		if err != nil {
			return nil, err
		}
		row.Slug = slug
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if _, err := s.repo.UpdateDiamondClarityColor(ctx, row); err != nil {
		return nil, mapWriteErr(err, "diamond clarity color")
	}
	s.invalidate(ctx, entityDiamondClarityColors)
	return NewDiamondClarityColorDTO(row), nil
}

func (s *service) DeleteDiamondClarityColor(ctx context.Context, id uuid.UUID) error {
	row, err := s.repo.FindDiamondClarityColorByID(ctx, id)
	if err != nil {
		return mapReadErr(err, "diamond clarity color")
	}
	variants, err := s.repo.CountVariantsWithAttribute(ctx, "diamondClarityColor", row.Slug)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count variants")
	}
	if variants > 0 {
		return pkgerrors.New(pkgerrors.CodeDependent, "diamond clarity color has dependent records").
			WithDetails(map[string]int64{"variants": variants})
	}
	if err := s.repo.DeleteDiamondClarityColor(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete diamond clarity color")
	}
	s.invalidate(ctx, entityDiamondClarityColors)
	return nil
}

func (s *service) GetDiamondClarityColor(ctx context.Context, id uuid.UUID) (*DiamondClarityColorDTO, error) {
	row, err := s.repo.FindDiamondClarityColorByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "diamond clarity color")
	}
	return NewDiamondClarityColorDTO(row), nil
}

func (s *service) ListDiamondClarityColors(ctx context.Context, params pagination.Params) (*ListResult[DiamondClarityColorDTO], error) {
	if cached, ok := firstPageFromCache[DiamondClarityColorDTO](ctx, s.cache, entityDiamondClarityColors, params); ok {
		return cached, nil
	}
	rows, next, err := s.repo.ListDiamondClarityColors(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list diamond clarity colors")
	}
	result := &ListResult[DiamondClarityColorDTO]{NextCursor: next, Items: make([]DiamondClarityColorDTO, 0, len(rows))}
	for i := range rows {
		result.Items = append(result.Items, *NewDiamondClarityColorDTO(&rows[i]))
	}
	storeFirstPage(ctx, s.cache, entityDiamondClarityColors, params, s.cacheTTL, result)
	return result, nil
}

// Categories.

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*CategoryDTO, error) {
	slug, err := resolveSlug(input.Slug, input.Name)
	if err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if _, err := s.repo.FindCategoryByID(ctx, *input.ParentID); err != nil {
			return nil, mapReadErr(err, "parent category")
		}
	}
	row := &models.Category{
		Name:     strings.TrimSpace(input.Name),
		Slug:     slug,
		ParentID: input.ParentID,
		Position: input.Position,
		IsActive: input.IsActive,
	}
	if _, err := s.repo.CreateCategory(ctx, row); err != nil {
		return nil, mapWriteErr(err, "category")
	}
	s.invalidate(ctx, entityCategories)
	return NewCategoryDTO(row), nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) (*CategoryDTO, error) {
	row, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "category")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug, err := resolveSlug(*input.Slug, row.Name)
		if err != nil {
			return nil, err
		}
		row.Slug = slug
	}
	if input.ParentID != nil {
		if *input.ParentID == id {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be its own parent")
		}
		if _, err := s.repo.FindCategoryByID(ctx, *input.ParentID); err != nil {
			return nil, mapReadErr(err, "parent category")
		}
		row.ParentID = input.ParentID
	}
	if input.Position != nil {
		row.Position = *input.Position
	}
	if input.IsActive != nil {
		row.IsActive = *input.IsActive
	}
	if _, err := s.repo.UpdateCategory(ctx, row); err != nil {
		return nil, mapWriteErr(err, "category")
	}
	s.invalidate(ctx, entityCategories)
	return NewCategoryDTO(row), nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindCategoryByID(ctx, id); err != nil {
		return mapReadErr(err, "category")
	}
	children, err := s.repo.CountChildCategories(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count child categories")
	}
	products, err := s.repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	if children > 0 || products > 0 {
		return pkgerrors.New(pkgerrors.CodeDependent, "category has dependent records").
			WithDetails(map[string]int64{"childCategories": children, "products": products})
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete category")
	}
	s.invalidate(ctx, entityCategories)
	return nil
}

func (s *service) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryDTO, error) {
	row, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "category")
	}
	return NewCategoryDTO(row), nil
}

func (s *service) ListCategories(ctx context.Context, params pagination.Params) (*ListResult[CategoryDTO], error) {
	if cached, ok := firstPageFromCache[CategoryDTO](ctx, s.cache, entityCategories, params); ok {
		return cached, nil
	}
	rows, next, err := s.repo.ListCategories(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list categories")
	}
	result := &ListResult[CategoryDTO]{NextCursor: next, Items: make([]CategoryDTO, 0, len(rows))}
	for i := range rows {
		result.Items = append(result.Items, *NewCategoryDTO(&rows[i]))
	}
	storeFirstPage(ctx, s.cache, entityCategories, params, s.cacheTTL, result)
	return result, nil
}

// Tags.

func (s *service) CreateTag(ctx context.Context, input CreateTagInput) (*TagDTO, error) {
	slug, err := resolveSlug(input.Slug, input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.Tag{Name: strings.TrimSpace(input.Name), Slug: slug}
	if _, err := s.repo.CreateTag(ctx, row); err != nil {
		return nil, mapWriteErr(err, "tag")
	}
	s.invalidate(ctx, entityTags)
	return NewTagDTO(row), nil
}

func (s *service) UpdateTag(ctx context.Context, id uuid.UUID, input UpdateTagInput) (*TagDTO, error) {
	row, err := s.repo.FindTagByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "tag")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug, err := resolveSlug(*input.Slug, row.Name)
		if err != nil {
			return nil, err
		}
		row.Slug = slug
	}
	if _, err := s.repo.UpdateTag(ctx, row); err != nil {
		return nil, mapWriteErr(err, "tag")
	}
	s.invalidate(ctx, entityTags)
	return NewTagDTO(row), nil
}

func (s *service) DeleteTag(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindTagByID(ctx, id); err != nil {
		return mapReadErr(err, "tag")
	}
	products, err := s.repo.CountProductsWithTag(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	if products > 0 {
		return pkgerrors.New(pkgerrors.CodeDependent, "tag has dependent records").
			WithDetails(map[string]int64{"products": products})
	}
	if err := s.repo.DeleteTag(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete tag")
	}
	s.invalidate(ctx, entityTags)
	return nil
}

func (s *service) ListTags(ctx context.Context, params pagination.Params) (*ListResult[TagDTO], error) {
	if cached, ok := firstPageFromCache[TagDTO](ctx, s.cache, entityTags, params); ok {
		return cached, nil
	}
	rows, next, err := s.repo.ListTags(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list tags")
	}
	result := &ListResult[TagDTO]{NextCursor: next, Items: make([]TagDTO, 0, len(rows))}
	for i := range rows {
		result.Items = append(result.Items, *NewTagDTO(&rows[i]))
	}
	storeFirstPage(ctx, s.cache, entityTags, params, s.cacheTTL, result)
	return result, nil
}

// Badges.

func (s *service) CreateBadge(ctx context.Context, input CreateBadgeInput) (*BadgeDTO, error) {
	slug, err := resolveSlug(input.Slug, input.Name)
	if err != nil {
		return nil, err
	}
	row := &models.Badge{Name: strings.TrimSpace(input.Name), Slug: slug}
	if _, err := s.repo.CreateBadge(ctx, row); err != nil {
		return nil, mapWriteErr(err, "badge")
	}
	s.invalidate(ctx, entityBadges)
	return NewBadgeDTO(row), nil
}

func (s *service) UpdateBadge(ctx context.Context, id uuid.UUID, input UpdateBadgeInput) (*BadgeDTO, error) {
	row, err := s.repo.FindBadgeByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err, "badge")
	}
	if input.Name != nil {
		row.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		slug, err := resolveSlug(*input.Slug, row.Name)
		if err != nil {
			return nil, err
		}
		row.Slug = slug
	}
	if _, err := s.repo.UpdateBadge(ctx, row); err != nil {
		return nil, mapWriteErr(err, "badge")
	}
	s.invalidate(ctx, entityBadges)
	return NewBadgeDTO(row), nil
}

func (s *service) DeleteBadge(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindBadgeByID(ctx, id); err != nil {
		return mapReadErr(err, "badge")
	}
	products, err := s.repo.CountProductsWithBadge(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count products")
	}
	if products > 0 {
		return pkgerrors.New(pkgerrors.CodeDependent, "badge has dependent records").
			WithDetails(map[string]int64{"products": products})
	}
	if err := s.repo.DeleteBadge(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete badge")
	}
	s.invalidate(ctx, entityBadges)
	return nil
}

func (s *service) ListBadges(ctx context.Context, params pagination.Params) (*ListResult[BadgeDTO], error) {
	if cached, ok := firstPageFromCache[BadgeDTO](ctx, s.cache, entityBadges, params); ok {
		return cached, nil
	}
	rows, next, err := s.repo.ListBadges(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list badges")
	}
	result := &ListResult[BadgeDTO]{NextCursor: next, Items: make([]BadgeDTO, 0, len(rows))}
	for i := range rows {
		result.Items = append(result.Items, *NewBadgeDTO(&rows[i]))
	}
	storeFirstPage(ctx, s.cache, entityBadges, params, s.cacheTTL, result)
	return result, nil
}

func validateFineness(value float64) error {
	if value <= 0 || value > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "fineness must be between 0 and 100")
	}
	return nil
}
