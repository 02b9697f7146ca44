package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/pkg/db"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

// Service exposes catalog product management.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)

	AddVariant(ctx context.Context, productID uuid.UUID, input VariantInput) (*VariantDTO, error)
	UpdateVariant(ctx context.Context, variantID uuid.UUID, input UpdateVariantInput) (*VariantDTO, error)
	DeleteVariant(ctx context.Context, variantID uuid.UUID) error

	ListForPricingRule(ctx context.Context) ([]PricingCandidate, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name        string
	Slug        string
	Description *string
	Status      enums.ProductStatus
	CategoryIDs []uuid.UUID
	TagIDs      []uuid.UUID
	BadgeIDs    []uuid.UUID
	Variants    []VariantInput
}

// UpdateProductInput holds optional mutation values for a product. Nil slices
// leave the corresponding association untouched; empty slices clear it.
type UpdateProductInput struct {
	Name        *string
	Slug        *string
	Description *string
	Status      *enums.ProductStatus
	CategoryIDs *[]uuid.UUID
	TagIDs      *[]uuid.UUID
	BadgeIDs    *[]uuid.UUID
	Variants    *[]VariantInput
}

// VariantInput is the payload for one variant row.
type VariantInput struct {
	SKU               string
	SellingPricePaise int64
	Attributes        json.RawMessage
	PriceComponents   json.RawMessage
	IsDefault         bool
}

// UpdateVariantInput holds optional mutation values for a variant.
type UpdateVariantInput struct {
	SKU               *string
	SellingPricePaise *int64
	Attributes        json.RawMessage
	PriceComponents   json.RawMessage
	IsDefault         *bool
}

// ListProductsInput carries list filters plus pagination.
type ListProductsInput struct {
	Status     *enums.ProductStatus
	Pagination pagination.Params
}

// service implements the product service.
type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// CreateProduct creates the product with taxonomy and variants in one
// transaction.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	status := input.Status
	if status == "" {
		status = enums.ProductStatusDraft
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}
	if err := validateVariantInputs(input.Variants); err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			Name:        strings.TrimSpace(input.Name),
			Slug:        slug,
			Description: input.Description,
			Status:      status,
		}
		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product slug already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		if err := s.replaceTaxonomy(ctx, txRepo, created, input.CategoryIDs, input.TagIDs, input.BadgeIDs); err != nil {
			return err
		}

		variants := buildVariantRows(created.ID, input.Variants)
		if err := txRepo.ReplaceVariants(ctx, created.ID, variants); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "variant sku already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace variants")
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	detail, err := s.repo.GetProductDetail(ctx, createdID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(detail), nil
}

// UpdateProduct applies partial updates and replaces any provided association
// sets inside one transaction.
func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}
	if input.Variants != nil {
		if err := validateVariantInputs(*input.Variants); err != nil {
			return nil, err
		}
	}

	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if input.Name != nil {
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Slug != nil {
			product.Slug = strings.TrimSpace(*input.Slug)
		}
		if input.Description != nil {
			product.Description = input.Description
		}
		if input.Status != nil {
			product.Status = *input.Status
		}
		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product slug already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		var categoryIDs, tagIDs, badgeIDs []uuid.UUID
		if input.CategoryIDs != nil {
			categoryIDs = *input.CategoryIDs
		}
		if input.TagIDs != nil {
			tagIDs = *input.TagIDs
		}
		if input.BadgeIDs != nil {
			badgeIDs = *input.BadgeIDs
		}
		if input.CategoryIDs != nil || input.TagIDs != nil || input.BadgeIDs != nil {
			if err := s.replaceSelectedTaxonomy(ctx, txRepo, product, input.CategoryIDs != nil, categoryIDs, input.TagIDs != nil, tagIDs, input.BadgeIDs != nil, badgeIDs); err != nil {
				return err
			}
		}

		if input.Variants != nil {
			variants := buildVariantRows(product.ID, *input.Variants)
			if err := txRepo.ReplaceVariants(ctx, product.ID, variants); err != nil {
				if db.IsUniqueViolation(err) {
					return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "variant sku already in use")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace variants")
			}
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	detail, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(detail), nil
}

// DeleteProduct removes the product; variants and taxonomy rows cascade.
func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

// GetProduct loads the full product detail.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	detail, err := s.repo.GetProductDetail(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product detail")
	}
	return NewProductDTO(detail), nil
}

// ListProducts returns one keyset page.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status filter")
	}
	rows, next, err := s.repo.ListProducts(ctx, input.Pagination, input.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}
	result := &ProductListResult{NextCursor: next, Products: make([]ProductDTO, 0, len(rows))}
	for i := range rows {
		result.Products = append(result.Products, *NewProductDTO(&rows[i]))
	}
	return result, nil
}

// AddVariant appends one variant to an existing product.
func (s *service) AddVariant(ctx context.Context, productID uuid.UUID, input VariantInput) (*VariantDTO, error) {
	if err := validateVariantInputs([]VariantInput{input}); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	rows := buildVariantRows(productID, []VariantInput{input})
	created, err := s.repo.CreateVariant(ctx, &rows[0])
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "variant sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variant")
	}
	return NewVariantDTO(created), nil
}

// UpdateVariant applies partial updates to one variant.
func (s *service) UpdateVariant(ctx context.Context, variantID uuid.UUID, input UpdateVariantInput) (*VariantDTO, error) {
	variant, err := s.repo.FindVariantByID(ctx, variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be empty")
		}
		variant.SKU = sku
	}
	if input.SellingPricePaise != nil {
		if *input.SellingPricePaise < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price cannot be negative")
		}
		variant.SellingPricePaise = *input.SellingPricePaise
	}
	if input.Attributes != nil {
		if !json.Valid(input.Attributes) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "attributes must be a valid json document")
		}
		variant.Attributes = input.Attributes
	}
	if input.PriceComponents != nil {
		if !json.Valid(input.PriceComponents) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price components must be a valid json document")
		}
		variant.PriceComponents = input.PriceComponents
	}
	if input.IsDefault != nil {
		variant.IsDefault = *input.IsDefault
	}

	updated, err := s.repo.UpdateVariant(ctx, variant)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "variant sku already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant")
	}
	return NewVariantDTO(updated), nil
}

// DeleteVariant removes one variant.
func (s *service) DeleteVariant(ctx context.Context, variantID uuid.UUID) error {
	if _, err := s.repo.FindVariantByID(ctx, variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variant")
	}
	if err := s.repo.DeleteVariant(ctx, variantID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete variant")
	}
	return nil
}

// ListForPricingRule returns the matcher candidate views for every
// non-archived product variant.
func (s *service) ListForPricingRule(ctx context.Context) ([]PricingCandidate, error) {
	rows, err := s.repo.AllWithVariants(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load pricing candidates")
	}
	return NewPricingCandidates(rows), nil
}

// replaceTaxonomy resolves and replaces all three association sets.
func (s *service) replaceTaxonomy(ctx context.Context, txRepo *Repository, product *models.Product, categoryIDs, tagIDs, badgeIDs []uuid.UUID) error {
	return s.replaceSelectedTaxonomy(ctx, txRepo, product, true, categoryIDs, true, tagIDs, true, badgeIDs)
}

func (s *service) replaceSelectedTaxonomy(ctx context.Context, txRepo *Repository, product *models.Product, doCategories bool, categoryIDs []uuid.UUID, doTags bool, tagIDs []uuid.UUID, doBadges bool, badgeIDs []uuid.UUID) error {
	if doCategories {
		categories, err := txRepo.FindCategoriesByIDs(ctx, categoryIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load categories")
		}
		if len(categories) != len(dedupeIDs(categoryIDs)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "one or more category ids do not exist")
		}
		if err := txRepo.ReplaceCategories(ctx, product, categories); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace categories")
		}
	}
	if doTags {
		tags, err := txRepo.FindTagsByIDs(ctx, tagIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load tags")
		}
		if len(tags) != len(dedupeIDs(tagIDs)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "one or more tag ids do not exist")
		}
		if err := txRepo.ReplaceTags(ctx, product, tags); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace tags")
		}
	}
	if doBadges {
		badges, err := txRepo.FindBadgesByIDs(ctx, badgeIDs)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load badges")
		}
		if len(badges) != len(dedupeIDs(badgeIDs)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "one or more badge ids do not exist")
		}
		if err := txRepo.ReplaceBadges(ctx, product, badges); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace badges")
		}
	}
	return nil
}

// validateVariantInputs checks variant payloads before any write: SKUs must be
// present and unique within the product, prices non-negative, JSON documents
// well formed, and at most one default variant.
func validateVariantInputs(inputs []VariantInput) error {
	seenSKUs := make(map[string]struct{}, len(inputs))
	defaults := 0
	for i, input := range inputs {
		sku := strings.TrimSpace(input.SKU)
		if sku == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %d: sku is required", i))
		}
		if _, dup := seenSKUs[sku]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %d: duplicate sku %q", i, sku))
		}
		seenSKUs[sku] = struct{}{}

		if input.SellingPricePaise < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %d: selling price cannot be negative", i))
		}
		if len(input.Attributes) > 0 && !json.Valid(input.Attributes) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %d: attributes must be a valid json document", i))
		}
		if len(input.PriceComponents) > 0 && !json.Valid(input.PriceComponents) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("variant %d: price components must be a valid json document", i))
		}
		if input.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "only one variant can be the default")
	}
	return nil
}

func buildVariantRows(productID uuid.UUID, inputs []VariantInput) []models.ProductVariant {
	rows := make([]models.ProductVariant, 0, len(inputs))
	for _, input := range inputs {
		rows = append(rows, models.ProductVariant{
			ProductID:         productID,
			SKU:               strings.TrimSpace(input.SKU),
			SellingPricePaise: input.SellingPricePaise,
			Attributes:        input.Attributes,
			PriceComponents:   input.PriceComponents,
			IsDefault:         input.IsDefault,
		})
	}
	return rows
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
