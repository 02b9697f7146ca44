package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/aarshhmi/luminique-admin-backend/api/responses"
	"github.com/aarshhmi/luminique-admin-backend/api/validators"
	productsvc "github.com/aarshhmi/luminique-admin-backend/internal/products"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
)

type variantRequest struct {
	SKU               string          `json:"sku" validate:"required,min=1,max=120"`
	SellingPricePaise int64           `json:"sellingPricePaise" validate:"min=0"`
	Attributes        json.RawMessage `json:"attributes,omitempty"`
	PriceComponents   json.RawMessage `json:"priceComponents,omitempty"`
	IsDefault         bool            `json:"isDefault,omitempty"`
}

func (req variantRequest) toInput() productsvc.VariantInput {
	return productsvc.VariantInput{
		SKU:               req.SKU,
		SellingPricePaise: req.SellingPricePaise,
		Attributes:        req.Attributes,
		PriceComponents:   req.PriceComponents,
		IsDefault:         req.IsDefault,
	}
}

type createProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Slug        string           `json:"slug" validate:"required,min=1,max=200"`
	Description *string          `json:"description,omitempty"`
	Status      string           `json:"status,omitempty" validate:"omitempty,oneof=draft active archived"`
	CategoryIDs []string         `json:"categoryIds,omitempty" validate:"omitempty,dive,uuid"`
	TagIDs      []string         `json:"tagIds,omitempty" validate:"omitempty,dive,uuid"`
	BadgeIDs    []string         `json:"badgeIds,omitempty" validate:"omitempty,dive,uuid"`
	Variants    []variantRequest `json:"variants,omitempty" validate:"omitempty,dive"`
}

type updateProductRequest struct {
	Name        *string           `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Slug        *string           `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string           `json:"description,omitempty"`
	Status      *string           `json:"status,omitempty" validate:"omitempty,oneof=draft active archived"`
	CategoryIDs *[]string         `json:"categoryIds,omitempty" validate:"omitempty,dive,uuid"`
	TagIDs      *[]string         `json:"tagIds,omitempty" validate:"omitempty,dive,uuid"`
	BadgeIDs    *[]string         `json:"badgeIds,omitempty" validate:"omitempty,dive,uuid"`
	Variants    *[]variantRequest `json:"variants,omitempty" validate:"omitempty,dive"`
}

// CreateProduct handles POST /products.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryIDs, err := parseUUIDList(payload.CategoryIDs, "categoryIds")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tagIDs, err := parseUUIDList(payload.TagIDs, "tagIds")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		badgeIDs, err := parseUUIDList(payload.BadgeIDs, "badgeIds")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variants := make([]productsvc.VariantInput, 0, len(payload.Variants))
		for _, variant := range payload.Variants {
			variants = append(variants, variant.toInput())
		}

		product, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			Status:      enums.ProductStatus(payload.Status),
			CategoryIDs: categoryIDs,
			TagIDs:      tagIDs,
			BadgeIDs:    badgeIDs,
			Variants:    variants,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// UpdateProduct handles PATCH /products/{id}.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
		}
		if payload.Status != nil {
			status := enums.ProductStatus(*payload.Status)
			input.Status = &status
		}
		if payload.CategoryIDs != nil {
			ids, err := parseUUIDList(*payload.CategoryIDs, "categoryIds")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.CategoryIDs = &ids
		}
		if payload.TagIDs != nil {
			ids, err := parseUUIDList(*payload.TagIDs, "tagIds")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.TagIDs = &ids
		}
		if payload.BadgeIDs != nil {
			ids, err := parseUUIDList(*payload.BadgeIDs, "badgeIds")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.BadgeIDs = &ids
		}
		if payload.Variants != nil {
			variants := make([]productsvc.VariantInput, 0, len(*payload.Variants))
			for _, variant := range *payload.Variants {
				variants = append(variants, variant.toInput())
			}
			input.Variants = &variants
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles DELETE /products/{id}.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteProduct, logg)
}

// GetProduct handles GET /products/{id}.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetProduct, logg)
}

// ListProducts handles GET /products with optional status filter.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.ListProductsInput{Pagination: params}
		if raw := r.URL.Query().Get("status"); raw != "" {
			status := enums.ProductStatus(raw)
			if !status.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			input.Status = &status
		}

		result, err := svc.ListProducts(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AddVariant handles POST /products/{id}/variants.
func AddVariant(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload variantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variant, err := svc.AddVariant(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

type updateVariantRequest struct {
	SKU               *string         `json:"sku,omitempty" validate:"omitempty,min=1,max=120"`
	SellingPricePaise *int64          `json:"sellingPricePaise,omitempty" validate:"omitempty,min=0"`
	Attributes        json.RawMessage `json:"attributes,omitempty"`
	PriceComponents   json.RawMessage `json:"priceComponents,omitempty"`
	IsDefault         *bool           `json:"isDefault,omitempty"`
}

// UpdateVariant handles PATCH /variants/{id}.
func UpdateVariant(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		variant, err := svc.UpdateVariant(r.Context(), id, productsvc.UpdateVariantInput{
			SKU:               payload.SKU,
			SellingPricePaise: payload.SellingPricePaise,
			Attributes:        payload.Attributes,
			PriceComponents:   payload.PriceComponents,
			IsDefault:         payload.IsDefault,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, variant)
	}
}

// DeleteVariant handles DELETE /variants/{id}.
func DeleteVariant(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteVariant, logg)
}

func parseUUIDList(raw []string, field string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid uuid list").
				WithDetails(map[string]any{"field": field, "value": value})
		}
		ids = append(ids, id)
	}
	return ids, nil
}
