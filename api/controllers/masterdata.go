package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aarshhmi/luminique-admin-backend/api/responses"
	"github.com/aarshhmi/luminique-admin-backend/api/validators"
	"github.com/aarshhmi/luminique-admin-backend/internal/masterdata"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
	"github.com/aarshhmi/luminique-admin-backend/pkg/metrics"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

func pathID(r *http.Request) (uuid.UUID, error) {
	return validators.PathUUID(chi.URLParam(r, "id"))
}

// listHandler serves one cursor page for any master-data entity.
func listHandler[D any](list func(context.Context, pagination.Params) (*masterdata.ListResult[D], error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := list(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func getHandler[D any](get func(context.Context, uuid.UUID) (*D, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func deleteHandler(del func(context.Context, uuid.UUID) error, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := del(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

type namedEntityRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Slug     string `json:"slug,omitempty" validate:"omitempty,max=120"`
	IsActive *bool  `json:"isActive,omitempty"`
}

func (req namedEntityRequest) active() bool {
	if req.IsActive == nil {
		return true
	}
	return *req.IsActive
}

type namedEntityUpdateRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Slug     *string `json:"slug,omitempty" validate:"omitempty,max=120"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// CreateMetalType handles POST /master-data/metal-types.
func CreateMetalType(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload namedEntityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.CreateMetalType(r.Context(), masterdata.CreateMetalTypeInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			IsActive: payload.active(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateMetalType handles PATCH /master-data/metal-types/{id}.
func UpdateMetalType(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload namedEntityUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateMetalType(r.Context(), id, masterdata.UpdateMetalTypeInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CreateMetalColor handles POST /master-data/metal-colors.
func CreateMetalColor(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload namedEntityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.CreateMetalColor(r.Context(), masterdata.CreateMetalColorInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			IsActive: payload.active(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateMetalColor handles PATCH /master-data/metal-colors/{id}.
func UpdateMetalColor(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload namedEntityUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateMetalColor(r.Context(), id, masterdata.UpdateMetalColorInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createMetalPurityRequest struct {
	MetalTypeID string  `json:"metalTypeId" validate:"required,uuid"`
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	Slug        string  `json:"slug,omitempty" validate:"omitempty,max=120"`
	Fineness    float64 `json:"fineness" validate:"required,gt=0,lte=100"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

type updateMetalPurityRequest struct {
	Name     *string  `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Slug     *string  `json:"slug,omitempty" validate:"omitempty,max=120"`
	Fineness *float64 `json:"fineness,omitempty" validate:"omitempty,gt=0,lte=100"`
	IsActive *bool    `json:"isActive,omitempty"`
}

// CreateMetalPurity handles POST /master-data/metal-purities.
func CreateMetalPurity(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createMetalPurityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		metalTypeID, err := uuid.Parse(payload.MetalTypeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid metal type id"))
			return
		}
		active := true
		if payload.IsActive != nil {
			active = *payload.IsActive
		}
		dto, err := svc.CreateMetalPurity(r.Context(), masterdata.CreateMetalPurityInput{
			MetalTypeID: metalTypeID,
			Name:        payload.Name,
			Slug:        payload.Slug,
			Fineness:    payload.Fineness,
			IsActive:    active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateMetalPurity handles PATCH /master-data/metal-purities/{id}.
func UpdateMetalPurity(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateMetalPurityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateMetalPurity(r.Context(), id, masterdata.UpdateMetalPurityInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			Fineness: payload.Fineness,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createGemstoneTypeRequest struct {
	Name     string   `json:"name" validate:"required,min=1,max=120"`
	Slug     string   `json:"slug,omitempty" validate:"omitempty,max=120"`
	Shapes   []string `json:"shapes,omitempty" validate:"omitempty,dive,min=1"`
	IsActive *bool    `json:"isActive,omitempty"`
}

type updateGemstoneTypeRequest struct {
	Name     *string   `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Slug     *string   `json:"slug,omitempty" validate:"omitempty,max=120"`
	Shapes   *[]string `json:"shapes,omitempty" validate:"omitempty,dive,min=1"`
	IsActive *bool     `json:"isActive,omitempty"`
}

// CreateGemstoneType handles POST /master-data/gemstone-types.
func CreateGemstoneType(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createGemstoneTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		active := true
		if payload.IsActive != nil {
			active = *payload.IsActive
		}
		dto, err := svc.CreateGemstoneType(r.Context(), masterdata.CreateGemstoneTypeInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			Shapes:   payload.Shapes,
			IsActive: active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateGemstoneType handles PATCH /master-data/gemstone-types/{id}.
func UpdateGemstoneType(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateGemstoneTypeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateGemstoneType(r.Context(), id, masterdata.UpdateGemstoneTypeInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			Shapes:   payload.Shapes,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createClarityColorRequest struct {
	Clarity  string `json:"clarity" validate:"required,min=1,max=60"`
	Color    string `json:"color" validate:"required,min=1,max=60"`
	Slug     string `json:"slug,omitempty" validate:"omitempty,max=120"`
	IsActive *bool  `json:"isActive,omitempty"`
}

type updateClarityColorRequest struct {
	Clarity  *string `json:"clarity,omitempty" validate:"omitempty,min=1,max=60"`
	Color    *string `json:"color,omitempty" validate:"omitempty,min=1,max=60"`
	Slug     *string `json:"slug,omitempty" validate:"omitempty,max=120"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// CreateDiamondClarityColor handles POST /master-data/diamond-clarity-colors.
func CreateDiamondClarityColor(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createClarityColorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		active := true
		if payload.IsActive != nil {
			active = *payload.IsActive
		}
		dto, err := svc.CreateDiamondClarityColor(r.Context(), masterdata.CreateDiamondClarityColorInput{
			Clarity:  payload.Clarity,
			Color:    payload.Color,
			Slug:     payload.Slug,
			IsActive: active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateDiamondClarityColor handles PATCH /master-data/diamond-clarity-colors/{id}.
func UpdateDiamondClarityColor(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateClarityColorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateDiamondClarityColor(r.Context(), id, masterdata.UpdateDiamondClarityColorInput{
			Clarity:  payload.Clarity,
			Color:    payload.Color,
			Slug:     payload.Slug,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type createCategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=120"`
	Slug     string  `json:"slug,omitempty" validate:"omitempty,max=120"`
	ParentID *string `json:"parentId,omitempty" validate:"omitempty,uuid"`
	Position int     `json:"position,omitempty" validate:"omitempty,min=0"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type updateCategoryRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Slug     *string `json:"slug,omitempty" validate:"omitempty,max=120"`
	ParentID *string `json:"parentId,omitempty" validate:"omitempty,uuid"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// CreateCategory handles POST /master-data/categories.
func CreateCategory(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		parentID, err := parseOptionalUUID(payload.ParentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		active := true
		if payload.IsActive != nil {
			active = *payload.IsActive
		}
		dto, err := svc.CreateCategory(r.Context(), masterdata.CreateCategoryInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			ParentID: parentID,
			Position: payload.Position,
			IsActive: active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateCategory handles PATCH /master-data/categories/{id}.
func UpdateCategory(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		parentID, err := parseOptionalUUID(payload.ParentID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateCategory(r.Context(), id, masterdata.UpdateCategoryInput{
			Name:     payload.Name,
			Slug:     payload.Slug,
			ParentID: parentID,
			Position: payload.Position,
			IsActive: payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

type nameSlugRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	Slug string `json:"slug,omitempty" validate:"omitempty,max=120"`
}

type nameSlugUpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Slug *string `json:"slug,omitempty" validate:"omitempty,max=120"`
}

// CreateTag handles POST /master-data/tags.
func CreateTag(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload nameSlugRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.CreateTag(r.Context(), masterdata.CreateTagInput{Name: payload.Name, Slug: payload.Slug})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateTag handles PATCH /master-data/tags/{id}.
func UpdateTag(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload nameSlugUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateTag(r.Context(), id, masterdata.UpdateTagInput{Name: payload.Name, Slug: payload.Slug})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CreateBadge handles POST /master-data/badges.
func CreateBadge(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload nameSlugRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.CreateBadge(r.Context(), masterdata.CreateBadgeInput{Name: payload.Name, Slug: payload.Slug})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// UpdateBadge handles PATCH /master-data/badges/{id}.
func UpdateBadge(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload nameSlugUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dto, err := svc.UpdateBadge(r.Context(), id, masterdata.UpdateBadgeInput{Name: payload.Name, Slug: payload.Slug})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// ImportMasterDataCSV handles POST /master-data/import. The multipart form
// carries the entity name and the CSV file.
func ImportMasterDataCSV(svc masterdata.Service, importMetrics *metrics.ImportMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(8 << 20); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}
		entity := r.FormValue("entity")
		if entity == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "entity form field is required"))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file form field is required"))
			return
		}
		defer file.Close()

		data, err := readAllLimited(file, 8<<20)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read upload"))
			return
		}

		start := time.Now()
		result, err := svc.ImportCSV(r.Context(), masterdata.ImportInput{Entity: entity, Data: data})
		if err != nil {
			if importMetrics != nil {
				importMetrics.IncFailure(entity)
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if importMetrics != nil {
			importMetrics.ObserveRun(result.Entity, result.RowsApplied, time.Since(start))
		}
		responses.WriteSuccess(w, result)
	}
}

// ExportMasterDataCSV handles GET /master-data/export?entity=...
func ExportMasterDataCSV(svc masterdata.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := r.URL.Query().Get("entity")
		if entity == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "entity query parameter is required"))
			return
		}
		data, err := svc.ExportCSV(r.Context(), entity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+entity+`.csv"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func parseOptionalUUID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid uuid")
	}
	return &id, nil
}
