package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/aarshhmi/luminique-admin-backend/api/responses"
	"github.com/aarshhmi/luminique-admin-backend/api/validators"
	cmssvc "github.com/aarshhmi/luminique-admin-backend/internal/cms"
	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
)

type createPageRequest struct {
	Kind  string `json:"kind" validate:"required"`
	Slug  string `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Title string `json:"title" validate:"required,min=1,max=200"`
}

type updatePageRequest struct {
	Slug  *string `json:"slug,omitempty" validate:"omitempty,min=1,max=200"`
	Title *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
}

type sectionRequest struct {
	Kind     string          `json:"kind" validate:"required"`
	Heading  *string         `json:"heading,omitempty"`
	Body     *string         `json:"body,omitempty"`
	MediaURL *string         `json:"mediaUrl,omitempty" validate:"omitempty,url"`
	Settings json.RawMessage `json:"settings,omitempty"`
	Tags     []string        `json:"tags,omitempty"`
}

type updateSectionRequest struct {
	Heading  *string         `json:"heading,omitempty"`
	Body     *string         `json:"body,omitempty"`
	MediaURL *string         `json:"mediaUrl,omitempty" validate:"omitempty,url"`
	Settings json.RawMessage `json:"settings,omitempty"`
	Tags     *[]string       `json:"tags,omitempty"`
}

type reorderSectionsRequest struct {
	SectionIDs []string `json:"sectionIds" validate:"required,min=1,dive,uuid"`
}

// CreateCMSPage handles POST /cms/pages.
func CreateCMSPage(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.CreatePage(r.Context(), cmssvc.CreatePageInput{
			Kind:  enums.CMSPageKind(payload.Kind),
			Slug:  payload.Slug,
			Title: payload.Title,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, page)
	}
}

// UpdateCMSPage handles PATCH /cms/pages/{id}.
func UpdateCMSPage(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updatePageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.UpdatePage(r.Context(), id, cmssvc.UpdatePageInput{
			Slug:  payload.Slug,
			Title: payload.Title,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// DeleteCMSPage handles DELETE /cms/pages/{id}.
func DeleteCMSPage(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeletePage, logg)
}

// GetCMSPage handles GET /cms/pages/{id}.
func GetCMSPage(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetPage, logg)
}

// ListCMSPages handles GET /cms/pages with optional kind filter.
func ListCMSPages(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := cmssvc.ListPagesInput{Pagination: params}
		if raw := r.URL.Query().Get("kind"); raw != "" {
			kind := enums.CMSPageKind(raw)
			if !kind.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid page kind filter"))
				return
			}
			input.Kind = &kind
		}
		result, err := svc.ListPages(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PublishCMSPage handles POST /cms/pages/{id}/publish.
func PublishCMSPage(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return pageStatusHandler(svc.PublishPage, logg)
}

// UnpublishCMSPage handles POST /cms/pages/{id}/unpublish.
func UnpublishCMSPage(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return pageStatusHandler(svc.UnpublishPage, logg)
}

func pageStatusHandler(op func(ctx context.Context, pageID uuid.UUID) (*cmssvc.PageDTO, error), logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := op(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// AddCMSSection handles POST /cms/pages/{id}/sections.
func AddCMSSection(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload sectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		section, err := svc.AddSection(r.Context(), id, cmssvc.SectionInput{
			Kind:     enums.CMSSectionKind(payload.Kind),
			Heading:  payload.Heading,
			Body:     payload.Body,
			MediaURL: payload.MediaURL,
			Settings: payload.Settings,
			Tags:     payload.Tags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, section)
	}
}

// UpdateCMSSection handles PATCH /cms/sections/{id}.
func UpdateCMSSection(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updateSectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		section, err := svc.UpdateSection(r.Context(), id, cmssvc.UpdateSectionInput{
			Heading:  payload.Heading,
			Body:     payload.Body,
			MediaURL: payload.MediaURL,
			Settings: payload.Settings,
			Tags:     payload.Tags,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, section)
	}
}

// DeleteCMSSection handles DELETE /cms/sections/{id}.
func DeleteCMSSection(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteSection, logg)
}

// ReorderCMSSections handles PUT /cms/pages/{id}/sections/order. The body must
// list every section of the page exactly once.
func ReorderCMSSections(svc cmssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload reorderSectionsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		orderedIDs, err := parseUUIDList(payload.SectionIDs, "sectionIds")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.ReorderSections(r.Context(), id, orderedIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}
