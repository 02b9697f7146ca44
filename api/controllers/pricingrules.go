package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/aarshhmi/luminique-admin-backend/api/responses"
	"github.com/aarshhmi/luminique-admin-backend/api/validators"
	"github.com/aarshhmi/luminique-admin-backend/internal/pricing"
	rulesvc "github.com/aarshhmi/luminique-admin-backend/internal/pricingrules"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
)

type markupsPayload struct {
	MakingChargeMarkup float64 `json:"makingChargeMarkup" validate:"min=0"`
	DiamondMarkup      float64 `json:"diamondMarkup" validate:"min=0"`
	GemstoneMarkup     float64 `json:"gemstoneMarkup" validate:"min=0"`
	PearlMarkup        float64 `json:"pearlMarkup" validate:"min=0"`
}

func (m markupsPayload) toMarkups() pricing.Markups {
	return pricing.Markups{
		MakingChargeMarkup: m.MakingChargeMarkup,
		DiamondMarkup:      m.DiamondMarkup,
		GemstoneMarkup:     m.GemstoneMarkup,
		PearlMarkup:        m.PearlMarkup,
	}
}

type createPricingRuleRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description *string         `json:"description,omitempty"`
	IsActive    *bool           `json:"isActive,omitempty"`
	Priority    int             `json:"priority,omitempty"`
	Conditions  json.RawMessage `json:"conditions,omitempty"`
	Markups     markupsPayload  `json:"markups"`
}

type updatePricingRuleRequest struct {
	Name        *string         `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string         `json:"description,omitempty"`
	IsActive    *bool           `json:"isActive,omitempty"`
	Priority    *int            `json:"priority,omitempty"`
	Conditions  json.RawMessage `json:"conditions,omitempty"`
	Markups     *markupsPayload `json:"markups,omitempty"`
}

type previewPricingRuleRequest struct {
	Conditions json.RawMessage `json:"conditions,omitempty"`
	Markups    markupsPayload  `json:"markups"`
}

// CreatePricingRule handles POST /pricing-rules.
func CreatePricingRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPricingRuleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rule, err := svc.CreateRule(r.Context(), rulesvc.CreateRuleInput{
			Name:        payload.Name,
			Description: payload.Description,
			IsActive:    payload.IsActive,
			Priority:    payload.Priority,
			Conditions:  payload.Conditions,
			Markups:     payload.Markups.toMarkups(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, rule)
	}
}

// UpdatePricingRule handles PATCH /pricing-rules/{id}.
func UpdatePricingRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload updatePricingRuleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := rulesvc.UpdateRuleInput{
			Name:        payload.Name,
			Description: payload.Description,
			IsActive:    payload.IsActive,
			Priority:    payload.Priority,
			Conditions:  payload.Conditions,
		}
		if payload.Markups != nil {
			markups := payload.Markups.toMarkups()
			input.Markups = &markups
		}
		rule, err := svc.UpdateRule(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rule)
	}
}

// DeletePricingRule handles DELETE /pricing-rules/{id}.
func DeletePricingRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return deleteHandler(svc.DeleteRule, logg)
}

// GetPricingRule handles GET /pricing-rules/{id}.
func GetPricingRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return getHandler(svc.GetRule, logg)
}

// ListPricingRules handles GET /pricing-rules with optional isActive filter.
func ListPricingRules(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		isActive, err := validators.ParseQueryBool(r, "isActive")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.ListRules(r.Context(), rulesvc.ListRulesInput{
			IsActive:   isActive,
			Pagination: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PreviewPricingRule handles POST /pricing-rules/preview. The rule being
// previewed never has to exist in storage.
func PreviewPricingRule(svc rulesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload previewPricingRuleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.Preview(r.Context(), rulesvc.PreviewInput{
			Conditions: payload.Conditions,
			Markups:    payload.Markups.toMarkups(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
