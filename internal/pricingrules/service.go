package pricingrules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aarshhmi/luminique-admin-backend/internal/pricing"
	"github.com/aarshhmi/luminique-admin-backend/internal/products"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db/models"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
	"github.com/aarshhmi/luminique-admin-backend/pkg/logger"
	"github.com/aarshhmi/luminique-admin-backend/pkg/pagination"
)

// CandidateLoader supplies the variant views a preview runs against.
type CandidateLoader interface {
	ListForPricingRule(ctx context.Context) ([]products.PricingCandidate, error)
}

// Service exposes pricing-rule management and the dry-run preview.
type Service interface {
	CreateRule(ctx context.Context, input CreateRuleInput) (*RuleDTO, error)
	UpdateRule(ctx context.Context, ruleID uuid.UUID, input UpdateRuleInput) (*RuleDTO, error)
	DeleteRule(ctx context.Context, ruleID uuid.UUID) error
	GetRule(ctx context.Context, ruleID uuid.UUID) (*RuleDTO, error)
	ListRules(ctx context.Context, input ListRulesInput) (*RuleListResult, error)

	Preview(ctx context.Context, input PreviewInput) (*PreviewResult, error)
}

// CreateRuleInput is the validated payload to create a rule.
type CreateRuleInput struct {
	Name        string
	Description *string
	IsActive    *bool
	Priority    int
	Conditions  json.RawMessage
	Markups     pricing.Markups
}

// UpdateRuleInput holds optional mutation values for a rule.
type UpdateRuleInput struct {
	Name        *string
	Description *string
	IsActive    *bool
	Priority    *int
	Conditions  json.RawMessage
	Markups     *pricing.Markups
}

// ListRulesInput carries list filters plus pagination.
type ListRulesInput struct {
	IsActive   *bool
	Pagination pagination.Params
}

// PreviewInput is a draft rule to dry-run. It never has to exist in storage;
// the admin previews unsaved edits.
type PreviewInput struct {
	Conditions json.RawMessage
	Markups    pricing.Markups
}

type service struct {
	repo       *Repository
	candidates CandidateLoader
	calc       pricing.Calculator
	logg       *logger.Logger
}

// NewService constructs a pricing-rule service instance.
func NewService(repo *Repository, candidates CandidateLoader, calc pricing.Calculator, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing-rule repository required")
	}
	if candidates == nil {
		return nil, fmt.Errorf("candidate loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, candidates: candidates, calc: calc, logg: logg}, nil
}

// CreateRule validates and stores a new rule.
func (s *service) CreateRule(ctx context.Context, input CreateRuleInput) (*RuleDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule name is required")
	}
	conditions, err := normalizeConditions(input.Conditions)
	if err != nil {
		return nil, err
	}
	if err := validateMarkups(input.Markups); err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	rule := &models.PricingRule{
		Name:               strings.TrimSpace(input.Name),
		Description:        input.Description,
		IsActive:           isActive,
		Priority:           input.Priority,
		Conditions:         conditions,
		MakingChargeMarkup: input.Markups.MakingChargeMarkup,
		DiamondMarkup:      input.Markups.DiamondMarkup,
		GemstoneMarkup:     input.Markups.GemstoneMarkup,
		PearlMarkup:        input.Markups.PearlMarkup,
	}
	created, err := s.repo.Create(ctx, rule)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert pricing rule")
	}
	s.logg.Info(s.logg.WithEntity(ctx, "pricing_rule"), "pricing rule created: "+created.Name)
	return NewRuleDTO(created), nil
}

// UpdateRule applies partial updates to one rule.
func (s *service) UpdateRule(ctx context.Context, ruleID uuid.UUID, input UpdateRuleInput) (*RuleDTO, error) {
	rule, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, mapReadErr(err, "pricing rule")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "rule name cannot be empty")
		}
		rule.Name = name
	}
	if input.Description != nil {
		rule.Description = input.Description
	}
	if input.IsActive != nil {
		rule.IsActive = *input.IsActive
	}
	if input.Priority != nil {
		rule.Priority = *input.Priority
	}
	if input.Conditions != nil {
		conditions, err := normalizeConditions(input.Conditions)
		if err != nil {
			return nil, err
		}
		rule.Conditions = conditions
	}
	if input.Markups != nil {
		if err := validateMarkups(*input.Markups); err != nil {
			return nil, err
		}
		rule.MakingChargeMarkup = input.Markups.MakingChargeMarkup
		rule.DiamondMarkup = input.Markups.DiamondMarkup
		rule.GemstoneMarkup = input.Markups.GemstoneMarkup
		rule.PearlMarkup = input.Markups.PearlMarkup
	}

	updated, err := s.repo.Update(ctx, rule)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update pricing rule")
	}
	return NewRuleDTO(updated), nil
}

// DeleteRule removes the rule. Previously applied price changes stay on the
// variants; deletion only stops future applications.
func (s *service) DeleteRule(ctx context.Context, ruleID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, ruleID); err != nil {
		return mapReadErr(err, "pricing rule")
	}
	if err := s.repo.Delete(ctx, ruleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete pricing rule")
	}
	return nil
}

// GetRule loads one rule.
func (s *service) GetRule(ctx context.Context, ruleID uuid.UUID) (*RuleDTO, error) {
	rule, err := s.repo.FindByID(ctx, ruleID)
	if err != nil {
		return nil, mapReadErr(err, "pricing rule")
	}
	return NewRuleDTO(rule), nil
}

// ListRules returns one keyset page.
func (s *service) ListRules(ctx context.Context, input ListRulesInput) (*RuleListResult, error) {
	rows, next, err := s.repo.List(ctx, input.Pagination, input.IsActive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list pricing rules")
	}
	result := &RuleListResult{NextCursor: next, Rules: make([]RuleDTO, 0, len(rows))}
	for i := range rows {
		result.Rules = append(result.Rules, *NewRuleDTO(&rows[i]))
	}
	return result, nil
}

// Preview runs the draft rule against every sellable variant and reports the
// matches with their projected prices. It is a pure read: nothing is written.
func (s *service) Preview(ctx context.Context, input PreviewInput) (*PreviewResult, error) {
	raw := input.Conditions
	if raw == nil {
		raw = json.RawMessage(`[]`)
	}
	conditions, err := pricing.DecodeConditions(raw)
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid conditions")
	}
	if err := validateMarkups(input.Markups); err != nil {
		return nil, err
	}

	candidates, err := s.candidates.ListForPricingRule(ctx)
	if err != nil {
		return nil, err
	}

	result := &PreviewResult{TotalVariants: len(candidates), Rows: []PreviewRow{}}
	for _, candidate := range candidates {
		if !pricing.MatchesConditions(candidate.Product, candidate.Attributes, conditions) {
			continue
		}
		result.MatchedVariants++

		row := PreviewRow{
			ProductID:         candidate.ProductID,
			ProductName:       candidate.ProductName,
			VariantID:         candidate.VariantID,
			SKU:               candidate.SKU,
			CurrentPricePaise: candidate.SellingPricePaise,
			NewPricePaise:     candidate.SellingPricePaise,
		}
		if costs := pricing.ExtractCostComponents(candidate.PriceComponents); costs != nil {
			row.HasCostBreakdown = true
			row.NewPricePaise = s.calc.NewSellingPrice(candidate.SellingPricePaise, *costs, input.Markups)
			breakdown := s.calc.AdditionalMarkupBreakdown(*costs, input.Markups)
			row.Breakdown = &breakdown
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// normalizeConditions validates the raw condition document and re-encodes it
// in canonical form for storage.
func normalizeConditions(raw json.RawMessage) (json.RawMessage, error) {
	if raw == nil {
		raw = json.RawMessage(`[]`)
	}
	if err := pricing.ValidateConditions(raw); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid conditions")
	}
	conditions, err := pricing.DecodeConditions(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid conditions")
	}
	encoded, err := pricing.EncodeConditions(conditions)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid conditions")
	}
	return encoded, nil
}

func validateMarkups(markups pricing.Markups) error {
	for _, value := range []float64{
		markups.MakingChargeMarkup,
		markups.DiamondMarkup,
		markups.GemstoneMarkup,
		markups.PearlMarkup,
	} {
		if value < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "markup percentages cannot be negative")
		}
	}
	return nil
}

func mapReadErr(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load "+entity)
}
