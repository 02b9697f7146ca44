// Package pricing implements the pricing-rule condition matcher and the
// incremental markup calculator. Both are pure, synchronous computations over
// in-memory views; nothing here touches storage or the network.
package pricing

import (
	"encoding/json"
	"fmt"

	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
	pkgerrors "github.com/aarshhmi/luminique-admin-backend/pkg/errors"
)

// Condition is one typed predicate inside a pricing rule. The concrete payload
// shape is fixed by the condition type, so a value can never be paired with
// the wrong kind.
type Condition interface {
	Type() enums.ConditionType
	matches(product ProductView, variant VariantAttributes) bool
}

// SetCondition tests product taxonomy membership (category, tags, badges)
// with explicit any/all semantics.
type SetCondition struct {
	Kind      enums.ConditionType
	MatchType enums.MatchType
	IDs       []string
}

// Type implements Condition.
func (c SetCondition) Type() enums.ConditionType { return c.Kind }

func (c SetCondition) matches(product ProductView, _ VariantAttributes) bool {
	var owned []string
	switch c.Kind {
	case enums.ConditionTypeCategory:
		owned = product.CategoryIDs
	case enums.ConditionTypeTags:
		owned = product.TagIDs
	case enums.ConditionTypeBadges:
		owned = product.BadgeIDs
	default:
		return false
	}

	ownedSet := make(map[string]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}

	if c.MatchType == enums.MatchTypeAll {
		// vacuously true on an empty ID list
		for _, id := range c.IDs {
			if _, ok := ownedSet[id]; !ok {
				return false
			}
		}
		return true
	}

	// any: vacuously false on an empty ID list
	for _, id := range c.IDs {
		if _, ok := ownedSet[id]; ok {
			return true
		}
	}
	return false
}

// AttributeCondition tests a scalar variant attribute against a value list.
// Membership is always any-of; these condition types carry no matchType.
type AttributeCondition struct {
	Kind   enums.ConditionType
	Values []string
}

// Type implements Condition.
func (c AttributeCondition) Type() enums.ConditionType { return c.Kind }

func (c AttributeCondition) matches(_ ProductView, variant VariantAttributes) bool {
	var value *string
	switch c.Kind {
	case enums.ConditionTypeMetalType:
		value = variant.MetalType
	case enums.ConditionTypeMetalColor:
		value = variant.MetalColor
	case enums.ConditionTypeMetalPurity:
		value = variant.MetalPurity
	case enums.ConditionTypeDiamondClarityColor:
		value = variant.DiamondClarityColor
	default:
		return false
	}
	if value == nil {
		return false
	}
	for _, candidate := range c.Values {
		if candidate == *value {
			return true
		}
	}
	return false
}

// RangeCondition tests a numeric variant attribute against inclusive bounds.
type RangeCondition struct {
	Kind enums.ConditionType
	From float64
	To   float64
}

// Type implements Condition.
func (c RangeCondition) Type() enums.ConditionType { return c.Kind }

func (c RangeCondition) matches(_ ProductView, variant VariantAttributes) bool {
	var value *float64
	switch c.Kind {
	case enums.ConditionTypeMetalWeight:
		value = variant.MetalWeight
	case enums.ConditionTypeDiamondCarat:
		value = variant.diamondCarat()
	case enums.ConditionTypeGemstoneCarat:
		value = variant.gemstoneCarat()
	case enums.ConditionTypePearlGram:
		value = variant.pearlGrams()
	default:
		return false
	}
	if value == nil {
		return false
	}
	return c.From <= *value && *value <= c.To
}

// unknownCondition preserves an unrecognized condition type through a decode
// round trip. It never matches, so an unknown kind can never widen a rule.
type unknownCondition struct {
	RawType string
	Value   json.RawMessage
}

func (c unknownCondition) Type() enums.ConditionType { return enums.ConditionType(c.RawType) }

func (c unknownCondition) matches(ProductView, VariantAttributes) bool { return false }

type conditionEnvelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type setValue struct {
	MatchType string `json:"matchType"`
	IDs       []string
}

type rangeValue struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

func idsFieldFor(kind enums.ConditionType) string {
	switch kind {
	case enums.ConditionTypeCategory:
		return "categoryIds"
	case enums.ConditionTypeTags:
		return "tagIds"
	case enums.ConditionTypeBadges:
		return "badgeIds"
	case enums.ConditionTypeMetalType:
		return "metalTypeIds"
	case enums.ConditionTypeMetalColor:
		return "metalColorIds"
	case enums.ConditionTypeMetalPurity:
		return "metalPurityIds"
	case enums.ConditionTypeDiamondClarityColor:
		return "diamondClarityColorIds"
	}
	return ""
}

// DecodeConditions parses the stored JSON condition list. Structurally broken
// JSON returns an error; a structurally valid envelope with an unrecognized
// type decodes to a condition that never matches (safe-by-default dispatch).
func DecodeConditions(raw json.RawMessage) ([]Condition, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var envelopes []conditionEnvelope
	if err := json.Unmarshal(raw, &envelopes); err != nil {
		return nil, fmt.Errorf("decode conditions: %w", err)
	}

	conditions := make([]Condition, 0, len(envelopes))
	for i, envelope := range envelopes {
		condition, err := decodeCondition(envelope)
		if err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
		conditions = append(conditions, condition)
	}
	return conditions, nil
}

func decodeCondition(envelope conditionEnvelope) (Condition, error) {
	kind, err := enums.ParseConditionType(envelope.Type)
	if err != nil {
		return unknownCondition{RawType: envelope.Type, Value: envelope.Value}, nil
	}

	switch kind {
	case enums.ConditionTypeCategory, enums.ConditionTypeTags, enums.ConditionTypeBadges:
		value, err := decodeSetValue(kind, envelope.Value, true)
		if err != nil {
			return nil, err
		}
		matchType, err := enums.ParseMatchType(value.MatchType)
		if err != nil {
			return nil, err
		}
		return SetCondition{Kind: kind, MatchType: matchType, IDs: value.IDs}, nil

	case enums.ConditionTypeMetalType, enums.ConditionTypeMetalColor,
		enums.ConditionTypeMetalPurity, enums.ConditionTypeDiamondClarityColor:
		value, err := decodeSetValue(kind, envelope.Value, false)
		if err != nil {
			return nil, err
		}
		return AttributeCondition{Kind: kind, Values: value.IDs}, nil

	default:
		var value rangeValue
		if err := json.Unmarshal(envelope.Value, &value); err != nil {
			return nil, fmt.Errorf("decode %s value: %w", kind, err)
		}
		return RangeCondition{Kind: kind, From: value.From, To: value.To}, nil
	}
}

func decodeSetValue(kind enums.ConditionType, raw json.RawMessage, wantMatchType bool) (setValue, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return setValue{}, fmt.Errorf("decode %s value: %w", kind, err)
	}

	var value setValue
	if wantMatchType {
		if err := json.Unmarshal(fields["matchType"], &value.MatchType); err != nil {
			return setValue{}, fmt.Errorf("decode %s matchType: %w", kind, err)
		}
	}
	idsRaw, ok := fields[idsFieldFor(kind)]
	if !ok {
		return setValue{}, fmt.Errorf("%s value missing %s", kind, idsFieldFor(kind))
	}
	if err := json.Unmarshal(idsRaw, &value.IDs); err != nil {
		return setValue{}, fmt.Errorf("decode %s ids: %w", kind, err)
	}
	return value, nil
}

// MarshalJSON encodes the condition in its persisted envelope form.
func (c SetCondition) MarshalJSON() ([]byte, error) {
	value := map[string]any{
		"matchType":          c.MatchType.String(),
		idsFieldFor(c.Kind): emptyIfNil(c.IDs),
	}
	return json.Marshal(conditionEnvelope{Type: c.Kind.String(), Value: mustMarshal(value)})
}

// MarshalJSON encodes the condition in its persisted envelope form.
func (c AttributeCondition) MarshalJSON() ([]byte, error) {
	value := map[string]any{
		idsFieldFor(c.Kind): emptyIfNil(c.Values),
	}
	return json.Marshal(conditionEnvelope{Type: c.Kind.String(), Value: mustMarshal(value)})
}

// MarshalJSON encodes the condition in its persisted envelope form.
func (c RangeCondition) MarshalJSON() ([]byte, error) {
	value := rangeValue{From: c.From, To: c.To}
	return json.Marshal(conditionEnvelope{Type: c.Kind.String(), Value: mustMarshal(value)})
}

// MarshalJSON re-emits the envelope exactly as it was decoded.
func (c unknownCondition) MarshalJSON() ([]byte, error) {
	return json.Marshal(conditionEnvelope{Type: c.RawType, Value: c.Value})
}

// EncodeConditions serializes a condition list back to its storage form.
func EncodeConditions(conditions []Condition) (json.RawMessage, error) {
	if conditions == nil {
		conditions = []Condition{}
	}
	payload, err := json.Marshal(conditions)
	if err != nil {
		return nil, fmt.Errorf("encode conditions: %w", err)
	}
	return payload, nil
}

// ValidateConditions enforces the write-path contract for draft rules: every
// envelope must decode, reference a known condition type, and carry sane
// bounds. The matcher itself stays permissive (an unknown type simply never
// matches), but persisting an unmatchable rule is almost certainly an
// authoring mistake, so the API rejects it.
func ValidateConditions(raw json.RawMessage) error {
	conditions, err := DecodeConditions(raw)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid conditions")
	}
	for i, condition := range conditions {
		if unknown, ok := condition.(unknownCondition); ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown condition type").
				WithDetails(map[string]any{"index": i, "type": unknown.RawType})
		}
		if ranged, ok := condition.(RangeCondition); ok && ranged.From > ranged.To {
			return pkgerrors.New(pkgerrors.CodeValidation, "range condition from exceeds to").
				WithDetails(map[string]any{"index": i, "type": ranged.Kind.String()})
		}
	}
	return nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func mustMarshal(value any) json.RawMessage {
	payload, err := json.Marshal(value)
	if err != nil {
		// map[string]any over strings/floats cannot fail to marshal
		panic(err)
	}
	return payload
}
