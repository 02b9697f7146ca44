package enums

import "fmt"

// ConditionType identifies the attribute a pricing rule condition inspects.
type ConditionType string

const (
	ConditionTypeCategory            ConditionType = "category"
	ConditionTypeTags                ConditionType = "tags"
	ConditionTypeBadges              ConditionType = "badges"
	ConditionTypeMetalWeight         ConditionType = "metal_weight"
	ConditionTypeDiamondCarat        ConditionType = "diamond_carat"
	ConditionTypeMetalType           ConditionType = "metal_type"
	ConditionTypeMetalColor          ConditionType = "metal_color"
	ConditionTypeMetalPurity         ConditionType = "metal_purity"
	ConditionTypeDiamondClarityColor ConditionType = "diamond_clarity_color"
	ConditionTypeGemstoneCarat       ConditionType = "gemstone_carat"
	ConditionTypePearlGram           ConditionType = "pearl_gram"
)

var validConditionTypes = []ConditionType{
	ConditionTypeCategory,
	ConditionTypeTags,
	ConditionTypeBadges,
	ConditionTypeMetalWeight,
	ConditionTypeDiamondCarat,
	ConditionTypeMetalType,
	ConditionTypeMetalColor,
	ConditionTypeMetalPurity,
	ConditionTypeDiamondClarityColor,
	ConditionTypeGemstoneCarat,
	ConditionTypePearlGram,
}

// String implements fmt.Stringer.
func (c ConditionType) String() string {
	return string(c)
}

// IsValid reports whether the condition type is recognized.
func (c ConditionType) IsValid() bool {
	for _, candidate := range validConditionTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseConditionType converts a raw string into a ConditionType.
func ParseConditionType(value string) (ConditionType, error) {
	for _, candidate := range validConditionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid condition type %q", value)
}
