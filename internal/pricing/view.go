package pricing

import "encoding/json"

// ProductView is the read-only product projection the matcher inspects.
// ID sets come from the product's taxonomy associations.
type ProductView struct {
	CategoryIDs []string
	TagIDs      []string
	BadgeIDs    []string
}

// VariantAttributes is the structured attribute document stored on a variant.
// Every field is optional; a nil field means the variant does not carry the
// attribute, and any condition referencing it fails. Absence is never zero.
type VariantAttributes struct {
	MetalWeight         *float64      `json:"metalWeight,omitempty"`
	MetalType           *string       `json:"metalType,omitempty"`
	MetalColor          *string       `json:"metalColor,omitempty"`
	MetalPurity         *string       `json:"metalPurity,omitempty"`
	DiamondClarityColor *string       `json:"diamondClarityColor,omitempty"`
	Weights             *StoneWeights `json:"weights,omitempty"`
}

// StoneWeights groups the per-stone weight documents.
type StoneWeights struct {
	Diamond  *StoneWeight `json:"diamond,omitempty"`
	Gemstone *StoneWeight `json:"gemstone,omitempty"`
	Pearl    *PearlWeight `json:"pearl,omitempty"`
}

// StoneWeight carries a carat weight for diamond or gemstone content.
type StoneWeight struct {
	Carat *float64 `json:"carat,omitempty"`
}

// PearlWeight carries the pearl content in grams.
type PearlWeight struct {
	Grams *float64 `json:"grams,omitempty"`
}

// DecodeVariantAttributes parses the stored attribute document. A missing or
// malformed document decodes to the empty attribute set, which no condition
// matches; the matcher path never surfaces an error.
func DecodeVariantAttributes(raw json.RawMessage) VariantAttributes {
	if len(raw) == 0 {
		return VariantAttributes{}
	}
	var attrs VariantAttributes
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return VariantAttributes{}
	}
	return attrs
}

func (v VariantAttributes) diamondCarat() *float64 {
	if v.Weights == nil || v.Weights.Diamond == nil {
		return nil
	}
	return v.Weights.Diamond.Carat
}

func (v VariantAttributes) gemstoneCarat() *float64 {
	if v.Weights == nil || v.Weights.Gemstone == nil {
		return nil
	}
	return v.Weights.Gemstone.Carat
}

func (v VariantAttributes) pearlGrams() *float64 {
	if v.Weights == nil || v.Weights.Pearl == nil {
		return nil
	}
	return v.Weights.Pearl.Grams
}
