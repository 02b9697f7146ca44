package pricing

import (
	"testing"

	"github.com/aarshhmi/luminique-admin-backend/pkg/enums"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func goldRingVariant() VariantAttributes {
	return VariantAttributes{
		MetalWeight: floatPtr(3.5),
		MetalType:   strPtr("gold"),
		MetalColor:  strPtr("yellow"),
		MetalPurity: strPtr("22k"),
		Weights: &StoneWeights{
			Diamond: &StoneWeight{Carat: floatPtr(0.25)},
		},
	}
}

func TestMatchesConditions_EmptyListMatchesNothing(t *testing.T) {
	product := ProductView{CategoryIDs: []string{"rings"}}
	variant := goldRingVariant()

	if MatchesConditions(product, variant, nil) {
		t.Fatal("nil condition list must not match")
	}
	if MatchesConditions(product, variant, []Condition{}) {
		t.Fatal("empty condition list must not match")
	}
}

func TestMatchesConditions_AndAcrossConditions(t *testing.T) {
	product := ProductView{CategoryIDs: []string{"rings"}}
	variant := goldRingVariant()

	passing := SetCondition{Kind: enums.ConditionTypeCategory, MatchType: enums.MatchTypeAny, IDs: []string{"rings"}}
	failing := RangeCondition{Kind: enums.ConditionTypeMetalWeight, From: 10, To: 20}

	if !MatchesConditions(product, variant, []Condition{passing}) {
		t.Fatal("single passing condition should match")
	}
	if MatchesConditions(product, variant, []Condition{passing, failing}) {
		t.Fatal("one failing condition must fail the composite")
	}
	if MatchesConditions(product, variant, []Condition{failing, passing}) {
		t.Fatal("order must not rescue a failing condition")
	}
}

func TestSetCondition_AnyAllAsymmetry(t *testing.T) {
	product := ProductView{CategoryIDs: []string{"rings", "bridal"}}
	variant := VariantAttributes{}

	t.Run("emptyIDsAllIsVacuouslyTrue", func(t *testing.T) {
		cond := SetCondition{Kind: enums.ConditionTypeCategory, MatchType: enums.MatchTypeAll, IDs: []string{}}
		if !MatchesConditions(product, variant, []Condition{cond}) {
			t.Fatal("all over an empty ID list must match")
		}
	})

	t.Run("emptyIDsAnyIsVacuouslyFalse", func(t *testing.T) {
		cond := SetCondition{Kind: enums.ConditionTypeCategory, MatchType: enums.MatchTypeAny, IDs: []string{}}
		if MatchesConditions(product, variant, []Condition{cond}) {
			t.Fatal("any over an empty ID list must not match")
		}
	})

	t.Run("allRequiresEveryID", func(t *testing.T) {
		cond := SetCondition{Kind: enums.ConditionTypeCategory, MatchType: enums.MatchTypeAll, IDs: []string{"rings", "necklaces"}}
		if MatchesConditions(product, variant, []Condition{cond}) {
			t.Fatal("all must fail when one ID is missing")
		}
	})

	t.Run("anyAcceptsOneID", func(t *testing.T) {
		cond := SetCondition{Kind: enums.ConditionTypeCategory, MatchType: enums.MatchTypeAny, IDs: []string{"necklaces", "bridal"}}
		if !MatchesConditions(product, variant, []Condition{cond}) {
			t.Fatal("any must pass on a single overlap")
		}
	})
}

func TestSetCondition_TagsAndBadgesReadTheirOwnSets(t *testing.T) {
	product := ProductView{
		TagIDs:   []string{"new-arrival"},
		BadgeIDs: []string{"bestseller"},
	}
	variant := VariantAttributes{}

	tags := SetCondition{Kind: enums.ConditionTypeTags, MatchType: enums.MatchTypeAny, IDs: []string{"new-arrival"}}
	badges := SetCondition{Kind: enums.ConditionTypeBadges, MatchType: enums.MatchTypeAny, IDs: []string{"new-arrival"}}

	if !MatchesConditions(product, variant, []Condition{tags}) {
		t.Fatal("tags condition should read the tag set")
	}
	if MatchesConditions(product, variant, []Condition{badges}) {
		t.Fatal("badges condition must not read the tag set")
	}
}

func TestAttributeCondition(t *testing.T) {
	product := ProductView{}
	variant := goldRingVariant()

	t.Run("membershipIsAlwaysAny", func(t *testing.T) {
		cond := AttributeCondition{Kind: enums.ConditionTypeMetalType, Values: []string{"silver", "gold"}}
		if !MatchesConditions(product, variant, []Condition{cond}) {
			t.Fatal("expected metal type membership to match")
		}
	})

	t.Run("missingAttributeFails", func(t *testing.T) {
		cond := AttributeCondition{Kind: enums.ConditionTypeDiamondClarityColor, Values: []string{"vvs1-ef"}}
		if MatchesConditions(product, variant, []Condition{cond}) {
			t.Fatal("absent attribute must not match")
		}
	})

	t.Run("noValueOverlapFails", func(t *testing.T) {
		cond := AttributeCondition{Kind: enums.ConditionTypeMetalPurity, Values: []string{"18k"}}
		if MatchesConditions(product, variant, []Condition{cond}) {
			t.Fatal("non-member value must not match")
		}
	})
}

func TestRangeCondition_InclusiveBounds(t *testing.T) {
	product := ProductView{}
	cond := RangeCondition{Kind: enums.ConditionTypeMetalWeight, From: 2, To: 5}

	tests := []struct {
		name   string
		weight float64
		want   bool
	}{
		{name: "lowerBound", weight: 2, want: true},
		{name: "upperBound", weight: 5, want: true},
		{name: "interior", weight: 3.4, want: true},
		{name: "justBelow", weight: 1.999, want: false},
		{name: "justAbove", weight: 5.0001, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant := VariantAttributes{MetalWeight: floatPtr(tt.weight)}
			got := MatchesConditions(product, variant, []Condition{cond})
			if got != tt.want {
				t.Fatalf("weight %v: got %v want %v", tt.weight, got, tt.want)
			}
		})
	}
}

func TestRangeCondition_MissingMetadataFailsWithoutPanic(t *testing.T) {
	product := ProductView{}

	conds := []Condition{
		RangeCondition{Kind: enums.ConditionTypeDiamondCarat, From: 0, To: 10},
	}

	// no weights at all
	if MatchesConditions(product, VariantAttributes{}, conds) {
		t.Fatal("missing weights must not match")
	}
	// weights present, diamond absent
	variant := VariantAttributes{Weights: &StoneWeights{Gemstone: &StoneWeight{Carat: floatPtr(1)}}}
	if MatchesConditions(product, variant, conds) {
		t.Fatal("missing diamond weight must not match")
	}
	// diamond present, carat absent
	variant = VariantAttributes{Weights: &StoneWeights{Diamond: &StoneWeight{}}}
	if MatchesConditions(product, variant, conds) {
		t.Fatal("missing carat must not match")
	}
}

func TestRangeCondition_NestedStoneLookups(t *testing.T) {
	product := ProductView{}
	variant := VariantAttributes{
		Weights: &StoneWeights{
			Gemstone: &StoneWeight{Carat: floatPtr(1.2)},
			Pearl:    &PearlWeight{Grams: floatPtr(4.8)},
		},
	}

	gemstone := RangeCondition{Kind: enums.ConditionTypeGemstoneCarat, From: 1, To: 2}
	pearl := RangeCondition{Kind: enums.ConditionTypePearlGram, From: 4, To: 5}

	if !MatchesConditions(product, variant, []Condition{gemstone, pearl}) {
		t.Fatal("nested stone weights should satisfy both ranges")
	}
}

func TestUnknownConditionNeverMatches(t *testing.T) {
	product := ProductView{CategoryIDs: []string{"rings"}}
	variant := goldRingVariant()

	unknown := unknownCondition{RawType: "stone_origin"}
	passing := SetCondition{Kind: enums.ConditionTypeCategory, MatchType: enums.MatchTypeAny, IDs: []string{"rings"}}

	if MatchesConditions(product, variant, []Condition{unknown}) {
		t.Fatal("unknown condition type must not match")
	}
	if MatchesConditions(product, variant, []Condition{passing, unknown}) {
		t.Fatal("unknown condition must fail the whole composite")
	}
}
