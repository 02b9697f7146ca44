package enums

import "fmt"

// CMSPageKind distinguishes the editable page families.
type CMSPageKind string

const (
	CMSPageKindHome   CMSPageKind = "home"
	CMSPageKindPolicy CMSPageKind = "policy"
)

var validCMSPageKinds = []CMSPageKind{CMSPageKindHome, CMSPageKindPolicy}

// String implements fmt.Stringer.
func (k CMSPageKind) String() string {
	return string(k)
}

// IsValid reports whether the page kind is recognized.
func (k CMSPageKind) IsValid() bool {
	for _, candidate := range validCMSPageKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCMSPageKind converts a raw string into a CMSPageKind.
func ParseCMSPageKind(value string) (CMSPageKind, error) {
	for _, candidate := range validCMSPageKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cms page kind %q", value)
}

// CMSSectionKind identifies the rendering widget of a page section.
type CMSSectionKind string

const (
	CMSSectionKindHero             CMSSectionKind = "hero"
	CMSSectionKindBanner           CMSSectionKind = "banner"
	CMSSectionKindFeaturedProducts CMSSectionKind = "featured_products"
	CMSSectionKindCategoryGrid     CMSSectionKind = "category_grid"
	CMSSectionKindRichText         CMSSectionKind = "rich_text"
	CMSSectionKindPolicyText       CMSSectionKind = "policy_text"
	CMSSectionKindFAQ              CMSSectionKind = "faq"
)

var validCMSSectionKinds = []CMSSectionKind{
	CMSSectionKindHero,
	CMSSectionKindBanner,
	CMSSectionKindFeaturedProducts,
	CMSSectionKindCategoryGrid,
	CMSSectionKindRichText,
	CMSSectionKindPolicyText,
	CMSSectionKindFAQ,
}

// String implements fmt.Stringer.
func (k CMSSectionKind) String() string {
	return string(k)
}

// IsValid reports whether the section kind is recognized.
func (k CMSSectionKind) IsValid() bool {
	for _, candidate := range validCMSSectionKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCMSSectionKind converts a raw string into a CMSSectionKind.
func ParseCMSSectionKind(value string) (CMSSectionKind, error) {
	for _, candidate := range validCMSSectionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cms section kind %q", value)
}
