package enums

import "fmt"

// MatchType selects between any-of and all-of membership for set conditions.
type MatchType string

const (
	MatchTypeAny MatchType = "any"
	MatchTypeAll MatchType = "all"
)

var validMatchTypes = []MatchType{MatchTypeAny, MatchTypeAll}

// String implements fmt.Stringer.
func (m MatchType) String() string {
	return string(m)
}

// IsValid reports whether the match type is recognized.
func (m MatchType) IsValid() bool {
	for _, candidate := range validMatchTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMatchType converts a raw string into a MatchType.
func ParseMatchType(value string) (MatchType, error) {
	for _, candidate := range validMatchTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid match type %q", value)
}
