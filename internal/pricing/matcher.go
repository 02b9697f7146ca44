package pricing

// MatchesConditions reports whether the product/variant pair satisfies every
// condition in the list.
//
// An empty condition list matches nothing: a rule with no conditions has no
// scope rather than universal scope. Flipping this to match-everything would
// silently reprice the whole catalog, so the conservative reading stands until
// the business confirms otherwise.
//
// All conditions are combined with AND; there is no OR across condition types.
// Malformed or missing variant data degrades to non-match, never to a panic.
func MatchesConditions(product ProductView, variant VariantAttributes, conditions []Condition) bool {
	if len(conditions) == 0 {
		return false
	}
	for _, condition := range conditions {
		if !condition.matches(product, variant) {
			return false
		}
	}
	return true
}
