// Package matching implements the fuzzy goal-title matching used when folding
// AI responses back into locally stored goals. Generated plans and tasks come
// back keyed by title text, which the model sometimes paraphrases, so an
// exact-equality join loses data.
package matching

import "strings"

// Normalize lowercases and trims a title for comparison.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TitlesMatch reports whether two goal titles refer to the same goal: equal
// after normalization, or either contains the other.
func TitlesMatch(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return na == nb
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

// FindTitle returns the index of the first candidate matching title, or -1.
// First match wins; callers keep unmatched goals unchanged.
func FindTitle(title string, candidates []string) int {
	for i, c := range candidates {
		if TitlesMatch(title, c) {
			return i
		}
	}
	return -1
}
