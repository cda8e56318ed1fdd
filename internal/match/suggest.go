package match

import (
	"cmp"
	"slices"
)

// DefaultSuggestThreshold is the minimum Similarity a candidate needs to be suggested.
const DefaultSuggestThreshold = 0.5

// Suggest returns the candidates whose similarity to value reaches threshold,
// best first. Ties keep the order of candidates. At most limit entries are
// returned; limit <= 0 means no limit.
func Suggest(value string, candidates []string, threshold float64, limit int) []string {
	type scored struct {
		name  string
		score float64
	}

	var ranked []scored

	for _, c := range candidates {
		s := Similarity(value, c)
		if s >= threshold && s < 1.0 {
			ranked = append(ranked, scored{name: c, score: s})
		}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}

// Closest returns the single best suggestion for value, or "" when nothing is
// similar enough.
func Closest(value string, candidates []string) string {
	if s := Suggest(value, candidates, DefaultSuggestThreshold, 1); len(s) > 0 {
		return s[0]
	}

	return ""
}
