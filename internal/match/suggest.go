package match

import "sort"

const (
	// DefaultMinSimilarity is the minimum similarity for a name to be suggested.
	DefaultMinSimilarity = 0.6
	// DefaultMaxSuggestions caps the number of suggestions returned.
	DefaultMaxSuggestions = 3
)

type scored struct {
	name  string
	score float64
}

// Suggest returns up to DefaultMaxSuggestions names from known that look like
// unknown, best first. Ties keep the order of known, so results are stable.
func Suggest(unknown string, known []string) []string {
	var candidates []scored

	for _, k := range known {
		s := Similarity(unknown, k)
		if s >= DefaultMinSimilarity {
			candidates = append(candidates, scored{name: k, score: s})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > DefaultMaxSuggestions {
		candidates = candidates[:DefaultMaxSuggestions]
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.name)
	}

	return out
}
