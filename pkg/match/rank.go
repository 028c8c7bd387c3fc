package match

import (
	"sort"
	"strings"

	"github.com/codesync/codesync/pkg/repo"
)

// similarity scores how closely two relative paths resemble each other.
// Components are compared pairwise starting from the filename: a matching
// component scores -1 and a mismatch +1, so lower is more similar.
func similarity(a, b string) int {
	aComponents := reversed(repo.Components(a))
	bComponents := reversed(repo.Components(b))

	n := len(aComponents)
	if len(bComponents) < n {
		n = len(bComponents)
	}

	rank := 0
	for i := 0; i < n; i++ {
		if strings.EqualFold(aComponents[i], bComponents[i]) {
			rank--
		} else {
			rank++
		}
	}
	return rank
}

// rankCandidates orders candidates from most to least similar to source.
// Ties keep their original order. Lists with fewer than two entries have
// nothing to rank.
func rankCandidates(source string, candidates []string) []string {
	if len(candidates) < 2 {
		return candidates
	}

	ranked := append([]string(nil), candidates...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return similarity(source, ranked[i]) < similarity(source, ranked[j])
	})
	return ranked
}

func reversed(components []string) []string {
	out := make([]string, len(components))
	for i, component := range components {
		out[len(components)-1-i] = component
	}
	return out
}
