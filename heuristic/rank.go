package heuristic

import (
	"mcsat/sat"

	"golang.org/x/exp/rand"
)

// Rank returns the unassigned variables of a, best first under kind, truncated
// to limit (0 keeps them all). When dynamic is set, occurrences are counted only
// over the clauses a does not satisfy yet.
func Rank(inst *sat.Instance, a sat.Assignment, kind Kind, dynamic bool, limit int, rng *rand.Rand) []int {
	vars := unassigned(a)
	switch kind {
	case Random:
		rng.Shuffle(len(vars), func(i, j int) {
			vars[i], vars[j] = vars[j], vars[i]
		})
	case InOrder:
	default:
		var occ occurrences
		if dynamic {
			occ = countUnsatisfied(inst, a)
		} else {
			occ = countAll(inst)
		}
		vars = order(occ, kind, vars)
	}
	if limit > 0 && len(vars) > limit {
		vars = vars[:limit]
	}
	return vars
}
