package heuristic

import (
	"mcsat/sat"

	"golang.org/x/exp/slices"
)

// occurrences counts, per variable, the live literals of each polarity.
type occurrences [][2]int

func countAll(inst *sat.Instance) occurrences {
	occ := make(occurrences, inst.NVars)
	for _, cls := range inst.Clauses {
		occ.add(cls)
	}
	return occ
}

// countUnsatisfied only counts clauses without a true literal under a.
func countUnsatisfied(inst *sat.Instance, a sat.Assignment) occurrences {
	occ := make(occurrences, inst.NVars)
	for _, c := range inst.UnsatisfiedClauses(a) {
		occ.add(inst.Clauses[c])
	}
	return occ
}

func (occ occurrences) add(cls sat.Clause) {
	for _, lit := range cls.Literals {
		occ[lit.Var][sat.Polarity(lit.Positive)]++
	}
}

func (occ occurrences) remove(cls sat.Clause) {
	for _, lit := range cls.Literals {
		occ[lit.Var][sat.Polarity(lit.Positive)]--
	}
}

// majority picks the more frequent polarity of v, true on ties.
func (occ occurrences) majority(v int) sat.Value {
	return sat.ValueOf(occ[v][1] >= occ[v][0])
}

// score ranks v under kind; larger is better.
func (occ occurrences) score(kind Kind, v int) int {
	switch kind {
	case InOrder:
		return -v
	case MaxVariable:
		return occ[v][0] + occ[v][1]
	case MaxLiteral:
		return max(occ[v][0], occ[v][1])
	default:
		panic("no occurrence score for random heuristic")
	}
}

// order sorts vars by decreasing score, keeping id order among ties.
func order(occ occurrences, kind Kind, vars []int) []int {
	if kind == InOrder {
		return vars
	}
	slices.SortStableFunc(vars, func(x, y int) int {
		return occ.score(kind, y) - occ.score(kind, x)
	})
	return vars
}
