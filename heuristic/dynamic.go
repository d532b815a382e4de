package heuristic

import (
	"mcsat/sat"

	"github.com/rhartert/yagh"
)

// assignDynamic assigns variables one at a time, always picking the best
// scored variable over the clauses that are still unsatisfied. Scores only
// decrease as clauses get satisfied, so the heap entry of every variable
// sharing a newly satisfied clause is refreshed in place.
func assignDynamic(inst *sat.Instance, a sat.Assignment, kind Kind) {
	occ := make(occurrences, inst.NVars)
	satisfied := make([]bool, inst.NClauses)
	for c, cls := range inst.Clauses {
		satisfied[c] = isSatisfied(cls, a)
		if !satisfied[c] {
			occ.add(cls)
		}
	}

	queue := yagh.New[int](inst.NVars)
	for _, v := range unassigned(a) {
		queue.Put(v, occ.cost(kind, v))
	}

	for {
		next, ok := queue.Pop()
		if !ok {
			return
		}
		v := next.Elem
		a[v] = occ.majority(v)

		lit := sat.Literal{Var: v, Positive: a[v] == sat.True}
		for _, c := range inst.Literals(lit) {
			if satisfied[c] {
				continue
			}
			satisfied[c] = true
			occ.remove(inst.Clauses[c])
			if kind == InOrder {
				continue
			}
			for _, other := range inst.Clauses[c].Literals {
				if queue.Contains(other.Var) {
					queue.Put(other.Var, occ.cost(kind, other.Var))
				}
			}
		}
	}
}

// cost turns a score into a min-heap key unique per variable: higher scores
// come first, then lower ids.
func (occ occurrences) cost(kind Kind, v int) int {
	if kind == InOrder {
		return v
	}
	return v - occ.score(kind, v)*(len(occ)+1)
}

func isSatisfied(cls sat.Clause, a sat.Assignment) bool {
	for _, lit := range cls.Literals {
		if a.Satisfies(lit) {
			return true
		}
	}
	return false
}
