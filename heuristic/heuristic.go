// Package heuristic completes partial assignments and ranks branching variables.
//
// Four scoring rules are shared by both uses:
//
//	H0 Random       uniform random choice
//	H1 InOrder      by variable id
//	H2 MaxVariable  by occurrences of the variable (both polarities)
//	H3 MaxLiteral   by occurrences of its more frequent literal
//
// A static heuristic counts occurrences over the whole clause set, a dynamic one
// only over the clauses not yet satisfied. Ties always go to the lower variable id.
package heuristic

import (
	"fmt"

	"mcsat/sat"

	"golang.org/x/exp/rand"
)

type Kind int

const (
	Random Kind = iota
	InOrder
	MaxVariable
	MaxLiteral
)

func (k Kind) String() string {
	switch k {
	case Random:
		return "random"
	case InOrder:
		return "in-order"
	case MaxVariable:
		return "max-variable"
	case MaxLiteral:
		return "max-literal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind validates a heuristic id in [0, 3].
func ParseKind(id int) (Kind, error) {
	if id < int(Random) || id > int(MaxLiteral) {
		return 0, fmt.Errorf("unknown heuristic id %d (want 0-3)", id)
	}
	return Kind(id), nil
}

// Heuristic is a seed heuristic used to complete partial assignments.
type Heuristic struct {
	Kind    Kind
	Dynamic bool
}

// Complete returns a copy of a where every unassigned variable received a value.
// Assigned cells are kept as they are.
func (h Heuristic) Complete(inst *sat.Instance, a sat.Assignment, rng *rand.Rand) sat.Assignment {
	out := a.Copy()
	switch {
	case h.Kind == Random:
		assignRandom(out, rng)
	case h.Dynamic:
		assignDynamic(inst, out, h.Kind)
	default:
		assignStatic(inst, out, h.Kind)
	}
	return out
}

func assignRandom(a sat.Assignment, rng *rand.Rand) {
	for v := range a {
		if a[v] == sat.Unassigned {
			a[v] = sat.Value(rng.Intn(2))
		}
	}
}

func assignStatic(inst *sat.Instance, a sat.Assignment, kind Kind) {
	occ := countAll(inst)
	for _, v := range order(occ, kind, unassigned(a)) {
		a[v] = occ.majority(v)
	}
}

// unassigned lists the unassigned variables of a in id order.
func unassigned(a sat.Assignment) []int {
	vars := make([]int, 0, len(a))
	for v, value := range a {
		if value == sat.Unassigned {
			vars = append(vars, v)
		}
	}
	return vars
}
