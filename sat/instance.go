package sat

import (
	"github.com/samber/lo"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// Instance is an immutable weighted CNF together with its adjacency indices.
type Instance struct {
	Clauses     []Clause
	NVars       int
	NClauses    int
	TotalWeight float64

	// ClausesByVar[v] lists the clauses holding a literal on v.
	ClausesByVar [][]int
	// ClausesByLiteral[v][p] lists the clauses holding literal (v, p), p being 0 for false and 1 for true.
	ClausesByLiteral [][2][]int
	// Tautology[c] is set when clause c holds both literals of some variable.
	Tautology []bool
}

// NewInstance builds an instance over at least nVars variables. Duplicate
// literals inside a clause are collapsed.
func NewInstance(clauses []Clause, nVars int) *Instance {
	inst := &Instance{
		Clauses:  make([]Clause, len(clauses)),
		NVars:    nVars,
		NClauses: len(clauses),
	}
	for i, cls := range clauses {
		lits := lo.Uniq(cls.Literals)
		inst.Clauses[i] = Clause{Literals: lits, Weight: cls.Weight}
		for _, lit := range lits {
			if lit.Var < 0 {
				panic("negative variable id")
			}
			inst.NVars = max(inst.NVars, lit.Var+1)
		}
	}
	inst.TotalWeight = lo.SumBy(inst.Clauses, func(cls Clause) float64 { return cls.Weight })

	inst.ClausesByVar = make([][]int, inst.NVars)
	inst.ClausesByLiteral = make([][2][]int, inst.NVars)
	inst.Tautology = make([]bool, inst.NClauses)
	for c, cls := range inst.Clauses {
		for i, lit := range cls.Literals {
			p := Polarity(lit.Positive)
			inst.ClausesByLiteral[lit.Var][p] = append(inst.ClausesByLiteral[lit.Var][p], c)
			if slices.ContainsFunc(cls.Literals[:i], func(o Literal) bool { return o.Var == lit.Var }) {
				inst.Tautology[c] = true
				continue
			}
			inst.ClausesByVar[lit.Var] = append(inst.ClausesByVar[lit.Var], c)
		}
	}
	return inst
}

// Literals returns the clauses holding l.
func (inst *Instance) Literals(l Literal) []int {
	return inst.ClausesByLiteral[l.Var][Polarity(l.Positive)]
}

// FreeAssignment returns an assignment where every variable is unassigned.
func (inst *Instance) FreeAssignment() Assignment {
	a := make(Assignment, inst.NVars)
	for i := range a {
		a[i] = Unassigned
	}
	return a
}

// RandomAssignment returns a complete assignment drawn uniformly from rng.
func (inst *Instance) RandomAssignment(rng *rand.Rand) Assignment {
	a := make(Assignment, inst.NVars)
	for i := range a {
		a[i] = Value(rng.Intn(2))
	}
	return a
}

// UnsatisfiedClauses returns the indices of the clauses without a true literal under a.
func (inst *Instance) UnsatisfiedClauses(a Assignment) []int {
	var unsat []int
	for c, cls := range inst.Clauses {
		if !slices.ContainsFunc(cls.Literals, a.Satisfies) {
			unsat = append(unsat, c)
		}
	}
	return unsat
}

// Score is the total weight of the clauses unsatisfied by a.
func (inst *Instance) Score(a Assignment) float64 {
	return lo.SumBy(inst.UnsatisfiedClauses(a), func(c int) float64 { return inst.Clauses[c].Weight })
}

// Value maps a score to the fraction of satisfied weight, 1 meaning every clause holds.
func (inst *Instance) Value(score float64) float64 {
	if inst.TotalWeight == 0 {
		return 1
	}
	return (inst.TotalWeight - score) / inst.TotalWeight
}
