package searcher

import (
	"mcsat/sat"

	"golang.org/x/exp/rand"
)

// (x0 ∨ x1) ∧ (¬x0 ∨ x2) ∧ (¬x1 ∨ ¬x2)
func smallInstance() *sat.Instance {
	return sat.NewInstance([]sat.Clause{
		sat.NewClause(sat.Pos(0), sat.Pos(1)),
		sat.NewClause(sat.Neg(0), sat.Pos(2)),
		sat.NewClause(sat.Neg(1), sat.Neg(2)),
	}, 0)
}

// conflictInstance can never be fully satisfied: x0 and ¬x0 are both unit.
func conflictInstance(rng *rand.Rand, nVars, nClauses int) *sat.Instance {
	clauses := []sat.Clause{
		sat.NewClause(sat.Pos(0)),
		sat.NewClause(sat.Neg(0)),
	}
	for i := 0; i < nClauses; i++ {
		lits := make([]sat.Literal, 3)
		for j, v := range rng.Perm(nVars)[:3] {
			lits[j] = sat.Literal{Var: v, Positive: rng.Intn(2) == 0}
		}
		clauses = append(clauses, sat.NewClause(lits...))
	}
	return sat.NewInstance(clauses, nVars)
}

// counting wraps an evaluator and records the best score after every rollout.
type counting struct {
	Evaluator
	search   *Search
	rollouts int
	best     []float64
}

func newCounting(s *Search) *counting {
	c := &counting{Evaluator: s.eval, search: s}
	s.WithEvaluator(c)
	return c
}

func (c *counting) Rollout(st *State) float64 {
	score := c.Evaluator.Rollout(st)
	c.rollouts++
	c.best = append(c.best, c.search.best.Score)
	return score
}
