// Package walk implements local search over complete assignments: WalkSAT,
// Novelty and their weighted counterparts.
//
// The walker keeps, for every clause, the number of its literals that are
// currently true. A flip only touches the clauses adjacent to the flipped
// variable, so each step costs O(degree) instead of a scan of the formula.
package walk

import (
	"mcsat/sat"
	"mcsat/utils"

	"golang.org/x/exp/rand"
)

// Result is the best assignment met during a walk.
type Result struct {
	Assignment sat.Assignment
	// Score is the weight of the clauses Assignment leaves unsatisfied.
	Score float64
	Flips int
}

// Run flips at most budget variables of a, starting from a copy of it, and
// returns the best assignment encountered. With probability eps a non-improving
// step picks a random candidate instead of the greedy one. The walk stops early
// once every clause that can be satisfied is.
func Run(inst *sat.Instance, a sat.Assignment, variant Variant, budget int, eps float64, rng *rand.Rand) Result {
	if !a.Complete() {
		panic("local search needs a complete assignment")
	}
	w := newWalker(inst, a, variant.Weighted())

	best := w.a.Copy()
	bestCost := w.cost
	last := -1
	flips := 0

	var all []int
	if variant.Global() {
		all = utils.Range(inst.NVars)
	}
	candidates := make([]int, 0, 8)

	for flips < budget && w.unsat.len() > 0 {
		if variant.Global() {
			candidates = all
		} else {
			c := w.unsat.at(rng.Intn(w.unsat.len()))
			candidates = candidates[:0]
			for _, lit := range inst.Clauses[c].Literals {
				candidates = append(candidates, lit.Var)
			}
		}

		v := w.pick(candidates, eps, last, rng)
		w.flip(v)
		last = v
		flips++

		if w.cost < bestCost {
			bestCost = w.cost
			copy(best, w.a)
		}
	}

	return Result{Assignment: best, Score: inst.Score(best), Flips: flips}
}

type walker struct {
	inst     *sat.Instance
	a        sat.Assignment
	weighted bool

	trueCount []int
	// unsat holds the non-empty clauses without a true literal. Empty clauses
	// can never be repaired and stay out of it.
	unsat *indexSet
	// cost is the objective over unsat: a clause count, or a weight sum.
	cost float64
}

func newWalker(inst *sat.Instance, a sat.Assignment, weighted bool) *walker {
	w := &walker{
		inst:      inst,
		a:         a.Copy(),
		weighted:  weighted,
		trueCount: make([]int, inst.NClauses),
		unsat:     newIndexSet(inst.NClauses),
	}
	for c, cls := range inst.Clauses {
		for _, lit := range cls.Literals {
			if w.a.Satisfies(lit) {
				w.trueCount[c]++
			}
		}
		if w.trueCount[c] == 0 && len(cls.Literals) > 0 {
			w.unsat.add(c)
			w.cost += w.clauseCost(c)
		}
	}
	return w
}

func (w *walker) clauseCost(c int) float64 {
	if w.weighted {
		return w.inst.Clauses[c].Weight
	}
	return 1
}

func (w *walker) literal(v int) sat.Literal {
	return sat.Literal{Var: v, Positive: w.a[v] == sat.True}
}

// breakScore is the cost flipping v would add: clauses v alone keeps satisfied,
// minus unsatisfied clauses holding the negation of v's current literal.
func (w *walker) breakScore(v int) float64 {
	lit := w.literal(v)
	var score float64
	for _, c := range w.inst.Literals(lit) {
		if w.trueCount[c] == 1 && !w.inst.Tautology[c] {
			score += w.clauseCost(c)
		}
	}
	for _, c := range w.inst.Literals(lit.Negate()) {
		if w.trueCount[c] == 0 {
			score -= w.clauseCost(c)
		}
	}
	return score
}

// pick chooses the variable to flip among candidates.
func (w *walker) pick(candidates []int, eps float64, last int, rng *rand.Rand) int {
	type scored struct {
		v     int
		score float64
		key   float64
	}
	less := func(x, y scored) bool {
		if x.score != y.score {
			return x.score < y.score
		}
		return x.key < y.key
	}

	first := scored{v: -1}
	second := scored{v: -1}
	for _, v := range candidates {
		s := scored{v: v, score: w.breakScore(v), key: rng.Float64()}
		switch {
		case first.v < 0 || less(s, first):
			second = first
			first = s
		case second.v < 0 || less(s, second):
			second = s
		}
	}

	if first.score < 0 {
		return first.v
	}
	if rng.Float64() < eps {
		return candidates[rng.Intn(len(candidates))]
	}
	if first.v == last && second.v >= 0 && second.score == first.score {
		return second.v
	}
	return first.v
}

func (w *walker) flip(v int) {
	old := w.literal(v)
	w.a[v] = sat.ValueOf(!old.Positive)

	// Count the new literal first so a clause holding both literals of v
	// never looks unsatisfied halfway through.
	for _, c := range w.inst.Literals(old.Negate()) {
		w.trueCount[c]++
		if w.trueCount[c] == 1 {
			w.unsat.remove(c)
			w.cost -= w.clauseCost(c)
		}
	}
	for _, c := range w.inst.Literals(old) {
		w.trueCount[c]--
		if w.trueCount[c] == 0 {
			w.unsat.add(c)
			w.cost += w.clauseCost(c)
		}
	}
}
