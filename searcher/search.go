// Package searcher runs Monte-Carlo searches over partial assignments of a
// MaxSAT instance.
//
// A state fixes some variables and branches on a few ranked unassigned ones.
// Leaves are scored by completing the assignment with a seed heuristic and
// polishing it with local search. Every state is stored once in a Table, so
// the search space is a DAG and statistics are pooled across the paths that
// reach a state.
package searcher

import (
	"math"

	"mcsat/experiments/metrics"
	"mcsat/heuristic"
	"mcsat/sat"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Search is one run over one instance. It is not safe for concurrent use.
type Search struct {
	inst     *sat.Instance
	settings Settings
	rng      *rand.Rand
	table    *Table
	best     *Best
	eval     Evaluator
	amaf     amaf
	metrics  metrics.Collector
}

type Result struct {
	Assignment sat.Assignment
	Score      float64
	// RootValue is the value estimate of the initial root.
	RootValue float64
	States    int
	Metric    metrics.SearchMetric
}

func New(inst *sat.Instance, options ...Option) *Search {
	settings := NewSettings(options...)
	rng := rand.New(rand.NewSource(settings.Seed))

	first := inst.RandomAssignment(rng)
	best := &Best{Assignment: first, Score: inst.Score(first)}

	s := &Search{
		inst:     inst,
		settings: settings,
		rng:      rng,
		best:     best,
		eval:     newRollout(inst, settings, rng, best),
		amaf:     make(amaf),
		metrics:  settings.collector,
	}
	s.table = NewTable(s.branching)
	return s
}

// WithEvaluator replaces the leaf evaluator of s.
func (s *Search) WithEvaluator(eval Evaluator) *Search {
	if eval != nil {
		s.eval = eval
	}
	return s
}

func (s *Search) Settings() Settings {
	return s.settings
}

func (s *Search) Table() *Table {
	return s.table
}

func (s *Search) Best() Best {
	return *s.best
}

func (s *Search) branching(a sat.Assignment) []int {
	s.metrics.AddState()
	h := s.settings.NodeHeuristic
	return heuristic.Rank(s.inst, a, h.Kind, h.Dynamic, s.settings.BranchingLimit, s.rng)
}

func (s *Search) solved() bool {
	return s.best.Score == 0
}

func (s *Search) root() Handle {
	return s.table.Get(s.inst.FreeAssignment())
}

func (s *Search) start(algorithm string) {
	s.metrics.Start(algorithm, s.settings.Seed)
	log.Debug().Msgf("starting %s search over %d variables and %d clauses", algorithm, s.inst.NVars, s.inst.NClauses)
}

func (s *Search) complete(rootValue float64) Result {
	metric := s.metrics.Complete(s.best.Score)
	log.Debug().Msgf("completed search with score %v after %d states", s.best.Score, s.table.Len())
	return Result{
		Assignment: s.best.Assignment.Copy(),
		Score:      s.best.Score,
		RootValue:  rootValue,
		States:     s.table.Len(),
		Metric:     metric,
	}
}

// Rollouts evaluates the initial root Steps times.
func (s *Search) Rollouts() Result {
	s.start("rollout")
	root := s.root()
	for i := 0; i < s.settings.Steps && !s.solved(); i++ {
		st := s.table.At(root)
		st.Visits++
		s.eval.Rollout(st)
	}
	return s.complete(s.inst.Value(s.best.Score))
}

// commit moves the root along action i and returns the budget of the new root.
func (s *Search) commit(root Handle, i int) (Handle, int) {
	st := s.table.At(root)
	action := st.Actions[i]
	next := s.table.Get(st.Assignment.With(action))
	s.metrics.AddCommit()
	log.Debug().Msgf("committed to %v with %d variables left", action, s.table.At(next).Unassigned)

	budget := s.settings.Steps
	if s.settings.Advance == Discounted {
		budget = max(budget-s.table.At(next).Visits, 0)
	}
	return next, budget
}

func (s *Search) advancing(root Handle) bool {
	return s.settings.Advance != Once && !s.table.At(root).Terminal && !s.solved()
}

func maxValue(values []float64) float64 {
	best := math.Inf(-1)
	for _, v := range values {
		best = max(best, v)
	}
	return best
}

func minValue(values []float64) float64 {
	best := math.Inf(1)
	for _, v := range values {
		best = min(best, v)
	}
	return best
}
