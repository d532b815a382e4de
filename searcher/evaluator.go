package searcher

import (
	"mcsat/experiments/metrics"
	"mcsat/heuristic"
	"mcsat/sat"
	"mcsat/utils"
	"mcsat/walk"

	"golang.org/x/exp/rand"
)

// Evaluator scores leaves and backs scores up into action statistics.
type Evaluator interface {
	// Rollout returns the score of a complete assignment reached from s.
	Rollout(s *State) float64
	// Update folds score, observed below action, into the statistics of s.
	Update(s *State, action sat.Literal, score float64)
}

type rollout struct {
	inst      *sat.Instance
	heuristic heuristic.Heuristic
	variant   walk.Variant
	flips     int
	eps       float64
	rng       *rand.Rand
	best      *Best
	metrics   metrics.Collector
}

func newRollout(inst *sat.Instance, settings Settings, rng *rand.Rand, best *Best) *rollout {
	return &rollout{
		inst:      inst,
		heuristic: settings.RolloutHeuristic,
		variant:   settings.LocalSearch,
		flips:     inst.NVars * settings.FlipsPerVar,
		eps:       settings.WalkEps,
		rng:       rng,
		best:      best,
		metrics:   settings.collector,
	}
}

func (r *rollout) Rollout(s *State) float64 {
	if s.Terminal {
		score := r.inst.Score(s.Assignment)
		r.best.Offer(s.Assignment, score)
		r.metrics.AddRollout(0)
		return score
	}

	seed := r.heuristic.Complete(r.inst, s.Assignment, r.rng)
	res := walk.Run(r.inst, seed, r.variant, r.flips, r.eps, r.rng)
	r.best.Offer(res.Assignment, res.Score)
	r.metrics.AddRollout(res.Flips)
	return res.Score
}

func (r *rollout) Update(s *State, action sat.Literal, score float64) {
	i := utils.FindIndex(s.Actions, action)
	if i < 0 {
		panic("action is not a candidate of the state")
	}

	v := r.inst.Value(score)
	n := float64(s.ActionVisits[i])
	s.ActionValues[i] = (n*s.ActionValues[i] + v) / (n + 1)
	s.ActionVisits[i]++
	s.ActionBest[i] = min(s.ActionBest[i], score)
	s.SubExplorations++
}
