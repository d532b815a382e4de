package engine

import (
	"context"
	"fmt"

	"mcsat/experiments/metrics"
	"mcsat/sat"
	"mcsat/searcher"
)

type Algorithm int

const (
	Rollout Algorithm = iota
	MCTS
	NMCS
	Halving
)

var algorithmNames = [...]string{Rollout: "rollout", MCTS: "mcts", NMCS: "nmcs", Halving: "halving"}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

func ParseAlgorithm(name string) (Algorithm, error) {
	for a, n := range algorithmNames {
		if n == name {
			return Algorithm(a), nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", name)
}

// Outcome is the answer of an engine for one instance.
type Outcome struct {
	Algorithm  Algorithm
	Assignment sat.Assignment
	Score      float64
	// Value is the satisfied fraction of the total weight.
	Value  float64
	Solved bool
	States int
	Metric metrics.SearchMetric
}

type Engine interface {
	// Solve searches inst with algorithm until its budget is exhausted.
	Solve(ctx context.Context, inst *sat.Instance, algorithm Algorithm, options ...searcher.Option) (Outcome, error)
}

// Run builds a search over inst and runs algorithm on it.
func Run(inst *sat.Instance, algorithm Algorithm, options ...searcher.Option) searcher.Result {
	s := searcher.New(inst, options...)
	switch algorithm {
	case Rollout:
		return s.Rollouts()
	case MCTS:
		return s.MCTS()
	case NMCS:
		return s.NMCS()
	case Halving:
		return s.Halving()
	default:
		panic("unknown algorithm")
	}
}
