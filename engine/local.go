package engine

import (
	"context"

	"mcsat/sat"
	"mcsat/searcher"

	"github.com/rs/zerolog/log"
)

type localEngine struct{}

// LocalEngine solves instances in the calling goroutine.
func LocalEngine() Engine {
	return &localEngine{}
}

func (e *localEngine) Solve(ctx context.Context, inst *sat.Instance, algorithm Algorithm, options ...searcher.Option) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	if err := searcher.NewSettings(options...).Validate(); err != nil {
		return Outcome{}, err
	}

	res := Run(inst, algorithm, options...)
	log.Info().Msgf("%s finished with score %v after %d states in %v", algorithm, res.Score, res.States, res.Metric.Duration)

	return Outcome{
		Algorithm:  algorithm,
		Assignment: res.Assignment,
		Score:      res.Score,
		Value:      inst.Value(res.Score),
		Solved:     res.Score == 0,
		States:     res.States,
		Metric:     res.Metric,
	}, nil
}
