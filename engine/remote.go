package engine

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"mcsat/communication"
	"mcsat/communication/client"
	"mcsat/dimacs"
	"mcsat/experiments/metrics"
	"mcsat/sat"
	"mcsat/searcher"

	"github.com/samber/lo"
)

type remoteEngine struct {
	client *client.Client
}

// RemoteEngine posts instances to a solve server at url.
func RemoteEngine(url string, httpClient *http.Client) Engine {
	return &remoteEngine{client: client.New(url, httpClient)}
}

func (e *remoteEngine) Solve(ctx context.Context, inst *sat.Instance, algorithm Algorithm, options ...searcher.Option) (Outcome, error) {
	var body bytes.Buffer
	if err := dimacs.Write(&body, inst); err != nil {
		return Outcome{}, err
	}
	settings, err := searcher.NewSettings(options...).Marshal()
	if err != nil {
		return Outcome{}, err
	}

	resp, err := e.client.Solve(ctx, communication.SolveRequest{
		Algorithm: algorithm.String(),
		Weighted:  lo.SomeBy(inst.Clauses, func(cls sat.Clause) bool { return cls.Weight != 1 }),
		Instance:  body.String(),
		Settings:  string(settings),
	})
	if err != nil {
		return Outcome{}, err
	}

	assignment := make(sat.Assignment, inst.NVars)
	for _, m := range resp.Assignment {
		lit := sat.FromDimacs(m)
		if lit.Var >= inst.NVars {
			return Outcome{}, fmt.Errorf("server assigned unknown variable %d", m)
		}
		assignment[lit.Var] = sat.ValueOf(lit.Positive)
	}

	return Outcome{
		Algorithm:  algorithm,
		Assignment: assignment,
		Score:      resp.Score,
		Value:      resp.Value,
		Solved:     resp.Solved,
		States:     resp.States,
		Metric: metrics.SearchMetric{
			Algorithm: resp.Algorithm,
			Seed:      resp.Seed,
			Duration:  time.Duration(resp.DurationMs) * time.Millisecond,
			Rollouts:  resp.Rollouts,
			Flips:     resp.Flips,
			States:    resp.States,
			Commits:   resp.Commits,
			Score:     resp.Score,
		},
	}, nil
}
