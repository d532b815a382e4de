package searcher

import (
	"math"

	"golang.org/x/exp/rand"
)

type ucb struct {
	c    float64
	logN float64
}

func newUCB(c float64, N int) *ucb {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &ucb{c: c, logN: math.Log(float64(N))}
}

func (u ucb) evaluate(q float64, n int) float64 {
	// UCB = q + c*sqrt(ln(N)/(n+1))
	return q + u.c*math.Sqrt(u.logN/float64(n+1))
}

// selectAction returns the index of the action maximizing UCB, breaking ties
// at random. Without exploration it is the greedy choice on mean values.
func selectAction(s *State, c float64, allowExploration bool, rng *rand.Rand) int {
	if len(s.Actions) == 0 {
		panic("state has no actions")
	}
	if !allowExploration {
		c = 0
	}
	policy := newUCB(c, max(s.SubExplorations, 1))

	maxScore := math.Inf(-1)
	ties := make([]int, 0, len(s.Actions))
	for i := range s.Actions {
		score := policy.evaluate(s.ActionValues[i], s.ActionVisits[i])
		switch {
		case score > maxScore:
			maxScore = score
			ties = append(ties[:0], i)
		case score == maxScore:
			ties = append(ties, i)
		}
	}
	return ties[rng.Intn(len(ties))]
}
