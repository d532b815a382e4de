package searcher

import (
	"math"
	"testing"

	"mcsat/sat"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewUCB(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			newUCB(0.2, 0)
		}, "Should panic when N is 0")
	})
}

func TestUCBEvaluate(t *testing.T) {
	t.Run("computing UCB value", func(t *testing.T) {
		policy := newUCB(0.2, 100)
		got := policy.evaluate(0.5, 9)

		expected := 0.5 + 0.2*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute q + c*sqrt(ln(N)/(n+1))")
	})

	t.Run("accepting unvisited actions", func(t *testing.T) {
		policy := newUCB(0.2, 1)

		require.Equal(t, 0.7, policy.evaluate(0.7, 0), "ln(1) removes the bonus")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		policy1 := newUCB(0.2, 100)
		policy2 := newUCB(0.2, 1000)

		require.Greater(t, policy2.evaluate(0.5, 10), policy1.evaluate(0.5, 10),
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCB(0.2, 100)

		require.Greater(t, policy.evaluate(0.5, 10), policy.evaluate(0.5, 20),
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with value", func(t *testing.T) {
		policy := newUCB(0.2, 100)

		require.Greater(t, policy.evaluate(0.9, 10), policy.evaluate(0.5, 10),
			"Higher values should increase exploitation term")
	})
}

func TestSelectAction(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	state := func() *State {
		st := newState(sat.Assignment{sat.Unassigned, sat.Unassigned}, []int{0, 1})
		st.ActionValues = []float64{0.8, 0.6, 0.7, 0.7}
		st.ActionVisits = []int{50, 1, 3, 3}
		st.SubExplorations = 57
		return &st
	}

	t.Run("favoring rarely visited actions when exploring", func(t *testing.T) {
		require.Equal(t, 1, selectAction(state(), 10, true, rng))
	})

	t.Run("picking the highest mean without exploration", func(t *testing.T) {
		require.Equal(t, 0, selectAction(state(), 10, false, rng))
	})

	t.Run("breaking ties at random", func(t *testing.T) {
		st := state()
		st.ActionValues[0] = 0.7

		seen := map[int]bool{}
		for i := 0; i < 100; i++ {
			seen[selectAction(st, 0, false, rng)] = true
		}

		require.Equal(t, map[int]bool{0: true, 2: true, 3: true}, seen)
	})

	t.Run("panics without actions", func(t *testing.T) {
		st := newState(sat.Assignment{sat.True}, nil)

		require.Panics(t, func() {
			selectAction(&st, 0.2, true, rng)
		})
	})
}
