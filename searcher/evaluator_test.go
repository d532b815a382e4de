package searcher

import (
	"testing"

	"mcsat/heuristic"
	"mcsat/sat"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestRollout(t *testing.T) {
	t.Run("scoring terminal states exactly", func(t *testing.T) {
		inst := smallInstance()
		s := New(inst, WithSeed(1))
		// x0=T x1=T x2=T breaks only the last clause.
		h := s.table.Get(sat.Assignment{sat.True, sat.True, sat.True})
		st := s.table.At(h)

		require.True(t, st.Terminal)
		require.Empty(t, st.Actions)
		for i := 0; i < 5; i++ {
			require.Equal(t, inst.Score(st.Assignment), s.eval.Rollout(st), "Local search should not touch a terminal state")
		}
	})

	t.Run("completing partial states into the best tracker", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		inst := conflictInstance(rng, 12, 40)
		s := New(inst, WithSeed(2), WithRolloutHeuristic(heuristic.Heuristic{Kind: heuristic.MaxVariable, Dynamic: true}))
		st := s.table.At(s.root())

		score := s.eval.Rollout(st)

		require.GreaterOrEqual(t, score, s.best.Score)
		require.Equal(t, inst.Score(s.best.Assignment), s.best.Score)
	})
}

func TestUpdate(t *testing.T) {
	inst := smallInstance()
	s := New(inst, WithSeed(3))

	t.Run("averaging values of the chosen action", func(t *testing.T) {
		st := s.table.At(s.root())
		action := st.Actions[1]

		s.eval.Update(st, action, 0)
		require.Equal(t, 1.0, st.ActionValues[1])
		s.eval.Update(st, action, 3)
		require.Equal(t, 0.5, st.ActionValues[1], "Should average 1 and 0")
		s.eval.Update(st, action, 1)
		require.InDelta(t, (1+0+2.0/3)/3, st.ActionValues[1], 1e-12)

		require.Equal(t, 3, st.ActionVisits[1])
		require.Equal(t, 3, st.SubExplorations)
		require.Equal(t, 0.0, st.ActionBest[1])
		require.Equal(t, 1.0, st.ActionValues[0], "Other actions should not change")
	})

	t.Run("panics on an action outside the state", func(t *testing.T) {
		st := newState(sat.Assignment{sat.Unassigned, sat.True, sat.Unassigned}, []int{0})

		require.Panics(t, func() {
			s.eval.Update(&st, sat.Pos(2), 1)
		})
	})
}
