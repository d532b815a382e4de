package heuristic

import (
	"testing"

	"mcsat/sat"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// (x0 ∨ x1) ∧ (x0 ∨ x1) ∧ (¬x1 ∨ x2)
func pairInstance() *sat.Instance {
	return sat.NewInstance([]sat.Clause{
		sat.NewClause(sat.Pos(0), sat.Pos(1)),
		sat.NewClause(sat.Pos(0), sat.Pos(1)),
		sat.NewClause(sat.Neg(1), sat.Pos(2)),
	}, 0)
}

func TestComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	t.Run("completing every variable with each heuristic", func(t *testing.T) {
		inst := pairInstance()
		for _, kind := range []Kind{Random, InOrder, MaxVariable, MaxLiteral} {
			for _, dynamic := range []bool{false, true} {
				h := Heuristic{Kind: kind, Dynamic: dynamic}
				partial := sat.Assignment{sat.Unassigned, sat.False, sat.Unassigned}

				got := h.Complete(inst, partial, rng)

				require.True(t, got.Complete(), "%v dynamic=%v should assign everything", kind, dynamic)
				require.Equal(t, sat.False, got[1], "%v dynamic=%v should keep assigned cells", kind, dynamic)
				require.Equal(t, sat.Unassigned, partial[0], "Input should not change")
			}
		}
	})

	t.Run("assigning the majority polarity statically", func(t *testing.T) {
		inst := pairInstance()
		h := Heuristic{Kind: MaxLiteral}

		got := h.Complete(inst, inst.FreeAssignment(), rng)

		require.Equal(t, sat.Assignment{sat.True, sat.True, sat.True}, got)
	})

	t.Run("breaking polarity ties towards true", func(t *testing.T) {
		inst := sat.NewInstance([]sat.Clause{
			sat.NewClause(sat.Pos(0)),
			sat.NewClause(sat.Neg(0)),
		}, 0)

		got := Heuristic{Kind: InOrder}.Complete(inst, inst.FreeAssignment(), rng)

		require.Equal(t, sat.Assignment{sat.True}, got)
	})

	t.Run("recounting occurrences over unsatisfied clauses dynamically", func(t *testing.T) {
		inst := pairInstance()
		h := Heuristic{Kind: MaxLiteral, Dynamic: true}

		got := h.Complete(inst, inst.FreeAssignment(), rng)

		// x0 wins the tie on id and satisfies both clauses holding x1,
		// leaving ¬x1 as the only live literal on x1.
		require.Equal(t, sat.Assignment{sat.True, sat.False, sat.True}, got)
		require.Equal(t, 0.0, inst.Score(got))
	})

	t.Run("ignoring clauses already satisfied by the partial assignment", func(t *testing.T) {
		inst := sat.NewInstance([]sat.Clause{
			sat.NewClause(sat.Pos(0), sat.Neg(1)),
			sat.NewClause(sat.Pos(0), sat.Neg(1)),
			sat.NewClause(sat.Pos(1)),
		}, 0)
		partial := sat.Assignment{sat.True, sat.Unassigned}

		static := Heuristic{Kind: MaxVariable}.Complete(inst, partial, rng)
		dynamic := Heuristic{Kind: MaxVariable, Dynamic: true}.Complete(inst, partial, rng)

		require.Equal(t, sat.False, static[1], "Static counts see two ¬x1 against one x1")
		require.Equal(t, sat.True, dynamic[1], "Dynamic counts only see the unsatisfied clause")
	})

	t.Run("completing an empty clause set", func(t *testing.T) {
		inst := sat.NewInstance(nil, 5)
		for _, kind := range []Kind{Random, InOrder, MaxVariable, MaxLiteral} {
			got := Heuristic{Kind: kind, Dynamic: true}.Complete(inst, inst.FreeAssignment(), rng)
			require.True(t, got.Complete())
		}
	})
}

func TestRank(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	// x2 appears three times, x0 twice, x1 and x3 once.
	inst := sat.NewInstance([]sat.Clause{
		sat.NewClause(sat.Pos(2), sat.Pos(0)),
		sat.NewClause(sat.Neg(2), sat.Neg(0)),
		sat.NewClause(sat.Neg(2), sat.Pos(1)),
		sat.NewClause(sat.Pos(3)),
	}, 0)

	t.Run("ranking by variable occurrences", func(t *testing.T) {
		got := Rank(inst, inst.FreeAssignment(), MaxVariable, false, 0, rng)

		require.Equal(t, []int{2, 0, 1, 3}, got)
	})

	t.Run("ranking by literal occurrences with ties on lower id", func(t *testing.T) {
		got := Rank(inst, inst.FreeAssignment(), MaxLiteral, false, 0, rng)

		require.Equal(t, []int{2, 0, 1, 3}, got)
	})

	t.Run("truncating to the branching limit", func(t *testing.T) {
		got := Rank(inst, inst.FreeAssignment(), MaxVariable, false, 2, rng)

		require.Equal(t, []int{2, 0}, got)
	})

	t.Run("ranking in id order and skipping assigned variables", func(t *testing.T) {
		a := sat.Assignment{sat.Unassigned, sat.True, sat.Unassigned, sat.Unassigned}

		got := Rank(inst, a, InOrder, false, 0, rng)

		require.Equal(t, []int{0, 2, 3}, got)
	})

	t.Run("ranking dynamically over unsatisfied clauses", func(t *testing.T) {
		// x2 false satisfies the second and third clauses, leaving x1 unseen.
		a := sat.Assignment{sat.Unassigned, sat.Unassigned, sat.False, sat.Unassigned}

		static := Rank(inst, a, MaxVariable, false, 0, rng)
		dynamic := Rank(inst, a, MaxVariable, true, 0, rng)

		require.Equal(t, []int{0, 1, 3}, static)
		require.Equal(t, []int{0, 3, 1}, dynamic)
	})

	t.Run("ranking randomly returns a permutation", func(t *testing.T) {
		got := Rank(inst, inst.FreeAssignment(), Random, false, 0, rng)

		require.ElementsMatch(t, []int{0, 1, 2, 3}, got)
	})
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(3)
	require.NoError(t, err)
	require.Equal(t, MaxLiteral, kind)

	_, err = ParseKind(4)
	require.Error(t, err)
}
