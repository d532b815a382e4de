package searcher

import (
	"testing"

	"mcsat/experiments/metrics"
	"mcsat/heuristic"
	"mcsat/sat"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type algorithm struct {
	name string
	run  func(*Search) Result
}

var algorithms = []algorithm{
	{"rollout", (*Search).Rollouts},
	{"mcts", (*Search).MCTS},
	{"nmcs", (*Search).NMCS},
	{"halving", (*Search).Halving},
}

func TestAlgorithms(t *testing.T) {
	t.Run("solving a small satisfiable instance", func(t *testing.T) {
		inst := smallInstance()
		for _, alg := range algorithms {
			res := alg.run(New(inst, WithSeed(1), WithSteps(50)))

			require.Equal(t, 0.0, res.Score, alg.name)
			require.Equal(t, 0.0, inst.Score(res.Assignment), alg.name)
		}
	})

	t.Run("terminating at once on an empty clause set", func(t *testing.T) {
		inst := sat.NewInstance(nil, 5)
		for _, alg := range algorithms {
			for _, advance := range []Advance{Once, Full, Discounted} {
				c := metrics.NewCollector()
				res := alg.run(New(inst, WithAdvance(advance), WithMetrics(c)))

				require.Zero(t, res.Score, alg.name)
				require.Len(t, res.Assignment, 5)
				require.Equal(t, 1.0, res.RootValue)
				require.Zero(t, res.Metric.Rollouts, "%s should not evaluate anything", alg.name)
			}
		}
	})

	t.Run("keeping the best score non-increasing and exact", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		for _, alg := range algorithms {
			inst := conflictInstance(rng, 15, 70)
			s := New(inst, WithSeed(2), WithSteps(60), WithAdvance(Full))
			c := newCounting(s)

			res := alg.run(s)

			require.NotEmpty(t, c.best, alg.name)
			for i := 1; i < len(c.best); i++ {
				require.LessOrEqual(t, c.best[i], c.best[i-1], alg.name)
			}
			require.Equal(t, inst.Score(res.Assignment), res.Score, alg.name)
			require.GreaterOrEqual(t, res.Score, 1.0, "x0 and ¬x0 cannot both hold")
		}
	})

	t.Run("reproducing a run from its seed", func(t *testing.T) {
		inst := conflictInstance(rand.New(rand.NewSource(3)), 20, 90)
		for _, alg := range algorithms {
			options := []Option{
				WithSeed(42),
				WithSteps(30),
				WithAdvance(Discounted),
				WithNodeHeuristic(heuristic.Heuristic{Kind: heuristic.Random}),
				WithRolloutHeuristic(heuristic.Heuristic{Kind: heuristic.MaxLiteral, Dynamic: true}),
			}

			first := alg.run(New(inst, options...))
			second := alg.run(New(inst, options...))

			require.Equal(t, first.Assignment, second.Assignment, alg.name)
			require.Equal(t, first.Score, second.Score, alg.name)
			require.Equal(t, first.States, second.States, alg.name)
			require.Equal(t, first.RootValue, second.RootValue, alg.name)
		}
	})
}

func TestAdvance(t *testing.T) {
	inst := conflictInstance(rand.New(rand.NewSource(4)), 8, 30)

	for _, alg := range []algorithm{algorithms[1], algorithms[3]} {
		t.Run(alg.name+" stays at the root once", func(t *testing.T) {
			c := metrics.NewCollector()
			res := alg.run(New(inst, WithSeed(5), WithSteps(20), WithMetrics(c)))

			require.Zero(t, res.Metric.Commits)
		})

		t.Run(alg.name+" commits down to a terminal state", func(t *testing.T) {
			for _, advance := range []Advance{Full, Discounted} {
				c := metrics.NewCollector()
				res := alg.run(New(inst, WithSeed(5), WithSteps(20), WithAdvance(advance), WithMetrics(c)))

				require.Equal(t, inst.NVars, res.Metric.Commits, "Every commit assigns one variable")
			}
		})
	}

	t.Run("discounting spends fewer rollouts than full advancement", func(t *testing.T) {
		full := metrics.NewCollector()
		discounted := metrics.NewCollector()

		New(inst, WithSeed(6), WithSteps(40), WithAdvance(Full), WithMetrics(full)).MCTS()
		New(inst, WithSeed(6), WithSteps(40), WithAdvance(Discounted), WithMetrics(discounted)).MCTS()

		require.Less(t, discounted.Complete(0).Rollouts, full.Complete(0).Rollouts)
	})
}

func TestMCTS(t *testing.T) {
	t.Run("rolling out on the first visit and descending afterwards", func(t *testing.T) {
		inst := conflictInstance(rand.New(rand.NewSource(7)), 6, 20)
		s := New(inst, WithSeed(7))
		c := newCounting(s)
		root := s.root()

		s.simulate(root)
		require.Equal(t, 1, s.table.Len(), "The first visit should not expand")
		require.Zero(t, s.table.At(root).SubExplorations)

		s.simulate(root)
		require.Equal(t, 2, s.table.Len())
		require.Equal(t, 1, s.table.At(root).SubExplorations)
		require.Equal(t, 2, s.table.At(root).Visits)
		require.Equal(t, 2, c.rollouts)
	})

	t.Run("reporting the best action value of the root", func(t *testing.T) {
		inst := conflictInstance(rand.New(rand.NewSource(8)), 10, 40)
		s := New(inst, WithSeed(8), WithSteps(30))

		res := s.MCTS()

		st := s.table.At(s.root())
		require.Equal(t, maxValue(st.ActionValues), res.RootValue)
		require.Equal(t, 30, st.Visits)
	})
}

func TestNMCS(t *testing.T) {
	t.Run("level zero is a single rollout", func(t *testing.T) {
		inst := conflictInstance(rand.New(rand.NewSource(9)), 12, 50)
		for seed := uint64(0); seed < 5; seed++ {
			nested := New(inst, WithSeed(seed))
			direct := New(inst, WithSeed(seed))
			c := newCounting(nested)

			got := nested.nested(nested.root(), 0)
			want := direct.eval.Rollout(direct.table.At(direct.root()))

			require.Equal(t, want, got)
			require.Equal(t, 1, c.rollouts)
		}
	})

	t.Run("level one tries every action along its path", func(t *testing.T) {
		inst := conflictInstance(rand.New(rand.NewSource(10)), 6, 20)
		s := New(inst, WithSeed(10), WithBranchingLimit(0))
		c := newCounting(s)

		score := s.nested(s.root(), 1)

		// Each step tries both values of every unassigned variable.
		want := 0
		for n := inst.NVars; n > 0; n-- {
			want += 2 * n
		}
		require.Equal(t, want, c.rollouts)
		require.GreaterOrEqual(t, score, s.best.Score)
	})
}

func TestHalving(t *testing.T) {
	inst := conflictInstance(rand.New(rand.NewSource(11)), 10, 40)

	t.Run("never spending more than its budget", func(t *testing.T) {
		for _, budget := range []int{0, 1, 3, 4, 7, 16, 33, 100} {
			s := New(inst, WithSeed(uint64(budget)), WithBranchingLimit(3))
			c := newCounting(s)
			root := s.root()

			_, spent, survivor := s.halve(root, budget)

			require.LessOrEqual(t, spent, budget)
			require.Equal(t, spent, c.rollouts, "Spent budget should be actual rollouts")
			require.Equal(t, spent, s.table.At(root).Visits)
			if budget >= len(s.table.At(root).Actions) {
				require.GreaterOrEqual(t, survivor, 0)
				require.Less(t, survivor, len(s.table.At(root).Actions))
			}
		}
	})

	t.Run("rolling out directly below the number of actions", func(t *testing.T) {
		s := New(inst, WithSeed(12), WithBranchingLimit(3))
		root := s.root()

		_, spent, survivor := s.halve(root, 5)

		require.Equal(t, 5, spent)
		require.Equal(t, -1, survivor)
		require.Equal(t, 1, s.table.Len(), "No child should be created")
	})

	t.Run("stopping at once with a single candidate", func(t *testing.T) {
		s := New(inst, WithSeed(13))
		root := s.root()
		st := s.table.At(root)
		st.Actions = st.Actions[:1]
		st.ActionVisits = st.ActionVisits[:1]
		st.ActionValues = st.ActionValues[:1]
		st.ActionBest = st.ActionBest[:1]

		_, spent, survivor := s.halve(root, 10)

		require.Equal(t, 0, survivor)
		require.Equal(t, 10, s.table.At(root).ActionVisits[0], "The whole budget should go to the only action")
		require.LessOrEqual(t, spent, 10)
	})

	t.Run("recording amaf statistics for every tried literal", func(t *testing.T) {
		s := New(inst, WithSeed(14), WithBranchingLimit(2))
		root := s.root()

		s.halve(root, 40)

		for _, action := range s.table.At(root).Actions {
			e, ok := s.amaf[action]
			require.True(t, ok, "%v should be recorded", action)
			require.Positive(t, e.visits)
		}
	})
}

func TestAmafBlend(t *testing.T) {
	table := amaf{}
	table.record(sat.Pos(1), 4, 3)
	table.record(sat.Pos(1), 4, 5)

	t.Run("keeping the own score without amaf statistics", func(t *testing.T) {
		require.Equal(t, 7.0, table.blend(sat.Neg(1), 7, 2, 0.5, 0.1))
	})

	t.Run("falling back to amaf for unexplored actions", func(t *testing.T) {
		require.Equal(t, 3.0, table.blend(sat.Pos(1), 7, 0, 0.5, 0.1))
	})

	t.Run("fading amaf as own visits grow", func(t *testing.T) {
		// beta = 0.5 * 8 / (8 + 2 + 0.1*4) = 4/10.4
		beta := 4 / 10.4
		require.InDelta(t, (1-beta)*7+beta*3, table.blend(sat.Pos(1), 7, 2, 0.5, 0.1), 1e-12)

		few := table.blend(sat.Pos(1), 7, 2, 0.5, 0.1)
		many := table.blend(sat.Pos(1), 7, 50, 0.5, 0.1)
		require.Greater(t, many, few, "More own visits should pull towards the own score")
	})
}

func TestCeilLog2(t *testing.T) {
	for n, want := range map[int]int{1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 8: 3, 9: 4} {
		require.Equal(t, want, ceilLog2(n), "ceilLog2(%d)", n)
	}
}
