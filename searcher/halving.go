package searcher

import (
	"math"
	"math/bits"

	"mcsat/utils"

	"golang.org/x/exp/slices"
)

// Halving runs sequential halving with AMAF, Steps rollouts per root.
func (s *Search) Halving() Result {
	s.start("halving")
	initial := s.root()

	root, budget := initial, s.settings.Steps
	for {
		_, _, survivor := s.halve(root, budget)
		if !s.advancing(root) {
			break
		}
		if survivor < 0 {
			survivor = slices.Index(s.table.At(root).ActionBest, minValue(s.table.At(root).ActionBest))
		}
		root, budget = s.commit(root, survivor)
	}

	rootValue := s.inst.Value(s.best.Score)
	if st := s.table.At(initial); !st.Terminal && !math.IsInf(minValue(st.ActionBest), 1) {
		rootValue = s.inst.Value(minValue(st.ActionBest))
	}
	return s.complete(rootValue)
}

// halve spends at most budget rollouts below h. It returns the lowest score
// seen, the rollouts actually spent and the index of the surviving action
// (-1 when the state was not split).
func (s *Search) halve(h Handle, budget int) (float64, int, int) {
	st := s.table.At(h)
	if budget <= 0 {
		return math.Inf(1), 0, -1
	}
	if st.Terminal {
		st.Visits++
		return s.eval.Rollout(st), 1, -1
	}
	if budget < len(st.Actions) {
		best, spent := math.Inf(1), 0
		for spent < budget && !s.solved() {
			best = min(best, s.eval.Rollout(s.table.At(h)))
			spent++
		}
		s.table.At(h).Visits += spent
		return best, spent, -1
	}

	actions, assignment := st.Actions, st.Assignment
	alive := utils.Range(len(actions))
	remaining := budget
	best := math.Inf(1)

	spend := func(i, share int) {
		child := s.table.Get(assignment.With(actions[i]))
		score, used, _ := s.halve(child, share)
		remaining -= used
		best = min(best, score)

		st := s.table.At(h)
		st.ActionVisits[i] += used
		st.ActionBest[i] = min(st.ActionBest[i], score)
		s.amaf.record(actions[i], used, score)
	}

	for len(alive) > 1 {
		if remaining > 0 && !s.solved() {
			pass := remaining / (ceilLog2(len(alive)) + 1)
			for k, i := range alive {
				if remaining == 0 || s.solved() {
					break
				}
				// Later actions inherit whatever earlier ones left unspent.
				share := pass / (len(alive) - k)
				share = min(max(share, 1), remaining)
				before := remaining
				spend(i, share)
				pass -= before - remaining
			}
		}

		st := s.table.At(h)
		blended := make(map[int]float64, len(alive))
		for _, i := range alive {
			blended[i] = s.amaf.blend(actions[i], st.ActionBest[i], st.ActionVisits[i], s.settings.AmafCoefficient, s.settings.AmafBias)
		}
		slices.SortStableFunc(alive, func(x, y int) int {
			switch {
			case blended[x] < blended[y]:
				return -1
			case blended[x] > blended[y]:
				return 1
			default:
				return 0
			}
		})
		alive = alive[:(len(alive)+1)/2]
	}

	survivor := alive[0]
	if remaining > 0 && !s.solved() {
		spend(survivor, remaining)
	}

	s.table.At(h).Visits += budget - remaining
	return best, budget - remaining, survivor
}

// ceilLog2 returns ceil(log2(n)) for n >= 1.
func ceilLog2(n int) int {
	return bits.Len(uint(n - 1))
}
