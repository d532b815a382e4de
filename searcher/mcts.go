package searcher

// MCTS runs UCB guided simulations from the root, Steps per root.
func (s *Search) MCTS() Result {
	s.start("mcts")
	initial := s.root()

	root, budget := initial, s.settings.Steps
	for {
		for i := 0; i < budget && !s.solved(); i++ {
			s.simulate(root)
		}
		if !s.advancing(root) {
			break
		}
		greedy := selectAction(s.table.At(root), 0, false, s.rng)
		root, budget = s.commit(root, greedy)
	}

	rootValue := s.inst.Value(s.best.Score)
	if st := s.table.At(initial); !st.Terminal {
		rootValue = maxValue(st.ActionValues)
	}
	return s.complete(rootValue)
}

// simulate descends from h and returns the score of the rollout that ended
// the descent.
func (s *Search) simulate(h Handle) float64 {
	st := s.table.At(h)
	st.Visits++
	if st.Terminal || st.Visits == 1 {
		return s.eval.Rollout(st)
	}

	i := selectAction(st, s.settings.ExplorationC, true, s.rng)
	action := st.Actions[i]
	child := s.table.Get(st.Assignment.With(action))

	score := s.simulate(child)
	s.eval.Update(s.table.At(h), action, score)
	return score
}
