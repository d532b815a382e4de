package searcher

import "math"

// NMCS runs a nested Monte-Carlo search of NestingLevel from the root.
func (s *Search) NMCS() Result {
	s.start("nmcs")
	s.nested(s.root(), s.settings.NestingLevel)
	return s.complete(s.inst.Value(s.best.Score))
}

// nested returns the lowest score met along the path it commits to. At level
// 0 it is a single rollout.
func (s *Search) nested(h Handle, level int) float64 {
	if st := s.table.At(h); st.Terminal || level == 0 {
		return s.eval.Rollout(st)
	}

	best := math.Inf(1)
	for !s.table.At(h).Terminal && !s.solved() {
		st := s.table.At(h)
		actions, assignment := st.Actions, st.Assignment

		next, nextScore := Handle(-1), math.Inf(1)
		for _, action := range actions {
			child := s.table.Get(assignment.With(action))
			score := s.nested(child, level-1)
			if score < nextScore {
				next, nextScore = child, score
			}
			if s.solved() {
				break
			}
		}

		best = min(best, nextScore)
		h = next
		s.metrics.AddCommit()
	}
	return best
}
