package searcher

import "mcsat/sat"

// Best is the run-wide best complete assignment.
type Best struct {
	Assignment sat.Assignment
	Score      float64
}

// Offer keeps a copy of a if it strictly improves on the current best.
func (b *Best) Offer(a sat.Assignment, score float64) bool {
	if score >= b.Score {
		return false
	}
	b.Assignment = a.Copy()
	b.Score = score
	return true
}
