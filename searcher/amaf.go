package searcher

import "mcsat/sat"

type amafEntry struct {
	visits int
	best   float64
}

// amaf credits a literal with every score observed below it, whichever
// branch chose it.
type amaf map[sat.Literal]amafEntry

func (t amaf) record(l sat.Literal, visits int, score float64) {
	e, ok := t[l]
	if !ok {
		e.best = score
	}
	e.visits += visits
	e.best = min(e.best, score)
	t[l] = e
}

// blend mixes the own best score of an action, seen over n rollouts, with the
// AMAF best of its literal. The AMAF weight fades as n grows.
func (t amaf) blend(l sat.Literal, own float64, n int, coefficient, bias float64) float64 {
	e, ok := t[l]
	if !ok || e.visits == 0 {
		return own
	}
	if n == 0 {
		return e.best
	}
	nA, nn := float64(e.visits), float64(n)
	beta := coefficient * nA / (nA + nn + bias*nn*nn)
	return (1-beta)*own + beta*e.best
}
