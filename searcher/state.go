package searcher

import (
	"math"

	"mcsat/sat"
)

// Handle is the stable position of a State inside its Table.
type Handle int

// State is a node of the search graph. Several parents may share it.
type State struct {
	Assignment sat.Assignment
	Visits     int
	Unassigned int
	Terminal   bool

	// Actions holds two literals per branching variable, true first.
	Actions []sat.Literal
	// SubExplorations counts the action updates made at this state.
	SubExplorations int
	ActionVisits    []int
	// ActionValues are running means of (totalWeight-score)/totalWeight.
	ActionValues []float64
	// ActionBest is the lowest score seen below each action.
	ActionBest []float64
}

func newState(a sat.Assignment, branching []int) State {
	actions := make([]sat.Literal, 0, 2*len(branching))
	for _, v := range branching {
		actions = append(actions, sat.Pos(v), sat.Neg(v))
	}
	unassigned := a.Unassigned()

	s := State{
		Assignment:   a,
		Unassigned:   unassigned,
		Terminal:     unassigned == 0,
		Actions:      actions,
		ActionVisits: make([]int, len(actions)),
		ActionValues: make([]float64, len(actions)),
		ActionBest:   make([]float64, len(actions)),
	}
	for i := range actions {
		s.ActionValues[i] = 1
		s.ActionBest[i] = math.Inf(1)
	}
	return s
}
