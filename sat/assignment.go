package sat

import "github.com/samber/lo"

// Value is the tri-state content of one assignment cell.
type Value int8

const (
	Unassigned Value = -1
	False      Value = 0
	True       Value = 1
)

// ValueOf converts a boolean to a Value.
func ValueOf(b bool) Value {
	if b {
		return True
	}
	return False
}

// Assignment maps every variable to a Value. Published assignments are never
// mutated; branching always works on a copy.
type Assignment []Value

func (a Assignment) Copy() Assignment {
	c := make(Assignment, len(a))
	copy(c, a)
	return c
}

// With returns a copy of a where the literal's variable takes the literal's polarity.
func (a Assignment) With(l Literal) Assignment {
	if a[l.Var] != Unassigned {
		panic("cannot apply action: variable is already assigned")
	}
	c := a.Copy()
	c[l.Var] = ValueOf(l.Positive)
	return c
}

// Satisfies reports whether l is true under a.
func (a Assignment) Satisfies(l Literal) bool {
	return a[l.Var] == ValueOf(l.Positive)
}

// Unassigned counts the cells that are still unassigned.
func (a Assignment) Unassigned() int {
	return lo.Count(a, Unassigned)
}

func (a Assignment) Complete() bool {
	return !lo.Contains(a, Unassigned)
}

// Dimacs renders the assigned cells as signed 1-based literals.
func (a Assignment) Dimacs() []int {
	lits := make([]int, 0, len(a))
	for v, value := range a {
		switch value {
		case True:
			lits = append(lits, v+1)
		case False:
			lits = append(lits, -(v + 1))
		}
	}
	return lits
}
