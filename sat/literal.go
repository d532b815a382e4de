package sat

import "fmt"

// Literal is a variable together with the polarity it must take to satisfy a clause.
type Literal struct {
	Var      int
	Positive bool
}

// Pos returns the positive literal of v.
func Pos(v int) Literal {
	return Literal{Var: v, Positive: true}
}

// Neg returns the negative literal of v.
func Neg(v int) Literal {
	return Literal{Var: v, Positive: false}
}

// FromDimacs converts a signed 1-based literal into a 0-based Literal.
func FromDimacs(m int) Literal {
	if m == 0 {
		panic("null dimacs literal")
	}
	if m < 0 {
		return Neg(-m - 1)
	}
	return Pos(m - 1)
}

// Dimacs returns the signed 1-based encoding of l.
func (l Literal) Dimacs() int {
	if l.Positive {
		return l.Var + 1
	}
	return -(l.Var + 1)
}

func (l Literal) Negate() Literal {
	return Literal{Var: l.Var, Positive: !l.Positive}
}

// Compare orders literals by variable, then polarity (false before true).
func (l Literal) Compare(o Literal) int {
	switch {
	case l.Var < o.Var:
		return -1
	case l.Var > o.Var:
		return 1
	case l.Positive == o.Positive:
		return 0
	case !l.Positive:
		return -1
	default:
		return 1
	}
}

func (l Literal) String() string {
	if l.Positive {
		return fmt.Sprintf("x%d", l.Var)
	}
	return fmt.Sprintf("¬x%d", l.Var)
}

// Polarity indexes the two literals of a variable: 0 for false, 1 for true.
func Polarity(positive bool) int {
	if positive {
		return 1
	}
	return 0
}

// Clause is a weighted disjunction of literals.
type Clause struct {
	Literals []Literal
	Weight   float64
}

// NewClause returns a clause of weight 1.
func NewClause(lits ...Literal) Clause {
	return Clause{Literals: lits, Weight: 1}
}
