package searcher

import (
	"mcsat/sat"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// Table owns every State of a run. States live in an arena and are addressed
// by Handle; a pointer returned by At is only valid until the next Get.
type Table struct {
	states []State
	index  map[uint64][]Handle
	expand func(sat.Assignment) []int
	buf    []byte
}

// NewTable returns an empty table. expand lists the branching variables of a
// new state's assignment.
func NewTable(expand func(sat.Assignment) []int) *Table {
	return &Table{
		index:  make(map[uint64][]Handle),
		expand: expand,
	}
}

// Get returns the state of a, creating it on first request. The table keeps
// its own copy of a.
func (t *Table) Get(a sat.Assignment) Handle {
	key := t.hash(a)
	for _, h := range t.index[key] {
		if slices.Equal(t.states[h].Assignment, a) {
			return h
		}
	}

	own := a.Copy()
	h := Handle(len(t.states))
	t.states = append(t.states, newState(own, t.expand(own)))
	t.index[key] = append(t.index[key], h)
	return h
}

func (t *Table) At(h Handle) *State {
	return &t.states[h]
}

func (t *Table) Len() int {
	return len(t.states)
}

func (t *Table) hash(a sat.Assignment) uint64 {
	t.buf = t.buf[:0]
	for _, v := range a {
		t.buf = append(t.buf, byte(v+1))
	}
	return xxhash.Sum64(t.buf)
}
