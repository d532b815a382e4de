package walk

// indexSet is a set of clause indices with O(1) insertion, removal and
// uniform access by position.
type indexSet struct {
	items []int
	pos   []int // -1 when absent
}

func newIndexSet(n int) *indexSet {
	s := &indexSet{items: make([]int, 0, n), pos: make([]int, n)}
	for i := range s.pos {
		s.pos[i] = -1
	}
	return s
}

func (s *indexSet) add(c int) {
	if s.pos[c] >= 0 {
		return
	}
	s.pos[c] = len(s.items)
	s.items = append(s.items, c)
}

func (s *indexSet) remove(c int) {
	i := s.pos[c]
	if i < 0 {
		return
	}
	last := s.items[len(s.items)-1]
	s.items[i] = last
	s.pos[last] = i
	s.items = s.items[:len(s.items)-1]
	s.pos[c] = -1
}

func (s *indexSet) contains(c int) bool {
	return s.pos[c] >= 0
}

func (s *indexSet) len() int {
	return len(s.items)
}

func (s *indexSet) at(i int) int {
	return s.items[i]
}
