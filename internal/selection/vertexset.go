package selection

import "sort"

// VertexSet is the set of selected point indices a drag result is applied
// to. The zero value is an empty set.
type VertexSet struct {
	members map[int]struct{}
}

func NewVertexSet() *VertexSet {
	return &VertexSet{members: make(map[int]struct{})}
}

// Apply adds (Select) or removes (Deselect) indices and returns how many
// memberships changed. Off is ignored.
func (s *VertexSet) Apply(mode Mode, indices []int) int {
	if s.members == nil {
		s.members = make(map[int]struct{})
	}
	changed := 0
	for _, i := range indices {
		_, present := s.members[i]
		switch mode {
		case Select:
			if !present {
				s.members[i] = struct{}{}
				changed++
			}
		case Deselect:
			if present {
				delete(s.members, i)
				changed++
			}
		}
	}
	return changed
}

func (s *VertexSet) Has(i int) bool {
	_, ok := s.members[i]
	return ok
}

func (s *VertexSet) Len() int {
	return len(s.members)
}

func (s *VertexSet) Clear() {
	s.members = make(map[int]struct{})
}

// Indices returns the members in ascending order
func (s *VertexSet) Indices() []int {
	out := make([]int, 0, len(s.members))
	for i := range s.members {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
