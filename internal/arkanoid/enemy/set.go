package enemy

// Set is a non-owning view of the live enemies, used so enemies can bounce
// off each other. The game owns the enemies; removing one here only stops
// the others from seeing it.
type Set struct {
	members []*Enemy
}

// NewSet creates an empty set.
func NewSet() *Set {
	return &Set{}
}

// Add inserts enemies not already present.
func (s *Set) Add(enemies ...*Enemy) {
	for _, e := range enemies {
		if !s.Contains(e) {
			s.members = append(s.members, e)
		}
	}
}

// Remove drops an enemy. Unknown enemies are ignored.
func (s *Set) Remove(e *Enemy) {
	for i, m := range s.members {
		if m == e {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return
		}
	}
}

// Contains reports whether e is in the set.
func (s *Set) Contains(e *Enemy) bool {
	for _, m := range s.members {
		if m == e {
			return true
		}
	}
	return false
}

// All returns the members in insertion order.
func (s *Set) All() []*Enemy {
	return s.members
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.members)
}

// Clear empties the set.
func (s *Set) Clear() {
	s.members = nil
}
