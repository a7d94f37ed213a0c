package utils

// StringSet tracks distinct non-empty strings.
type StringSet struct {
	seen map[string]struct{}
}

// NewStringSet creates an empty StringSet.
func NewStringSet() *StringSet {
	return &StringSet{seen: make(map[string]struct{})}
}

// Add returns true if the value was newly added, false if already present.
func (s *StringSet) Add(v string) bool {
	if _, exists := s.seen[v]; exists {
		return false
	}
	s.seen[v] = struct{}{}
	return true
}

// Contains returns true if the value has already been added.
func (s *StringSet) Contains(v string) bool {
	_, exists := s.seen[v]
	return exists
}

// Size returns the number of distinct values tracked.
func (s *StringSet) Size() int {
	return len(s.seen)
}
