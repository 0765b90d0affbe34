package reason

// Set is an insertion-ordered collection of unique reason strings.
// The zero value is ready to use.
type Set struct {
	items []string
	seen  map[string]struct{}
}

// NewSet creates a Set holding the given reasons.
func NewSet(reasons ...string) *Set {
	s := &Set{}
	s.Add(reasons...)
	return s
}

// Add appends reasons that are not already present. Empty strings are ignored.
func (s *Set) Add(reasons ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, r := range reasons {
		if r == "" {
			continue
		}
		if _, ok := s.seen[r]; ok {
			continue
		}
		s.seen[r] = struct{}{}
		s.items = append(s.items, r)
	}
}

// Contains reports whether r has been added.
func (s *Set) Contains(r string) bool {
	_, ok := s.seen[r]
	return ok
}

// Len returns the number of unique reasons.
func (s *Set) Len() int {
	return len(s.items)
}

// List returns the reasons in insertion order. The slice is a copy.
func (s *Set) List() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
