package datasets

// SpecSet is a deduplicated set of spec identifiers that remembers insertion order.
type SpecSet struct {
	index map[string]struct{}
	order []string
}

func NewSpecSet() *SpecSet {
	return &SpecSet{index: make(map[string]struct{})}
}

// Insert adds spec, reporting whether it was new
func (s *SpecSet) Insert(spec string) bool {
	if _, ok := s.index[spec]; ok {
		return false
	}
	s.index[spec] = struct{}{}
	s.order = append(s.order, spec)
	return true
}

func (s *SpecSet) Has(spec string) bool {
	_, ok := s.index[spec]
	return ok
}

func (s *SpecSet) Len() int {
	return len(s.order)
}

// Specs returns the members in insertion order.
func (s *SpecSet) Specs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
