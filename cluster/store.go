package cluster

import "fmt"
import "io"
import "sort"

import "github.com/pkg/errors"

var (
	// ErrUnknownSpec is returned when a spec was never registered.
	ErrUnknownSpec = errors.New("unknown spec")
	// ErrSelfPair is returned when both sides of a declaration are the same spec.
	ErrSelfPair = errors.New("self pair")
)

// Outcome is the label of a pair declaration.
type Outcome uint8

const (
	Differ Outcome = iota
	Match
)

func (o Outcome) String() string {
	if o == Match {
		return "MATCH"
	}
	return "DIFFER"
}

// Declaration is one labelled pairwise judgment.
type Declaration struct {
	A, B    string
	Outcome Outcome
}

type pairKey struct {
	lo, hi  int
	outcome Outcome
}

// Store is the union-find arena over spec identifiers.
// It is not safe for concurrent mutation.
type Store struct {
	ids    map[string]int
	names  []string
	parent []int
	size   []int

	seen  map[pairKey]struct{}
	decls []Declaration

	merges int
	diffs  int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		ids:  make(map[string]int),
		seen: make(map[pairKey]struct{}),
	}
}

// Register adds spec as a singleton cluster, or returns its existing id.
func (s *Store) Register(spec string) int {
	if id, ok := s.ids[spec]; ok {
		return id
	}
	id := len(s.names)
	s.ids[spec] = id
	s.names = append(s.names, spec)
	s.parent = append(s.parent, id)
	s.size = append(s.size, 1)
	return id
}

// Lookup returns the arena id of spec.
func (s *Store) Lookup(spec string) (int, bool) {
	id, ok := s.ids[spec]
	return id, ok
}

// Name returns the spec registered under id.
func (s *Store) Name(id int) string {
	return s.names[id]
}

// Len is the number of registered specs.
func (s *Store) Len() int {
	return len(s.names)
}

// root resolves the cluster root of id and points every node on the way at it.
func (s *Store) root(id int) int {
	r := id
	for s.parent[r] != r {
		r = s.parent[r]
	}
	for s.parent[id] != r {
		next := s.parent[id]
		s.parent[id] = r
		id = next
	}
	return r
}

func (s *Store) resolve(spec string) (int, error) {
	id, ok := s.ids[spec]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownSpec, "spec %q", spec)
	}
	return id, nil
}

func (s *Store) pair(a, b string) (int, int, error) {
	if a == b {
		return 0, 0, errors.Wrapf(ErrSelfPair, "spec %q", a)
	}
	ia, err := s.resolve(a)
	if err != nil {
		return 0, 0, err
	}
	ib, err := s.resolve(b)
	if err != nil {
		return 0, 0, err
	}
	return ia, ib, nil
}

// declare records the declaration once per unordered pair and outcome.
func (s *Store) declare(ia, ib int, outcome Outcome) bool {
	key := pairKey{lo: ia, hi: ib, outcome: outcome}
	if ia > ib {
		key.lo, key.hi = ib, ia
	}
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.decls = append(s.decls, Declaration{A: s.names[ia], B: s.names[ib], Outcome: outcome})
	return true
}

// FindRoot returns the canonical cluster id of spec.
func (s *Store) FindRoot(spec string) (int, error) {
	id, err := s.resolve(spec)
	if err != nil {
		return 0, err
	}
	return s.root(id), nil
}

// Merge declares a and b the same entity. It reports whether two distinct
// clusters were joined.
func (s *Store) Merge(a, b string) (bool, error) {
	ia, ib, err := s.pair(a, b)
	if err != nil {
		return false, err
	}
	if s.declare(ia, ib, Match) {
		s.merges++
	}
	ra, rb := s.root(ia), s.root(ib)
	if ra == rb {
		return false, nil
	}
	// union by size, the smaller tree goes under the larger
	if s.size[ra] < s.size[rb] {
		ra, rb = rb, ra
	}
	s.parent[rb] = ra
	s.size[ra] += s.size[rb]
	return true, nil
}

// Diff declares a and b different entities. Clusters are left alone; the
// result reports whether the declaration was new.
func (s *Store) Diff(a, b string) (bool, error) {
	ia, ib, err := s.pair(a, b)
	if err != nil {
		return false, err
	}
	if !s.declare(ia, ib, Differ) {
		return false, nil
	}
	s.diffs++
	return true, nil
}

// SameCluster reports whether a and b are transitively matched.
func (s *Store) SameCluster(a, b string) (bool, error) {
	ra, err := s.FindRoot(a)
	if err != nil {
		return false, err
	}
	rb, err := s.FindRoot(b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}

// Declarations returns the recorded declarations in arrival order.
func (s *Store) Declarations() []Declaration {
	out := make([]Declaration, len(s.decls))
	copy(out, s.decls)
	return out
}

// Counts reports how many distinct MATCH and DIFFER declarations were recorded.
func (s *Store) Counts() (merges, diffs int) {
	return s.merges, s.diffs
}

// Clusters groups the registered specs by cluster. Members and clusters are
// sorted by name.
func (s *Store) Clusters() [][]string {
	groups := make(map[int][]string)
	for id, name := range s.names {
		r := s.root(id)
		groups[r] = append(groups[r], name)
	}
	out := make([][]string, 0, len(groups))
	for _, members := range groups {
		sort.Strings(members)
		out = append(out, members)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// ClosurePairs enumerates every pair inside every cluster as a MATCH
// declaration, plus the recorded DIFFER declarations whose specs ended up in
// different clusters.
func (s *Store) ClosurePairs() []Declaration {
	var out []Declaration
	for _, members := range s.Clusters() {
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				out = append(out, Declaration{A: members[i], B: members[j], Outcome: Match})
			}
		}
	}
	for _, d := range s.decls {
		if d.Outcome != Differ {
			continue
		}
		if s.root(s.ids[d.A]) != s.root(s.ids[d.B]) {
			out = append(out, d)
		}
	}
	return out
}

// WriteReport prints one line per cluster holding more than one spec.
func (s *Store) WriteReport(w io.Writer) error {
	for _, members := range s.Clusters() {
		if len(members) < 2 {
			continue
		}
		if _, err := fmt.Fprintln(w, members); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}
