// Package datasets implements the labelled pair dataset: sampling pair
// declarations into train, test and validation partitions.
package datasets

import "github.com/pkg/errors"

import "github.com/neurlang/specmatch/cluster"

// ErrDatasetTooLarge is returned when more pairs are requested than were declared.
var ErrDatasetTooLarge = errors.New("dataset size exceeds available declarations")

// Partition tells which subset a sampled pair belongs to
type Partition uint8

const (
	Train Partition = iota
	Test
	Validation
)

func (p Partition) String() string {
	switch p {
	case Train:
		return "TRAIN"
	case Test:
		return "TEST"
	case Validation:
		return "VALIDATION"
	}
	return "UNKNOWN"
}

// Match is a sampled pair. Its ground truth is never stored, see Label.
type Match struct {
	A, B      string
	Partition Partition
}

// Label derives the ground truth from the current cluster membership, so it
// reflects every MATCH declaration, not only the one that produced the pair.
func (m Match) Label(store *cluster.Store) (bool, error) {
	return store.SameCluster(m.A, m.B)
}

// Sampler draws uniformly without replacement.
type Sampler interface {
	Draw() (int, error)
	Reset()
}

// Dataset holds the sampled pairs in draw order: train first, then test,
// then validation.
type Dataset struct {
	Matches []Match

	TrainSize      int
	TestSize       int
	ValidationSize int

	// Vocabulary lists every spec appearing in a train pair. Only these
	// documents need tokenizing.
	Vocabulary *SpecSet
}

// Train returns the train pairs.
func (d *Dataset) Train() []Match {
	return d.Matches[:d.TrainSize]
}

// Test returns the test pairs.
func (d *Dataset) Test() []Match {
	return d.Matches[d.TrainSize : d.TrainSize+d.TestSize]
}

// Validation returns the validation pairs.
func (d *Dataset) Validation() []Match {
	return d.Matches[d.TrainSize+d.TestSize:]
}

// TrainSize is half of n, minus one when that half is odd.
func TrainSize(n int) int {
	half := n / 2
	if half%2 != 0 {
		return half - 1
	}
	return half
}

// Split samples n declarations into the three partitions. The sampler must
// cover the index range [0, n).
func Split(decls []cluster.Declaration, n int, s Sampler) (*Dataset, error) {
	if n > len(decls) {
		return nil, errors.Wrapf(ErrDatasetTooLarge, "requested %d of %d", n, len(decls))
	}
	train := TrainSize(n)
	testEnd := train + (n-train)/2

	d := &Dataset{
		Matches:        make([]Match, 0, n),
		TrainSize:      train,
		TestSize:       testEnd - train,
		ValidationSize: n - testEnd,
		Vocabulary:     NewSpecSet(),
	}
	for i := 0; i < n; i++ {
		x, err := s.Draw()
		if err != nil {
			return nil, errors.Wrapf(err, "draw %d of %d", i, n)
		}
		if x < 0 || x >= n {
			return nil, errors.Errorf("sampler produced %d outside [0, %d)", x, n)
		}
		m := Match{A: decls[x].A, B: decls[x].B}
		switch {
		case i < train:
			m.Partition = Train
			d.Vocabulary.Insert(m.A)
			d.Vocabulary.Insert(m.B)
		case i < testEnd:
			m.Partition = Test
		default:
			m.Partition = Validation
		}
		d.Matches = append(d.Matches, m)
	}
	return d, nil
}
