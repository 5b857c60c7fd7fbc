package trainer

import "github.com/pkg/errors"

import "github.com/neurlang/specmatch/cluster"
import "github.com/neurlang/specmatch/datasets"
import "github.com/neurlang/specmatch/features"

// PairExamples turns sampled pairs into training rows: the absolute
// difference of both documents' vectors, labelled by cluster membership.
type PairExamples struct {
	pairs      []datasets.Match
	labels     []bool
	tokens     map[string][]string
	vectorizer *features.Vectorizer
}

// NewPairExamples resolves every label up front. Root lookups compress paths
// in the store, so they are kept out of the concurrent row building.
func NewPairExamples(pairs []datasets.Match, store *cluster.Store, tokens map[string][]string,
	vectorizer *features.Vectorizer) (*PairExamples, error) {

	labels := make([]bool, len(pairs))
	for i, m := range pairs {
		for _, spec := range []string{m.A, m.B} {
			if _, ok := tokens[spec]; !ok {
				return nil, errors.Errorf("no document for spec %q", spec)
			}
		}
		label, err := m.Label(store)
		if err != nil {
			return nil, err
		}
		labels[i] = label
	}
	return &PairExamples{pairs: pairs, labels: labels, tokens: tokens, vectorizer: vectorizer}, nil
}

func (p *PairExamples) Len() int {
	return len(p.pairs)
}

func (p *PairExamples) Features() int {
	return p.vectorizer.Size()
}

// Positives counts pairs labelled as the same entity
func (p *PairExamples) Positives() (n int) {
	for _, l := range p.labels {
		if l {
			n++
		}
	}
	return
}

// Example writes the pair vector of pair i into x.
func (p *PairExamples) Example(i int, x []float64) (bool, error) {
	if i < 0 || i >= len(p.pairs) {
		return false, errors.Errorf("example %d out of range [0, %d)", i, len(p.pairs))
	}
	m := p.pairs[i]
	p.vectorizer.Pair(p.tokens[m.A], p.tokens[m.B], x)
	return p.labels[i], nil
}
