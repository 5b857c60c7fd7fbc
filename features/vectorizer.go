package features

import "math"

// Vectorizer weights term counts against a fixed vocabulary.
// It only reads the vocabulary and is safe for concurrent use.
type Vectorizer struct {
	vocab *Vocabulary
	rep   Representation
}

func NewVectorizer(vocab *Vocabulary, rep Representation) *Vectorizer {
	return &Vectorizer{vocab: vocab, rep: rep}
}

// Size is the length of every vector produced.
func (z *Vectorizer) Size() int {
	return z.vocab.Size()
}

func (z *Vectorizer) Representation() Representation {
	return z.rep
}

func (z *Vectorizer) Vocabulary() *Vocabulary {
	return z.vocab
}

// Vector fills dst (length Size) for a tokenized document and returns the
// number of tokens that hit the vocabulary. Terms outside the vocabulary are
// ignored.
func (z *Vectorizer) Vector(tokens []string, dst []float64) int {
	for i := range dst {
		dst[i] = 0
	}
	var hits int
	for _, term := range tokens {
		if i, ok := z.vocab.Index(term); ok {
			dst[i]++
			hits++
		}
	}
	if z.rep == TFIDF && hits > 0 {
		for i, c := range dst {
			if c != 0 {
				dst[i] = c / float64(hits) * z.vocab.IDF(i)
			}
		}
	}
	return hits
}

// PairVector writes |a - b| element-wise into dst.
func PairVector(a, b, dst []float64) {
	for i := range dst {
		dst[i] = math.Abs(a[i] - b[i])
	}
}

// Pair vectorizes two tokenized documents and writes their pair vector into dst.
func (z *Vectorizer) Pair(a, b []string, dst []float64) {
	va := make([]float64, z.Size())
	vb := make([]float64, z.Size())
	z.Vector(a, va)
	z.Vector(b, vb)
	PairVector(va, vb, dst)
}
