package features

import "bufio"
import "fmt"
import "io"
import "math"
import "os"
import "sort"
import "strconv"
import "strings"

import "github.com/pkg/errors"

import "github.com/neurlang/specmatch/hash"

// Vocabulary maps terms to feature indexes and keeps document frequencies.
//
// An explicit vocabulary learns its terms from the documents it is fed. A
// hashed vocabulary has a fixed number of buckets and maps any term onto one
// of them. Neither is safe for concurrent mutation.
type Vocabulary struct {
	terms   []string
	index   map[string]int
	buckets int

	df   []int
	docs int
}

// NewVocabulary creates an explicit, growing vocabulary.
func NewVocabulary() *Vocabulary {
	return &Vocabulary{index: make(map[string]int)}
}

// NewHashedVocabulary creates a vocabulary of buckets hashed slots.
func NewHashedVocabulary(buckets int) *Vocabulary {
	return &Vocabulary{buckets: buckets, df: make([]int, buckets)}
}

// Hashed reports whether terms are hashed into buckets.
func (v *Vocabulary) Hashed() bool {
	return v.buckets > 0
}

// Size is the feature vector length.
func (v *Vocabulary) Size() int {
	if v.Hashed() {
		return v.buckets
	}
	return len(v.terms)
}

// Documents is the number of documents added.
func (v *Vocabulary) Documents() int {
	return v.docs
}

// Index returns the feature index of term.
func (v *Vocabulary) Index(term string) (int, bool) {
	if v.Hashed() {
		return hash.Bucket(term, v.buckets), true
	}
	i, ok := v.index[term]
	return i, ok
}

// Term returns the term at index i; hashed vocabularies have no terms.
func (v *Vocabulary) Term(i int) string {
	if v.Hashed() {
		return ""
	}
	return v.terms[i]
}

// DF is the document frequency of feature i.
func (v *Vocabulary) DF(i int) int {
	return v.df[i]
}

// IDF is the smoothed inverse document frequency of feature i.
func (v *Vocabulary) IDF(i int) float64 {
	return math.Log(float64(1+v.docs)/float64(1+v.df[i])) + 1
}

// AddDocument counts every distinct term of a tokenized document once.
func (v *Vocabulary) AddDocument(tokens []string) {
	v.docs++
	seen := make(map[int]struct{}, len(tokens))
	for _, term := range tokens {
		i, ok := v.Index(term)
		if !ok {
			i = len(v.terms)
			v.index[term] = i
			v.terms = append(v.terms, term)
			v.df = append(v.df, 0)
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		v.df[i]++
	}
}

// Prune drops terms seen in fewer than minDF documents and then keeps the
// maxFeatures most frequent ones (0 keeps all). Remaining terms are
// reindexed by descending document frequency, ties by term. Hashed
// vocabularies are left as they are.
func (v *Vocabulary) Prune(minDF, maxFeatures int) {
	if v.Hashed() {
		return
	}
	keep := make([]int, 0, len(v.terms))
	for i := range v.terms {
		if v.df[i] >= minDF {
			keep = append(keep, i)
		}
	}
	sort.Slice(keep, func(a, b int) bool {
		if v.df[keep[a]] != v.df[keep[b]] {
			return v.df[keep[a]] > v.df[keep[b]]
		}
		return v.terms[keep[a]] < v.terms[keep[b]]
	})
	if maxFeatures > 0 && len(keep) > maxFeatures {
		keep = keep[:maxFeatures]
	}
	terms := make([]string, len(keep))
	df := make([]int, len(keep))
	index := make(map[string]int, len(keep))
	for n, i := range keep {
		terms[n] = v.terms[i]
		df[n] = v.df[i]
		index[terms[n]] = n
	}
	v.terms, v.df, v.index = terms, df, index
}

// Encode writes the vocabulary as text: kind, document count, size, then one
// line per feature ("term<TAB>df" or "df" for hashed vocabularies).
func (v *Vocabulary) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	kind := "explicit"
	if v.Hashed() {
		kind = "hashed"
	}
	fmt.Fprintf(bw, "%s\n%d\n%d\n", kind, v.docs, v.Size())
	for i := 0; i < v.Size(); i++ {
		if v.Hashed() {
			fmt.Fprintf(bw, "%d\n", v.df[i])
		} else {
			fmt.Fprintf(bw, "%s\t%d\n", v.terms[i], v.df[i])
		}
	}
	return errors.WithStack(bw.Flush())
}

// DecodeVocabulary reads what Encode wrote.
func DecodeVocabulary(r io.Reader) (*Vocabulary, error) {
	sc := bufio.NewScanner(r)
	var line int
	next := func() (string, error) {
		line++
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", errors.WithStack(err)
			}
			return "", errors.Errorf("vocabulary: unexpected end at line %d", line)
		}
		return sc.Text(), nil
	}
	number := func() (int, error) {
		s, err := next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return 0, errors.Errorf("vocabulary: bad number %q at line %d", s, line)
		}
		return n, nil
	}

	kind, err := next()
	if err != nil {
		return nil, err
	}
	docs, err := number()
	if err != nil {
		return nil, err
	}
	size, err := number()
	if err != nil {
		return nil, err
	}

	var v *Vocabulary
	switch kind {
	case "hashed":
		if size == 0 {
			return nil, errors.New("vocabulary: hashed with zero buckets")
		}
		v = NewHashedVocabulary(size)
		for i := 0; i < size; i++ {
			if v.df[i], err = number(); err != nil {
				return nil, err
			}
		}
	case "explicit":
		v = NewVocabulary()
		for i := 0; i < size; i++ {
			s, err := next()
			if err != nil {
				return nil, err
			}
			tab := strings.LastIndexByte(s, '\t')
			if tab < 0 {
				return nil, errors.Errorf("vocabulary: bad term line %q at line %d", s, line)
			}
			df, err := strconv.Atoi(s[tab+1:])
			if err != nil {
				return nil, errors.Errorf("vocabulary: bad df %q at line %d", s, line)
			}
			v.index[s[:tab]] = len(v.terms)
			v.terms = append(v.terms, s[:tab])
			v.df = append(v.df, df)
		}
	default:
		return nil, errors.Errorf("vocabulary: unknown kind %q", kind)
	}
	v.docs = docs
	return v, nil
}

// SaveFile writes the vocabulary to path
func (v *Vocabulary) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.WithStack(err)
	}
	err = v.Encode(f)
	if cerr := f.Close(); err == nil {
		err = errors.WithStack(cerr)
	}
	return err
}

// LoadVocabularyFile reads a vocabulary from path
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return DecodeVocabulary(f)
}
