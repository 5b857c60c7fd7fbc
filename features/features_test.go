package features

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	stop := StopWords{"the": {}}
	got := Tokenize("The Canon EOS-5D, ＭＡＲＫ ii — 24MP; a b", stop)
	require.Equal(t, []string{"canon", "eos", "5d", "mark", "ii", "24mp"}, got)
}

func TestTokenizeConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Tokenize("CAMERA Lens x", nil)
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		require.Equal(t, []string{"camera", "lens"}, got)
	}
}

func TestLoadStopWords(t *testing.T) {
	stop, err := LoadStopWords(strings.NewReader("The\n\nand\nOF\n"))
	require.NoError(t, err)
	require.True(t, stop.Has("the"))
	require.True(t, stop.Has("of"))
	require.False(t, stop.Has("camera"))

	empty, err := LoadStopWordsFile("")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestParseRepresentation(t *testing.T) {
	for _, rep := range []Representation{BagOfWords, TFIDF} {
		got, err := ParseRepresentation(rep.String())
		require.NoError(t, err)
		require.Equal(t, rep, got)
	}
	_, err := ParseRepresentation("word2vec")
	require.Error(t, err)
}

func buildVocabulary() *Vocabulary {
	v := NewVocabulary()
	v.AddDocument([]string{"canon", "camera", "camera"})
	v.AddDocument([]string{"nikon", "camera"})
	v.AddDocument([]string{"canon", "lens"})
	return v
}

func TestVocabularyPrune(t *testing.T) {
	v := buildVocabulary()
	require.Equal(t, 4, v.Size())
	require.Equal(t, 3, v.Documents())

	v.Prune(1, 3)
	require.Equal(t, 3, v.Size())
	require.Equal(t, "camera", v.Term(0))
	require.Equal(t, "canon", v.Term(1))
	require.Equal(t, 2, v.DF(0))
	_, ok := v.Index("nikon")
	require.False(t, ok)
	i, ok := v.Index("lens")
	require.True(t, ok)
	require.Equal(t, 2, i)

	v.Prune(2, 0)
	require.Equal(t, 2, v.Size())
}

func TestVectorBagOfWords(t *testing.T) {
	v := buildVocabulary()
	v.Prune(1, 0)
	z := NewVectorizer(v, BagOfWords)
	dst := make([]float64, z.Size())
	hits := z.Vector([]string{"camera", "camera", "canon", "unknown"}, dst)
	require.Equal(t, 3, hits)
	require.Equal(t, []float64{2, 1, 0, 0}, dst)
}

func TestVectorTFIDF(t *testing.T) {
	v := buildVocabulary()
	v.Prune(1, 0)
	z := NewVectorizer(v, TFIDF)
	dst := make([]float64, z.Size())
	z.Vector([]string{"camera", "lens"}, dst)
	require.InDelta(t, 0.5*(math.Log(4.0/3.0)+1), dst[0], 1e-12)
	require.InDelta(t, 0.5*(math.Log(4.0/2.0)+1), dst[2], 1e-12)
	require.Zero(t, dst[1])
}

func TestPairVector(t *testing.T) {
	dst := make([]float64, 3)
	PairVector([]float64{1, 0, 2}, []float64{0, 3, 2}, dst)
	require.Equal(t, []float64{1, 3, 0}, dst)

	v := buildVocabulary()
	z := NewVectorizer(v, BagOfWords)
	pair := make([]float64, z.Size())
	z.Pair([]string{"canon"}, []string{"canon"}, pair)
	for _, x := range pair {
		require.Zero(t, x)
	}
}

func TestHashedVocabulary(t *testing.T) {
	v := NewHashedVocabulary(16)
	v.AddDocument([]string{"canon", "canon", "lens"})
	require.Equal(t, 16, v.Size())
	i, ok := v.Index("canon")
	require.True(t, ok)
	require.Less(t, i, 16)
	require.Equal(t, 1, v.DF(i))
	v.Prune(5, 1)
	require.Equal(t, 16, v.Size())
}

func TestVocabularyRoundTrip(t *testing.T) {
	for _, v := range []*Vocabulary{buildVocabulary(), NewHashedVocabulary(8)} {
		v.AddDocument([]string{"zoom"})
		var buf bytes.Buffer
		require.NoError(t, v.Encode(&buf))
		got, err := DecodeVocabulary(&buf)
		require.NoError(t, err)
		require.Equal(t, v.Size(), got.Size())
		require.Equal(t, v.Documents(), got.Documents())
		require.Equal(t, v.Hashed(), got.Hashed())
		for i := 0; i < v.Size(); i++ {
			require.Equal(t, v.Term(i), got.Term(i))
			require.Equal(t, v.DF(i), got.DF(i))
		}
	}
}

func TestDecodeVocabularyErrors(t *testing.T) {
	for _, in := range []string{
		"",
		"explicit\n1\n",
		"explicit\n1\n2\ncanon\t1\n",
		"explicit\n1\n1\ncanon\n",
		"hashed\n1\n0\n",
		"sparse\n1\n1\n",
	} {
		_, err := DecodeVocabulary(strings.NewReader(in))
		require.Error(t, err, "%q", in)
	}
}
