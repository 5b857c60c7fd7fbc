package datasets

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/neurlang/specmatch/cluster"
)

func TestTrainSizeParity(t *testing.T) {
	for _, tc := range []struct{ n, train int }{
		{0, 0},
		{1, 0},
		{2, 0},
		{3, 0},
		{4, 2},
		{6, 2},
		{8, 4},
		{10, 4},
		{100, 50},
		{102, 50},
	} {
		require.Equal(t, tc.train, TrainSize(tc.n), "n=%d", tc.n)
	}
}

func declarations(n int) []cluster.Declaration {
	out := make([]cluster.Declaration, n)
	for i := range out {
		out[i] = cluster.Declaration{A: fmt.Sprintf("a//%d", i), B: fmt.Sprintf("b//%d", i)}
	}
	return out
}

func TestSplitCompleteness(t *testing.T) {
	const n = 37
	decls := declarations(n)
	d, err := Split(decls, n, NewUniqueRand(0, n-1, rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	require.Equal(t, n, d.TrainSize+d.TestSize+d.ValidationSize)
	require.Equal(t, TrainSize(n), d.TrainSize)
	require.Len(t, d.Train(), d.TrainSize)
	require.Len(t, d.Test(), d.TestSize)
	require.Len(t, d.Validation(), d.ValidationSize)

	seen := make(map[string]bool)
	for _, m := range d.Matches {
		require.False(t, seen[m.A], "sampled twice: %s", m.A)
		seen[m.A] = true
	}
	require.Len(t, seen, n)

	for _, m := range d.Train() {
		require.Equal(t, Train, m.Partition)
		require.True(t, d.Vocabulary.Has(m.A))
		require.True(t, d.Vocabulary.Has(m.B))
	}
	for _, m := range d.Test() {
		require.Equal(t, Test, m.Partition)
	}
	for _, m := range d.Validation() {
		require.Equal(t, Validation, m.Partition)
	}
	require.Equal(t, 2*d.TrainSize, d.Vocabulary.Len())
}

func TestSplitTooLarge(t *testing.T) {
	_, err := Split(declarations(3), 4, NewUniqueRand(0, 3, rand.New(rand.NewSource(1))))
	require.True(t, errors.Is(err, ErrDatasetTooLarge))
}

func TestSplitSamplerExhausted(t *testing.T) {
	_, err := Split(declarations(10), 10, NewUniqueRand(0, 4, rand.New(rand.NewSource(1))))
	require.True(t, errors.Is(err, ErrExhausted))
}

func TestLabelDerivedFromClusters(t *testing.T) {
	s := cluster.NewStore()
	for _, spec := range []string{"A", "B", "C"} {
		s.Register(spec)
	}
	_, err := s.Merge("A", "B")
	require.NoError(t, err)
	_, err = s.Diff("B", "C")
	require.NoError(t, err)

	label, err := Match{A: "A", B: "C"}.Label(s)
	require.NoError(t, err)
	require.False(t, label)

	// a later MATCH changes the derived label of an existing pair
	_, err = s.Merge("C", "A")
	require.NoError(t, err)
	label, err = Match{A: "B", B: "C"}.Label(s)
	require.NoError(t, err)
	require.True(t, label)
}

func TestUniqueRand(t *testing.T) {
	u := NewUniqueRand(3, 9, rand.New(rand.NewSource(42)))
	var first []int
	for i := 0; i < 7; i++ {
		v, err := u.Draw()
		require.NoError(t, err)
		first = append(first, v)
	}
	require.ElementsMatch(t, []int{3, 4, 5, 6, 7, 8, 9}, first)
	_, err := u.Draw()
	require.True(t, errors.Is(err, ErrExhausted))
	require.Equal(t, 0, u.Remaining())

	u.Reset()
	require.Equal(t, 7, u.Remaining())
	var second []int
	for i := 0; i < 7; i++ {
		v, err := u.Draw()
		require.NoError(t, err)
		second = append(second, v)
	}
	require.ElementsMatch(t, first, second)
}

func TestUniqueRandEmpty(t *testing.T) {
	u := NewUniqueRand(0, -1, rand.New(rand.NewSource(1)))
	_, err := u.Draw()
	require.True(t, errors.Is(err, ErrExhausted))
}

func TestSpecSetOrder(t *testing.T) {
	s := NewSpecSet()
	require.True(t, s.Insert("b"))
	require.True(t, s.Insert("a"))
	require.False(t, s.Insert("b"))
	require.Equal(t, []string{"b", "a"}, s.Specs())
}
