package inference

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neurlang/specmatch/features"
	"github.com/neurlang/specmatch/logreg"
)

func vocabulary() *features.Vocabulary {
	v := features.NewVocabulary()
	v.AddDocument([]string{"canon", "eos"})
	v.AddDocument([]string{"nikon", "d3200"})
	return v
}

func TestScore(t *testing.T) {
	// any difference pushes the score below one half
	m := &logreg.Model{Weights: []float64{-2, -2, -2, -2}, Bias: 1}
	s, err := New(m, features.NewVectorizer(vocabulary(), features.BagOfWords), nil)
	require.NoError(t, err)

	same := s.Score([]string{"canon", "eos"}, []string{"eos", "canon"})
	require.InDelta(t, logreg.Sigmoid(1), same, 1e-15)
	require.True(t, s.BoolInfer([]string{"canon"}, []string{"canon"}))
	require.False(t, s.BoolInfer([]string{"canon", "eos"}, []string{"nikon", "d3200"}))

	require.Equal(t, same, s.ScoreText("Canon EOS", "eos, CANON"))
}

func TestNewShapeMismatch(t *testing.T) {
	_, err := New(logreg.New(3, 0.1, 1), features.NewVectorizer(vocabulary(), features.TFIDF), nil)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, logreg.DefaultFileName)
	vocabPath := filepath.Join(dir, "vocabulary.tsv")

	m := logreg.New(4, 0.001, logreg.DefaultSeed)
	require.NoError(t, m.SaveFile(modelPath, features.TFIDF))
	require.NoError(t, vocabulary().SaveFile(vocabPath))

	s, err := Load(modelPath, vocabPath, nil)
	require.NoError(t, err)
	p := s.Score([]string{"canon"}, []string{"nikon"})
	require.Greater(t, p, 0.0)
	require.Less(t, p, 1.0)

	_, err = Load(filepath.Join(dir, "missing.csv"), vocabPath, nil)
	require.Error(t, err)
	_, err = Load(modelPath, filepath.Join(dir, "missing.tsv"), nil)
	require.Error(t, err)
}
