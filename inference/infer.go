// Package inference scores pairs of spec documents with a trained model.
package inference

import "github.com/pkg/errors"

import "github.com/neurlang/specmatch/features"
import "github.com/neurlang/specmatch/logreg"

// Threshold is the probability at which a pair is called a match.
const Threshold = 0.5

// Model predicts match probabilities for pair vectors.
type Model interface {
	Features() int
	Predict(rows [][]float64) []float64
}

// Scorer pairs a model with the vectorizer it was trained with.
type Scorer struct {
	model      Model
	vectorizer *features.Vectorizer
	stop       features.StopWords
}

// New checks that model and vectorizer agree on the feature count.
func New(model Model, vectorizer *features.Vectorizer, stop features.StopWords) (*Scorer, error) {
	if model.Features() != vectorizer.Size() {
		return nil, errors.Errorf("model has %d features, vocabulary %d", model.Features(), vectorizer.Size())
	}
	return &Scorer{model: model, vectorizer: vectorizer, stop: stop}, nil
}

// Load reads a model and its vocabulary as written by training.
func Load(modelPath, vocabularyPath string, stop features.StopWords) (*Scorer, error) {
	m, rep, err := logreg.LoadFile(modelPath)
	if err != nil {
		return nil, errors.Wrap(err, "load model")
	}
	vocab, err := features.LoadVocabularyFile(vocabularyPath)
	if err != nil {
		return nil, errors.Wrap(err, "load vocabulary")
	}
	return New(m, features.NewVectorizer(vocab, rep), stop)
}

// Score is the match probability of two tokenized documents.
func (s *Scorer) Score(a, b []string) float64 {
	x := make([]float64, s.vectorizer.Size())
	s.vectorizer.Pair(a, b, x)
	return s.model.Predict([][]float64{x})[0]
}

// ScoreText tokenizes both texts and scores them.
func (s *Scorer) ScoreText(a, b string) float64 {
	return s.Score(features.Tokenize(a, s.stop), features.Tokenize(b, s.stop))
}

// BoolInfer reports whether two tokenized documents describe the same entity.
func (s *Scorer) BoolInfer(a, b []string) bool {
	return s.Score(a, b) >= Threshold
}
