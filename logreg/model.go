// Package logreg implements the logistic regression model deciding whether
// two specs describe the same entity.
package logreg

import "math"
import "math/rand"

import "gonum.org/v1/gonum/floats"

// DefaultSeed makes weight initialization reproducible across runs.
const DefaultSeed = 12345

// Epsilon keeps probabilities away from 0 and 1 before taking logarithms.
const Epsilon = 1e-7

// Model is the parameter vector of the classifier.
type Model struct {
	Weights      []float64
	Bias         float64
	LearningRate float64
}

// New draws every weight and then the bias uniformly from [0, 1) using seed.
func New(features int, learningRate float64, seed int64) *Model {
	rng := rand.New(rand.NewSource(seed))
	m := &Model{
		Weights:      make([]float64, features),
		LearningRate: learningRate,
	}
	for i := range m.Weights {
		m.Weights[i] = rng.Float64()
	}
	m.Bias = rng.Float64()
	return m
}

// Features is the weight vector length
func (m *Model) Features() int {
	return len(m.Weights)
}

// Clone returns a deep copy.
func (m *Model) Clone() *Model {
	out := *m
	out.Weights = append([]float64(nil), m.Weights...)
	return &out
}

// Sigmoid is 1 / (1 + e^-z).
func Sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// PredictOne is sigmoid(weights·x + bias). x must have the same length as weights.
func PredictOne(weights []float64, bias float64, x []float64) float64 {
	return Sigmoid(floats.Dot(weights, x) + bias)
}

// Predict applies PredictOne row by row.
func (m *Model) Predict(rows [][]float64) []float64 {
	out := make([]float64, len(rows))
	for i, x := range rows {
		out[i] = PredictOne(m.Weights, m.Bias, x)
	}
	return out
}

// Loss is the cross entropy of a single prediction. It is infinite at
// p == 0 or p == 1 for the wrong label; use Clamp first when reporting.
func Loss(p float64, label bool) float64 {
	if label {
		return -math.Log(p)
	}
	return -math.Log(1 - p)
}

// Clamp moves p into [Epsilon, 1-Epsilon].
func Clamp(p float64) float64 {
	if p < Epsilon {
		return Epsilon
	}
	if p > 1-Epsilon {
		return 1 - Epsilon
	}
	return p
}

// LogLoss is the mean clamped loss over a batch.
func LogLoss(ps []float64, labels []bool) float64 {
	if len(ps) == 0 {
		return 0
	}
	var sum float64
	for i, p := range ps {
		sum += Loss(Clamp(p), labels[i])
	}
	return sum / float64(len(ps))
}
