package trainer

import "go.uber.org/atomic"

// Accumulator sums gradient contributions of one batch. The last slot holds
// the bias. Every addition is a single atomic add on one slot, so workers
// touching different slots never wait for each other.
type Accumulator []atomic.Float64

// NewAccumulator returns n zeroed slots
func NewAccumulator(n int) Accumulator {
	return make(Accumulator, n)
}

func (a Accumulator) Add(j int, v float64) {
	a[j].Add(v)
}

func (a Accumulator) Load(j int) float64 {
	return a[j].Load()
}

// Values copies the slots out.
func (a Accumulator) Values() []float64 {
	out := make([]float64, len(a))
	for j := range a {
		out[j] = a[j].Load()
	}
	return out
}

func target(label bool) float64 {
	if label {
		return 1
	}
	return 0
}

// accumulate adds the contribution of example i to acc. It reads the batch
// and predictions only.
func accumulate(acc Accumulator, learningRate float64, b Batch, predictions []float64, i int) {
	delta := learningRate * (predictions[i] - target(b.Y[i]))
	x := b.X[i]
	for j, v := range x {
		// adding a zero contribution leaves the slot unchanged
		if v == 0 {
			continue
		}
		acc.Add(j, delta*v)
	}
	acc.Add(len(x), delta)
}
