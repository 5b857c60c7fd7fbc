package trainer

import "context"
import "time"

import "github.com/pkg/errors"
import "go.uber.org/multierr"
import "go.uber.org/zap"

import "github.com/neurlang/specmatch/datasets"
import "github.com/neurlang/specmatch/parallel"

// Examples is an indexed training set.
type Examples interface {
	Len() int
	Features() int
	// Example writes row i into x and returns its label. It must be safe
	// for concurrent use.
	Example(i int, x []float64) (bool, error)
}

// Schedule drives Run.
type Schedule struct {
	Epochs    int
	BatchSize int
	// Workers bounds the goroutines building batch rows.
	Workers int
	// Sampler draws example indexes over [0, Len) without replacement. It is
	// reset after every epoch.
	Sampler datasets.Sampler
}

// EpochStats summarizes one epoch.
type EpochStats struct {
	Epoch    int
	Batches  int
	MaxDelta float64
	Loss     float64
	Duration time.Duration
}

// Run trains for sch.Epochs epochs of ⌊Len/BatchSize⌋ batches each. The
// context is only consulted between batches; a started batch always
// finishes.
func (e *Engine) Run(ctx context.Context, ex Examples, sch Schedule) ([]EpochStats, error) {
	if sch.BatchSize <= 0 {
		return nil, errors.Errorf("batch size %d", sch.BatchSize)
	}
	if ex.Features() != e.model.Features() {
		return nil, errors.Wrapf(ErrShape, "examples have %d features, model %d", ex.Features(), e.model.Features())
	}
	batches := ex.Len() / sch.BatchSize
	if batches == 0 {
		e.logger.Warn("training set smaller than one batch, nothing to train",
			zap.Int("examples", ex.Len()), zap.Int("batchSize", sch.BatchSize))
	}

	rows := make([][]float64, sch.BatchSize)
	for i := range rows {
		rows[i] = make([]float64, ex.Features())
	}
	labels := make([]bool, sch.BatchSize)
	index := make([]int, sch.BatchSize)
	errs := make([]error, sch.BatchSize)

	var stats []EpochStats
	for epoch := 1; epoch <= sch.Epochs; epoch++ {
		start := time.Now()
		st := EpochStats{Epoch: epoch}
		for b := 0; b < batches; b++ {
			if err := ctx.Err(); err != nil {
				return stats, errors.WithStack(err)
			}
			for i := range index {
				x, err := sch.Sampler.Draw()
				if err != nil {
					return stats, errors.Wrapf(err, "epoch %d batch %d", epoch, b)
				}
				index[i] = x
			}
			parallel.ForEach(sch.BatchSize, sch.Workers, func(i int) {
				labels[i], errs[i] = ex.Example(index[i], rows[i])
			})
			if err := multierr.Combine(errs...); err != nil {
				return stats, errors.Wrapf(err, "epoch %d batch %d", epoch, b)
			}

			res, err := e.TrainBatch(Batch{X: rows, Y: labels})
			if err != nil {
				return stats, errors.Wrapf(err, "epoch %d batch %d", epoch, b)
			}
			st.Batches++
			st.Loss += res.Loss
			if res.MaxDelta > st.MaxDelta {
				st.MaxDelta = res.MaxDelta
			}
		}
		sch.Sampler.Reset()

		if st.Batches > 0 {
			st.Loss /= float64(st.Batches)
		}
		st.Duration = time.Since(start)
		stats = append(stats, st)
		if e.metrics != nil {
			e.metrics.Epoch.Set(float64(epoch))
		}
		e.logger.Info("epoch done",
			zap.Int("epoch", epoch),
			zap.Int("batches", st.Batches),
			zap.Float64("maxDelta", st.MaxDelta),
			zap.Float64("loss", st.Loss),
			zap.Duration("took", st.Duration))
	}
	return stats, nil
}
