package trainer

import "fmt"
import "math"
import "time"

import "github.com/pkg/errors"
import "go.uber.org/atomic"
import "go.uber.org/zap"

import "github.com/neurlang/specmatch/logreg"
import "github.com/neurlang/specmatch/metrics"
import "github.com/neurlang/specmatch/parallel"

var (
	// ErrBatchAborted means a gradient job did not complete; the model was
	// not updated.
	ErrBatchAborted = errors.New("batch aborted")
	// ErrShape means a batch does not fit the model.
	ErrShape = errors.New("batch shape mismatch")
)

// Pool runs the gradient jobs of a batch. parallel.Scheduler implements it.
type Pool interface {
	CreateJob(fn func() error) *parallel.Job
	Submit(j *parallel.Job) error
	ExecuteAll()
	WaitAll() error
}

// Batch is a feature matrix with one label per row.
type Batch struct {
	X [][]float64
	Y []bool
}

// BatchResult reports one update.
type BatchResult struct {
	// MaxDelta is the largest absolute change applied to a weight.
	MaxDelta float64
	// Loss is the mean clamped log loss of the batch before the update.
	Loss float64
}

// Engine owns the model during training.
type Engine struct {
	model   *logreg.Model
	pool    Pool
	mode    Mode
	logger  *zap.Logger
	metrics *metrics.Training
	observe func(State)

	state atomic.Int32
}

// Option configures an Engine.
type Option func(*Engine)

// WithMode selects how batch deltas are combined.
func WithMode(m Mode) Option {
	return func(e *Engine) { e.mode = m }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithMetrics(m *metrics.Training) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithObserver calls fn on every state transition.
func WithObserver(fn func(State)) Option {
	return func(e *Engine) { e.observe = fn }
}

// NewEngine trains model using pool for the gradient jobs.
func NewEngine(model *logreg.Model, pool Pool, opts ...Option) *Engine {
	e := &Engine{
		model:  model,
		pool:   pool,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the model being trained.
func (e *Engine) Model() *logreg.Model {
	return e.model
}

// State is the current phase.
func (e *Engine) State() State {
	return State(e.state.Load())
}

func (e *Engine) setState(s State) {
	e.state.Store(int32(s))
	if e.observe != nil {
		e.observe(s)
	}
}

func (e *Engine) check(b Batch) error {
	if len(b.X) != len(b.Y) {
		return errors.Wrapf(ErrShape, "%d rows, %d labels", len(b.X), len(b.Y))
	}
	for i, x := range b.X {
		if len(x) != e.model.Features() {
			return errors.Wrapf(ErrShape, "row %d has %d features, model %d", i, len(x), e.model.Features())
		}
	}
	return nil
}

// TrainBatch applies one gradient descent step for the batch. An empty batch
// leaves the model alone.
func (e *Engine) TrainBatch(b Batch) (BatchResult, error) {
	if err := e.check(b); err != nil {
		return BatchResult{}, err
	}
	if len(b.X) == 0 {
		return BatchResult{}, nil
	}
	defer e.setState(Idle)

	e.setState(Predicting)
	predictions := e.model.Predict(b.X)
	loss := logreg.LogLoss(predictions, b.Y)

	e.setState(Dispatching)
	acc := NewAccumulator(e.model.Features() + 1)
	learningRate := e.model.LearningRate
	for i := range b.X {
		i := i
		job := e.pool.CreateJob(func() error {
			accumulate(acc, learningRate, b, predictions, i)
			return nil
		})
		if err := e.pool.Submit(job); err != nil {
			// drain what was already submitted before giving up the accumulator
			e.pool.ExecuteAll()
			_ = e.pool.WaitAll()
			return BatchResult{}, fmt.Errorf("%w: submit example %d: %w", ErrBatchAborted, i, err)
		}
	}
	if e.metrics != nil {
		e.metrics.Jobs.Add(float64(len(b.X)))
	}

	e.setState(AwaitingBarrier)
	start := time.Now()
	e.pool.ExecuteAll()
	if err := e.pool.WaitAll(); err != nil {
		return BatchResult{}, fmt.Errorf("%w: %w", ErrBatchAborted, err)
	}
	if e.metrics != nil {
		e.metrics.Barrier.Observe(time.Since(start).Seconds())
	}

	e.setState(Updating)
	maxDelta := e.update(acc, len(b.X))

	if e.metrics != nil {
		e.metrics.Batches.Inc()
		e.metrics.MaxDelta.Set(maxDelta)
		e.metrics.Loss.Set(loss)
	}
	return BatchResult{MaxDelta: maxDelta, Loss: loss}, nil
}

func (e *Engine) update(acc Accumulator, examples int) float64 {
	scale := 1.0
	if e.mode == ModeMean {
		scale = 1 / float64(examples)
	}
	var maxDelta float64
	weights := e.model.Weights
	for j := range weights {
		d := acc.Load(j) * scale
		if math.Abs(d) > maxDelta {
			maxDelta = math.Abs(d)
		}
		weights[j] -= d
	}
	e.model.Bias -= acc.Load(len(weights)) * scale
	return maxDelta
}
