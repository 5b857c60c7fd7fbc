package parallel

import "fmt"
import "sync"

import "github.com/pkg/errors"
import "go.uber.org/atomic"
import "go.uber.org/multierr"

// ErrSchedulerClosed is returned for work handed to a closed scheduler.
var ErrSchedulerClosed = errors.New("scheduler closed")

// Job is one unit of work created by a Scheduler.
type Job struct {
	id uint64
	fn func() error
}

// ID is unique per scheduler
func (j *Job) ID() uint64 {
	return j.id
}

// Scheduler runs submitted jobs on a fixed set of worker goroutines.
//
// Submit only queues a job. ExecuteAll hands every queued job to the
// workers, and WaitAll blocks until all of them have finished: together
// they form a scatter/gather barrier whose shape does not depend on the
// number of workers. The order in which jobs complete is unspecified.
type Scheduler struct {
	size  int
	queue chan *Job

	workers     sync.WaitGroup
	outstanding sync.WaitGroup

	// feed is held for reading while jobs are sent to the queue and for
	// writing while the queue is closed.
	feed sync.RWMutex

	mu      sync.Mutex
	pending []*Job
	errs    error
	closed  bool

	nextID   atomic.Uint64
	executed atomic.Uint64
}

// NewScheduler starts workers goroutines; zero or less means DefaultWorkers.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	s := &Scheduler{
		size:  workers,
		queue: make(chan *Job, workers),
	}
	s.workers.Add(workers)
	for i := 0; i < workers; i++ {
		go s.work()
	}
	return s
}

// Workers is the number of worker goroutines.
func (s *Scheduler) Workers() int {
	return s.size
}

// Executed counts jobs run since the scheduler started.
func (s *Scheduler) Executed() uint64 {
	return s.executed.Load()
}

// CreateJob wraps fn. The job does nothing until submitted and executed.
func (s *Scheduler) CreateJob(fn func() error) *Job {
	return &Job{id: s.nextID.Inc(), fn: fn}
}

// Submit queues j without running it. It never blocks on the workers.
func (s *Scheduler) Submit(j *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.WithStack(ErrSchedulerClosed)
	}
	s.pending = append(s.pending, j)
	s.outstanding.Add(1)
	return nil
}

// ExecuteAll hands every queued job to the workers.
func (s *Scheduler) ExecuteAll() {
	s.feed.RLock()
	defer s.feed.RUnlock()

	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	for _, j := range batch {
		s.queue <- j
	}
}

// WaitAll blocks until every submitted job finished and returns the errors
// of the failed ones since the previous WaitAll. Jobs still queued are
// executed first.
func (s *Scheduler) WaitAll() error {
	s.mu.Lock()
	queued := len(s.pending) > 0
	s.mu.Unlock()
	if queued {
		s.ExecuteAll()
	}

	s.outstanding.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.errs
	s.errs = nil
	return err
}

// Close stops the workers after the jobs already handed to them. Jobs that
// were submitted but never executed are dropped and reported by WaitAll.
func (s *Scheduler) Close() {
	s.feed.Lock()
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.feed.Unlock()
		return
	}
	s.closed = true
	if n := len(s.pending); n > 0 {
		s.errs = multierr.Append(s.errs, errors.Wrapf(ErrSchedulerClosed, "%d jobs dropped", n))
		for range s.pending {
			s.outstanding.Done()
		}
		s.pending = nil
	}
	s.mu.Unlock()
	close(s.queue)
	s.feed.Unlock()

	s.workers.Wait()
}

func (s *Scheduler) work() {
	defer s.workers.Done()
	for j := range s.queue {
		s.run(j)
	}
}

func (s *Scheduler) run(j *Job) {
	defer s.outstanding.Done()
	defer s.executed.Inc()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.New(fmt.Sprint("panic: ", r))
			}
		}()
		return j.fn()
	}()
	if err == nil {
		return
	}
	s.mu.Lock()
	s.errs = multierr.Append(s.errs, errors.Wrapf(err, "job %d", j.id))
	s.mu.Unlock()
}
