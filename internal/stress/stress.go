package stress

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/stdthread"
)

// Default workload sizes, matching the eight-thread, 10,000-increment
// counter check.
const (
	DefaultWorkers    = 8
	DefaultIterations = 10_000
	DefaultRounds     = 1
)

// probeHold is how long the blocking probe's holder keeps the lock before
// setting its flag.
const probeHold = 10 * time.Millisecond

// Params configures a stress run.
type Params struct {
	Platform   stdthread.Platform
	Workers    int
	Iterations int
	Rounds     int

	// Parallelism bounds how many rounds run at once. 0 runs every round
	// concurrently.
	Parallelism int
}

// Validate reports every invalid field at once.
func (p Params) Validate() error {
	var errs []error

	if !p.Platform.IsValid() {
		errs = append(errs, fmt.Errorf("invalid platform: %v", p.Platform))
	}
	if p.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be greater than 0, got %d", p.Workers))
	}
	if p.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("iterations must be greater than 0, got %d", p.Iterations))
	}
	if p.Rounds <= 0 {
		errs = append(errs, fmt.Errorf("rounds must be greater than 0, got %d", p.Rounds))
	}
	if p.Parallelism < 0 {
		errs = append(errs, fmt.Errorf("parallelism must not be negative, got %d", p.Parallelism))
	}

	return errors.Join(errs...)
}

// Round is the outcome of one round.
type Round struct {
	Index    int
	Counter  int
	Expected int

	// Blocked is false when the blocking probe's second acquirer entered
	// the critical section before the holder released.
	Blocked  bool
	Duration time.Duration
}

// Passed reports whether the counter matched and the probe blocked.
func (r Round) Passed() bool {
	return r.Counter == r.Expected && r.Blocked
}

// Result is the outcome of a stress run.
type Result struct {
	ID         string
	Platform   stdthread.Platform
	Workers    int
	Iterations int
	StartedAt  time.Time
	Duration   time.Duration
	Rounds     []Round
}

// Failures returns the number of rounds that did not pass.
func (r Result) Failures() int {
	n := 0
	for _, round := range r.Rounds {
		if !round.Passed() {
			n++
		}
	}
	return n
}

// Passed reports whether every round passed.
func (r Result) Passed() bool {
	return r.Failures() == 0
}

// Run executes p.Rounds rounds and returns their results in round order.
//
// Threads cannot be canceled, so ctx is only consulted before each round
// starts; a round already running always completes.
func Run(ctx context.Context, p Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid stress params: %w", err)
	}

	res := Result{
		ID:         uuid.NewString(),
		Platform:   p.Platform,
		Workers:    p.Workers,
		Iterations: p.Iterations,
		StartedAt:  time.Now(),
		Rounds:     make([]Round, p.Rounds),
	}

	g, gctx := errgroup.WithContext(ctx)
	if p.Parallelism > 0 {
		g.SetLimit(p.Parallelism)
	}

	for i := range p.Rounds {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("round %d not started: %w", i, err)
			}
			round, err := runRound(p, i)
			if err != nil {
				return fmt.Errorf("round %d: %w", i, err)
			}
			res.Rounds[i] = round
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	res.Duration = time.Since(res.StartedAt)

	return res, nil
}

// runRound builds a fresh Runtime sized for one round and runs both
// workloads on it.
func runRound(p Params, index int) (Round, error) {
	rt := stdthread.New(
		stdthread.WithPlatform(p.Platform),
		stdthread.WithMaxThreads(max(p.Workers, 2)),
		stdthread.WithMaxLocks(2),
	)

	start := time.Now()

	counter, err := countUnderLock(rt, p.Workers, p.Iterations)
	if err != nil {
		return Round{}, err
	}

	blocked, err := probeBlocking(rt)
	if err != nil {
		return Round{}, err
	}

	return Round{
		Index:    index,
		Counter:  counter,
		Expected: p.Workers * p.Iterations,
		Blocked:  blocked,
		Duration: time.Since(start),
	}, nil
}

// countUnderLock starts workers threads that each increment one shared
// counter iterations times inside Acquire/Release, joins them, and returns
// the final count.
func countUnderLock(rt stdthread.Runtime, workers, iterations int) (int, error) {
	lock, err := rt.CreateLock()
	if err != nil {
		return 0, fmt.Errorf("creating counter lock: %w", err)
	}
	defer lock.Destroy()

	counter := 0
	threads := make([]stdthread.Thread, 0, workers)
	for range workers {
		th, err := rt.CreateThread(func(any) {
			for range iterations {
				lock.Acquire()
				counter++
				lock.Release()
			}
		}, nil)
		if err != nil {
			return 0, errors.Join(fmt.Errorf("creating counter thread: %w", err), joinAll(threads))
		}
		threads = append(threads, th)
	}

	if err := joinAll(threads); err != nil {
		return 0, err
	}
	return counter, nil
}

// joinAll joins and destroys every thread, even after a failure, and
// returns all errors encountered.
func joinAll(threads []stdthread.Thread) error {
	var errs []error
	for _, th := range threads {
		if err := th.Join(); err != nil {
			errs = append(errs, fmt.Errorf("joining thread %d: %w", th.ID(), err))
		}
		if err := th.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("destroying thread %d: %w", th.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// probeBlocking has one thread hold the lock for probeHold before setting a
// flag, while a second thread acquires the same lock and records whether it
// saw the flag unset. It returns true when the second thread was blocked.
func probeBlocking(rt stdthread.Runtime) (bool, error) {
	lock, err := rt.CreateLock()
	if err != nil {
		return false, fmt.Errorf("creating probe lock: %w", err)
	}
	defer lock.Destroy()

	var flag, sawUnset atomic.Bool
	held := make(chan struct{})

	holder, err := rt.CreateThread(func(any) {
		lock.Acquire()
		close(held)
		time.Sleep(probeHold)
		flag.Store(true)
		lock.Release()
	}, nil)
	if err != nil {
		return false, fmt.Errorf("creating probe holder: %w", err)
	}
	<-held

	waiter, err := rt.CreateThread(func(any) {
		lock.Acquire()
		sawUnset.Store(!flag.Load())
		lock.Release()
	}, nil)
	if err != nil {
		return false, errors.Join(fmt.Errorf("creating probe waiter: %w", err), joinAll([]stdthread.Thread{holder}))
	}

	if err := joinAll([]stdthread.Thread{holder, waiter}); err != nil {
		return false, err
	}

	return !sawUnset.Load(), nil
}
