package core

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// TestLockMutualExclusion runs the counter workload: eight threads, each
// incrementing a shared counter 10,000 times under one lock.
func TestLockMutualExclusion(t *testing.T) {
	t.Parallel()

	const (
		workers    = 8
		increments = 10_000
	)

	for name, cfg := range allPlatforms() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rt := NewRuntime(cfg)
			lock, err := rt.CreateLock()
			if err != nil {
				t.Fatalf("CreateLock error: %v", err)
			}
			defer lock.Destroy()

			counter := 0
			threads := make([]*Thread, 0, workers)
			for range workers {
				th, err := rt.CreateThread(func(any) {
					for range increments {
						lock.Acquire()
						counter++
						lock.Release()
					}
				}, nil)
				if err != nil {
					t.Fatalf("CreateThread error: %v", err)
				}
				threads = append(threads, th)
			}

			for _, th := range threads {
				if err := th.Join(); err != nil {
					t.Fatalf("Join error: %v", err)
				}
				if err := th.Destroy(); err != nil {
					t.Fatalf("Destroy error: %v", err)
				}
			}

			if counter != workers*increments {
				t.Errorf("counter = %d, want %d", counter, workers*increments)
			}
		})
	}
}

// TestLockBlocksSecondAcquirer verifies a held lock keeps a second thread in
// Acquire until the holder releases.
func TestLockBlocksSecondAcquirer(t *testing.T) {
	t.Parallel()

	for name, cfg := range allPlatforms() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rt := NewRuntime(cfg)
			lock, err := rt.CreateLock()
			if err != nil {
				t.Fatalf("CreateLock error: %v", err)
			}
			defer lock.Destroy()

			var flag atomic.Bool
			var sawUnset atomic.Bool
			held := make(chan struct{})

			holder, err := rt.CreateThread(func(any) {
				lock.Acquire()
				close(held)
				time.Sleep(50 * time.Millisecond)
				flag.Store(true)
				lock.Release()
			}, nil)
			if err != nil {
				t.Fatalf("CreateThread(holder) error: %v", err)
			}

			<-held
			waiter, err := rt.CreateThread(func(any) {
				lock.Acquire()
				if !flag.Load() {
					sawUnset.Store(true)
				}
				lock.Release()
			}, nil)
			if err != nil {
				t.Fatalf("CreateThread(waiter) error: %v", err)
			}

			for _, th := range []*Thread{holder, waiter} {
				if err := th.Join(); err != nil {
					t.Fatalf("Join error: %v", err)
				}
				if err := th.Destroy(); err != nil {
					t.Fatalf("Destroy error: %v", err)
				}
			}

			if sawUnset.Load() {
				t.Error("second acquirer got the lock before the holder released it")
			}
		})
	}
}

func TestCreateLockAllocationFailure(t *testing.T) {
	t.Parallel()

	rt, _, locks := newTrackedRuntime(newFakeAdapter(t))
	locks.fail = true

	lock, err := rt.CreateLock()
	if lock != nil {
		t.Errorf("CreateLock returned handle %v on allocation failure", lock)
	}
	if !errors.Is(err, ErrAllocation) || !errors.Is(err, errFromAllocator) {
		t.Fatalf("error = %v, want ErrAllocation wrapping the allocator error", err)
	}
	if got := rt.Stats().Locks; got != 0 {
		t.Errorf("Stats().Locks = %d, want 0", got)
	}
}

func TestCreateLockPlatformFailureFreesBlock(t *testing.T) {
	t.Parallel()

	adapter := newFakeAdapter(t)
	adapter.mutexErr = errFromPlatform
	rt, _, locks := newTrackedRuntime(adapter)

	lock, err := rt.CreateLock()
	if lock != nil {
		t.Errorf("CreateLock returned handle %v on platform failure", lock)
	}
	if !errors.Is(err, ErrPlatformCreate) || !errors.Is(err, errFromPlatform) {
		t.Fatalf("error = %v, want ErrPlatformCreate wrapping the platform error", err)
	}
	if allocated, freed := locks.counts(); allocated != 1 || freed != 1 {
		t.Errorf("allocated=%d freed=%d, want 1 and 1", allocated, freed)
	}
}

func TestCreateLockCapacity(t *testing.T) {
	t.Parallel()

	rt := NewRuntime(Config{MaxLocks: 1})

	first, err := rt.CreateLock()
	if err != nil {
		t.Fatalf("first CreateLock error: %v", err)
	}
	if _, err := rt.CreateLock(); !errors.Is(err, ErrAllocation) {
		t.Fatalf("second CreateLock error = %v, want ErrAllocation", err)
	}

	first.Destroy()
	if got := rt.Stats().Locks; got != 0 {
		t.Fatalf("Stats().Locks = %d after destroy, want 0", got)
	}

	second, err := rt.CreateLock()
	if err != nil {
		t.Fatalf("CreateLock after Destroy error: %v", err)
	}
	second.Destroy()
}

func TestLockDestroyFreesBlockOnce(t *testing.T) {
	t.Parallel()

	rt, _, locks := newTrackedRuntime(newFakeAdapter(t))

	lock, err := rt.CreateLock()
	if err != nil {
		t.Fatalf("CreateLock error: %v", err)
	}
	lock.Acquire()
	lock.Release()
	lock.Destroy()

	if allocated, freed := locks.counts(); allocated != 1 || freed != 1 {
		t.Errorf("allocated=%d freed=%d, want 1 and 1", allocated, freed)
	}
}
