package platform

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

var (
	_ Adapter = scheduledAdapter{}
	_ Thread  = (*scheduledThread)(nil)
	_ Mutex   = (*scheduledMutex)(nil)
)

type scheduledAdapter struct{}

func (scheduledAdapter) Kind() Kind { return Scheduled }

// Spawn runs entry in a goroutine tracked by an errgroup.Group. The group is
// fully set up before Go is called.
func (scheduledAdapter) Spawn(entry func()) (Thread, error) {
	t := &scheduledThread{}
	t.g.Go(func() error {
		entry()
		return nil
	})
	return t, nil
}

func (scheduledAdapter) NewMutex() (Mutex, error) {
	return &scheduledMutex{sem: semaphore.NewWeighted(1)}, nil
}

type scheduledThread struct {
	g errgroup.Group
}

func (t *scheduledThread) Wait() error {
	if err := t.g.Wait(); err != nil {
		return fmt.Errorf("waiting for goroutine: %w", err)
	}
	return nil
}

func (t *scheduledThread) Close() error { return nil }

// NativeID reports false: a goroutine may move between OS threads.
func (t *scheduledThread) NativeID() (uint64, bool) { return 0, false }

// scheduledMutex is a weighted semaphore of size one. Unlike sync.Mutex it has
// no owner, so a second Lock from the holder blocks like any other waiter.
type scheduledMutex struct {
	sem *semaphore.Weighted
}

func (m *scheduledMutex) Lock() {
	// Acquire only fails when its context is done; Background never is.
	if err := m.sem.Acquire(context.Background(), 1); err != nil {
		panic(fmt.Sprintf("stdthread: scheduled mutex acquire: %v", err))
	}
}

// Unlock panics if the mutex is not held.
func (m *scheduledMutex) Unlock() { m.sem.Release(1) }

func (m *scheduledMutex) Close() error { return nil }
