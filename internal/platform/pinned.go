package platform

import (
	"runtime"
	"sync"
)

var (
	_ Adapter = pinnedAdapter{}
	_ Thread  = (*pinnedThread)(nil)
	_ Mutex   = (*pinnedMutex)(nil)
)

type pinnedAdapter struct{}

func (pinnedAdapter) Kind() Kind { return Pinned }

// Spawn locks a fresh goroutine to its OS thread and never unlocks it, so the
// Go runtime retires that OS thread once entry returns instead of handing it
// back to the scheduler.
//
// Spawn waits for the new thread to report its native id before returning.
// The id travels over a channel, so the creator never writes a field the
// thread reads.
func (pinnedAdapter) Spawn(entry func()) (Thread, error) {
	done := make(chan struct{})
	started := make(chan threadID, 1)

	go func() {
		runtime.LockOSThread()
		defer close(done)

		id, ok := currentThreadID()
		started <- threadID{id: id, ok: ok}

		entry()
	}()

	tid := <-started
	return &pinnedThread{done: done, tid: tid}, nil
}

func (pinnedAdapter) NewMutex() (Mutex, error) {
	return &pinnedMutex{}, nil
}

type threadID struct {
	id uint64
	ok bool
}

type pinnedThread struct {
	done chan struct{}
	tid  threadID
}

func (t *pinnedThread) Wait() error {
	<-t.done
	return nil
}

// Close is a no-op: the OS thread is released by the Go runtime when the
// locked goroutine exits.
func (t *pinnedThread) Close() error { return nil }

func (t *pinnedThread) NativeID() (uint64, bool) { return t.tid.id, t.tid.ok }

type pinnedMutex struct {
	mu sync.Mutex
}

func (m *pinnedMutex) Lock()        { m.mu.Lock() }
func (m *pinnedMutex) Unlock()      { m.mu.Unlock() }
func (m *pinnedMutex) Close() error { return nil }
