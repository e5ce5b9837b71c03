package core

import (
	"fmt"
	"sync/atomic"

	"github.com/giantswarm/stdthread/internal/platform"
)

// Routine is the function a thread runs. arg is passed through untouched;
// whatever it references is owned by the caller and must stay valid until
// the routine returns.
type Routine func(arg any)

// ThreadState is the lifecycle position of a Thread.
type ThreadState uint32

const (
	// ThreadCreated is the state of a control block whose thread has not
	// been spawned yet. CreateThread never returns a Thread in this state.
	ThreadCreated ThreadState = iota

	// ThreadRunning means the thread was spawned and has not been joined.
	// The routine itself may already have returned.
	ThreadRunning

	// ThreadJoined means Join observed the routine return.
	ThreadJoined

	// ThreadDestroyed is terminal. The handle must not be used again.
	ThreadDestroyed
)

// String returns the name of the state.
func (s ThreadState) String() string {
	switch s {
	case ThreadCreated:
		return "created"
	case ThreadRunning:
		return "running"
	case ThreadJoined:
		return "joined"
	case ThreadDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("ThreadState(%d)", uint32(s))
	}
}

// Thread is the control block behind a spawned routine.
//
// Join and Destroy each follow the native contract they stand in for:
// joining twice, joining concurrently from two goroutines, and destroying
// twice are undefined. This implementation happens to report ErrPlatformJoin
// or ErrPlatformOperation for some of these, but callers must not rely on it.
type Thread struct {
	id     uint64
	block  Block
	native platform.Thread
	state  atomic.Uint32 // ThreadState
}

// CreateThread reserves a thread control block and starts routine(arg) on a
// new thread of the Runtime's platform.
//
// The trampoline handed to the adapter captures routine and arg by value at
// spawn time. Nothing the creator stores on the Thread afterwards is read by
// the new thread.
//
// On failure no Thread is returned and the control block, if one was
// reserved, has already been freed:
//   - ErrPlatformCreate and ErrNilRoutine when routine is nil
//   - ErrAllocation when no control block is available
//   - ErrPlatformCreate when the adapter fails to spawn
func (r *Runtime) CreateThread(routine Routine, arg any) (*Thread, error) {
	if routine == nil {
		return nil, fmt.Errorf("%w: %w", ErrPlatformCreate, ErrNilRoutine)
	}

	block, err := r.threads.Allocate()
	if err != nil {
		return nil, fmt.Errorf("%w: thread: %w", ErrAllocation, err)
	}

	spawned := false
	defer func() {
		if !spawned {
			block.Free()
		}
	}()

	t := &Thread{id: block.ID(), block: block}

	native, err := r.adapter.Spawn(func() { routine(arg) })
	if err != nil {
		return nil, fmt.Errorf("%w: thread %d on %s: %w", ErrPlatformCreate, t.id, r.adapter.Kind(), err)
	}
	spawned = true

	t.native = native
	t.state.Store(uint32(ThreadRunning))

	log := Logger().With("thread", t.id, "platform", r.adapter.Kind().String())
	if tid, ok := native.NativeID(); ok {
		log = log.With("tid", tid)
	}
	log.Debug("thread created")

	return t, nil
}

// ID returns the identifier the control-block table assigned to the thread.
func (t *Thread) ID() uint64 {
	return t.id
}

// NativeID returns the OS thread id the routine runs on, when the platform
// can report one.
func (t *Thread) NativeID() (uint64, bool) {
	return t.native.NativeID()
}

// State returns the current lifecycle state.
func (t *Thread) State() ThreadState {
	return ThreadState(t.state.Load())
}

// Join blocks until the routine has returned. Every write the routine made
// is visible to the caller once Join returns nil. Join cannot be canceled
// and has no timeout.
func (t *Thread) Join() error {
	if t == nil {
		return fmt.Errorf("%w: nil thread", ErrPlatformJoin)
	}
	if t.State() == ThreadDestroyed {
		return fmt.Errorf("%w: thread %d is destroyed", ErrPlatformJoin, t.id)
	}

	if err := t.native.Wait(); err != nil {
		return fmt.Errorf("%w: thread %d: %w", ErrPlatformJoin, t.id, err)
	}

	t.state.CompareAndSwap(uint32(ThreadRunning), uint32(ThreadJoined))
	Logger().Debug("thread joined", "thread", t.id)
	return nil
}

// Destroy releases the platform resource and the control block. The handle
// is invalid afterwards.
//
// Join should come first. Destroying a running thread detaches it: the
// routine keeps running to completion but can no longer be joined.
//
// The control block is freed even when the platform fails to release the
// thread; that failure is still reported as ErrPlatformOperation.
func (t *Thread) Destroy() error {
	if t == nil {
		return fmt.Errorf("%w: nil thread", ErrPlatformOperation)
	}

	prev := ThreadState(t.state.Swap(uint32(ThreadDestroyed)))
	if prev == ThreadDestroyed {
		return fmt.Errorf("%w: thread %d is already destroyed", ErrPlatformOperation, t.id)
	}
	defer t.block.Free()

	if prev == ThreadRunning {
		Logger().Debug("destroying thread that was not joined", "thread", t.id)
	}

	if err := t.native.Close(); err != nil {
		Logger().Warn("failed to release thread", "thread", t.id, "error", err)
		return fmt.Errorf("%w: thread %d: %w", ErrPlatformOperation, t.id, err)
	}

	Logger().Debug("thread destroyed", "thread", t.id)
	return nil
}
