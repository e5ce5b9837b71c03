package core

import (
	"fmt"
	"sync/atomic"

	"github.com/giantswarm/stdthread/internal/platform"
)

// Lock is the control block behind a platform mutex.
//
// Acquiring a Lock that the calling thread already holds is undefined. The
// two platforms disagree on what happens and the Lock does not reconcile
// them, so callers must release before acquiring again.
type Lock struct {
	id        uint64
	block     Block
	native    platform.Mutex
	destroyed atomic.Bool
}

// CreateLock reserves a lock control block and creates an unlocked platform
// mutex.
//
// On failure no Lock is returned and the control block, if one was reserved,
// has already been freed:
//   - ErrAllocation when no control block is available
//   - ErrPlatformCreate when the adapter fails to create the mutex
func (r *Runtime) CreateLock() (*Lock, error) {
	block, err := r.locks.Allocate()
	if err != nil {
		return nil, fmt.Errorf("%w: lock: %w", ErrAllocation, err)
	}

	created := false
	defer func() {
		if !created {
			block.Free()
		}
	}()

	native, err := r.adapter.NewMutex()
	if err != nil {
		return nil, fmt.Errorf("%w: lock %d on %s: %w", ErrPlatformCreate, block.ID(), r.adapter.Kind(), err)
	}
	created = true

	Logger().Debug("lock created", "lock", block.ID(), "platform", r.adapter.Kind().String())
	return &Lock{id: block.ID(), block: block, native: native}, nil
}

// ID returns the identifier the control-block table assigned to the lock.
func (l *Lock) ID() uint64 {
	return l.id
}

// Acquire blocks until the caller holds the lock. It cannot be canceled and
// has no timeout. A platform failure is not recoverable and aborts the way
// the platform primitive does.
func (l *Lock) Acquire() {
	l.native.Lock()
}

// Release gives up the lock. Only the holder may call it; releasing a lock
// that is not held aborts.
func (l *Lock) Release() {
	l.native.Unlock()
}

// Destroy releases the platform mutex and the control block. The lock must
// not be held when Destroy is called and must not be used afterwards.
func (l *Lock) Destroy() {
	if l == nil {
		return
	}
	if l.destroyed.Swap(true) {
		Logger().Warn("lock destroyed more than once", "lock", l.id)
		return
	}
	defer l.block.Free()

	if err := l.native.Close(); err != nil {
		Logger().Warn("failed to release lock", "lock", l.id, "error", err)
		return
	}
	Logger().Debug("lock destroyed", "lock", l.id)
}
