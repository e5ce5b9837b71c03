package stdthread

// Runtime creates threads and locks on one platform. Each Runtime keeps its
// own control-block tables, so capacity limits and Stats are per Runtime.
// It is safe for concurrent use.
type Runtime interface {
	// Platform returns the platform every handle of this Runtime uses.
	Platform() Platform

	// CreateThread starts routine(arg) on a new thread.
	//
	// Returns an error wrapping ErrPlatformCreate and ErrNilRoutine if
	// routine is nil, ErrAllocation if the thread table is full, and
	// ErrPlatformCreate if the platform cannot start the thread. No Thread
	// is returned and nothing stays allocated when an error is returned.
	CreateThread(routine Routine, arg any) (Thread, error)

	// CreateLock creates an unlocked Lock.
	//
	// Returns ErrAllocation if the lock table is full and ErrPlatformCreate
	// if the platform cannot create the mutex.
	CreateLock() (Lock, error)

	// Stats returns the number of threads and locks created and not yet
	// destroyed.
	Stats() Stats
}

// Thread is a handle to a running routine. It is valid from a successful
// CreateThread until Destroy.
type Thread interface {
	// ID returns an identifier unique among the threads of one Runtime.
	ID() uint64

	// NativeID returns the OS thread id the routine runs on. Only
	// PlatformPinned on Linux and Windows reports one.
	NativeID() (uint64, bool)

	// State returns the handle's lifecycle state.
	State() ThreadState

	// Join blocks until the routine returns. It has no timeout and cannot
	// be canceled. Calling Join twice is undefined.
	//
	// Returns ErrPlatformJoin if the platform wait fails.
	Join() error

	// Destroy releases the thread's resources; the handle is invalid
	// afterwards. Join should come first: destroying a thread that is still
	// running detaches it. Calling Destroy twice is undefined.
	//
	// Returns ErrPlatformOperation if the platform fails to release the
	// thread. The handle's control block is released regardless.
	Destroy() error
}

// Lock is a handle to a non-reentrant mutual-exclusion primitive. It is
// valid from a successful CreateLock until Destroy.
type Lock interface {
	// ID returns an identifier unique among the locks of one Runtime.
	ID() uint64

	// Acquire blocks until the caller holds the lock. It has no timeout and
	// cannot be canceled. Acquiring a lock the caller already holds is
	// undefined.
	Acquire()

	// Release gives up the lock. Only the holder may call it.
	Release()

	// Destroy releases the lock's resources. The lock must not be held and
	// must not be used afterwards.
	Destroy()
}
