package stdthread

import "github.com/giantswarm/stdthread/internal/core"

// Sentinel errors for error inspection with errors.Is. Errors returned by
// this package wrap one of the first four kinds and, where there is one, the
// platform cause.
const (
	// ErrAllocation is returned by CreateThread and CreateLock when no
	// control block is available (see WithMaxThreads and WithMaxLocks).
	ErrAllocation = core.ErrAllocation

	// ErrPlatformCreate is returned by CreateThread and CreateLock when the
	// platform declines to create the thread or mutex.
	ErrPlatformCreate = core.ErrPlatformCreate

	// ErrPlatformJoin is returned by JoinThread when the platform wait
	// fails or the handle is nil.
	ErrPlatformJoin = core.ErrPlatformJoin

	// ErrPlatformOperation is returned by DestroyThread when the platform
	// fails to release the thread or the handle is nil.
	ErrPlatformOperation = core.ErrPlatformOperation

	// ErrNilRoutine is returned by CreateThread, together with
	// ErrPlatformCreate, when routine is nil.
	ErrNilRoutine = core.ErrNilRoutine
)
