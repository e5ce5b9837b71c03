package core

import "github.com/giantswarm/stdthread/internal/sentinel"

// Error kinds reported by the thread and lock managers. Platform causes are
// wrapped alongside the kind, so errors.Is matches both.
const (
	// ErrAllocation is returned when a control block cannot be reserved,
	// either because the table is at capacity or the allocator refused.
	ErrAllocation = sentinel.Error("control block allocation failed")

	// ErrPlatformCreate is returned when the platform declines to create a
	// thread or mutex, or the routine passed to CreateThread is nil.
	ErrPlatformCreate = sentinel.Error("platform create failed")

	// ErrPlatformJoin is returned by Join for a nil or destroyed handle, or
	// when the platform wait fails.
	ErrPlatformJoin = sentinel.Error("platform join failed")

	// ErrPlatformOperation is returned by Destroy for a nil or destroyed
	// handle, or when the platform fails to release the thread.
	ErrPlatformOperation = sentinel.Error("platform operation failed")

	// ErrNilRoutine is returned alongside ErrPlatformCreate when
	// CreateThread is called without a routine.
	ErrNilRoutine = sentinel.Error("routine must not be nil")
)
