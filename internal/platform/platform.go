package platform

import (
	"fmt"

	"github.com/giantswarm/stdthread/internal/sentinel"
)

// ErrUnknownKind is returned by New for a Kind that names no adapter.
const ErrUnknownKind = sentinel.Error("unknown platform kind")

// Kind selects an Adapter implementation.
type Kind int

const (
	// Pinned runs every thread on a dedicated OS thread that terminates when
	// the thread's entry function returns.
	Pinned Kind = iota

	// Scheduled runs every thread as a goroutine multiplexed by the Go
	// scheduler.
	Scheduled
)

// IsValid reports whether k is a recognized Kind value.
func (k Kind) IsValid() bool {
	switch k {
	case Pinned, Scheduled:
		return true
	default:
		return false
	}
}

// String returns the name of the platform.
func (k Kind) String() string {
	switch k {
	case Pinned:
		return "pinned"
	case Scheduled:
		return "scheduled"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind returns the Kind whose String form is s.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "pinned":
		return Pinned, nil
	case "scheduled":
		return Scheduled, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Adapter is a threading facility. Implementations must be safe for
// concurrent use.
type Adapter interface {
	// Kind identifies the implementation.
	Kind() Kind

	// Spawn starts entry on a new thread of execution and returns once the
	// thread is running. Everything entry needs must be captured by entry
	// itself; the returned Thread is never visible to it.
	Spawn(entry func()) (Thread, error)

	// NewMutex creates an unlocked mutual-exclusion primitive.
	NewMutex() (Mutex, error)
}

// Thread is the facility-side resource behind a spawned entry function.
type Thread interface {
	// Wait blocks until the entry function has returned. All writes made
	// by the entry function happen before Wait returns.
	Wait() error

	// Close releases the facility's resources for the thread. It does not
	// stop a thread that is still running.
	Close() error

	// NativeID returns the OS thread id the entry function runs on, if the
	// facility and operating system can report one.
	NativeID() (uint64, bool)
}

// Mutex is a non-reentrant mutual-exclusion primitive.
//
// Locking a Mutex that the caller already holds is undefined. Neither adapter
// detects it and callers must not rely on what either one does. Unlocking a
// Mutex that is not held aborts the program.
type Mutex interface {
	Lock()
	Unlock()
	Close() error
}

// New returns the Adapter for k.
//
//nolint:ireturn // callers only need the Adapter contract
func New(k Kind) (Adapter, error) {
	switch k {
	case Pinned:
		return pinnedAdapter{}, nil
	case Scheduled:
		return scheduledAdapter{}, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, k)
	}
}
