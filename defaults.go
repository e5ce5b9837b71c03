package stdthread

import "github.com/giantswarm/stdthread/internal/platform"

// Default configuration values for New and the package-level default
// runtime.
const (
	// DefaultPlatform is chosen at build time: PlatformPinned, or
	// PlatformScheduled when built with the stdthread_scheduled tag.
	DefaultPlatform = platform.Default

	// DefaultMaxThreads leaves the thread table unbounded.
	DefaultMaxThreads = 0

	// DefaultMaxLocks leaves the lock table unbounded.
	DefaultMaxLocks = 0
)
