package stdthread

import "github.com/giantswarm/stdthread/internal/platform"

// Platform selects the threading facility a Runtime is built on.
//
// Platform is a type alias so that the IsValid and String methods of the
// underlying type are part of the public API.
type Platform = platform.Kind

const (
	// PlatformPinned gives each thread a dedicated OS thread via
	// runtime.LockOSThread. The OS thread exits when the routine returns.
	// Locks are sync.Mutex values.
	PlatformPinned = platform.Pinned

	// PlatformScheduled runs each thread as a goroutine on the Go
	// scheduler, joined through an errgroup.Group. Locks are weighted
	// semaphores of size one.
	PlatformScheduled = platform.Scheduled
)

// ParsePlatform returns the Platform named s ("pinned" or "scheduled").
func ParsePlatform(s string) (Platform, error) {
	return platform.ParseKind(s)
}

// ErrUnknownPlatform is returned by ParsePlatform for an unrecognized name.
const ErrUnknownPlatform = platform.ErrUnknownKind
