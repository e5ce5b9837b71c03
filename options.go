package stdthread

import "fmt"

// Option configures a Runtime during construction via New.
//
// With* functions panic on invalid input. Option values are normally
// constants, so an invalid one is a programmer error and fails at
// construction, as regexp.MustCompile does.
type Option func(*runtimeConfig)

// requireNonNegative panics if v < 0 with a descriptive message.
func requireNonNegative(name string, v int) {
	if v < 0 {
		panic(fmt.Sprintf("stdthread: %s must not be negative, got %d", name, v))
	}
}

// WithPlatform sets the platform the Runtime creates threads and locks on.
//
// Default: DefaultPlatform.
//
// Panics if p is not a valid Platform.
func WithPlatform(p Platform) Option {
	if !p.IsValid() {
		panic(fmt.Sprintf("stdthread: invalid platform: %v", p))
	}
	return func(c *runtimeConfig) {
		c.Platform = p
	}
}

// WithMaxThreads caps the number of threads that may exist at once. A thread
// counts from CreateThread until Destroy, joined or not. CreateThread returns
// ErrAllocation when the cap is reached. 0 means unbounded.
//
// Default: 0.
//
// Panics if n < 0.
func WithMaxThreads(n int) Option {
	requireNonNegative("max threads", n)
	return func(c *runtimeConfig) {
		c.MaxThreads = n
	}
}

// WithMaxLocks caps the number of locks that may exist at once. CreateLock
// returns ErrAllocation when the cap is reached. 0 means unbounded.
//
// Default: 0.
//
// Panics if n < 0.
func WithMaxLocks(n int) Option {
	requireNonNegative("max locks", n)
	return func(c *runtimeConfig) {
		c.MaxLocks = n
	}
}
