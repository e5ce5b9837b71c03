package core

import (
	"errors"
	"fmt"

	"github.com/giantswarm/stdthread/internal/platform"
)

// Config holds configuration for a Runtime. All fields are immutable after
// NewRuntime returns.
type Config struct {
	// Platform selects the adapter every handle of the runtime is created
	// with. Default: platform.Default.
	Platform platform.Kind

	// MaxThreads caps the number of live thread control blocks. A thread
	// holds its block from CreateThread until Destroy, whether or not it
	// was joined. 0 means unbounded.
	MaxThreads int

	// MaxLocks caps the number of live lock control blocks. 0 means
	// unbounded.
	MaxLocks int
}

// Validate checks all Config invariants and reports every violation at once
// via errors.Join.
func (c Config) Validate() error {
	var errs []error

	if !c.Platform.IsValid() {
		errs = append(errs, fmt.Errorf("invalid platform: %v", c.Platform))
	}
	if c.MaxThreads < 0 {
		errs = append(errs, fmt.Errorf("max threads must not be negative, got %d", c.MaxThreads))
	}
	if c.MaxLocks < 0 {
		errs = append(errs, fmt.Errorf("max locks must not be negative, got %d", c.MaxLocks))
	}

	return errors.Join(errs...)
}
