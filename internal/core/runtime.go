package core

import (
	"fmt"

	"github.com/giantswarm/stdthread/internal/platform"
)

// Stats is a point-in-time count of live control blocks.
type Stats struct {
	// Threads is the number of threads created and not yet destroyed.
	Threads int
	// Locks is the number of locks created and not yet destroyed.
	Locks int
}

// Runtime creates threads and locks on a single platform adapter. Handles
// created by one Runtime always use that Runtime's adapter, so the two
// platforms are never mixed. It is safe for concurrent use.
type Runtime struct {
	cfg     Config
	adapter platform.Adapter
	threads Allocator
	locks   Allocator
}

// NewRuntime creates a Runtime for cfg.
//
// Panics if cfg.Validate() reports any errors. Invalid configuration is a
// programmer error, so it is caught at construction like regexp.MustCompile.
func NewRuntime(cfg Config) *Runtime {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("stdthread: invalid runtime config: %v", err))
	}

	adapter, err := platform.New(cfg.Platform)
	if err != nil {
		// Unreachable: Validate rejects unknown kinds.
		panic(fmt.Sprintf("stdthread: %v", err))
	}

	return newRuntime(cfg, adapter, newTable("thread", cfg.MaxThreads), newTable("lock", cfg.MaxLocks))
}

// newRuntime wires a Runtime from explicit collaborators. Tests use it to
// inject failing adapters and resource-tracking allocators.
func newRuntime(cfg Config, adapter platform.Adapter, threads, locks Allocator) *Runtime {
	return &Runtime{
		cfg:     cfg,
		adapter: adapter,
		threads: threads,
		locks:   locks,
	}
}

// Platform returns the kind of adapter the Runtime creates handles with.
func (r *Runtime) Platform() platform.Kind {
	return r.adapter.Kind()
}

// Stats returns the number of live threads and locks.
func (r *Runtime) Stats() Stats {
	return Stats{
		Threads: r.threads.Live(),
		Locks:   r.locks.Live(),
	}
}
