package stdthread

// ResetForTesting resets the default Runtime so that the next call to Default
// creates a fresh one. Exported only for package stdthread_test.
func ResetForTesting() { resetForTesting() }

// ConfigSnapshot holds a copy of runtimeConfig fields for test assertions.
type ConfigSnapshot struct {
	Platform   Platform
	MaxThreads int
	MaxLocks   int
}

// ApplyOptionsForTesting creates a default runtimeConfig, applies opts, and
// returns a snapshot of the result without constructing a Runtime.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return ConfigSnapshot{
		Platform:   cfg.Platform,
		MaxThreads: cfg.MaxThreads,
		MaxLocks:   cfg.MaxLocks,
	}
}
