package stdthread

import "github.com/giantswarm/stdthread/internal/core"

// runtimeConfig holds configuration for a Runtime. It embeds core.Config so
// internal types stay out of the public API without duplicating fields.
type runtimeConfig struct {
	core.Config
}

// toCoreConfig returns the embedded core.Config.
func (c runtimeConfig) toCoreConfig() core.Config {
	return c.Config
}

// defaultRuntimeConfig returns a runtimeConfig populated with the Default*
// values.
func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{core.Config{
		Platform:   DefaultPlatform,
		MaxThreads: DefaultMaxThreads,
		MaxLocks:   DefaultMaxLocks,
	}}
}
