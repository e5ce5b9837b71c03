//go:build !stdthread_scheduled

package platform

// Default is the Kind used when a runtime is not configured with one.
// Build with the stdthread_scheduled tag to default to Scheduled.
const Default = Pinned
