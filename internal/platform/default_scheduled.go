//go:build stdthread_scheduled

package platform

// Default is the Kind used when a runtime is not configured with one.
// Build without the stdthread_scheduled tag to default to Pinned.
const Default = Scheduled
