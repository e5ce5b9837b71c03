// Package platform provides the two execution facilities a runtime can be
// built on.
//
// Both facilities implement Adapter with the same contract: Spawn starts an
// entry function on a new thread of execution, Wait blocks until it returns,
// Close releases whatever the facility holds for it, and NewMutex creates a
// non-reentrant mutual-exclusion primitive. A runtime picks one Adapter at
// construction and uses it for every handle it creates.
//
// Pinned dedicates an OS thread to each entry function via
// runtime.LockOSThread and lets that thread exit with the function. Scheduled
// runs entry functions as ordinary goroutines on the Go scheduler.
package platform
