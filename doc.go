// Package stdthread provides a minimal thread and lock abstraction over two
// interchangeable execution platforms.
//
// A Thread runs a Routine with a caller-supplied argument. The caller joins
// it to wait for completion and destroys it to release its resources. A Lock
// brackets critical sections with Acquire and Release. Nothing else is
// offered: no pools, no cancellation, no timed waits, no condition variables.
//
// # Basic Usage
//
//	import "github.com/giantswarm/stdthread"
//
//	lock, err := stdthread.CreateLock()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stdthread.DestroyLock(lock)
//
//	var total int
//	n := 5
//	th, err := stdthread.CreateThread(func(arg any) {
//	    lock.Acquire()
//	    total += *arg.(*int)
//	    lock.Release()
//	}, &n)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := stdthread.JoinThread(th); err != nil {
//	    log.Fatal(err)
//	}
//	if err := stdthread.DestroyThread(th); err != nil {
//	    log.Fatal(err)
//	}
//
// The argument is never copied or freed. Whatever it points to must outlive
// the routine.
//
// # Platforms
//
// PlatformPinned runs each thread on its own OS thread, which exits when the
// routine returns. PlatformScheduled runs each thread as a goroutine on the
// Go scheduler. The package-level functions use a default runtime on
// DefaultPlatform, which is PlatformPinned unless the module is built with
// the stdthread_scheduled tag. New builds an independent runtime on any
// platform. Handles from one runtime never mix with another's platform.
//
// # Undefined Behavior
//
// The following are undefined and must not be relied on:
//
//   - Acquiring a Lock the calling thread already holds. The platforms
//     disagree on whether this deadlocks, and the abstraction does not pick
//     one.
//   - Releasing a Lock the caller does not hold.
//   - Joining a Thread twice, or from two goroutines at once.
//   - Destroying a Thread or Lock twice, or using either after Destroy.
//
// # Memory Ordering
//
// A successful Join orders every write of the routine before the joiner's
// subsequent reads. Threads that never join each other get no ordering;
// shared state must be accessed only while holding the Lock that protects
// it.
package stdthread
