//go:build linux

package platform

import "golang.org/x/sys/unix"

// currentThreadID returns the kernel thread id of the calling OS thread.
// The caller must have locked its goroutine to the thread for the value to
// stay meaningful.
func currentThreadID() (uint64, bool) {
	return uint64(unix.Gettid()), true //nolint:gosec // Gettid never returns a negative id
}
