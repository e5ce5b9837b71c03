//go:build windows

package platform

import "golang.org/x/sys/windows"

// currentThreadID returns the Win32 thread id of the calling OS thread.
func currentThreadID() (uint64, bool) {
	return uint64(windows.GetCurrentThreadId()), true
}
