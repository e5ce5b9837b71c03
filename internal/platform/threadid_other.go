//go:build !linux && !windows

package platform

// currentThreadID is unsupported outside Linux and Windows.
func currentThreadID() (uint64, bool) { return 0, false }
