package core

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the logger installed via SetLogger. Nil means none has been
// installed and Logger falls back to defaultLogger.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the stdthread component attribute.
// It is derived lazily on the first Logger call and dropped by SetLogger, so
// a later slog.SetDefault is only picked up after SetLogger(nil).
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the package-level logger. It is safe to call from multiple
// goroutines, including from inside thread routines.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "stdthread")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	// Lost the race against another Logger or SetLogger call. Prefer the
	// winner but never return nil.
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// SetLogger replaces the package-level logger. A nil l restores the default
// derived from slog.Default().
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
