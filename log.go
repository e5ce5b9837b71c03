package stdthread

import (
	"log/slog"

	"github.com/giantswarm/stdthread/internal/core"
)

// SetLogger replaces the package-level logger used by stdthread. The
// provided logger should already carry any attributes the caller wants;
// stdthread adds only per-handle attributes such as "thread" and "lock".
//
// If l is nil, the logger resets to slog.Default() with a "component"
// attribute, re-derived on the next log call and then cached. Call
// SetLogger(nil) after slog.SetDefault() to pick up the change.
//
// SetLogger is safe to call concurrently with other stdthread operations,
// including from inside thread routines. A concurrent log call may still use
// the previous logger.
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
