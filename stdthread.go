package stdthread

import (
	"sync"

	"github.com/giantswarm/stdthread/internal/core"
)

// Routine is the function a Thread runs. arg is the value passed to
// CreateThread, untouched.
type Routine = core.Routine

// ThreadState is the lifecycle position of a Thread:
// created, running, joined, destroyed.
type ThreadState = core.ThreadState

// Thread lifecycle states. CreateThread returns threads in ThreadRunning;
// ThreadCreated is never observable.
const (
	ThreadCreated   = core.ThreadCreated
	ThreadRunning   = core.ThreadRunning
	ThreadJoined    = core.ThreadJoined
	ThreadDestroyed = core.ThreadDestroyed
)

// Stats is a point-in-time count of live threads and locks in a Runtime.
type Stats = core.Stats

// Compile-time interface satisfaction checks.
var (
	_ Runtime = (*runtimeWrapper)(nil)
	_ Thread  = (*core.Thread)(nil)
	_ Lock    = (*core.Lock)(nil)
)

// runtimeWrapper adapts core.Runtime to the Runtime interface. core.Runtime
// returns concrete pointers; returning them directly through an interface
// would turn a nil *core.Thread into a non-nil Thread on the error path.
type runtimeWrapper struct {
	rt *core.Runtime
}

func (w *runtimeWrapper) Platform() Platform {
	return w.rt.Platform()
}

//nolint:ireturn // Returns Thread interface by design for testability.
func (w *runtimeWrapper) CreateThread(routine Routine, arg any) (Thread, error) {
	th, err := w.rt.CreateThread(routine, arg)
	if err != nil {
		return nil, err
	}
	return th, nil
}

//nolint:ireturn // Returns Lock interface by design for testability.
func (w *runtimeWrapper) CreateLock() (Lock, error) {
	l, err := w.rt.CreateLock()
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (w *runtimeWrapper) Stats() Stats {
	return w.rt.Stats()
}

// New returns an independent Runtime configured by opts. Each Runtime has
// its own thread and lock tables. New performs no I/O and starts no threads.
//
// Panics if any option receives an invalid value.
//
//nolint:ireturn // Returns Runtime interface by design for testability.
func New(opts ...Option) Runtime {
	cfg := defaultRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &runtimeWrapper{rt: core.NewRuntime(cfg.toCoreConfig())}
}

// defaultMu protects defaultRuntime and defaultOnce so that resetForTesting
// is safe to call concurrently with Default.
var (
	defaultMu      sync.Mutex
	defaultRuntime Runtime
	defaultOnce    sync.Once
)

// Default returns the process-level Runtime used by the package-level
// functions. It is created on first use with the Default* configuration.
//
//nolint:ireturn // Returns Runtime interface by design for testability.
func Default() Runtime {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultOnce.Do(func() {
		defaultRuntime = New()
	})
	return defaultRuntime
}

// resetForTesting drops the default Runtime so the next Default call creates
// a fresh one. It must only be called from tests.
func resetForTesting() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	defaultRuntime = nil
	defaultOnce = sync.Once{}
}

// CreateThread starts routine(arg) on a new thread of the default Runtime.
// See Runtime.CreateThread.
//
//nolint:ireturn // Returns Thread interface by design for testability.
func CreateThread(routine Routine, arg any) (Thread, error) {
	return Default().CreateThread(routine, arg)
}

// JoinThread blocks until t's routine returns. See Thread.Join.
// Returns ErrPlatformJoin if t is nil.
func JoinThread(t Thread) error {
	if t == nil {
		return core.ErrPlatformJoin
	}
	return t.Join()
}

// DestroyThread releases t. See Thread.Destroy.
// Returns ErrPlatformOperation if t is nil.
func DestroyThread(t Thread) error {
	if t == nil {
		return core.ErrPlatformOperation
	}
	return t.Destroy()
}

// CreateLock creates an unlocked Lock on the default Runtime.
// See Runtime.CreateLock.
//
//nolint:ireturn // Returns Lock interface by design for testability.
func CreateLock() (Lock, error) {
	return Default().CreateLock()
}

// AcquireLock blocks until the caller holds l. See Lock.Acquire.
func AcquireLock(l Lock) {
	l.Acquire()
}

// ReleaseLock gives up l. See Lock.Release.
func ReleaseLock(l Lock) {
	l.Release()
}

// DestroyLock releases l. See Lock.Destroy. A nil l is ignored.
func DestroyLock(l Lock) {
	if l == nil {
		return
	}
	l.Destroy()
}
