package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/giantswarm/stdthread/internal/platform"
)

// errFromPlatform is returned by fakeAdapter when configured to fail.
//
//nolint:gochecknoglobals // package-level test sentinel
var errFromPlatform = errors.New("platform refused")

// errFromAllocator is returned by trackingAllocator when configured to fail.
//
//nolint:gochecknoglobals // package-level test sentinel
var errFromAllocator = errors.New("out of control blocks")

// fakeAdapter wraps a real adapter and injects failures.
type fakeAdapter struct {
	platform.Adapter

	spawnErr error
	mutexErr error
	closeErr error

	mu      sync.Mutex
	spawned int
}

func newFakeAdapter(t *testing.T) *fakeAdapter {
	t.Helper()
	a, err := platform.New(platform.Scheduled)
	if err != nil {
		t.Fatalf("platform.New: %v", err)
	}
	return &fakeAdapter{Adapter: a}
}

//nolint:ireturn // adapter contract
func (f *fakeAdapter) Spawn(entry func()) (platform.Thread, error) {
	if f.spawnErr != nil {
		return nil, f.spawnErr
	}
	th, err := f.Adapter.Spawn(entry)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.spawned++
	f.mu.Unlock()
	return &fakeThread{Thread: th, closeErr: f.closeErr}, nil
}

//nolint:ireturn // adapter contract
func (f *fakeAdapter) NewMutex() (platform.Mutex, error) {
	if f.mutexErr != nil {
		return nil, f.mutexErr
	}
	return f.Adapter.NewMutex()
}

func (f *fakeAdapter) spawnCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spawned
}

type fakeThread struct {
	platform.Thread
	closeErr error
}

func (t *fakeThread) Close() error {
	if t.closeErr != nil {
		return t.closeErr
	}
	return t.Thread.Close()
}

// trackingAllocator is a resource-tracking Allocator double. It records
// every allocation and free so tests can assert nothing leaks.
type trackingAllocator struct {
	mu        sync.Mutex
	fail      bool
	nextID    uint64
	allocated int
	freed     int
}

//nolint:ireturn // allocator contract
func (a *trackingAllocator) Allocate() (Block, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail {
		return nil, errFromAllocator
	}
	a.nextID++
	a.allocated++
	return &trackingBlock{alloc: a, id: a.nextID}, nil
}

func (a *trackingAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated - a.freed
}

func (a *trackingAllocator) counts() (allocated, freed int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated, a.freed
}

type trackingBlock struct {
	alloc *trackingAllocator
	id    uint64
}

func (b *trackingBlock) ID() uint64 { return b.id }

func (b *trackingBlock) Free() {
	b.alloc.mu.Lock()
	b.alloc.freed++
	b.alloc.mu.Unlock()
}

// newTrackedRuntime returns a Runtime on adapter with tracking allocators
// for both tables.
func newTrackedRuntime(adapter platform.Adapter) (*Runtime, *trackingAllocator, *trackingAllocator) {
	threads, locks := &trackingAllocator{}, &trackingAllocator{}
	cfg := Config{Platform: adapter.Kind()}
	return newRuntime(cfg, adapter, threads, locks), threads, locks
}

// allPlatforms returns a fresh real Runtime per platform kind.
func allPlatforms() map[string]Config {
	return map[string]Config{
		"pinned":    {Platform: platform.Pinned},
		"scheduled": {Platform: platform.Scheduled},
	}
}

// requirePanicContains calls fn and verifies it panics with a message
// containing wantSubstr.
func requirePanicContains(t *testing.T, fn func(), wantSubstr string) {
	t.Helper()

	var recovered string
	func() {
		defer func() {
			if r := recover(); r != nil {
				recovered = fmt.Sprint(r)
			}
		}()
		fn()
	}()

	if recovered == "" {
		t.Fatalf("expected panic containing %q, got none", wantSubstr)
	}
	if !strings.Contains(recovered, wantSubstr) {
		t.Fatalf("panic %q does not contain %q", recovered, wantSubstr)
	}
}
