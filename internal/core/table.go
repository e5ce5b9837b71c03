package core

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/giantswarm/stdthread/internal/sentinel"
)

// ErrTableFull is returned by a bounded table when every slot is in use.
const ErrTableFull = sentinel.Error("control block table is full")

// Allocator hands out control blocks. The Runtime reserves one block per
// handle and frees it exactly once, on Destroy or on a failed create.
type Allocator interface {
	Allocate() (Block, error)

	// Live returns the number of blocks allocated and not yet freed.
	Live() int
}

// Block is a reserved control block.
type Block interface {
	// ID is unique among the blocks of one Allocator.
	ID() uint64

	// Free returns the block to its Allocator.
	Free()
}

var (
	_ Allocator = (*table)(nil)
	_ Block     = (*tableBlock)(nil)
)

// table is the default Allocator. Ids increase monotonically and are never
// reused. When capacity is positive, slots are counted with a weighted
// semaphore and Allocate fails fast instead of waiting for a free slot.
type table struct {
	kind     string
	capacity int
	sem      *semaphore.Weighted // nil when unbounded
	nextID   atomic.Uint64
	live     atomic.Int64
}

// newTable returns a table for blocks of the given kind ("thread", "lock").
// capacity 0 means unbounded. Panics if capacity < 0.
func newTable(kind string, capacity int) *table {
	if capacity < 0 {
		panic(fmt.Sprintf("stdthread: %s table capacity must not be negative, got %d", kind, capacity))
	}

	t := &table{kind: kind, capacity: capacity}
	if capacity > 0 {
		t.sem = semaphore.NewWeighted(int64(capacity))
	}
	return t
}

//nolint:ireturn // Block is the allocator contract
func (t *table) Allocate() (Block, error) {
	if t.sem != nil && !t.sem.TryAcquire(1) {
		return nil, fmt.Errorf("%w: %d %s blocks in use", ErrTableFull, t.capacity, t.kind)
	}
	t.live.Add(1)
	return &tableBlock{table: t, id: t.nextID.Add(1)}, nil
}

func (t *table) Live() int {
	return int(t.live.Load())
}

type tableBlock struct {
	table *table
	id    uint64
	freed atomic.Bool
}

func (b *tableBlock) ID() uint64 { return b.id }

// Free panics on a second call: the Runtime frees every block exactly once,
// so a repeat means the bookkeeping is broken.
func (b *tableBlock) Free() {
	if b.freed.Swap(true) {
		panic(fmt.Sprintf("stdthread: %s control block %d freed twice", b.table.kind, b.id))
	}
	b.table.live.Add(-1)
	if b.table.sem != nil {
		b.table.sem.Release(1)
	}
}
