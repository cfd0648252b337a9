// Package memory tracks the arrow buffers held while datasets are loaded.
package memory

import (
	"runtime"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/atomic"
)

// Tracker is an arrow allocator that counts live and peak bytes. It is safe
// for concurrent use by the load workers.
type Tracker struct {
	alloc  memory.Allocator
	live   atomic.Int64
	peak   atomic.Int64
	allocs atomic.Int64
}

// NewTracker wraps alloc, or a Go allocator when alloc is nil.
func NewTracker(alloc memory.Allocator) *Tracker {
	if alloc == nil {
		alloc = memory.NewGoAllocator()
	}
	return &Tracker{alloc: alloc}
}

// Allocate implements memory.Allocator.
func (t *Tracker) Allocate(size int) []byte {
	b := t.alloc.Allocate(size)
	t.allocs.Inc()
	t.record(int64(len(b)))
	return b
}

// Reallocate implements memory.Allocator.
func (t *Tracker) Reallocate(size int, b []byte) []byte {
	old := len(b)
	out := t.alloc.Reallocate(size, b)
	t.record(int64(len(out) - old))
	return out
}

// Free implements memory.Allocator.
func (t *Tracker) Free(b []byte) {
	t.record(-int64(len(b)))
	t.alloc.Free(b)
}

func (t *Tracker) record(delta int64) {
	live := t.live.Add(delta)
	for {
		peak := t.peak.Load()
		if live <= peak || t.peak.CompareAndSwap(peak, live) {
			return
		}
	}
}

// Live returns the bytes currently allocated and not yet freed.
func (t *Tracker) Live() int64 { return t.live.Load() }

// Peak returns the largest Live value observed.
func (t *Tracker) Peak() int64 { return t.peak.Load() }

// Allocations returns the number of Allocate calls.
func (t *Tracker) Allocations() int64 { return t.allocs.Load() }

// ForceGC runs two collections so finalizers of released buffers run, then
// yields.
func ForceGC() {
	runtime.GC()
	runtime.GC()
	runtime.Gosched()
}
