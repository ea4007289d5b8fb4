package alloc

import (
	"fmt"
	"sync/atomic"
)

// Heap wraps Go's own allocator with a live-byte counter, grounded on the
// original's malloc_allocate/malloc_reallocate/malloc_deallocate plus its
// mallocated_user_size debug counter. Unlike the original's single
// process-wide counter, each Heap tracks its own total, per spec.md §9's
// Global State note ("reimplementations should scope equivalent state to
// an explicit handle rather than a package-level variable").
type Heap struct {
	allocated atomic.Int64
}

// NewHeap returns a Heap with a zero live-byte count.
func NewHeap() *Heap { return &Heap{} }

// Allocated reports the number of bytes currently outstanding.
func (h *Heap) Allocated() int64 { return h.allocated.Load() }

func (h *Heap) allocate(size int) []byte {
	buf := make([]byte, size)
	h.allocated.Add(int64(size))
	return buf
}

func (h *Heap) reallocate(size int, old []byte) []byte {
	buf := make([]byte, size)
	copy(buf, old)
	h.allocated.Add(int64(size - len(old)))
	return buf
}

func (h *Heap) deallocate(old []byte) {
	h.allocated.Add(-int64(len(old)))
}

// Destroy asserts that every allocation made from h has been deallocated,
// matching spec.md §8's testable property ("after destroying all
// allocators in a test, mallocated_user_size == 0").
func (h *Heap) Destroy() error {
	if n := h.allocated.Load(); n != 0 {
		return fmt.Errorf("alloc: heap destroyed with %d bytes still outstanding", n)
	}
	return nil
}
