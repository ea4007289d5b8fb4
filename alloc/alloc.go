// Package alloc implements nox's allocator abstraction: a uniform
// alloc/realloc/dealloc/destroy surface over interchangeable backends
// (heap, arena, pool), grounded on original_source/src/allocator.h's
// tagged-pointer design.
//
// The original encodes the backend kind in the low nibble of the backend
// state pointer itself, aligning every backend struct to 16 bytes so the
// nibble is always free. spec.md §9's Design Notes explicitly permit the
// alternative this package takes instead: "replace it with a
// pointer-plus-tag record" — here, a Kind field alongside a Go interface
// value. Packing a backend kind into the low bits of a uintptr and
// converting it back to a pointer later is unsound in Go: nothing marks
// that uintptr as a live reference to the GC between the conversion and
// its use, so the backend could be collected out from under it.
package alloc

// Kind identifies which backend an Allocator dispatches to, mirroring the
// original's Allocator_Type enum.
type Kind uint8

const (
	KindHeap Kind = iota
	KindArena
	KindStack // unimplemented backend, kept for enum parity with the original
	KindPool
	KindBump // unimplemented backend, kept for enum parity with the original
)

func (k Kind) String() string {
	switch k {
	case KindHeap:
		return "heap"
	case KindArena:
		return "arena"
	case KindStack:
		return "stack"
	case KindPool:
		return "pool"
	case KindBump:
		return "bump"
	default:
		return "unknown"
	}
}

// backend is the indirect call table the original dispatches through via
// allocate_functions/reallocate_functions/deallocate_functions, expressed
// as a Go interface instead of four parallel function-pointer arrays
// indexed by tag.
type backend interface {
	allocate(size int) []byte
	reallocate(size int, old []byte) []byte
	deallocate(old []byte)
}

// Allocator is a handle to one of the backends below. The zero value is
// not valid; construct one with FromHeap, FromArena, or FromPool.
type Allocator struct {
	kind Kind
	back backend
}

// Kind reports which backend this handle dispatches to.
func (a Allocator) Kind() Kind { return a.kind }

// Allocate requests size bytes from the backend. A nil return means the
// allocation failed and the backend is left unchanged, matching the
// original's "allocator left unchanged on failure" contract.
func (a Allocator) Allocate(size int) []byte { return a.back.allocate(size) }

// Reallocate resizes old to size bytes, preserving the overlapping
// prefix. For Heap and Arena, passing a nil old behaves like Allocate;
// Pool returns old unchanged whatever size is asked for (nil for nil).
func (a Allocator) Reallocate(size int, old []byte) []byte { return a.back.reallocate(size, old) }

// Deallocate releases old back to the backend. Some backends (Pool) can
// always reclaim it; others (Arena) only reclaim the most recent
// allocation and silently ignore anything else.
func (a Allocator) Deallocate(old []byte) { a.back.deallocate(old) }

// FromHeap wraps h as an Allocator handle.
func FromHeap(h *Heap) Allocator { return Allocator{kind: KindHeap, back: h} }

// FromArena wraps a as an Allocator handle.
func FromArena(a *Arena) Allocator { return Allocator{kind: KindArena, back: a} }

// FromPool wraps p as an Allocator handle.
func FromPool(p *Pool) Allocator { return Allocator{kind: KindPool, back: p} }
