package alloc_test

import (
	"testing"

	"github.com/nox-lang/nox/alloc"
	"github.com/stretchr/testify/require"
)

func TestHeapAllocateTracksBytes(t *testing.T) {
	h := alloc.NewHeap()
	a := alloc.FromHeap(h)

	buf := a.Allocate(16)
	require.Len(t, buf, 16)
	require.Equal(t, int64(16), h.Allocated())

	a.Deallocate(buf)
	require.Equal(t, int64(0), h.Allocated())
	require.NoError(t, h.Destroy())
}

func TestHeapDestroyErrorsOnLeak(t *testing.T) {
	h := alloc.NewHeap()
	a := alloc.FromHeap(h)
	a.Allocate(8)
	require.Error(t, h.Destroy())
}

func TestArenaGrowsAndReclaimsOnlyMostRecent(t *testing.T) {
	h := alloc.NewHeap()
	arena := alloc.NewArena(h, 0)
	a := alloc.FromArena(arena)

	first := a.Allocate(4)
	second := a.Allocate(4)
	require.Len(t, first, 4)
	require.Len(t, second, 4)

	// second is the most recent allocation, so it is genuinely reclaimed.
	a.Deallocate(second)
	third := a.Allocate(4)
	require.Len(t, third, 4)

	// first is no longer the most recent allocation; freeing it is a
	// silent no-op rather than an error.
	a.Deallocate(first)

	arena.FreeAll()
}

func TestPoolAllocateAndDeallocateReusesChunk(t *testing.T) {
	h := alloc.NewHeap()
	pool := alloc.NewPool(h, 2, 8)
	a := alloc.FromPool(pool)

	c1 := a.Allocate(8)
	c2 := a.Allocate(8)
	require.Len(t, c1, 8)
	require.Len(t, c2, 8)

	a.Deallocate(c1)
	c3 := a.Allocate(8)
	require.Len(t, c3, 8)
}

func TestPoolAllocateBeyondChunkSizeFails(t *testing.T) {
	h := alloc.NewHeap()
	pool := alloc.NewPool(h, 1, 4)
	a := alloc.FromPool(pool)

	require.Nil(t, a.Allocate(8))
}

func TestPoolGrowsPastInitialCapacity(t *testing.T) {
	h := alloc.NewHeap()
	pool := alloc.NewPool(h, 1, 8)
	a := alloc.FromPool(pool)

	a.Allocate(8)
	grown := a.Allocate(8)
	require.Len(t, grown, 8)
}
