package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_AllocReusesFreedIndexWithBumpedGeneration(t *testing.T) {
	var a Allocator

	e0 := a.Alloc()
	assert.Equal(t, uint32(0), e0.Index())
	assert.Equal(t, uint32(0), e0.Generation())
	require.True(t, a.Contains(e0))

	require.True(t, a.Free(e0))
	assert.False(t, a.Contains(e0))

	e1 := a.Alloc()
	assert.Equal(t, uint32(0), e1.Index(), "freed index should be reused")
	assert.Equal(t, uint32(1), e1.Generation(), "generation must bump on reuse")
	assert.True(t, a.Contains(e1))
	assert.False(t, a.Contains(e0), "stale handle to the old generation must stay dead")
}

func TestAllocator_FreeUnknownEntityReturnsFalse(t *testing.T) {
	var a Allocator
	assert.False(t, a.Free(FromRawParts(42, 0)))
}

func TestAllocator_FreeStaleGenerationReturnsFalse(t *testing.T) {
	var a Allocator
	e := a.Alloc()
	require.True(t, a.Free(e))

	assert.False(t, a.Free(e), "freeing the same handle twice must fail")
}

func TestAllocator_ReserveThenFlushMakesEntityVisible(t *testing.T) {
	var a Allocator
	reserved := a.Reserve()

	assert.False(t, a.Contains(reserved), "reservation is not visible before flush")
	a.Flush()
	assert.True(t, a.Contains(reserved), "Flush makes the reservation live")

	got := a.Alloc()
	assert.NotEqual(t, reserved.Index(), got.Index(), "a flushed reservation's index is not handed out again")
}

func TestAllocator_AllocAtExtendsPastCurrentLength(t *testing.T) {
	var a Allocator

	target := FromRawParts(5, 0)
	already := a.AllocAt(target)

	assert.False(t, already)
	assert.True(t, a.Contains(target))
	assert.EqualValues(t, 1, a.Len())

	again := a.AllocAt(target)
	assert.True(t, again, "allocating the same entity twice reports it was already live")
}

func TestAllocator_AllocAtLeavesGapIndicesUnsetInEntityIDs(t *testing.T) {
	var a Allocator

	target := FromRawParts(5, 0)
	a.AllocAt(target)

	ids := a.EntityIDs()
	for i := 0; i < int(target.Index()); i++ {
		assert.False(t, ids.Contains(i), "gap index %d must not be marked live", i)
	}
	assert.True(t, ids.Contains(int(target.Index())))
}

func TestAllocator_GetReturnsFalseForFreedIndex(t *testing.T) {
	var a Allocator
	e := a.Alloc()
	require.True(t, a.Free(e))

	_, ok := a.Get(e.Index())
	assert.False(t, ok)
}

func TestAllocator_LenTracksLiveCount(t *testing.T) {
	var a Allocator
	e0 := a.Alloc()
	a.Alloc()
	assert.EqualValues(t, 2, a.Len())

	a.Free(e0)
	assert.EqualValues(t, 1, a.Len())
}
