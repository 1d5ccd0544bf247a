package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDense_InsertGetContains(t *testing.T) {
	d := NewDense(nil)
	d.Insert(3, "a", 1)
	d.Insert(7, "b", 1)

	assert.True(t, d.Contains(3))
	assert.True(t, d.Contains(7))
	assert.False(t, d.Contains(4))

	v, ok := d.Get(3)
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestDense_InsertOnExistingRowReplacesAndStampsChanged(t *testing.T) {
	d := NewDense(nil)
	d.Insert(1, "a", 1)
	d.Insert(1, "b", 5)

	assert.Equal(t, 1, d.Len(), "inserting onto an existing entity replaces, it does not append")

	v, _ := d.Get(1)
	assert.Equal(t, "b", v)

	ticks, _ := d.GetTicks(1)
	assert.Equal(t, uint32(1), ticks.Added)
	assert.Equal(t, uint32(5), ticks.Changed)
}

func TestDense_RemoveUncheckedPatchesSwappedSparseSlot(t *testing.T) {
	d := NewDense(nil)
	d.Insert(0, "a", 1)
	d.Insert(1, "b", 1)
	d.Insert(2, "c", 1)

	_, _, ok := d.RemoveUnchecked(0)
	require.True(t, ok)

	assert.False(t, d.Contains(0))
	assert.True(t, d.Contains(1))
	assert.True(t, d.Contains(2))

	// entity 2's row used to be last; after the swap-remove it must have
	// been relocated into row 0 and its sparse slot patched to match.
	v, ok := d.Get(2)
	require.True(t, ok)
	assert.Equal(t, "c", v)
	assert.Equal(t, 2, d.Len())
}

func TestDense_RemoveLastRowNeedsNoPatch(t *testing.T) {
	d := NewDense(nil)
	d.Insert(0, "a", 1)
	d.Insert(1, "b", 1)

	_, _, ok := d.RemoveUnchecked(1)
	require.True(t, ok)
	assert.Equal(t, 1, d.Len())
	assert.True(t, d.Contains(0))
}

func TestDense_RemoveUncheckedMissingEntityReturnsFalse(t *testing.T) {
	d := NewDense(nil)
	_, _, ok := d.RemoveUnchecked(9)
	assert.False(t, ok)
}

func TestDense_RemoveAndDropInvokesHook(t *testing.T) {
	var dropped []any
	d := NewDense(func(v any) { dropped = append(dropped, v) })
	d.Insert(0, "a", 1)

	ok := d.RemoveAndDrop(0)
	require.True(t, ok)
	assert.Equal(t, []any{"a"}, dropped)
}
