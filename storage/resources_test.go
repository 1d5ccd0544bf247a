package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources_InsertGetRemove(t *testing.T) {
	r := NewResources()
	r.Insert(0, 42, 1)

	v, ok := r.Get(0)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	removed, ok := r.Remove(0)
	require.True(t, ok)
	assert.Equal(t, 42, removed)
	assert.False(t, r.Contains(0))
}

func TestResources_GetWithTicksAllowsInPlaceMutation(t *testing.T) {
	r := NewResources()
	r.Insert(0, 1, 10)

	_, ticks, ok := r.GetWithTicks(0)
	require.True(t, ok)
	ticks.SetChanged(20)

	_, ticks2, _ := r.GetWithTicks(0)
	assert.Equal(t, uint32(20), ticks2.Changed)
}
