package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSet_InsertContainsRemove(t *testing.T) {
	var s IDSet
	s.Insert(3)
	s.Insert(70) // crosses a word boundary

	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(70))
	assert.False(t, s.Contains(4))

	assert.True(t, s.Remove(3))
	assert.False(t, s.Contains(3))
	assert.False(t, s.Remove(3), "removing an absent bit returns false")
}

func TestIDSet_UnionIntersectDifference(t *testing.T) {
	var a, b IDSet
	a.Insert(1)
	a.Insert(2)
	b.Insert(2)
	b.Insert(3)

	union := a.Clone()
	union.UnionWith(&b)
	var got []int
	union.Iter(func(i int) { got = append(got, i) })
	assert.Equal(t, []int{1, 2, 3}, got)

	inter := a.Clone()
	inter.IntersectWith(&b)
	got = nil
	inter.Iter(func(i int) { got = append(got, i) })
	assert.Equal(t, []int{2}, got)

	diff := a.Clone()
	diff.DifferenceWith(&b)
	got = nil
	diff.Iter(func(i int) { got = append(got, i) })
	assert.Equal(t, []int{1}, got)
}

func TestIDSet_ResizeFillsNewBits(t *testing.T) {
	var s IDSet
	s.Resize(10, true)
	assert.Equal(t, 10, s.Len())
	for i := 0; i < 10; i++ {
		assert.True(t, s.Contains(i))
	}

	s.Resize(5, false)
	assert.Equal(t, 5, s.Len())
	assert.False(t, s.Contains(7))
}
