package change

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicks_IsAddedTrueRightAfterInsertion(t *testing.T) {
	ticks := NewTicks(10)
	assert.True(t, ticks.IsAdded(0, 10))
	assert.True(t, ticks.IsChanged(0, 10))
}

func TestTicks_IsAddedFalseOnceLastRunIsCurrent(t *testing.T) {
	ticks := NewTicks(10)
	assert.False(t, ticks.IsAdded(10, 11), "a system that already observed tick 10 shouldn't see it as newly added")
}

func TestTicks_SetChangedDoesNotTouchAdded(t *testing.T) {
	ticks := NewTicks(5)
	ticks.SetChanged(20)

	assert.Equal(t, uint32(5), ticks.Added)
	assert.Equal(t, uint32(20), ticks.Changed)
	assert.True(t, ticks.IsChanged(10, 20))
	assert.False(t, ticks.IsAdded(10, 20), "added tick predates the system's last run, so it's no longer 'added'")
}

func TestTicks_CheckTicksClampsOveragedTick(t *testing.T) {
	ticks := Ticks{Added: 0, Changed: 0}
	now := MaxAge + 100

	ticks.CheckTicks(now)

	assert.Equal(t, now-MaxAge, ticks.Added)
	assert.Equal(t, now-MaxAge, ticks.Changed)
}

func TestMut_GetMutMarksChanged(t *testing.T) {
	v := 1
	ticks := NewTicks(0)
	m := NewMut(&v, &ticks, 5)

	assert.False(t, m.IsChanged(0), "no mutation yet beyond the initial insert stamp at the same tick")

	*m.GetMut() = 2
	assert.Equal(t, 2, v)
	assert.Equal(t, uint32(5), ticks.Changed)
}

func TestMut_SetMarksChanged(t *testing.T) {
	v := 1
	ticks := NewTicks(0)
	m := NewMut(&v, &ticks, 7)

	m.Set(9)
	assert.Equal(t, 9, v)
	assert.Equal(t, uint32(7), ticks.Changed)
}
