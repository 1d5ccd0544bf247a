package access

import (
	"testing"

	"github.com/murklake/ecsframe/component"
	"github.com/stretchr/testify/assert"
)

func TestSet_IsCompatible(t *testing.T) {
	a := NewSet()
	a.AddRead(1)

	b := NewSet()
	b.AddRead(1)
	assert.True(t, a.IsCompatible(b), "two readers of the same component are compatible")

	c := NewSet()
	c.AddWrite(1)
	assert.False(t, a.IsCompatible(c), "a reader and a writer of the same component conflict")
	assert.False(t, c.IsCompatible(c), "a writer never runs alongside another access to the same component")
}

func TestSet_ReadAllConflictsWithAnyWrite(t *testing.T) {
	a := NewSet()
	a.AddReadAll()

	w := NewSet()
	w.AddWrite(1)
	assert.False(t, a.IsCompatible(w))

	r := NewSet()
	r.AddRead(1)
	assert.True(t, a.IsCompatible(r))
}

func TestFilteredAccess_WithWithoutDisjointnessExemption(t *testing.T) {
	a := NewFilteredAccess()
	a.AddWrite(component.ID(1))
	a.AddWith(component.ID(2))

	b := NewFilteredAccess()
	b.AddWrite(component.ID(1))
	b.AddWithout(component.ID(2))

	assert.True(t, a.IsCompatible(b), "disjoint With(2)/Without(2) guarantee the two queries never match the same entity")
}

func TestFilteredAccess_OverlappingWriteWithoutDisjointFiltersConflicts(t *testing.T) {
	a := NewFilteredAccess()
	a.AddWrite(component.ID(1))

	b := NewFilteredAccess()
	b.AddWrite(component.ID(1))

	assert.False(t, a.IsCompatible(b))
}

func TestFilteredAccess_ExtendIntersectKeepsOnlyCommonFilters(t *testing.T) {
	a := NewFilteredAccess()
	a.AddWith(component.ID(1))
	a.AddWith(component.ID(2))

	b := NewFilteredAccess()
	b.AddWith(component.ID(2))

	a.ExtendIntersect(b)

	_, has1 := a.with[component.ID(1)]
	_, has2 := a.with[component.ID(2)]
	assert.False(t, has1)
	assert.True(t, has2)
}
