package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/world"
)

type position struct{ X, Y int }
type velocity struct{ X, Y int }
type marker struct{}

func TestQuery1_VisitsOnlyMatchingEntities(t *testing.T) {
	w := world.New()

	e1 := w.Spawn()
	world.InsertComponent(w, e1, position{X: 1})

	e2 := w.Spawn()
	world.InsertComponent(w, e2, position{X: 2})
	world.InsertComponent(w, e2, velocity{X: 9})

	w.Spawn() // no position at all

	q := NewQuery1[position](w)

	seen := map[entity.Entity]int{}
	q.Each(func(e entity.Entity, p *position) {
		seen[e] = p.X
	})

	assert.Len(t, seen, 2)
	assert.Equal(t, 1, seen[e1])
	assert.Equal(t, 2, seen[e2])
}

func TestQuery2_RequiresBothComponents(t *testing.T) {
	w := world.New()

	e1 := w.Spawn()
	world.InsertComponent(w, e1, position{X: 1})
	world.InsertComponent(w, e1, velocity{X: 5})

	e2 := w.Spawn()
	world.InsertComponent(w, e2, position{X: 2}) // no velocity

	q := NewQuery2[position, velocity](w)

	count := 0
	q.Each(func(e entity.Entity, p *position, v *velocity) {
		count++
		assert.Equal(t, e1, e)
		assert.Equal(t, 5, v.X)
	})
	assert.Equal(t, 1, count)
}

func TestQueryMut1_MutatesThroughHandle(t *testing.T) {
	w := world.New()
	e := w.Spawn()
	world.InsertComponent(w, e, position{X: 1})

	q := NewQueryMut1[position](w, 0)
	q.Each(func(_ entity.Entity, p change.Mut[position]) {
		p.GetMut().X = 42
	})

	got, _ := world.GetComponent[position](w, e)
	assert.Equal(t, 42, got.X)
}

func TestState_RejectsConflictingReadWrite(t *testing.T) {
	w := world.New()

	assert.Panics(t, func() {
		NewState(w, Read[position](), Write[position]())
	})
}

func TestQuery_WithWithoutFilters(t *testing.T) {
	w := world.New()

	e1 := w.Spawn()
	world.InsertComponent(w, e1, position{X: 1})
	world.InsertComponent(w, e1, marker{})

	e2 := w.Spawn()
	world.InsertComponent(w, e2, position{X: 2})

	state := NewState(w, Read[position](), With[marker]())
	q := New(w, state, 0, w.ChangeTick())

	var got []entity.Entity
	q.Each(func(e entity.Entity, items []any) {
		got = append(got, e)
	})
	require.Len(t, got, 1)
	assert.Equal(t, e1, got[0])

	state2 := NewState(w, Read[position](), Without[marker]())
	q2 := New(w, state2, 0, w.ChangeTick())

	var got2 []entity.Entity
	q2.Each(func(e entity.Entity, items []any) {
		got2 = append(got2, e)
	})
	require.Len(t, got2, 1)
	assert.Equal(t, e2, got2[0])
}

func TestQuery_OptionTerm(t *testing.T) {
	w := world.New()

	e1 := w.Spawn()
	world.InsertComponent(w, e1, position{X: 1})
	world.InsertComponent(w, e1, velocity{X: 9})

	e2 := w.Spawn()
	world.InsertComponent(w, e2, position{X: 2})

	state := NewState(w, Read[position](), Option(Read[velocity]()))
	q := New(w, state, 0, w.ChangeTick())

	results := map[entity.Entity]bool{}
	q.Each(func(e entity.Entity, items []any) {
		pair := items[1].([2]any)
		results[e] = pair[1].(bool)
	})

	assert.True(t, results[e1])
	assert.False(t, results[e2])
}

func TestQuery_OrFilter(t *testing.T) {
	w := world.New()

	e1 := w.Spawn() // has position only
	world.InsertComponent(w, e1, position{X: 1})

	e2 := w.Spawn() // has velocity only
	world.InsertComponent(w, e2, velocity{X: 2})

	e3 := w.Spawn() // has neither
	world.InsertComponent(w, e3, marker{})

	state := NewState(w, Entity(), Or(With[position](), With[velocity]()))
	q := New(w, state, 0, w.ChangeTick())

	var got []entity.Entity
	q.Each(func(e entity.Entity, items []any) {
		got = append(got, e)
	})

	assert.Contains(t, got, e1)
	assert.Contains(t, got, e2)
	assert.NotContains(t, got, e3)
}

func TestQuery_ChangedFilterDetectsMutation(t *testing.T) {
	w := world.New()
	e := w.Spawn()
	world.InsertComponent(w, e, position{X: 1})

	lastRun := w.ChangeTick()
	w.IncrementChangeTick()

	m, ok := world.GetMutComponent[position](w, e)
	require.True(t, ok)
	m.GetMut().X = 2

	state := NewState(w, Changed[position]())
	q := New(w, state, lastRun, w.ChangeTick())

	count := 0
	q.Each(func(e entity.Entity, items []any) {
		count++
		assert.True(t, items[0].(bool))
	})
	assert.Equal(t, 1, count)
}
