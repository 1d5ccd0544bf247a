package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murklake/ecsframe/world"
)

type position struct{ X int }

func TestQueue_SpawnInsertDeferredUntilApply(t *testing.T) {
	w := world.New()
	var q Queue
	cmds := New(&q, w)

	ec := cmds.Spawn()
	e := ec.Entity()
	Insert(ec, position{X: 7})

	// Not visible yet: the component insert is deferred.
	_, ok := world.GetComponent[position](w, e)
	assert.False(t, ok)

	q.Apply(w)

	got, ok := world.GetComponent[position](w, e)
	require.True(t, ok)
	assert.Equal(t, 7, got.X)
}

func TestQueue_DespawnDeferred(t *testing.T) {
	w := world.New()
	e := w.Spawn()
	world.InsertComponent(w, e, position{X: 1})

	var q Queue
	cmds := New(&q, w)
	cmds.Entity(e).Despawn()

	assert.True(t, w.ContainsEntity(e))
	q.Apply(w)
	assert.False(t, w.ContainsEntity(e))
}

func TestQueue_RemoveDeferred(t *testing.T) {
	w := world.New()
	e := w.Spawn()
	world.InsertComponent(w, e, position{X: 1})

	var q Queue
	cmds := New(&q, w)
	Remove[position](cmds.Entity(e))

	q.Apply(w)
	_, ok := world.GetComponent[position](w, e)
	assert.False(t, ok)
}

func TestCommands_EntityPanicsOnDeadEntity(t *testing.T) {
	w := world.New()
	e := w.Spawn()
	w.Despawn(e)

	var q Queue
	cmds := New(&q, w)
	assert.Panics(t, func() { cmds.Entity(e) })
}
