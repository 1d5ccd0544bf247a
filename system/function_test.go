package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/command"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/query"
	"github.com/murklake/ecsframe/world"
)

type position struct{ X int }
type counter struct{ N int }

func TestFn1_QueryParamVisitsEntities(t *testing.T) {
	w := world.New()
	e1 := w.Spawn()
	world.InsertComponent(w, e1, position{X: 5})
	e2 := w.Spawn()
	world.InsertComponent(w, e2, position{X: 7})

	var total int
	sys := Fn1("sum-positions", Query1Param[position]{}, func(q *query.Query1[position]) {
		q.Each(func(_ entity.Entity, p *position) {
			total += p.X
		})
	})

	sys.Init(w)
	sys.Run(w)
	sys.Apply(w)

	assert.Equal(t, 12, total)
}

func TestFn1_ResParamReadsResource(t *testing.T) {
	w := world.New()
	world.InsertResource(w, counter{N: 3})

	var observed int
	sys := Fn1("read-counter", ResParam[counter]{}, func(r Res[counter]) {
		observed = r.Get().N
	})

	sys.Init(w)
	sys.Run(w)
	sys.Apply(w)

	assert.Equal(t, 3, observed)
}

func TestFn1_ResMutParamMutatesResource(t *testing.T) {
	w := world.New()
	world.InsertResource(w, counter{N: 0})

	sys := Fn1("increment-counter", ResMutParam[counter]{}, func(r change.Mut[counter]) {
		r.GetMut().N++
	})

	sys.Init(w)
	sys.Run(w)
	sys.Apply(w)

	got, _ := world.Resource[counter](w)
	assert.Equal(t, 1, got.N)
}

func TestFn1_CommandsSpawnsDeferredEntity(t *testing.T) {
	w := world.New()

	var spawned bool
	sys := Fn1("spawn-via-commands", CommandsParam{}, func(cmds command.Commands) {
		command.Insert(cmds.Spawn(), position{X: 9})
		spawned = true
	})

	sys.Init(w)
	sys.Run(w)
	assert.True(t, spawned)

	sys.Apply(w) // flushes the deferred spawn+insert

	var found int
	reader := Fn1("count-positions", Query1Param[position]{}, func(q *query.Query1[position]) {
		q.Each(func(_ entity.Entity, p *position) {
			found++
			assert.Equal(t, 9, p.X)
		})
	})
	reader.Init(w)
	reader.Run(w)
	assert.Equal(t, 1, found)
}

func TestMeta_AccessPopulatedAfterInit(t *testing.T) {
	w := world.New()
	world.InsertResource(w, counter{N: 1})

	sys := Fn1("reader", ResParam[counter]{}, func(Res[counter]) {})
	sys.Init(w)

	require.NotNil(t, sys.Meta())
	require.NotNil(t, sys.Meta().Access)
	assert.False(t, sys.Meta().Access.ReadAll(), "a Res[T] reader should only record a targeted read, not ReadAll")
}

func TestLocalParam_PersistsAcrossRuns(t *testing.T) {
	w := world.New()

	tally := 0
	sys := Fn1("tally", LocalParam[int]{}, func(n *int) {
		*n++
		tally = *n
	})

	sys.Init(w)
	sys.Run(w)
	sys.Run(w)
	sys.Run(w)
	assert.Equal(t, 3, tally, "the Local kept its value across the three runs")

	// A second System built from the same LocalParam gets its own Local.
	count := -1
	sys2 := Fn1("read-tally", LocalParam[int]{}, func(n *int) {
		count = *n
	})
	sys2.Init(w)
	sys2.Run(w)
	assert.Equal(t, 0, count) // a fresh System instance starts its own Local at zero
}
