package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murklake/ecsframe/component"
	"github.com/murklake/ecsframe/event"
	"github.com/murklake/ecsframe/world"
)

type damageEvent struct{ Amount int }

func TestEventWriterThenEventReader_SeesSentEvent(t *testing.T) {
	w := world.New()
	world.InitResource[event.Events[damageEvent]](w)

	writer := Fn1("deal-damage", EventWriterParam[damageEvent]{}, func(w EventWriter[damageEvent]) {
		w.Send(damageEvent{Amount: 4})
	})
	writer.Init(w)
	writer.Run(w)

	var got []damageEvent
	reader := Fn1("collect-damage", EventReaderParam[damageEvent]{}, func(r EventReader[damageEvent]) {
		got = append(got, r.Iter()...)
	})
	reader.Init(w)
	reader.Run(w)

	assert.Equal(t, []damageEvent{{Amount: 4}}, got)
}

func TestEventReader_IndependentCursorsPerSystem(t *testing.T) {
	w := world.New()
	world.InitResource[event.Events[damageEvent]](w)

	writer := Fn1("deal-damage", EventWriterParam[damageEvent]{}, func(w EventWriter[damageEvent]) {
		w.Send(damageEvent{Amount: 1})
	})
	writer.Init(w)
	writer.Run(w)

	var firstCount, secondCount int
	first := Fn1("reader-one", EventReaderParam[damageEvent]{}, func(r EventReader[damageEvent]) {
		firstCount = len(r.Iter())
	})
	second := Fn1("reader-two", EventReaderParam[damageEvent]{}, func(r EventReader[damageEvent]) {
		secondCount = len(r.Iter())
	})
	first.Init(w)
	second.Init(w)
	first.Run(w)
	second.Run(w)

	assert.Equal(t, 1, firstCount)
	assert.Equal(t, 1, secondCount)

	// Neither reader sees the event a second time.
	firstCount = -1
	first.Run(w)
	assert.Equal(t, 0, firstCount)
}

func TestEventReaderParam_AccessRecordedAsRead(t *testing.T) {
	w := world.New()
	world.InitResource[event.Events[damageEvent]](w)

	sys := Fn1("reader", EventReaderParam[damageEvent]{}, func(EventReader[damageEvent]) {})
	sys.Init(w)

	require.NotNil(t, sys.Meta().Access)
	assert.False(t, sys.Meta().Access.ReadAll())

	rid, ok := world.ResourceIDOf[event.Events[damageEvent]](w)
	require.True(t, ok)
	assert.True(t, sys.Meta().Access.HasRead(component.ResourceAccessID(rid)))
	assert.False(t, sys.Meta().Access.HasWrite(component.ResourceAccessID(rid)))
}

func TestEventWriterParam_PanicsIfEventTypeNeverRegistered(t *testing.T) {
	w := world.New()

	sys := Fn1("deal-damage", EventWriterParam[damageEvent]{}, func(EventWriter[damageEvent]) {})
	assert.Panics(t, func() { sys.Init(w) })
}
