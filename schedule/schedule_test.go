package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/murklake/ecsframe/system"
	"github.com/murklake/ecsframe/world"
)

func TestSchedule_NewHasReservedStages(t *testing.T) {
	s := New()
	assert.True(t, s.ContainsStage(First))
	assert.True(t, s.ContainsStage(Last))
}

func TestSchedule_AddStageReservedLabelPanics(t *testing.T) {
	s := Empty()
	assert.Panics(t, func() { s.AddStage(First, Sequential()) })
}

func TestSchedule_AddStageBeforeFirstPanics(t *testing.T) {
	s := New()
	mid := NewLabel[orderLabel]("mid", 99)
	assert.Panics(t, func() { s.AddStageBefore(First, mid, Sequential()) })
}

func TestSchedule_AddStageAfterLastPanics(t *testing.T) {
	s := New()
	mid := NewLabel[orderLabel]("mid", 99)
	assert.Panics(t, func() { s.AddStageAfter(Last, mid, Sequential()) })
}

func TestSchedule_RunOnceRunsStagesInOrder(t *testing.T) {
	w := world.New()

	var order []string
	s := New()
	mid := NewLabel[orderLabel]("mid", 100)
	s.AddStage(mid, Sequential())

	s.AddSystemToStage(First, AsDescriptor(system.Fn1("first", system.LocalParam[int]{}, func(*int) {
		order = append(order, "first")
	})))
	s.AddSystemToStage(mid, AsDescriptor(system.Fn1("mid", system.LocalParam[int]{}, func(*int) {
		order = append(order, "mid")
	})))
	s.AddSystemToStage(Last, AsDescriptor(system.Fn1("last", system.LocalParam[int]{}, func(*int) {
		order = append(order, "last")
	})))

	s.RunOnce(w)

	assert.Equal(t, []string{"first", "mid", "last"}, order)
}

func TestSchedule_RunOnceClearsTrackers(t *testing.T) {
	w := world.New()
	s := New()

	s.RunOnce(w)

	assert.Equal(t, w.ChangeTick(), w.LastChangeTick())
}

type tickEvent struct{ N int }

func TestSchedule_AddEventWiresUpdateIntoFirst(t *testing.T) {
	w := world.New()
	s := New()
	AddEvent[tickEvent](s, w)

	sendLabel := NewLabel[orderLabel]("send", 200)
	writer := system.Fn2("send-once", system.EventWriterParam[tickEvent]{}, system.LocalParam[bool]{},
		func(w system.EventWriter[tickEvent], sent *bool) {
			if !*sent {
				w.Send(tickEvent{N: 1})
				*sent = true
			}
		})
	s.AddSystemToStage(Last, NewDescriptor(writer).Label(sendLabel))

	var seenFirstPass, seenSecondPass int
	pass := 0
	reader := system.Fn1("read", system.EventReaderParam[tickEvent]{}, func(r system.EventReader[tickEvent]) {
		n := len(r.Iter())
		pass++
		if pass == 1 {
			seenFirstPass = n
		} else {
			seenSecondPass = n
		}
	})
	s.AddSystemToStage(Last, NewDescriptor(reader).After(sendLabel))

	s.RunOnce(w) // writer sends, reader (registered after writer in Last) sees it immediately
	assert.Equal(t, 1, seenFirstPass)

	s.RunOnce(w) // writer already sent its one event; reader's cursor is past it now
	assert.Equal(t, 0, seenSecondPass)
}
