package system

import (
	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/event"
	"github.com/murklake/ecsframe/world"
)

// EventReader is the read side of an event queue: a per-system cursor
// (an *event.ManualReader[E] kept in the param's state) plus a shared read of the
// Events[E] resource. Grounded in original_source/src/event.rs's
// EventReader<'w, 's, E>.
type EventReader[E any] struct {
	reader *event.ManualReader[E]
	events *event.Events[E]
}

// Iter returns every event not yet seen by this system, oldest first.
func (r EventReader[E]) Iter() []E { return r.reader.Iter(r.events) }

// Len returns how many unread events remain.
func (r EventReader[E]) Len() int { return r.reader.Len(r.events) }

// IsEmpty reports whether there is nothing left to read.
func (r EventReader[E]) IsEmpty() bool { return r.reader.IsEmpty(r.events) }

// EventReaderParam is the Param descriptor for EventReader[E]. Like
// ResParam, it panics at Init if E was never registered as an event type —
// here, via a schedule's AddEvent[E], which is what actually allocates the
// Events[E] resource and wires its per-pass buffer swap into stage First.
type EventReaderParam[E any] struct{}

type eventReaderState[E any] struct {
	reader *event.ManualReader[E]
	resID  any
}

func (EventReaderParam[E]) Init(w *world.World, meta *Meta) any {
	resParam := ResParam[event.Events[E]]{}
	state := resParam.Init(w, meta)
	return eventReaderState[E]{reader: &event.ManualReader[E]{}, resID: state}
}

func (EventReaderParam[E]) Fetch(w *world.World, state any, meta *Meta, changeTick uint32) any {
	s := state.(eventReaderState[E])
	res := ResParam[event.Events[E]]{}.Fetch(w, s.resID, meta, changeTick).(Res[event.Events[E]])
	events := res.value
	return EventReader[E]{reader: s.reader, events: events}
}

// EventWriter is the send side of an event queue: an exclusive write of
// the Events[E] resource.
type EventWriter[E any] struct {
	events *event.Events[E]
}

// Send appends event to the queue.
func (w EventWriter[E]) Send(event E) { w.events.Send(event) }

// EventWriterParam is the Param descriptor for EventWriter[E]. It panics
// at Init if E was never registered via a schedule's AddEvent[E], matching
// spec.md's chosen resolution for sending to an unregistered event type.
type EventWriterParam[E any] struct{}

func (EventWriterParam[E]) Init(w *world.World, meta *Meta) any {
	resMutParam := ResMutParam[event.Events[E]]{}
	return resMutParam.Init(w, meta)
}

func (EventWriterParam[E]) Fetch(w *world.World, state any, meta *Meta, changeTick uint32) any {
	mut := ResMutParam[event.Events[E]]{}.Fetch(w, state, meta, changeTick).(change.Mut[event.Events[E]])
	return EventWriter[E]{events: mut.GetMut()}
}
