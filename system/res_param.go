package system

import (
	"fmt"

	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/component"
	"github.com/murklake/ecsframe/world"
)

// Res is a shared read-only view of resource T, mirroring the original's
// Res<'w, T> (param.rs). Go has no deref-based change tracking, so
// IsAdded/IsChanged are plain methods instead of reading through a smart
// pointer.
type Res[T any] struct {
	value          *T
	ticks          *change.Ticks
	lastChangeTick uint32
	changeTick     uint32
}

// Get returns the resource's current value.
func (r Res[T]) Get() T { return *r.value }

// IsAdded reports whether T was inserted since the observing system's last
// run.
func (r Res[T]) IsAdded() bool { return r.ticks.IsAdded(r.lastChangeTick, r.changeTick) }

// IsChanged reports whether T was mutated since the observing system's
// last run.
func (r Res[T]) IsChanged() bool { return r.ticks.IsChanged(r.lastChangeTick, r.changeTick) }

// ResParam is the Param descriptor for Res[T]; the system panics at Init if
// T has never been inserted as a resource, matching the original's
// eager-panic-at-boundary convention (spec.md §7).
type ResParam[T any] struct{}

func (ResParam[T]) Init(w *world.World, meta *Meta) any {
	rid, ok := world.ResourceIDOf[T](w)
	if !ok {
		panic(fmt.Sprintf("system: Res[%T] requires the resource to be inserted before the system using it runs", *new(T)))
	}
	meta.Access.AddRead(component.ResourceAccessID(rid))
	return rid
}

func (ResParam[T]) Fetch(w *world.World, state any, meta *Meta, changeTick uint32) any {
	id := state.(component.ID)
	v, ticks, ok := w.ResourceData().GetWithTicks(int(id))
	if !ok {
		panic(fmt.Sprintf("system: resource %T was removed before its system ran", *new(T)))
	}
	return Res[T]{value: v.(*T), ticks: ticks, lastChangeTick: meta.LastChangeTick, changeTick: changeTick}
}

// ResMutParam is the Param descriptor for change.Mut[T] resource access.
type ResMutParam[T any] struct{}

func (ResMutParam[T]) Init(w *world.World, meta *Meta) any {
	rid, ok := world.ResourceIDOf[T](w)
	if !ok {
		panic(fmt.Sprintf("system: ResMut[%T] requires the resource to be inserted before the system using it runs", *new(T)))
	}
	meta.Access.AddWrite(component.ResourceAccessID(rid))
	return rid
}

func (ResMutParam[T]) Fetch(w *world.World, state any, _ *Meta, changeTick uint32) any {
	id := state.(component.ID)
	v, ticks, ok := w.ResourceData().GetWithTicks(int(id))
	if !ok {
		panic(fmt.Sprintf("system: resource %T was removed before its system ran", *new(T)))
	}
	return change.NewMut(v.(*T), ticks, changeTick)
}
