package system

import (
	"github.com/murklake/ecsframe/query"
	"github.com/murklake/ecsframe/world"
)

// Query1Param is the Param descriptor binding query.Query1[T] to a system:
// State is built once at Init (registering T and extending the system's
// access footprint), and a fresh Query is resolved from it every run.
type Query1Param[T any] struct{}

func (Query1Param[T]) Init(w *world.World, meta *Meta) any {
	state := query.NewState(w, query.Read[T]())
	meta.Access.Set.Extend(&state.Access().Set)
	for id := range state.Access().WithIDs() {
		meta.Access.AddWith(id)
	}
	for id := range state.Access().WithoutIDs() {
		meta.Access.AddWithout(id)
	}
	return state
}

func (Query1Param[T]) Fetch(w *world.World, state any, meta *Meta, changeTick uint32) any {
	q := query.New(w, state.(*query.State), meta.LastChangeTick, changeTick)
	return query.FromQuery1[T](q)
}

// Query2Param is the two-term read-only counterpart of Query1Param.
type Query2Param[A, B any] struct{}

func (Query2Param[A, B]) Init(w *world.World, meta *Meta) any {
	state := query.NewState(w, query.Read[A](), query.Read[B]())
	meta.Access.Set.Extend(&state.Access().Set)
	return state
}

func (Query2Param[A, B]) Fetch(w *world.World, state any, meta *Meta, changeTick uint32) any {
	q := query.New(w, state.(*query.State), meta.LastChangeTick, changeTick)
	return query.FromQuery2[A, B](q)
}

// QueryMut1Param is the single-term exclusive-write counterpart of
// Query1Param.
type QueryMut1Param[T any] struct{}

func (QueryMut1Param[T]) Init(w *world.World, meta *Meta) any {
	state := query.NewState(w, query.Write[T]())
	meta.Access.Set.Extend(&state.Access().Set)
	return state
}

func (QueryMut1Param[T]) Fetch(w *world.World, state any, meta *Meta, changeTick uint32) any {
	q := query.New(w, state.(*query.State), meta.LastChangeTick, changeTick)
	return query.FromQueryMut1[T](q)
}

// QueryMut2Param is the two-term exclusive-write counterpart of
// Query1Param.
type QueryMut2Param[A, B any] struct{}

func (QueryMut2Param[A, B]) Init(w *world.World, meta *Meta) any {
	state := query.NewState(w, query.Write[A](), query.Write[B]())
	meta.Access.Set.Extend(&state.Access().Set)
	return state
}

func (QueryMut2Param[A, B]) Fetch(w *world.World, state any, meta *Meta, changeTick uint32) any {
	q := query.New(w, state.(*query.State), meta.LastChangeTick, changeTick)
	return query.FromQueryMut2[A, B](q)
}
