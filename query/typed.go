package query

import (
	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/world"
)

// This file is the idiomatic-Go substitute for the original's
// impl_world_query_tuple! macro, which generates WorldQuery impls for
// tuples up to arity 12. Go has no variadic generics, so each arity gets a
// hand-written wrapper instead; spec.md §8's concrete scenarios never need
// more than 4 read terms or 2 write terms in one query; Query/QueryMut
// wrappers beyond that can be added the same way if a future scenario needs
// them.

// Query1 is a read-only, single-term query over T.
type Query1[T any] struct{ q *Query }

// NewQuery1 builds a single-term read query against w.
func NewQuery1[T any](w *world.World) *Query1[T] {
	state := NewState(w, Read[T]())
	return &Query1[T]{q: New(w, state, 0, w.ChangeTick())}
}

// FromQuery1 wraps an already-resolved dynamic Query, used by the system
// package to bind a cached State to a fresh per-run Query without exposing
// Query1's private field.
func FromQuery1[T any](q *Query) *Query1[T] { return &Query1[T]{q: q} }

// Each visits every entity carrying T.
func (q *Query1[T]) Each(fn func(e entity.Entity, a *T)) {
	q.q.Each(func(e entity.Entity, items []any) {
		fn(e, items[0].(*T))
	})
}

// Query2 is a read-only, two-term query over (A, B).
type Query2[A, B any] struct{ q *Query }

// NewQuery2 builds a two-term read query against w.
func NewQuery2[A, B any](w *world.World) *Query2[A, B] {
	state := NewState(w, Read[A](), Read[B]())
	return &Query2[A, B]{q: New(w, state, 0, w.ChangeTick())}
}

// FromQuery2 wraps an already-resolved dynamic Query, analogous to
// FromQuery1.
func FromQuery2[A, B any](q *Query) *Query2[A, B] { return &Query2[A, B]{q: q} }

// Each visits every entity carrying both A and B.
func (q *Query2[A, B]) Each(fn func(e entity.Entity, a *A, b *B)) {
	q.q.Each(func(e entity.Entity, items []any) {
		fn(e, items[0].(*A), items[1].(*B))
	})
}

// Query3 is a read-only, three-term query over (A, B, C).
type Query3[A, B, C any] struct{ q *Query }

// NewQuery3 builds a three-term read query against w.
func NewQuery3[A, B, C any](w *world.World) *Query3[A, B, C] {
	state := NewState(w, Read[A](), Read[B](), Read[C]())
	return &Query3[A, B, C]{q: New(w, state, 0, w.ChangeTick())}
}

// Each visits every entity carrying A, B and C.
func (q *Query3[A, B, C]) Each(fn func(e entity.Entity, a *A, b *B, c *C)) {
	q.q.Each(func(e entity.Entity, items []any) {
		fn(e, items[0].(*A), items[1].(*B), items[2].(*C))
	})
}

// Query4 is a read-only, four-term query over (A, B, C, D).
type Query4[A, B, C, D any] struct{ q *Query }

// NewQuery4 builds a four-term read query against w.
func NewQuery4[A, B, C, D any](w *world.World) *Query4[A, B, C, D] {
	state := NewState(w, Read[A](), Read[B](), Read[C](), Read[D]())
	return &Query4[A, B, C, D]{q: New(w, state, 0, w.ChangeTick())}
}

// Each visits every entity carrying A, B, C and D.
func (q *Query4[A, B, C, D]) Each(fn func(e entity.Entity, a *A, b *B, c *C, d *D)) {
	q.q.Each(func(e entity.Entity, items []any) {
		fn(e, items[0].(*A), items[1].(*B), items[2].(*C), items[3].(*D))
	})
}

// QueryMut1 is a single-term query granting exclusive write access to T.
type QueryMut1[T any] struct{ q *Query }

// NewQueryMut1 builds a single-term write query against w. lastChangeTick is
// the caller's own last-run tick, used if the term is wrapped with a
// Changed/Added filter; pass 0 when no such filter is attached.
func NewQueryMut1[T any](w *world.World, lastChangeTick uint32) *QueryMut1[T] {
	state := NewState(w, Write[T]())
	return &QueryMut1[T]{q: New(w, state, lastChangeTick, w.ChangeTick())}
}

// FromQueryMut1 wraps an already-resolved dynamic Query, analogous to
// FromQuery1.
func FromQueryMut1[T any](q *Query) *QueryMut1[T] { return &QueryMut1[T]{q: q} }

// Each visits every entity carrying T, yielding a mutable handle.
func (q *QueryMut1[T]) Each(fn func(e entity.Entity, a change.Mut[T])) {
	q.q.Each(func(e entity.Entity, items []any) {
		fn(e, items[0].(change.Mut[T]))
	})
}

// QueryMut2 is a two-term query granting exclusive write access to A and B.
type QueryMut2[A, B any] struct{ q *Query }

// NewQueryMut2 builds a two-term write query against w.
func NewQueryMut2[A, B any](w *world.World, lastChangeTick uint32) *QueryMut2[A, B] {
	state := NewState(w, Write[A](), Write[B]())
	return &QueryMut2[A, B]{q: New(w, state, lastChangeTick, w.ChangeTick())}
}

// FromQueryMut2 wraps an already-resolved dynamic Query, analogous to
// FromQuery1.
func FromQueryMut2[A, B any](q *Query) *QueryMut2[A, B] { return &QueryMut2[A, B]{q: q} }

// Each visits every entity carrying both A and B, yielding mutable handles.
func (q *QueryMut2[A, B]) Each(fn func(e entity.Entity, a change.Mut[A], b change.Mut[B])) {
	q.q.Each(func(e entity.Entity, items []any) {
		fn(e, items[0].(change.Mut[A]), items[1].(change.Mut[B]))
	})
}
