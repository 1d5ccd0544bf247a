// Package query implements the type-directed entity selection engine:
// borrow-checked component access, change-detection filters and ordered
// iteration over a world's entities. Grounded in
// original_source/src/query/{fetch,filter,query}.rs, whose const-generic
// WorldQuery trait (associated Item/Fetch/State types per query shape,
// tuple impls generated by macro up to arity 12) has no direct Go
// rendering: Go lacks associated types and variadic generics. This package
// instead exposes a small dynamic "fetcher" core operating on boxed `any`
// state/fetch/item values — general for any arity — with hand-written
// generic wrappers (Query1..Query4, QueryMut1..QueryMut2 in typed.go) for
// the common, compile-time-typed cases, the idiomatic-Go substitute for
// the original's macro-generated tuple impls.
//
// This runtime has no archetype tables (components live in independent
// dense columns, candidate entities are found by set intersection — see
// state.go), so the original's archetype-level matches_component_set
// prefilter has no counterpart here; it is folded into candidate-set
// computation instead.
package query

import (
	"github.com/murklake/ecsframe/access"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/world"
)

// fetcher is the general per-term contract every query/filter element
// implements. It mirrors spec.md §4.6's WorldQuery operations:
// init_fetch/contains/fetch/filter_fetch/init_state/update_component_access.
type fetcher interface {
	// initState registers whatever component ids this term needs and
	// returns opaque state to be reused across initFetch calls.
	initState(w *world.World) any

	// updateAccess records this term's read/write/with/without footprint.
	updateAccess(state any, fa *access.FilteredAccess)

	// candidateSet returns the set of entity indices this term could ever
	// match, used to intersect the query's overall candidate set before
	// iterating. Returns (set, ok); ok is false for terms (like Entity or
	// Option) that don't narrow the candidate set.
	candidateSet(w *world.World, state any) (*entity.IDSet, bool)

	// initFetch builds the per-run fetch handle (e.g. a pointer to the
	// relevant Dense column) from state.
	initFetch(w *world.World, state any, lastChangeTick, changeTick uint32) any

	// contains reports whether entity e satisfies this term at all
	// (present in storage, or satisfied as a filter).
	contains(fetch any, e entity.Entity) bool

	// filterFetch is contains in every term; Added/Changed filters fold
	// their change-tick predicate into contains itself.
	filterFetch(fetch any, e entity.Entity) bool

	// fetch returns this term's boxed item for e. Only called after
	// contains/filterFetch passed.
	fetch(fetch any, e entity.Entity) any
}

// entityFetcher yields the Entity identifier itself; it adds no access
// footprint and never narrows the candidate set, matching the original's
// impl for Entity.
type entityFetcher struct{}

func (entityFetcher) initState(*world.World) any                            { return nil }
func (entityFetcher) updateAccess(any, *access.FilteredAccess)               {}
func (entityFetcher) candidateSet(*world.World, any) (*entity.IDSet, bool)   { return nil, false }
func (entityFetcher) initFetch(*world.World, any, uint32, uint32) any        { return nil }
func (entityFetcher) contains(any, entity.Entity) bool                      { return true }
func (f entityFetcher) filterFetch(fetch any, e entity.Entity) bool          { return f.contains(fetch, e) }
func (entityFetcher) fetch(_ any, e entity.Entity) any                       { return e }

// Entity is the fetcher term yielding the Entity handle.
func Entity() fetcher { return entityFetcher{} }
