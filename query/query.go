package query

import (
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/world"
)

// Query is the dynamic, per-run handle over a State: it resolves candidate
// entities once and lets the caller walk them in ascending entity-index
// order, fetching each term's item lazily. Grounded in
// original_source/src/query/query.rs's Query<Q, F>, minus its archetype
// iteration (Each here just walks a precomputed entity slice).
type Query struct {
	world *world.World
	state *State

	fetches []any
	order   []entity.Entity
}

// New resolves state's candidates against w and builds the per-run fetch
// handles for every term. lastChangeTick/changeTick bound the window used by
// Added/Changed filters (spec.md §4.7): entities changed before
// lastChangeTick are considered unchanged from this run's perspective.
func New(w *world.World, state *State, lastChangeTick, changeTick uint32) *Query {
	state.checkWorld(w)

	fetches := make([]any, len(state.terms))
	for i, t := range state.terms {
		fetches[i] = t.initFetch(w, state.termStates[i], lastChangeTick, changeTick)
	}

	q := &Query{
		world:   w,
		state:   state,
		fetches: fetches,
	}
	q.order = state.candidates(w)
	return q
}

// matches reports whether e satisfies every term's contains and
// filterFetch checks for this run.
func (q *Query) matches(e entity.Entity) bool {
	for i, t := range q.state.terms {
		if !t.contains(q.fetches[i], e) {
			return false
		}
		if !t.filterFetch(q.fetches[i], e) {
			return false
		}
	}
	return true
}

// Each calls fn once per matching entity with its per-term items, in
// ascending entity-index order, mirroring the original's deterministic
// QueryIter order.
func (q *Query) Each(fn func(e entity.Entity, items []any)) {
	items := make([]any, len(q.state.terms))
	for _, e := range q.order {
		if !q.matches(e) {
			continue
		}
		for i, t := range q.state.terms {
			items[i] = t.fetch(q.fetches[i], e)
		}
		fn(e, items)
	}
}

// Get returns the per-term items for a single known entity, if it matches.
func (q *Query) Get(e entity.Entity) ([]any, bool) {
	if !q.world.ContainsEntity(e) || !q.matches(e) {
		return nil, false
	}
	items := make([]any, len(q.state.terms))
	for i, t := range q.state.terms {
		items[i] = t.fetch(q.fetches[i], e)
	}
	return items, true
}
