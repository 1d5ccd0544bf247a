package query

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/murklake/ecsframe/access"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/world"
)

// State is the built, reusable description of a query's shape: one fetcher
// per term, each term's resolved state, and the merged access footprint.
// Grounded in original_source/src/query/state.rs's QueryState, minus the
// archetype/table bookkeeping this storage model doesn't have.
type State struct {
	worldID world.ID

	terms      []fetcher
	termStates []any

	access *access.FilteredAccess
}

// NewState builds a State for terms against w, registering every term's
// component ids and merging their access footprints. Panics on a read/write
// conflict within the same query (e.g. Read[T] and Write[T] together),
// matching the original's QueryState::new access-conflict panic.
func NewState(w *world.World, terms ...fetcher) *State {
	s := &State{
		worldID:    w.ID(),
		terms:      terms,
		termStates: make([]any, len(terms)),
		access:     access.NewFilteredAccess(),
	}

	for i, t := range terms {
		state := t.initState(w)
		s.termStates[i] = state

		termAccess := access.NewFilteredAccess()
		t.updateAccess(state, termAccess)

		if !s.access.IsCompatible(termAccess) {
			const msg = "query: incompatible accesses within the same query (conflicting Read/Write of the same component)"
			log.Error().Int("term", i).Msg(msg)
			panic(msg)
		}
		s.access.Set.Extend(&termAccess.Set)
		for id := range termAccess.WithIDs() {
			s.access.AddWith(id)
		}
		for id := range termAccess.WithoutIDs() {
			s.access.AddWithout(id)
		}
	}

	return s
}

// Access exposes the merged access footprint, used by the scheduler to
// decide whether two systems may run in parallel.
func (s *State) Access() *access.FilteredAccess { return s.access }

func (s *State) checkWorld(w *world.World) {
	if w.ID() != s.worldID {
		panic(fmt.Sprintf("query: State used with a different world (built against %d, called with %d)", s.worldID, w.ID()))
	}
}

// candidates intersects every term's candidate set (terms that don't narrow
// the set, like Entity/Option, are skipped) and then removes any entity
// excluded by the merged Without constraints. Returns every live entity if
// no term narrows the set at all.
func (s *State) candidates(w *world.World) []entity.Entity {
	var merged *entity.IDSet
	for i, t := range s.terms {
		set, ok := t.candidateSet(w, s.termStates[i])
		if !ok {
			continue
		}
		if merged == nil {
			merged = set.Clone()
		} else {
			merged.IntersectWith(set)
		}
	}

	all := w.Entities()
	if merged == nil {
		merged = all.EntityIDs().Clone()
	}

	for id := range s.access.WithoutIDs() {
		if excl, ok := w.Storages().Get(id); ok {
			var exclSet entity.IDSet
			for _, idx := range excl.EntityIndices() {
				exclSet.Insert(int(idx))
			}
			merged.DifferenceWith(&exclSet)
		}
	}

	result := make([]entity.Entity, 0, merged.Len())
	merged.Iter(func(index int) {
		e, ok := all.Get(uint32(index))
		if ok {
			result = append(result, e)
		}
	})
	return result
}
