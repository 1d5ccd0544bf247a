package query

import (
	"reflect"

	"github.com/murklake/ecsframe/access"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/storage"
	"github.com/murklake/ecsframe/world"
)

// withFetcher requires the entity to carry T, without reading its value.
// Ported from original_source/src/query/filter.rs's With<T>.
type withFetcher[T any] struct{}

// With requires the entity to carry T.
func With[T any]() fetcher { return withFetcher[T]{} }

func (withFetcher[T]) initState(w *world.World) any {
	var zero T
	return componentState{id: w.InitComponent(reflect.TypeOf(zero))}
}
func (withFetcher[T]) updateAccess(state any, fa *access.FilteredAccess) {
	fa.AddWith(state.(componentState).id)
}
func (withFetcher[T]) candidateSet(w *world.World, state any) (*entity.IDSet, bool) {
	return componentCandidateSet(w, state.(componentState).id)
}
func (withFetcher[T]) initFetch(w *world.World, state any, _, _ uint32) any {
	dense, _ := w.Storages().Get(state.(componentState).id)
	return componentFetch{dense: dense}
}
func (withFetcher[T]) contains(fetch any, e entity.Entity) bool {
	cf, ok := fetch.(componentFetch)
	return ok && cf.dense != nil && cf.dense.Contains(e.Index())
}
func (f withFetcher[T]) filterFetch(fetch any, e entity.Entity) bool { return f.contains(fetch, e) }
func (withFetcher[T]) fetch(any, entity.Entity) any                  { return struct{}{} }

// withoutFetcher requires the entity to NOT carry T.
type withoutFetcher[T any] struct{}

// Without requires the entity to not carry T.
func Without[T any]() fetcher { return withoutFetcher[T]{} }

func (withoutFetcher[T]) initState(w *world.World) any {
	var zero T
	return componentState{id: w.InitComponent(reflect.TypeOf(zero))}
}
func (withoutFetcher[T]) updateAccess(state any, fa *access.FilteredAccess) {
	fa.AddWithout(state.(componentState).id)
}
func (withoutFetcher[T]) candidateSet(*world.World, any) (*entity.IDSet, bool) {
	return nil, false // exclusion is handled by the state cache, not a positive candidate set
}
func (withoutFetcher[T]) initFetch(w *world.World, state any, _, _ uint32) any {
	dense, _ := w.Storages().Get(state.(componentState).id)
	return componentFetch{dense: dense}
}
func (withoutFetcher[T]) contains(fetch any, e entity.Entity) bool {
	cf, ok := fetch.(componentFetch)
	if !ok || cf.dense == nil {
		return true
	}
	return !cf.dense.Contains(e.Index())
}
func (f withoutFetcher[T]) filterFetch(fetch any, e entity.Entity) bool { return f.contains(fetch, e) }
func (withoutFetcher[T]) fetch(any, entity.Entity) any                  { return struct{}{} }

// changeFilterFetch is the shared fetch handle for Added/Changed.
type changeFilterFetch struct {
	dense          *storage.Dense
	lastChangeTick uint32
	changeTick     uint32
}

// addedFetcher yields a bool: whether T was added on e since the system's
// last run. Item type bool (not just a silent filter) so it can also be
// used as a query data term, matching spec.md §8 scenario 5's
// (&i32, Changed<bool>) shape.
type addedFetcher[T any] struct{}

// Added reports (as both a filter and a boolean data term) whether T was
// added on the entity since the observing system's last run.
func Added[T any]() fetcher { return addedFetcher[T]{} }

func (addedFetcher[T]) initState(w *world.World) any {
	var zero T
	return componentState{id: w.InitComponent(reflect.TypeOf(zero))}
}
func (addedFetcher[T]) updateAccess(state any, fa *access.FilteredAccess) {
	fa.AddRead(state.(componentState).id)
}
func (addedFetcher[T]) candidateSet(w *world.World, state any) (*entity.IDSet, bool) {
	return componentCandidateSet(w, state.(componentState).id)
}
func (addedFetcher[T]) initFetch(w *world.World, state any, lastChangeTick, changeTick uint32) any {
	dense, _ := w.Storages().Get(state.(componentState).id)
	return changeFilterFetch{dense: dense, lastChangeTick: lastChangeTick, changeTick: changeTick}
}
func (addedFetcher[T]) contains(fetch any, e entity.Entity) bool {
	cf := fetch.(changeFilterFetch)
	if cf.dense == nil {
		return false
	}
	ticks, ok := cf.dense.GetTicks(e.Index())
	if !ok {
		return false
	}
	return ticks.IsAdded(cf.lastChangeTick, cf.changeTick)
}
func (f addedFetcher[T]) filterFetch(fetch any, e entity.Entity) bool { return f.contains(fetch, e) }
func (f addedFetcher[T]) fetch(fetch any, e entity.Entity) any        { return f.contains(fetch, e) }

// changedFetcher yields a bool: whether T was mutated on e since the
// system's last run.
type changedFetcher[T any] struct{}

// Changed reports (as both a filter and a boolean data term) whether T was
// mutated on the entity since the observing system's last run.
func Changed[T any]() fetcher { return changedFetcher[T]{} }

func (changedFetcher[T]) initState(w *world.World) any {
	var zero T
	return componentState{id: w.InitComponent(reflect.TypeOf(zero))}
}
func (changedFetcher[T]) updateAccess(state any, fa *access.FilteredAccess) {
	fa.AddRead(state.(componentState).id)
}
func (changedFetcher[T]) candidateSet(w *world.World, state any) (*entity.IDSet, bool) {
	return componentCandidateSet(w, state.(componentState).id)
}
func (changedFetcher[T]) initFetch(w *world.World, state any, lastChangeTick, changeTick uint32) any {
	dense, _ := w.Storages().Get(state.(componentState).id)
	return changeFilterFetch{dense: dense, lastChangeTick: lastChangeTick, changeTick: changeTick}
}
func (changedFetcher[T]) contains(fetch any, e entity.Entity) bool {
	cf := fetch.(changeFilterFetch)
	if cf.dense == nil {
		return false
	}
	ticks, ok := cf.dense.GetTicks(e.Index())
	if !ok {
		return false
	}
	return ticks.IsChanged(cf.lastChangeTick, cf.changeTick)
}
func (f changedFetcher[T]) filterFetch(fetch any, e entity.Entity) bool { return f.contains(fetch, e) }
func (f changedFetcher[T]) fetch(fetch any, e entity.Entity) any        { return f.contains(fetch, e) }

// orFetcher matches if any branch matches; its candidate set is the union
// of branch candidate sets (or "no narrowing" if any branch can't narrow),
// and its access is the intersection of with/without constraints across
// branches via access.FilteredAccess.ExtendIntersect.
type orFetcher struct {
	branches []fetcher
}

// Or matches an entity if any of terms matches.
func Or(terms ...fetcher) fetcher { return orFetcher{branches: terms} }

func (o orFetcher) initState(w *world.World) any {
	states := make([]any, len(o.branches))
	for i, b := range o.branches {
		states[i] = b.initState(w)
	}
	return states
}

func (o orFetcher) updateAccess(state any, fa *access.FilteredAccess) {
	states := state.([]any)
	var merged *access.FilteredAccess
	for i, b := range o.branches {
		branchAccess := access.NewFilteredAccess()
		b.updateAccess(states[i], branchAccess)
		if merged == nil {
			merged = branchAccess
		} else {
			merged.ExtendIntersect(branchAccess)
		}
	}
	if merged != nil {
		fa.Extend(&merged.Set)
		for id := range merged.WithIDs() {
			fa.AddWith(id)
		}
		for id := range merged.WithoutIDs() {
			fa.AddWithout(id)
		}
	}
}

func (o orFetcher) candidateSet(w *world.World, state any) (*entity.IDSet, bool) {
	states := state.([]any)
	var union *entity.IDSet
	for i, b := range o.branches {
		set, ok := b.candidateSet(w, states[i])
		if !ok {
			return nil, false
		}
		if union == nil {
			union = set.Clone()
		} else {
			union.UnionWith(set)
		}
	}
	return union, union != nil
}

type orFetch struct {
	fetches []any
}

func (o orFetcher) initFetch(w *world.World, state any, lastChangeTick, changeTick uint32) any {
	states := state.([]any)
	fetches := make([]any, len(o.branches))
	for i, b := range o.branches {
		fetches[i] = b.initFetch(w, states[i], lastChangeTick, changeTick)
	}
	return orFetch{fetches: fetches}
}

func (o orFetcher) contains(fetch any, e entity.Entity) bool {
	of := fetch.(orFetch)
	for i, b := range o.branches {
		if b.contains(of.fetches[i], e) {
			return true
		}
	}
	return false
}

func (o orFetcher) filterFetch(fetch any, e entity.Entity) bool {
	of := fetch.(orFetch)
	for i, b := range o.branches {
		if b.filterFetch(of.fetches[i], e) {
			return true
		}
	}
	return false
}

func (o orFetcher) fetch(fetch any, e entity.Entity) any {
	of := fetch.(orFetch)
	for i, b := range o.branches {
		if b.contains(of.fetches[i], e) {
			return b.fetch(of.fetches[i], e)
		}
	}
	return nil
}
