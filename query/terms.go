package query

import (
	"reflect"

	"github.com/murklake/ecsframe/access"
	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/component"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/storage"
	"github.com/murklake/ecsframe/world"
)

// componentState carries the resolved component id; initFetch looks up the
// backing Dense column from it on every run.
type componentState struct {
	id component.ID
}

type componentFetch struct {
	dense      *storage.Dense
	changeTick uint32
}

// readFetcher yields *T — a read-only-by-convention pointer into the
// column. Go has no immutable-reference type, so unlike the original's
// &T vs &mut T split, read-only access here is enforced by discipline, not
// the type system; the access set still records a shared Read so the
// parallel executor's conflict detection stays meaningful.
type readFetcher[T any] struct{}

func (readFetcher[T]) initState(w *world.World) any {
	var zero T
	id := w.InitComponent(reflect.TypeOf(zero))
	return componentState{id: id}
}

func (readFetcher[T]) updateAccess(state any, fa *access.FilteredAccess) {
	fa.AddRead(state.(componentState).id)
}

func (readFetcher[T]) candidateSet(w *world.World, state any) (*entity.IDSet, bool) {
	return componentCandidateSet(w, state.(componentState).id)
}

func (readFetcher[T]) initFetch(w *world.World, state any, _, _ uint32) any {
	dense, _ := w.Storages().Get(state.(componentState).id)
	return componentFetch{dense: dense}
}

func (readFetcher[T]) contains(fetch any, e entity.Entity) bool {
	cf := fetch.(componentFetch)
	return cf.dense != nil && cf.dense.Contains(e.Index())
}

func (f readFetcher[T]) filterFetch(fetch any, e entity.Entity) bool { return f.contains(fetch, e) }

func (readFetcher[T]) fetch(fetch any, e entity.Entity) any {
	cf := fetch.(componentFetch)
	row, _ := cf.dense.Row(e.Index())
	return cf.dense.GetDataPtr(row).(*T)
}

// Read is the term constructor for a shared read of T.
func Read[T any]() fetcher { return readFetcher[T]{} }

// writeFetcher yields change.Mut[T], marking the slot changed once the
// caller calls GetMut/Set on it.
type writeFetcher[T any] struct{}

func (writeFetcher[T]) initState(w *world.World) any {
	var zero T
	id := w.InitComponent(reflect.TypeOf(zero))
	return componentState{id: id}
}

func (writeFetcher[T]) updateAccess(state any, fa *access.FilteredAccess) {
	fa.AddWrite(state.(componentState).id)
}

func (writeFetcher[T]) candidateSet(w *world.World, state any) (*entity.IDSet, bool) {
	return componentCandidateSet(w, state.(componentState).id)
}

func (writeFetcher[T]) initFetch(w *world.World, state any, _, changeTick uint32) any {
	dense, _ := w.Storages().Get(state.(componentState).id)
	return componentFetch{dense: dense, changeTick: changeTick}
}

func (writeFetcher[T]) contains(fetch any, e entity.Entity) bool {
	cf := fetch.(componentFetch)
	return cf.dense != nil && cf.dense.Contains(e.Index())
}

func (f writeFetcher[T]) filterFetch(fetch any, e entity.Entity) bool { return f.contains(fetch, e) }

func (writeFetcher[T]) fetch(fetch any, e entity.Entity) any {
	cf := fetch.(componentFetch)
	row, _ := cf.dense.Row(e.Index())
	ptr := cf.dense.GetDataPtr(row).(*T)
	ticks := cf.dense.GetTicksAtRow(row)
	return change.NewMut(ptr, ticks, cf.changeTick)
}

// Write is the term constructor for an exclusive write of T.
func Write[T any]() fetcher { return writeFetcher[T]{} }

func componentCandidateSet(w *world.World, id component.ID) (*entity.IDSet, bool) {
	dense, ok := w.Storages().Get(id)
	if !ok {
		return &entity.IDSet{}, true
	}
	var set entity.IDSet
	for _, idx := range dense.EntityIndices() {
		set.Insert(int(idx))
	}
	return &set, true
}

// optionFetcher wraps another term, making its absence acceptable rather
// than excluding the entity. Item is (inner, ok). Its access is the inner
// term's access extended conservatively (matching the original's "clone
// current access, compute inner's delta on the clone, extend the real
// access by that delta" pattern from fetch.rs's OptionFetch).
type optionFetcher struct {
	inner fetcher
}

// Option makes inner's absence acceptable instead of excluding the entity.
func Option(inner fetcher) fetcher { return optionFetcher{inner: inner} }

func (o optionFetcher) initState(w *world.World) any { return o.inner.initState(w) }

func (o optionFetcher) updateAccess(state any, fa *access.FilteredAccess) {
	delta := fa.Clone()
	o.inner.updateAccess(state, delta)
	fa.Extend(&delta.Set)
}

func (optionFetcher) candidateSet(*world.World, any) (*entity.IDSet, bool) { return nil, false }

func (o optionFetcher) initFetch(w *world.World, state any, lastChangeTick, changeTick uint32) any {
	return o.inner.initFetch(w, state, lastChangeTick, changeTick)
}

func (optionFetcher) contains(any, entity.Entity) bool { return true }

func (o optionFetcher) filterFetch(fetch any, e entity.Entity) bool { return o.contains(fetch, e) }

func (o optionFetcher) fetch(fetch any, e entity.Entity) any {
	if o.inner.contains(fetch, e) {
		return [2]any{o.inner.fetch(fetch, e), true}
	}
	return [2]any{nil, false}
}
