// Package component assigns dense numeric identifiers to component and
// resource types, mirroring the teacher's query/component_mapping.go
// bidirectional type<->position maps but keyed by reflect.Type instead of a
// hand-maintained enum, since Go has no derive-macro equivalent that could
// generate a compile-time id per type the way the original ECS's
// TypeId-based registration does.
package component

import (
	"fmt"
	"reflect"
	"sync"
)

// ID is a dense identifier for a component or resource type. Component ids
// and resource ids are drawn from independent id spaces, matching the
// original storage model where StorageSets<T> is keyed by TypeId separately
// per storage kind.
type ID int

// Info describes a registered type.
type Info struct {
	ID   ID
	Type reflect.Type
	Name string
}

// Registry assigns and looks up component/resource ids. A World owns
// exactly one Registry for components and one for resources.
type Registry struct {
	mu    sync.RWMutex
	ids   map[reflect.Type]ID
	infos []Info
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[reflect.Type]ID)}
}

// Init returns the id for t, assigning a new one if t has not been seen
// before. Idempotent, matching World::init_component's contract.
func (r *Registry) Init(t reflect.Type) ID {
	r.mu.RLock()
	if id, ok := r.ids[t]; ok {
		r.mu.RUnlock()
		return id
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.ids[t]; ok {
		return id
	}

	id := ID(len(r.infos))
	r.infos = append(r.infos, Info{ID: id, Type: t, Name: t.String()})
	r.ids[t] = id
	return id
}

// IDOf returns the id for t without registering it.
func (r *Registry) IDOf(t reflect.Type) (ID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[t]
	return id, ok
}

// Info returns the registered Info for id. Panics if id is out of range,
// mirroring the core's convention of panicking on programmer error rather
// than returning an error for an invariant the caller controls.
func (r *Registry) Info(id ID) Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(id) < 0 || int(id) >= len(r.infos) {
		panic(fmt.Sprintf("component: id %d is not registered", id))
	}
	return r.infos[id]
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.infos)
}

// Of returns the id for T, registering it if necessary. A free function
// rather than a Registry method because Go methods cannot carry their own
// type parameters.
func Of[T any](r *Registry) ID {
	return r.Init(reflect.TypeOf((*T)(nil)).Elem())
}

// IDOfType returns the id for T without registering it.
func IDOfType[T any](r *Registry) (ID, bool) {
	return r.IDOf(reflect.TypeOf((*T)(nil)).Elem())
}

// ResourceAccessID remaps a resource id into a space disjoint from
// component ids (component ids are always >= 0) so that access.Set, which
// tracks both kinds of access as plain ID keys for a system's conflict
// footprint, never mistakes a resource and a component for the same
// underlying thing just because their independent registries happened to
// assign them the same numeric id.
func ResourceAccessID(id ID) ID { return ID(-(int(id) + 1)) }
