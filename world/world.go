// Package world ties entities, components, storages and resources together
// behind the public surface spec.md §6 describes, grounded in the
// original's world/world.rs aggregate (not fully retrieved in the pack;
// its public operations are reconstructed from spec.md §6's explicit list)
// and styled after the teacher's World interface in internal/core/ecs/
// world.go for naming conventions (Spawn/Despawn/Resource accessors).
package world

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/component"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/storage"
)

// ID uniquely identifies a World instance; QueryState caches are keyed by
// it so a query built against one world panics if run against another
// (spec.md §4.6 / the original's "QueryState used with a different world").
type ID uint64

var nextWorldID atomic.Uint64

func newWorldID() ID {
	return ID(nextWorldID.Add(1))
}

// World owns every entity, component column and resource in one ECS
// instance.
type World struct {
	id ID

	entities   entity.Allocator
	components *component.Registry
	resources  *component.Registry

	storages  *storage.Storages
	resData   *storage.Resources
	lastRowOf map[component.ID]func(any) // drop hooks registered per component type

	changeTick     atomic.Uint32
	lastChangeTick atomic.Uint32
}

// New returns an empty world.
func New() *World {
	return &World{
		id:         newWorldID(),
		components: component.NewRegistry(),
		resources:  component.NewRegistry(),
		storages:   storage.NewStorages(),
		resData:    storage.NewResources(),
		lastRowOf:  map[component.ID]func(any){},
	}
}

// ID returns the world's identity.
func (w *World) ID() ID { return w.id }

// ChangeTick returns the current change tick counter.
func (w *World) ChangeTick() uint32 { return w.changeTick.Load() }

// IncrementChangeTick advances and returns the new change tick, called once
// per system run (spec.md §4.7).
func (w *World) IncrementChangeTick() uint32 {
	return w.changeTick.Add(1)
}

// LastChangeTick returns the tick recorded by the most recent ClearTrackers
// call, per spec.md §6.
func (w *World) LastChangeTick() uint32 { return w.lastChangeTick.Load() }

// CheckChangeTicks clamps every component column's and resource's change
// ticks relative to the current tick, guarding against u32 age overflow
// after long-running worlds (spec.md §4.7's periodic clamp pass).
func (w *World) CheckChangeTicks() {
	now := w.ChangeTick()
	w.storages.CheckChangeTicks(now)
	w.resData.CheckChangeTicks(now)
}

// ClearTrackers advances LastChangeTick to the current ChangeTick, per
// spec.md §6/§8's invariant that LastChangeTick == ChangeTick immediately
// after a ClearTrackers call. Component/resource add-and-change tracking
// itself is continuous via ChangeTicks rather than a per-tick buffer, so
// this has nothing else to clear; it matches the original's
// world.clear_trackers() call site in Schedule.RunOnce.
func (w *World) ClearTrackers() {
	w.lastChangeTick.Store(w.ChangeTick())
}

// InitComponent returns the id for component type t, registering it the
// first time it's seen.
func (w *World) InitComponent(t reflect.Type) component.ID {
	return w.components.Init(t)
}

// ComponentIDOf returns the id registered for T, if any.
func ComponentIDOf[T any](w *World) (component.ID, bool) {
	return component.IDOfType[T](w.components)
}

// InitComponentOf registers (if necessary) and returns the id for T.
func InitComponentOf[T any](w *World) component.ID {
	return component.Of[T](w.components)
}

// Spawn allocates a fresh entity with no components.
func (w *World) Spawn() entity.Entity {
	return w.entities.Alloc()
}

// ReserveEntity atomically claims an entity id without touching any
// backing storage; a subsequent Flush (or any entity-allocating call, which
// flushes first) makes it visible to ContainsEntity/Despawn/etc. Used by
// Commands.Spawn so a command queued inside a system can hand out an Entity
// immediately without a &mut World borrow (spec.md §4.8).
func (w *World) ReserveEntity() entity.Entity {
	return w.entities.Reserve()
}

// Flush reconciles any entities reserved via ReserveEntity into the live
// allocator state.
func (w *World) Flush() {
	w.entities.Flush()
}

// ContainsEntity reports whether e currently names a live entity.
func (w *World) ContainsEntity(e entity.Entity) bool {
	return w.entities.Contains(e)
}

// GetOrSpawn forces e into existence at its exact index/generation if it
// isn't already live, used by deferred commands (e.g. scene/snapshot
// replay) that need to recreate an entity under a specific identity.
func (w *World) GetOrSpawn(e entity.Entity) entity.Entity {
	w.entities.AllocAt(e)
	return e
}

// Despawn removes e and every component it carries. Returns false if e was
// already dead.
func (w *World) Despawn(e entity.Entity) bool {
	if !w.entities.Contains(e) {
		return false
	}
	w.storages.Remove(e.Index())
	return w.entities.Free(e)
}

// Insert stores value (whose id is componentID) on e, panicking if e is
// dead — matching the core's "panic at the API boundary for programmer
// error" contract (spec.md §7).
func (w *World) Insert(e entity.Entity, componentID component.ID, value any) {
	if !w.entities.Contains(e) {
		panic(fmt.Sprintf("world: insert on dead entity %s", e))
	}
	dense := w.storages.GetOrInsert(componentID, w.lastRowOf[componentID])
	dense.Insert(e.Index(), value, w.ChangeTick())
}

// InsertComponent is the generic convenience wrapper over Insert: it
// registers T's id and boxes value as a pointer so later mutable access
// (GetMutComponent, query writes) can hand out a real *T into the column.
func InsertComponent[T any](w *World, e entity.Entity, value T) {
	id := InitComponentOf[T](w)
	boxed := new(T)
	*boxed = value
	w.Insert(e, id, boxed)
}

// Remove deletes e's componentID row, if any.
func (w *World) Remove(e entity.Entity, componentID component.ID) {
	if dense, ok := w.storages.Get(componentID); ok {
		dense.RemoveAndDrop(e.Index())
	}
}

// RemoveComponent is the generic convenience wrapper over Remove.
func RemoveComponent[T any](w *World, e entity.Entity) {
	id, ok := ComponentIDOf[T](w)
	if !ok {
		return
	}
	w.Remove(e, id)
}

// Get returns e's componentID value.
func (w *World) Get(e entity.Entity, componentID component.ID) (any, bool) {
	dense, ok := w.storages.Get(componentID)
	if !ok {
		return nil, false
	}
	return dense.Get(e.Index())
}

// GetComponent is the generic convenience wrapper over Get.
func GetComponent[T any](w *World, e entity.Entity) (T, bool) {
	var zero T
	id, ok := ComponentIDOf[T](w)
	if !ok {
		return zero, false
	}
	v, ok := w.Get(e, id)
	if !ok {
		return zero, false
	}
	return *v.(*T), true
}

// GetMutComponent returns a change.Mut wrapper over e's T component, or
// false if e doesn't carry one.
func GetMutComponent[T any](w *World, e entity.Entity) (change.Mut[T], bool) {
	id, ok := ComponentIDOf[T](w)
	if !ok {
		return change.Mut[T]{}, false
	}
	dense, ok := w.storages.Get(id)
	if !ok {
		return change.Mut[T]{}, false
	}
	row, ok := dense.Row(e.Index())
	if !ok {
		return change.Mut[T]{}, false
	}

	ptr := dense.GetDataPtr(row).(*T)
	ticks := dense.GetTicksAtRow(row)
	return change.NewMut(ptr, ticks, w.ChangeTick()), true
}

// Storages exposes the component storage aggregate for packages (query,
// system) that need raw access without going through the typed helpers
// above.
func (w *World) Storages() *storage.Storages { return w.storages }

// Entities exposes the entity allocator.
func (w *World) Entities() *entity.Allocator { return &w.entities }

// Components exposes the component registry.
func (w *World) Components() *component.Registry { return w.components }

// Resources exposes the resource registry (a distinct id space from
// components).
func (w *World) Resources() *component.Registry { return w.resources }

// ResourceData exposes the raw resource table.
func (w *World) ResourceData() *storage.Resources { return w.resData }

// InsertResource stores value as T's resource slot, creating it if absent.
// Boxed as a pointer, matching InsertComponent's convention, so ResourceMut
// can hand out a real *T.
func InsertResource[T any](w *World, value T) {
	id := component.Of[T](w.resources)
	boxed := new(T)
	*boxed = value
	w.resData.Insert(int(id), boxed, w.ChangeTick())
}

// InitResource creates T's resource slot with its zero value if it doesn't
// exist yet; a no-op otherwise.
func InitResource[T any](w *World) {
	id := component.Of[T](w.resources)
	if !w.resData.Contains(int(id)) {
		w.resData.Insert(int(id), new(T), w.ChangeTick())
	}
}

// ResourceIDOf returns the id T was registered under as a resource,
// without registering it.
func ResourceIDOf[T any](w *World) (component.ID, bool) {
	return component.IDOfType[T](w.resources)
}

// Resource returns T's current resource value.
func Resource[T any](w *World) (T, bool) {
	var zero T
	id, ok := component.IDOfType[T](w.resources)
	if !ok {
		return zero, false
	}
	v, ok := w.resData.Get(int(id))
	if !ok {
		return zero, false
	}
	return *v.(*T), true
}

// ResourceMut returns a change.Mut wrapper over T's resource value.
func ResourceMut[T any](w *World) (change.Mut[T], bool) {
	id, ok := component.IDOfType[T](w.resources)
	if !ok {
		return change.Mut[T]{}, false
	}
	v, ticks, ok := w.resData.GetWithTicks(int(id))
	if !ok {
		return change.Mut[T]{}, false
	}
	return change.NewMut(v.(*T), ticks, w.ChangeTick()), true
}

// RemoveResource deletes T's resource slot, returning its value if present.
func RemoveResource[T any](w *World) (T, bool) {
	var zero T
	id, ok := component.IDOfType[T](w.resources)
	if !ok {
		return zero, false
	}
	v, ok := w.resData.Remove(int(id))
	if !ok {
		return zero, false
	}
	return *v.(*T), true
}

// Bundle groups several component values to be inserted onto one entity in
// a single call. The Go substitute for the original's derive-macro Bundle
// trait: a plain interface with a flattening method instead of compiler-
// generated field access.
type Bundle interface {
	// Components returns one boxed value per component in the bundle.
	Components() []any
}

// EntityMut is a handle bound to one entity, offered for ergonomic chained
// inserts (spec.md §6).
type EntityMut struct {
	world *World
	id    entity.Entity
}

// EntityMutOf returns an EntityMut for e, panicking if e is dead.
func EntityMutOf(w *World, e entity.Entity) EntityMut {
	if !w.entities.Contains(e) {
		panic(fmt.Sprintf("world: EntityMut on dead entity %s", e))
	}
	return EntityMut{world: w, id: e}
}

// ID returns the bound entity.
func (m EntityMut) ID() entity.Entity { return m.id }

// Insert stores a single component value on the bound entity and returns m
// for chaining.
func Insert[T any](m EntityMut, value T) EntityMut {
	InsertComponent[T](m.world, m.id, value)
	return m
}

// InsertBundle inserts every component in b onto the bound entity, boxing
// each element via the world's reflect-based registry the same way a
// single Insert does.
func (m EntityMut) InsertBundle(b Bundle) EntityMut {
	for _, v := range b.Components() {
		t := reflect.TypeOf(v)
		id := m.world.InitComponent(t)

		boxed := reflect.New(t)
		boxed.Elem().Set(reflect.ValueOf(v))

		m.world.Insert(m.id, id, boxed.Interface())
	}
	return m
}

// Remove deletes a single component type from the bound entity and returns
// m for chaining.
func Remove[T any](m EntityMut) EntityMut {
	RemoveComponent[T](m.world, m.id)
	return m
}

// Despawn removes the bound entity and every component it carries.
func (m EntityMut) Despawn() {
	m.world.Despawn(m.id)
}
