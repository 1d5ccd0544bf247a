// Package command implements deferred world mutations: a system that only
// has shared access to the World (because it runs alongside others in a
// parallel stage) queues commands through Commands instead of mutating
// storage directly; the stage applies the queue serially once every system
// in it has finished. Grounded in
// original_source/src/system/command.rs.
package command

import (
	"fmt"
	"reflect"

	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/world"
)

// Command is a single deferred world mutation.
type Command interface {
	Apply(w *world.World)
}

// Queue buffers commands recorded during a system's run for later,
// exclusive application.
type Queue struct {
	commands []Command
}

// Apply flushes any pending entity reservations and then applies every
// queued command in order, draining the queue.
func (q *Queue) Apply(w *world.World) {
	w.Flush()
	for _, c := range q.commands {
		c.Apply(w)
	}
	q.commands = q.commands[:0]
}

// Add appends a command to the queue.
func (q *Queue) Add(c Command) {
	q.commands = append(q.commands, c)
}

// Commands is the handle a system uses to record deferred mutations; it
// borrows the world only for reads (e.g. ContainsEntity) and the run's
// shared Queue for writes.
type Commands struct {
	queue *Queue
	world *world.World
}

// New returns a Commands handle backed by queue, observing world.
func New(queue *Queue, w *world.World) Commands {
	return Commands{queue: queue, world: w}
}

// World exposes the read-only world the commands were issued against.
func (c Commands) World() *world.World { return c.world }

// Spawn reserves a fresh entity immediately (visible once the queue is
// applied) and returns an EntityCommands handle for chaining inserts.
func (c Commands) Spawn() EntityCommands {
	e := c.world.ReserveEntity()
	return EntityCommands{commands: c, entity: e}
}

// GetOrSpawn queues recreating entity under its exact identity if it isn't
// already live, and returns an EntityCommands handle for it.
func (c Commands) GetOrSpawn(e entity.Entity) EntityCommands {
	c.Add(getOrSpawn{entity: e})
	return EntityCommands{commands: c, entity: e}
}

// GetEntity returns an EntityCommands handle for e if it's currently live.
func (c Commands) GetEntity(e entity.Entity) (EntityCommands, bool) {
	if !c.world.ContainsEntity(e) {
		return EntityCommands{}, false
	}
	return EntityCommands{commands: c, entity: e}, true
}

// Entity returns an EntityCommands handle for e, panicking if e doesn't
// currently exist.
func (c Commands) Entity(e entity.Entity) EntityCommands {
	ec, ok := c.GetEntity(e)
	if !ok {
		panic(fmt.Sprintf("command: entity %s does not exist", e))
	}
	return ec
}

// Add queues an arbitrary command.
func (c Commands) Add(cmd Command) {
	c.queue.Add(cmd)
}

// EntityCommands is a Commands handle bound to one entity.
type EntityCommands struct {
	commands Commands
	entity   entity.Entity
}

// Entity returns the bound entity's identifier.
func (e EntityCommands) Entity() entity.Entity { return e.entity }

// Insert queues inserting component onto the bound entity and returns e for
// chaining.
func Insert[T any](e EntityCommands, component T) EntityCommands {
	e.commands.Add(insertCommand[T]{entity: e.entity, value: component})
	return e
}

// Remove queues removing T from the bound entity and returns e for
// chaining.
func Remove[T any](e EntityCommands) EntityCommands {
	e.commands.Add(removeCommand[T]{entity: e.entity})
	return e
}

// Despawn queues despawning the bound entity.
func (e EntityCommands) Despawn() {
	e.commands.Add(despawnCommand{entity: e.entity})
}

type insertCommand[T any] struct {
	entity entity.Entity
	value  T
}

func (c insertCommand[T]) Apply(w *world.World) {
	world.InsertComponent(w, c.entity, c.value)
}

type removeCommand[T any] struct {
	entity entity.Entity
}

func (c removeCommand[T]) Apply(w *world.World) {
	world.RemoveComponent[T](w, c.entity)
}

type despawnCommand struct {
	entity entity.Entity
}

func (c despawnCommand) Apply(w *world.World) {
	w.Despawn(c.entity)
}

type getOrSpawn struct {
	entity entity.Entity
}

func (c getOrSpawn) Apply(w *world.World) {
	w.GetOrSpawn(c.entity)
}

// InsertBundle queues inserting every component of b onto the bound entity
// via reflection, mirroring world.EntityMut.InsertBundle's boxing
// convention.
func (e EntityCommands) InsertBundle(b world.Bundle) EntityCommands {
	e.commands.Add(insertBundleCommand{entity: e.entity, bundle: b})
	return e
}

type insertBundleCommand struct {
	entity entity.Entity
	bundle world.Bundle
}

func (c insertBundleCommand) Apply(w *world.World) {
	for _, v := range c.bundle.Components() {
		t := reflect.TypeOf(v)
		id := w.InitComponent(t)
		boxed := reflect.New(t)
		boxed.Elem().Set(reflect.ValueOf(v))
		w.Insert(c.entity, id, boxed.Interface())
	}
}
