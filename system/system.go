// Package system renders the original's SystemParam/System machinery in
// idiomatic Go. Grounded in original_source/src/system/{system,param,
// function}.rs: a System is anything with a Meta, an Init (resolve param
// state and access footprint), a Run (fetch params for this tick and
// invoke the user function) and an Apply (flush any deferred command
// queues). Go has no associated types, so the const-generic
// FunctionSystem<In, Out, Param, Marker, F> plus its
// impl_system_param_function! macro (arities up to 26) is rendered as a
// small dynamic Param core (this file) plus hand-written Fn1..Fn6
// constructors in function.go — the idiomatic substitute, trimmed to the
// arities spec.md §8's scenarios actually need.
package system

import (
	"github.com/murklake/ecsframe/access"
	"github.com/murklake/ecsframe/world"
)

// Meta is the per-system bookkeeping the scheduler and parameters share:
// a name for diagnostics/panics, the merged access footprint (read by the
// parallel executor to decide which systems may run concurrently) and the
// last tick this system completed a run at (used by change-detection
// params to compute Added/Changed against).
type Meta struct {
	Name           string
	Access         *access.FilteredAccess
	LastChangeTick uint32
}

// NewMeta returns empty bookkeeping for a system named name.
func NewMeta(name string) *Meta {
	return &Meta{Name: name, Access: access.NewFilteredAccess()}
}

// Param is the contract every system parameter type (Commands, Query1,
// Res[T], Local[T], ...) implements. Init is called once per system
// (registering component ids and extending meta.Access); Fetch is called
// once per run, producing the boxed item FuncSystem type-asserts back to
// its concrete Go type.
type Param interface {
	Init(w *world.World, meta *Meta) any
	Fetch(w *world.World, state any, meta *Meta, changeTick uint32) any
}

// Applier is the optional extension a Param implements when it needs to
// flush something back into the world after a run completes (Commands'
// queued mutations, chiefly). Checked via type assertion so most Param
// implementations don't need a no-op method.
type Applier interface {
	Apply(state any, w *world.World)
}

// System is a schedulable unit of work: Init resolves its parameters
// against a world, Run executes one tick, Apply flushes deferred commands.
type System interface {
	Meta() *Meta
	Init(w *world.World)
	Run(w *world.World)
	Apply(w *world.World)
}
