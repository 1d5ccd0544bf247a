package system

import "github.com/murklake/ecsframe/world"

// LocalParam is the Param descriptor for Local[T]: per-system state that
// persists across runs but is invisible to everything else (not stored in
// the World at all), grounded in the original's Local<T> SystemParam. Its
// state *is* the value itself, held alive by the owning FuncSystem between
// calls to Fetch.
type LocalParam[T any] struct{}

func (LocalParam[T]) Init(*world.World, *Meta) any { return new(T) }

func (LocalParam[T]) Fetch(_ *world.World, state any, _ *Meta, _ uint32) any {
	return state.(*T)
}
