package schedule

import "github.com/murklake/ecsframe/world"

// Executor runs a stage's systems against the world, given their
// dependency graph already resolved into each container's dependencies.
// Grounded in original_source/src/schedule/executor.rs.
type Executor interface {
	// SystemsChanged is called whenever the stage's system list or
	// dependency graph was rebuilt, so a stateful executor (the parallel
	// one) can recompute its bookkeeping.
	SystemsChanged(systems []*container)
	// RunSystems runs every system in systems against w.
	RunSystems(systems []*container, w *world.World)
}

// SequentialExecutor runs systems one at a time in dependency order. It
// carries no state of its own, mirroring the zero-sized Rust type.
type SequentialExecutor struct{}

func (SequentialExecutor) SystemsChanged(_ []*container) {}

func (SequentialExecutor) RunSystems(systems []*container, w *world.World) {
	for _, c := range systems {
		c.system.Run(w)
	}
}
