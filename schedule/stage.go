package schedule

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/murklake/ecsframe/world"
)

// Stage is one phase of a Schedule's run. Grounded in
// original_source/src/schedule/stage.rs's Stage trait.
type Stage interface {
	Run(w *world.World)
}

// SystemStage runs a set of systems through an Executor, rebuilding their
// dependency order whenever systems are added and re-initializing any that
// haven't seen the current world yet.
type SystemStage struct {
	worldID          world.ID
	hasWorld         bool
	executor         Executor
	systems          []*container
	uninitialized    []int
	systemsModified  bool
	executorModified bool
}

// NewSystemStage returns a stage driven by executor.
func NewSystemStage(executor Executor) *SystemStage {
	return &SystemStage{executor: executor, systemsModified: true, executorModified: true}
}

// Sequential returns a stage that runs its systems one at a time, in
// dependency order.
func Sequential() *SystemStage { return NewSystemStage(SequentialExecutor{}) }

// Parallel returns a stage that runs independent systems concurrently.
func Parallel() *SystemStage { return NewSystemStage(NewParallelExecutor()) }

// AddSystem appends sys to the stage. The dependency graph is rebuilt
// lazily, on the next Run.
func (s *SystemStage) AddSystem(d IntoDescriptor) *SystemStage {
	descriptor := d.intoDescriptor()
	c := newContainer(descriptor)

	index := len(s.systems)
	s.systems = append(s.systems, c)
	s.uninitialized = append(s.uninitialized, index)

	s.systemsModified = true
	return s
}

func (s *SystemStage) applyBuffers(w *world.World) {
	for _, c := range s.systems {
		c.system.Apply(w)
	}
}

func (s *SystemStage) validateWorld(w *world.World) {
	if s.hasWorld {
		if s.worldID != w.ID() {
			panic("schedule: cannot run a SystemStage against more than one World")
		}
		return
	}
	s.worldID = w.ID()
	s.hasWorld = true
}

func (s *SystemStage) initializeSystems(w *world.World) {
	for _, index := range s.uninitialized {
		s.systems[index].system.Init(w)
	}
	s.uninitialized = s.uninitialized[:0]
}

func (s *SystemStage) rebuildDependencyGraph() {
	labels := map[uint64][]int{}
	for index, c := range s.systems {
		for _, label := range c.labels {
			labels[label.key()] = append(labels[label.key()], index)
		}
	}

	graph := make([]map[int]struct{}, len(s.systems))
	for i := range graph {
		graph[i] = map[int]struct{}{}
	}

	for index, c := range s.systems {
		for _, label := range c.after {
			for _, dependency := range labels[label.key()] {
				graph[index][dependency] = struct{}{}
			}
		}
		for _, label := range c.before {
			for _, dependant := range labels[label.key()] {
				graph[dependant][index] = struct{}{}
			}
		}
	}

	sorted := make([]int, 0, len(graph))
	var current []int
	unvisited := map[int]struct{}{}
	for i := range graph {
		unvisited[i] = struct{}{}
	}

	var visit func(node int) bool
	visit = func(node int) bool {
		for _, c := range current {
			if c == node {
				return true
			}
		}
		if _, ok := unvisited[node]; !ok {
			return false
		}
		delete(unvisited, node)
		current = append(current, node)

		for dependency := range graph[node] {
			if visit(dependency) {
				return true
			}
		}

		sorted = append(sorted, node)
		current = current[:len(current)-1]
		return false
	}

	for len(unvisited) > 0 {
		var next int
		for n := range unvisited {
			next = n
			break
		}
		if visit(next) {
			names := make([]string, len(current))
			for i, idx := range current {
				names[i] = s.systems[idx].name()
			}
			msg := fmt.Sprintf("schedule: dependency cycle between systems: %s", strings.Join(names, ", "))
			log.Error().Strs("systems", names).Msg(msg)
			panic(msg)
		}
	}

	for index, c := range s.systems {
		c.dependencies = c.dependencies[:0]
		for dependency := range graph[index] {
			c.dependencies = append(c.dependencies, indexOf(sorted, dependency))
		}
	}

	reordered := make([]*container, len(sorted))
	for i, original := range sorted {
		reordered[i] = s.systems[original]
	}
	s.systems = reordered
}

func indexOf(sorted []int, value int) int {
	for i, v := range sorted {
		if v == value {
			return i
		}
	}
	panic("schedule: internal error, dependency index not found after sort")
}

// Run executes every system in the stage against w, in dependency order,
// then flushes deferred Commands. Change-tick overflow clamping happens
// once per full schedule pass (Schedule.RunOnce), not per stage.
func (s *SystemStage) Run(w *world.World) {
	s.validateWorld(w)

	if s.systemsModified {
		s.systemsModified = false
		s.executorModified = false

		s.initializeSystems(w)
		s.rebuildDependencyGraph()

		s.executor.SystemsChanged(s.systems)
	} else if s.executorModified {
		s.executorModified = false
		s.executor.SystemsChanged(s.systems)
	}

	s.executor.RunSystems(s.systems, w)

	s.applyBuffers(w)
}
