// Package schedule orders systems into stages and stages into a full pass
// over a World: per-stage dependency resolution (via Descriptor labels),
// sequential or parallel execution, and the double-buffer swap every
// registered event type needs once per pass. Grounded in
// original_source/src/schedule/{stage,schedule}.rs.
package schedule

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/murklake/ecsframe/event"
	"github.com/murklake/ecsframe/system"
	"github.com/murklake/ecsframe/world"
)

type stageKind int

// DefaultStage names the two reserved stages every Schedule starts with:
// First runs before every user stage, Last runs after every user stage.
// Mirrors original_source/src/schedule/schedule.rs's DefaultStage.
const (
	stageFirst stageKind = iota
	stageLast
)

var (
	// First is the reserved stage that always runs before user stages.
	First = NewLabel[stageKind]("First", uint32(stageFirst))
	// Last is the reserved stage that always runs after user stages.
	Last = NewLabel[stageKind]("Last", uint32(stageLast))
)

// Schedule is an ordered sequence of named stages, each run in turn once
// per Schedule.RunOnce.
type Schedule struct {
	stages     map[uint64]Stage
	stageOrder []Label
}

// Empty returns a Schedule with no stages at all, not even First/Last.
func Empty() *Schedule {
	return &Schedule{stages: map[uint64]Stage{}}
}

// New returns a Schedule seeded with the reserved First and Last stages,
// both running their systems in parallel.
func New() *Schedule {
	s := Empty()
	s.pushStageInternal(First, Parallel())
	s.pushStageInternal(Last, Parallel())
	return s
}

func (s *Schedule) pushStageInternal(label Label, stage Stage) {
	s.stages[label.key()] = stage
	s.stageOrder = append(s.stageOrder, label)
}

// ContainsStage reports whether label has a stage registered.
func (s *Schedule) ContainsStage(label Label) bool {
	_, ok := s.stages[label.key()]
	return ok
}

func (s *Schedule) validateAddStage(label Label) {
	if s.ContainsStage(label) {
		panic(fmt.Sprintf("schedule: stage %q already exists", label))
	}
	if label.key() == First.key() || label.key() == Last.key() {
		panic(fmt.Sprintf("schedule: stage %q is reserved; use New() instead of adding it manually", label))
	}
}

func (s *Schedule) stageIndex(label Label) (int, bool) {
	for i, l := range s.stageOrder {
		if l.key() == label.key() {
			return i, true
		}
	}
	return 0, false
}

// AddStage inserts stage just before Last (or at the end, if Last isn't
// present — e.g. when built from Empty()).
func (s *Schedule) AddStage(label Label, stage Stage) *Schedule {
	s.validateAddStage(label)
	s.stages[label.key()] = stage

	if index, ok := s.stageIndex(Last); ok {
		s.stageOrder = append(s.stageOrder[:index:index], append([]Label{label}, s.stageOrder[index:]...)...)
	} else {
		s.stageOrder = append(s.stageOrder, label)
	}
	return s
}

// AddStageBefore inserts stage immediately before the stage at before.
func (s *Schedule) AddStageBefore(before, label Label, stage Stage) *Schedule {
	s.validateAddStage(label)
	if before.key() == First.key() {
		panic("schedule: cannot add a stage before First")
	}

	index, ok := s.stageIndex(before)
	if !ok {
		panic(fmt.Sprintf("schedule: stage %q does not exist", before))
	}
	s.stages[label.key()] = stage
	s.stageOrder = append(s.stageOrder[:index:index], append([]Label{label}, s.stageOrder[index:]...)...)
	return s
}

// AddStageAfter inserts stage immediately after the stage at after.
func (s *Schedule) AddStageAfter(after, label Label, stage Stage) *Schedule {
	s.validateAddStage(label)
	if after.key() == Last.key() {
		panic("schedule: cannot add a stage after Last")
	}

	index, ok := s.stageIndex(after)
	if !ok {
		panic(fmt.Sprintf("schedule: stage %q does not exist", after))
	}
	s.stages[label.key()] = stage
	insertAt := index + 1
	s.stageOrder = append(s.stageOrder[:insertAt:insertAt], append([]Label{label}, s.stageOrder[insertAt:]...)...)
	return s
}

// Stage returns the stage registered under label.
func (s *Schedule) Stage(label Label) (Stage, bool) {
	st, ok := s.stages[label.key()]
	return st, ok
}

// AddSystemToStage adds sys to the SystemStage registered under label. It
// panics if no SystemStage exists under that label.
func (s *Schedule) AddSystemToStage(label Label, d IntoDescriptor) *Schedule {
	st, ok := s.stages[label.key()]
	if !ok {
		panic(fmt.Sprintf("schedule: stage %q does not exist", label))
	}
	stage, ok := st.(*SystemStage)
	if !ok {
		panic(fmt.Sprintf("schedule: stage %q is not a SystemStage", label))
	}
	stage.AddSystem(d)
	return s
}

// AddEvent registers E as an event type: it allocates the Events[E]
// resource (InitResource-style) and schedules its buffer-swap update into
// stage First. A sent event survives two buffer swaps, so EventReader[E]
// systems can observe it for the rest of the pass it was sent in and for
// the whole of the following pass. Matches spec.md's resolved
// Open Question: EventWriter.Send on an E that was never registered this
// way panics (system.EventWriterParam's Init requires the resource to
// already exist).
func AddEvent[E any](s *Schedule, w *world.World) *Schedule {
	world.InitResource[event.Events[E]](w)
	return s.AddSystemToStage(First, AsDescriptor(updateEventsSystem[E]()))
}

// updateEventsSystem returns a system that swaps E's event double-buffer.
func updateEventsSystem[E any]() system.System {
	return system.Fn1(
		"events-update",
		system.ResMutParam[event.Events[E]]{},
		func(events interface{ GetMut() *event.Events[E] }) {
			events.GetMut().Update()
		},
	)
}

// RunOnce runs every stage in order, then clamps any change ticks nearing
// overflow and advances World.LastChangeTick to the tick this pass ran at.
// Each call is tagged with a fresh correlation id so a multi-run
// benchmark's logs can be grepped per pass.
func (s *Schedule) RunOnce(w *world.World) {
	runID := uuid.New()
	logger := log.With().Str("schedule_run", runID.String()).Logger()
	logger.Debug().Int("stages", len(s.stageOrder)).Msg("schedule: run starting")

	for _, label := range s.stageOrder {
		s.stages[label.key()].Run(w)
	}
	w.CheckChangeTicks()
	w.ClearTrackers()

	logger.Debug().Msg("schedule: run complete")
}

// Run satisfies Stage, so a Schedule can be nested as a stage of another
// Schedule.
func (s *Schedule) Run(w *world.World) { s.RunOnce(w) }
