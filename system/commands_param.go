package system

import (
	"github.com/murklake/ecsframe/command"
	"github.com/murklake/ecsframe/world"
)

// CommandsParam is the Param descriptor for command.Commands: it adds no
// access footprint of its own (Commands only ever mutates through a
// deferred queue), but its Apply flushes that queue once the owning
// system's run completes.
type CommandsParam struct{}

func (CommandsParam) Init(*world.World, *Meta) any { return &command.Queue{} }

func (CommandsParam) Fetch(w *world.World, state any, _ *Meta, _ uint32) any {
	return command.New(state.(*command.Queue), w)
}

func (CommandsParam) Apply(state any, w *world.World) {
	state.(*command.Queue).Apply(w)
}

var _ Applier = CommandsParam{}
