package main

import (
	"math/rand"

	"github.com/murklake/ecsframe/change"
	"github.com/murklake/ecsframe/entity"
	"github.com/murklake/ecsframe/query"
	"github.com/murklake/ecsframe/system"
	"github.com/murklake/ecsframe/world"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }

type movingBundle struct {
	Position position
	Velocity velocity
}

func (b movingBundle) Components() []any { return []any{b.Position, b.Velocity} }

// populate spawns n entities, each carrying a Position at the origin and a
// Velocity pointing in a random direction, for movementSystem to push
// around every tick.
func populate(w *world.World, n int, rng *rand.Rand) {
	for i := 0; i < n; i++ {
		e := w.Spawn()
		world.EntityMutOf(w, e).InsertBundle(movingBundle{
			Position: position{},
			Velocity: velocity{X: rng.Float64()*2 - 1, Y: rng.Float64()*2 - 1},
		})
	}
}

// movementSystem advances every Position by its Velocity, one demo system
// exercising the library's write-query path the way a real consumer would.
func movementSystem() system.System {
	return system.Fn1(
		"movement",
		system.QueryMut2Param[position, velocity]{},
		func(q *query.QueryMut2[position, velocity]) {
			q.Each(func(_ entity.Entity, pos change.Mut[position], vel change.Mut[velocity]) {
				p := pos.GetMut()
				v := vel.Get()
				p.X += v.X
				p.Y += v.Y
			})
		},
	)
}
