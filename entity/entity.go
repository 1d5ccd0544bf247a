// Package entity implements generational entity identifiers and the
// lock-free allocator that hands them out.
package entity

import "fmt"

// Entity identifies a row across every component storage in a world. The
// index is reused once an entity is despawned; the generation distinguishes
// a reused index from the entity that previously held it.
type Entity struct {
	index      uint32
	generation uint32
}

// FromRawParts builds an Entity from its raw index/generation pair. Mostly
// useful for serialization round-trips and tests.
func FromRawParts(index, generation uint32) Entity {
	return Entity{index: index, generation: generation}
}

// Index returns the entity's storage row index.
func (e Entity) Index() uint32 { return e.index }

// Generation returns the entity's generation counter.
func (e Entity) Generation() uint32 { return e.generation }

func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.index, e.generation)
}
