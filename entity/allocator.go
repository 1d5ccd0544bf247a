package entity

import "sync/atomic"

// meta tracks the generation and occupancy of one entity index.
type meta struct {
	generation uint32
	isEmpty    bool
}

var emptyMeta = meta{generation: 0, isEmpty: true}

// Allocator hands out entities with generational reuse. Reservation
// (Reserve) is lock-free and safe to call from multiple goroutines
// concurrently with each other (but not concurrently with Alloc/Free/Flush,
// which mutate the backing slices); Flush reconciles any reservations made
// since the last flush. This mirrors shiv's Entities allocator
// (original_source/src/world/entity.rs) field for field: meta, entityIDSet,
// pending, an atomic free cursor, and a live count.
type Allocator struct {
	meta       []meta
	entityIDs  IDSet
	pending    []uint32
	freeCursor atomic.Int64
	length     uint32
}

// Contains reports whether entity currently names a live row.
func (a *Allocator) Contains(e Entity) bool {
	if int(e.index) >= len(a.meta) {
		return false
	}
	m := a.meta[e.index]
	return m.generation == e.generation && !m.isEmpty
}

// EntityIDs exposes the bitset of currently-live indices, used by query
// candidate-set computation.
func (a *Allocator) EntityIDs() *IDSet { return &a.entityIDs }

// Len returns the number of live entities.
func (a *Allocator) Len() uint32 { return a.length }

// IsEmpty reports whether there are zero live entities.
func (a *Allocator) IsEmpty() bool { return a.length == 0 }

// Reserve atomically claims an entity id without touching the backing
// slices; the caller must eventually call Flush (directly, or via Alloc)
// before the reservation is visible through Contains/Get.
func (a *Allocator) Reserve() Entity {
	n := a.freeCursor.Add(-1) + 1
	if n > 0 {
		index := a.pending[n-1]
		return Entity{index: index, generation: a.meta[index].generation}
	}
	index := uint32(int64(len(a.meta)) - n)
	return Entity{index: index, generation: 0}
}

// Alloc flushes pending reservations and then allocates (and returns) a
// fresh entity, reusing a freed index when one is available.
func (a *Allocator) Alloc() Entity {
	a.Flush()
	a.length++

	if n := len(a.pending); n > 0 {
		index := a.pending[n-1]
		a.pending = a.pending[:n-1]
		a.freeCursor.Store(int64(len(a.pending)))

		a.entityIDs.Insert(int(index))
		a.meta[index].isEmpty = false

		return Entity{index: index, generation: a.meta[index].generation}
	}

	index := uint32(len(a.meta))
	a.entityIDs.Insert(int(index))
	a.meta = append(a.meta, meta{})

	return Entity{index: index, generation: 0}
}

// AllocAt forces entity into existence at its exact index/generation,
// extending the allocator's backing storage with empty placeholders as
// needed. Returns true if the index was already live (in which case its
// generation is overwritten to match entity).
func (a *Allocator) AllocAt(e Entity) bool {
	a.Flush()

	var contains bool
	switch {
	case int(e.index) >= len(a.meta):
		for i := uint32(len(a.meta)); i < e.index; i++ {
			a.pending = append(a.pending, i)
		}
		a.freeCursor.Store(int64(len(a.pending)))

		for len(a.meta) <= int(e.index) {
			a.meta = append(a.meta, emptyMeta)
		}
		a.entityIDs.Insert(int(e.index))
		a.length++
		contains = false

	default:
		pos := -1
		for i, idx := range a.pending {
			if idx == e.index {
				pos = i
				break
			}
		}
		if pos >= 0 {
			last := len(a.pending) - 1
			a.pending[pos] = a.pending[last]
			a.pending = a.pending[:last]
			a.freeCursor.Store(int64(len(a.pending)))

			a.entityIDs.Insert(int(e.index))
			a.length++
			contains = false
		} else {
			contains = true
		}
	}

	a.meta[e.index] = meta{generation: e.generation, isEmpty: false}
	return contains
}

// Free releases entity, bumping its generation so stale handles fail
// Contains. Returns false if entity was already stale or out of range.
func (a *Allocator) Free(e Entity) bool {
	a.Flush()

	if int(e.index) >= len(a.meta) {
		return false
	}
	m := &a.meta[e.index]
	if m.generation != e.generation {
		return false
	}

	m.generation++
	m.isEmpty = true
	a.entityIDs.Remove(int(e.index))
	a.pending = append(a.pending, e.index)
	a.freeCursor.Store(int64(len(a.pending)))
	a.length--

	return true
}

// NeedsFlush reports whether reservations (via Reserve) are outstanding.
func (a *Allocator) NeedsFlush() bool {
	return a.freeCursor.Load() != int64(len(a.pending))
}

// Flush reconciles reservations made via Reserve into meta/entityIDs/pending
// so that Contains/Get observe them.
func (a *Allocator) Flush() {
	if !a.NeedsFlush() {
		return
	}

	current := a.freeCursor.Load()

	var newFreeCursor int
	if current >= 0 {
		newFreeCursor = int(current)
	} else {
		count := int(-current)
		oldLen := len(a.meta)
		newLen := oldLen + count

		for len(a.meta) < newLen {
			a.meta = append(a.meta, meta{})
		}
		a.entityIDs.Resize(newLen, true)

		a.length += uint32(count)
		a.freeCursor.Store(0)
		newFreeCursor = 0
	}

	a.length += uint32(len(a.pending) - newFreeCursor)
	for _, index := range a.pending[newFreeCursor:] {
		a.meta[index].isEmpty = false
		a.entityIDs.Insert(int(index))
	}
	a.pending = a.pending[:newFreeCursor]
}

// Get returns the live entity at index, if any.
func (a *Allocator) Get(index uint32) (Entity, bool) {
	if int(index) >= len(a.meta) {
		return Entity{}, false
	}
	m := a.meta[index]
	if m.isEmpty {
		return Entity{}, false
	}
	return Entity{index: index, generation: m.generation}, true
}
