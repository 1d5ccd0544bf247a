// Package change implements the added/changed bookkeeping every component
// slot carries, ported from original_source/src/change_ticks.rs.
package change

// CheckTickThreshold bounds how stale a change tick may get before
// CheckTicks clamps it back into range. Ported verbatim from the Rust
// source; spec.md only gives the symbolic constant, not its literal value.
const CheckTickThreshold uint32 = 518_400_000

// MaxAge is the oldest age (in ticks) a component's added/changed tick can
// represent before CheckTicks resets it. Computed once from
// CheckTickThreshold the same way the Rust const is derived.
const MaxAge uint32 = ^uint32(0) - (2*CheckTickThreshold - 1)

// Ticks records when a component slot was last inserted and last mutated,
// in terms of the world's monotonically increasing change tick counter.
type Ticks struct {
	Added   uint32
	Changed uint32
}

// NewTicks returns ticks stamped as both added and changed at changeTick,
// the state a freshly-inserted component slot starts in.
func NewTicks(changeTick uint32) Ticks {
	return Ticks{Added: changeTick, Changed: changeTick}
}

// SetChanged stamps Changed at changeTick, leaving Added untouched.
func (t *Ticks) SetChanged(changeTick uint32) {
	t.Changed = changeTick
}

func age(tick uint32, changeTick uint32) uint32 {
	d := changeTick - tick // wrapping subtraction, as in the source
	if d > MaxAge {
		return MaxAge
	}
	return d
}

// IsAdded reports whether the slot was added after lastChangeTick, as
// observed from a system whose current tick is changeTick.
func (t Ticks) IsAdded(lastChangeTick, changeTick uint32) bool {
	return age(lastChangeTick, changeTick) > age(t.Added, changeTick)
}

// IsChanged reports whether the slot was mutated after lastChangeTick.
func (t Ticks) IsChanged(lastChangeTick, changeTick uint32) bool {
	return age(lastChangeTick, changeTick) > age(t.Changed, changeTick)
}

// CheckTicks clamps Added/Changed back into range once their age would
// otherwise overflow MaxAge. An overaged tick is reset to
// changeTick - MaxAge, so it keeps the oldest representable age and is not
// reported as added or changed afterwards.
func (t *Ticks) CheckTicks(changeTick uint32) {
	checkTick(&t.Added, changeTick)
	checkTick(&t.Changed, changeTick)
}

func checkTick(tick *uint32, changeTick uint32) {
	a := changeTick - *tick
	if a > MaxAge {
		*tick = changeTick - MaxAge
	}
}

// Mut wraps a live pointer to a component value together with its Ticks,
// handed out by mutable query fetches and ResMut. Go has no operator
// overloading for dereference, so unlike the original's DerefMut-triggers-
// changed behavior, callers must mark mutation explicitly via GetMut (the
// idiomatic Go substitute: an explicit accessor instead of implicit deref
// magic).
type Mut[T any] struct {
	value      *T
	ticks      *Ticks
	changeTick uint32
}

// NewMut constructs a Mut wrapper around value/ticks, stamping mutations at
// changeTick.
func NewMut[T any](value *T, ticks *Ticks, changeTick uint32) Mut[T] {
	return Mut[T]{value: value, ticks: ticks, changeTick: changeTick}
}

// Get returns the current value without marking the slot changed.
func (m Mut[T]) Get() T { return *m.value }

// GetMut returns a pointer to the live value and marks the slot changed at
// construction time. Any mutation through the returned pointer is therefore
// attributed to this access, matching the "assume written" contract mutable
// query fetches use (spec.md §4.7: a write access is conservatively treated
// as a change).
func (m Mut[T]) GetMut() *T {
	m.ticks.SetChanged(m.changeTick)
	return m.value
}

// Set replaces the value outright and marks the slot changed.
func (m Mut[T]) Set(v T) {
	*m.value = v
	m.ticks.SetChanged(m.changeTick)
}

// IsAdded reports whether the underlying slot was added since lastChangeTick.
func (m Mut[T]) IsAdded(lastChangeTick uint32) bool {
	return m.ticks.IsAdded(lastChangeTick, m.changeTick)
}

// IsChanged reports whether the underlying slot was mutated since
// lastChangeTick.
func (m Mut[T]) IsChanged(lastChangeTick uint32) bool {
	return m.ticks.IsChanged(lastChangeTick, m.changeTick)
}
