package storage

import "github.com/murklake/ecsframe/change"

// Dense is the single storage variant this runtime implements (spec.md
// §4.2 specifies only "dense"; the original's sparse-storage variant in
// sparse.rs has no counterpart here). It pairs a Column of component values
// with a sparse entity-index -> row map and a dense row -> entity-index
// array, ported from original_source/src/storage/dense.rs.
type Dense struct {
	column   *Column
	entities []uint32          // row -> entity index
	sparse   SparseArray[int]  // entity index -> row
}

// NewDense returns an empty dense storage. drop is forwarded to the
// underlying column.
func NewDense(drop func(any)) *Dense {
	return &Dense{column: NewColumn(drop)}
}

// Len returns the number of rows (equivalently, entities carrying this
// component).
func (d *Dense) Len() int { return d.column.Len() }

// Contains reports whether entityIndex has a row in this storage.
func (d *Dense) Contains(entityIndex uint32) bool {
	return d.sparse.Contains(int(entityIndex))
}

// EntityIndices returns the row -> entity-index slice, in dense iteration
// order (ascending row, NOT ascending entity index).
func (d *Dense) EntityIndices() []uint32 { return d.entities }

// Insert stores value for entityIndex, replacing the existing row if the
// entity already has one (see Column.Replace for the ticks semantics of an
// overwrite) or appending a new row otherwise.
func (d *Dense) Insert(entityIndex uint32, value any, changeTick uint32) {
	if row, ok := d.sparse.Get(int(entityIndex)); ok {
		d.column.Replace(row, value, changeTick)
		return
	}

	row := d.column.Len()
	d.column.Push(value, changeTick)
	d.entities = append(d.entities, entityIndex)
	d.sparse.Insert(int(entityIndex), row)
}

// swap relocates the entity that ends up at the vacated row after a
// swap-remove in the underlying column, patching its sparse slot — the
// exact algorithm original_source/src/storage/dense.rs::swap implements.
func (d *Dense) swap(row int) {
	last := len(d.entities) - 1

	d.entities[row] = d.entities[last]
	d.entities = d.entities[:last]

	if row != len(d.entities) {
		d.sparse.Insert(int(d.entities[row]), row)
	}
}

// RemoveUnchecked removes entityIndex's row, reporting false if it had
// none. Callers must already know entityIndex is present when "unchecked"
// semantics are desired; RemoveUnchecked still checks, matching the
// original's naming (the "unchecked" there referred to unsafe raw-pointer
// access, not a missing presence check).
func (d *Dense) RemoveUnchecked(entityIndex uint32) (any, change.Ticks, bool) {
	row, ok := d.sparse.Get(int(entityIndex))
	if !ok {
		return nil, change.Ticks{}, false
	}
	d.sparse.Remove(int(entityIndex))

	v, ticks := d.column.SwapRemove(row)
	d.swap(row)
	return v, ticks, true
}

// RemoveAndDrop removes entityIndex's row, invoking the column's drop hook
// instead of returning the value.
func (d *Dense) RemoveAndDrop(entityIndex uint32) bool {
	row, ok := d.sparse.Get(int(entityIndex))
	if !ok {
		return false
	}
	d.sparse.Remove(int(entityIndex))

	d.column.SwapRemoveAndDrop(row)
	d.swap(row)
	return true
}

// Get returns the component value for entityIndex.
func (d *Dense) Get(entityIndex uint32) (any, bool) {
	row, ok := d.sparse.Get(int(entityIndex))
	if !ok {
		return nil, false
	}
	return d.column.GetData(row), true
}

// GetTicks returns the ChangeTicks pointer for entityIndex.
func (d *Dense) GetTicks(entityIndex uint32) (*change.Ticks, bool) {
	row, ok := d.sparse.Get(int(entityIndex))
	if !ok {
		return nil, false
	}
	return d.column.GetTicks(row), true
}

// GetDataPtr returns the raw boxed value stored at row (expected to be a
// pointer to the component's Go type, per the world package's convention
// of boxing components as pointers so mutable access can hand out a real
// *T into the column).
func (d *Dense) GetDataPtr(row int) any { return d.column.GetData(row) }

// GetTicksAtRow returns the ChangeTicks pointer for a known row index,
// skipping the sparse lookup Row already did.
func (d *Dense) GetTicksAtRow(row int) *change.Ticks { return d.column.GetTicks(row) }

// Row returns the dense row index for entityIndex, used by query fetch
// state that wants to index directly into the column without a second
// sparse lookup per field access.
func (d *Dense) Row(entityIndex uint32) (int, bool) {
	return d.sparse.Get(int(entityIndex))
}

// CheckChangeTicks delegates to the underlying column.
func (d *Dense) CheckChangeTicks(changeTick uint32) {
	d.column.CheckChangeTicks(changeTick)
}

// Clear empties the storage.
func (d *Dense) Clear() {
	d.column.Clear()
	d.entities = d.entities[:0]
	d.sparse.Clear()
}
