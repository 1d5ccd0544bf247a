package storage

import "github.com/murklake/ecsframe/change"

// resourceCell holds a boxed resource value alongside its change ticks,
// standing in for the original's ResourceData{data: *mut dyn Resource,
// change_ticks}. Go's GC makes the raw-pointer ownership dance in
// resource.rs unnecessary.
type resourceCell struct {
	value any
	ticks change.Ticks
}

// Resources is the sparse component_id -> (boxed value, ChangeTicks) table
// spec.md §4.3 describes, ported from original_source/src/storage/
// resource.rs.
type Resources struct {
	data SparseArray[resourceCell]
}

// NewResources returns an empty resource table.
func NewResources() *Resources { return &Resources{} }

// Len returns the number of populated resource slots. Cheap but linear;
// only used by diagnostics/tests, not the hot path.
func (r *Resources) Len() int {
	n := 0
	r.data.Iter(func(int, *resourceCell) { n++ })
	return n
}

// Contains reports whether id has a resource inserted.
func (r *Resources) Contains(id int) bool { return r.data.Contains(id) }

// Insert stores value for id, stamping fresh added+changed ticks at
// changeTick. Overwrites any existing value without invoking a drop hook —
// Go resources have no explicit destructor.
func (r *Resources) Insert(id int, value any, changeTick uint32) {
	r.data.Insert(id, resourceCell{value: value, ticks: change.NewTicks(changeTick)})
}

// Remove deletes id's slot, returning its value if present.
func (r *Resources) Remove(id int) (any, bool) {
	cell, ok := r.data.Remove(id)
	if !ok {
		return nil, false
	}
	return cell.value, true
}

// Get returns id's value.
func (r *Resources) Get(id int) (any, bool) {
	cell, ok := r.data.Get(id)
	if !ok {
		return nil, false
	}
	return cell.value, true
}

// GetWithTicks returns id's value and a pointer to its ChangeTicks, letting
// ResMut mark the resource changed in place.
func (r *Resources) GetWithTicks(id int) (any, *change.Ticks, bool) {
	ptr := r.data.GetPtr(id)
	if ptr == nil {
		return nil, nil, false
	}
	return ptr.value, &ptr.ticks, true
}

// CheckChangeTicks clamps every resource's change ticks.
func (r *Resources) CheckChangeTicks(changeTick uint32) {
	r.data.Iter(func(_ int, cell *resourceCell) {
		cell.ticks.CheckTicks(changeTick)
	})
}
