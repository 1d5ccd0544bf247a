// Package access tracks which components a query or system reads and
// writes, and decides whether two accesses may run concurrently. Grounded
// in the teacher's ComponentBitSet (internal/core/ecs/query/bitset.go) for
// the set-membership idiom, generalized to plain maps keyed by
// component.ID so the id space isn't capped at 64 components.
package access

import "github.com/murklake/ecsframe/component"

// Set records the read and write component ids an access touches, plus two
// escape hatches: ReadAll (a system that reads every component, e.g. via
// &World) and Entities (bare Entity access, which never conflicts with
// anything).
type Set struct {
	reads    map[component.ID]struct{}
	writes   map[component.ID]struct{}
	readAll  bool
	entities bool
}

// NewSet returns an empty access set.
func NewSet() *Set {
	return &Set{reads: map[component.ID]struct{}{}, writes: map[component.ID]struct{}{}}
}

// AddRead records a shared-read access to id.
func (s *Set) AddRead(id component.ID) { s.reads[id] = struct{}{} }

// AddWrite records an exclusive-write access to id.
func (s *Set) AddWrite(id component.ID) { s.writes[id] = struct{}{} }

// AddReadAll marks the access as touching every component (e.g. &World).
func (s *Set) AddReadAll() { s.readAll = true }

// AddEntities marks the access as touching bare entity identifiers.
func (s *Set) AddEntities() { s.entities = true }

// HasRead reports whether id is read (including via ReadAll).
func (s *Set) HasRead(id component.ID) bool {
	if s.readAll {
		return true
	}
	_, ok := s.reads[id]
	return ok
}

// HasWrite reports whether id is written.
func (s *Set) HasWrite(id component.ID) bool {
	_, ok := s.writes[id]
	return ok
}

// ReadAll reports whether the access touches every component.
func (s *Set) ReadAll() bool { return s.readAll }

// IsCompatible reports whether s and other may run concurrently: neither
// writes to anything the other reads or writes, and ReadAll access is only
// compatible with another purely-reading access.
func (s *Set) IsCompatible(other *Set) bool {
	if s.readAll && (other.readAll || len(other.writes) > 0) {
		return len(other.writes) == 0 && len(s.writes) == 0
	}
	if other.readAll {
		return len(s.writes) == 0
	}
	for id := range s.writes {
		if _, ok := other.reads[id]; ok {
			return false
		}
		if _, ok := other.writes[id]; ok {
			return false
		}
	}
	for id := range other.writes {
		if _, ok := s.reads[id]; ok {
			return false
		}
	}
	return true
}

// Extend merges other's reads/writes/flags into s.
func (s *Set) Extend(other *Set) {
	for id := range other.reads {
		s.reads[id] = struct{}{}
	}
	for id := range other.writes {
		s.writes[id] = struct{}{}
	}
	s.readAll = s.readAll || other.readAll
	s.entities = s.entities || other.entities
}

// Clone returns an independent copy.
func (s *Set) Clone() *Set {
	c := NewSet()
	c.Extend(s)
	return c
}

// FilteredAccess is a Set plus the With/Without component sets a query
// filter narrows its candidate entities by. Two FilteredAccess values with
// disjoint with/without sets are always compatible even if their read/write
// sets overlap, since they can never match the same entity — mirrored from
// the original's FilteredAccess::is_compatible exemption for With/Without
// disjointness.
type FilteredAccess struct {
	Set
	with    map[component.ID]struct{}
	without map[component.ID]struct{}
}

// NewFilteredAccess returns an empty filtered access.
func NewFilteredAccess() *FilteredAccess {
	return &FilteredAccess{Set: *NewSet(), with: map[component.ID]struct{}{}, without: map[component.ID]struct{}{}}
}

// AddWith records that matching entities must carry id (without reading it).
func (f *FilteredAccess) AddWith(id component.ID) { f.with[id] = struct{}{} }

// AddWithout records that matching entities must not carry id.
func (f *FilteredAccess) AddWithout(id component.ID) { f.without[id] = struct{}{} }

// WithIDs returns the set of component ids matching entities must carry.
func (f *FilteredAccess) WithIDs() map[component.ID]struct{} { return f.with }

// WithoutIDs returns the set of component ids matching entities must not carry.
func (f *FilteredAccess) WithoutIDs() map[component.ID]struct{} { return f.without }

// IsCompatible reports whether f and other may run concurrently, taking
// with/without disjointness into account before falling back to plain
// read/write conflict checks.
func (f *FilteredAccess) IsCompatible(other *FilteredAccess) bool {
	if f.disjointByFilter(other) {
		return true
	}
	return f.Set.IsCompatible(&other.Set)
}

func (f *FilteredAccess) disjointByFilter(other *FilteredAccess) bool {
	for id := range f.without {
		if _, ok := other.with[id]; ok {
			return true
		}
	}
	for id := range other.without {
		if _, ok := f.with[id]; ok {
			return true
		}
	}
	return false
}

// ExtendIntersect merges other's read/write access into f but keeps only
// the with/without constraints common to both — used by Or filter
// combination, whose match set is the union of its branches and therefore
// can only assume filter constraints present on every branch.
func (f *FilteredAccess) ExtendIntersect(other *FilteredAccess) {
	f.Set.Extend(&other.Set)

	for id := range f.with {
		if _, ok := other.with[id]; !ok {
			delete(f.with, id)
		}
	}
	for id := range f.without {
		if _, ok := other.without[id]; !ok {
			delete(f.without, id)
		}
	}
}

// Clone returns an independent copy.
func (f *FilteredAccess) Clone() *FilteredAccess {
	c := NewFilteredAccess()
	c.Set.Extend(&f.Set)
	for id := range f.with {
		c.with[id] = struct{}{}
	}
	for id := range f.without {
		c.without[id] = struct{}{}
	}
	return c
}
