package storage

import "github.com/murklake/ecsframe/component"

// Storages aggregates one Dense column per registered component id,
// ported from original_source/src/storage/storage.rs's
// ComponentStorage{sparse: StorageSets<SparseStorage>} — renamed here since
// this runtime only implements the dense variant.
type Storages struct {
	columns map[component.ID]*Dense
}

// NewStorages returns an empty aggregate.
func NewStorages() *Storages {
	return &Storages{columns: map[component.ID]*Dense{}}
}

// GetOrInsert returns the Dense column for id, creating one (with drop) if
// it doesn't exist yet.
func (s *Storages) GetOrInsert(id component.ID, drop func(any)) *Dense {
	d, ok := s.columns[id]
	if !ok {
		d = NewDense(drop)
		s.columns[id] = d
	}
	return d
}

// Get returns the Dense column for id, if one has been created.
func (s *Storages) Get(id component.ID) (*Dense, bool) {
	d, ok := s.columns[id]
	return d, ok
}

// Remove deletes entityIndex's row from every column that has one,
// matching the original's full-despawn path (StorageSets::remove removes
// from ALL storages).
func (s *Storages) Remove(entityIndex uint32) {
	for _, d := range s.columns {
		if d.Contains(entityIndex) {
			d.RemoveAndDrop(entityIndex)
		}
	}
}

// CheckChangeTicks delegates to every column.
func (s *Storages) CheckChangeTicks(changeTick uint32) {
	for _, d := range s.columns {
		d.CheckChangeTicks(changeTick)
	}
}
