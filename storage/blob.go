package storage

// Blob is a growable, untyped column of component values: it tracks a
// single Go type per column but stores each slot boxed as any, standing in
// for the original's raw-byte BlobVec (original_source/src/storage/
// blob_vec.rs). Go has no safe equivalent of manually laying out values by
// reflect.Type.Size()/Align() the way Layout-driven BlobVec does — boxing
// trades some allocation density for memory safety, which idiomatic Go
// favors over hand-rolled unsafe layout code (see DESIGN.md).
//
// Swap-remove follows the same contract as the original: the caller is
// responsible for keeping any external index (e.g. a sparse map) in sync
// with the row that gets relocated.
type Blob struct {
	values []any
	drop   func(any)
}

// NewBlob returns an empty column. drop, if non-nil, is invoked on the
// value being overwritten/removed — the closest Go analogue to BlobVec's
// optional drop-in-place function pointer.
func NewBlob(drop func(any)) *Blob {
	return &Blob{drop: drop}
}

// Len returns the number of rows.
func (b *Blob) Len() int { return len(b.values) }

// IsEmpty reports whether the column has zero rows.
func (b *Blob) IsEmpty() bool { return len(b.values) == 0 }

// Get returns the row at index.
func (b *Blob) Get(index int) any { return b.values[index] }

// Push appends value as a new row.
func (b *Blob) Push(value any) {
	b.values = append(b.values, value)
}

// Replace overwrites the row at index with value, invoking drop on the
// previous occupant first.
func (b *Blob) Replace(index int, value any) {
	if b.drop != nil {
		b.drop(b.values[index])
	}
	b.values[index] = value
}

// SwapRemove removes the row at index by moving the last row into its
// place (unless it was already last) and truncating. Returns the removed
// value; drop is NOT invoked — callers that don't need the value should
// call SwapRemoveAndDrop instead.
func (b *Blob) SwapRemove(index int) any {
	last := len(b.values) - 1
	removed := b.values[index]
	b.values[index] = b.values[last]
	b.values[last] = nil
	b.values = b.values[:last]
	return removed
}

// SwapRemoveAndDrop removes the row at index the same way SwapRemove does,
// but invokes drop on the removed value instead of returning it.
func (b *Blob) SwapRemoveAndDrop(index int) {
	v := b.SwapRemove(index)
	if b.drop != nil {
		b.drop(v)
	}
}

// Clear empties the column, invoking drop on every row if set.
func (b *Blob) Clear() {
	if b.drop != nil {
		for _, v := range b.values {
			b.drop(v)
		}
	}
	b.values = b.values[:0]
}
