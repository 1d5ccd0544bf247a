package storage

import "github.com/murklake/ecsframe/change"

// Column pairs a Blob of component values with a parallel slice of
// per-row ChangeTicks, ported from original_source/src/storage/column.rs.
type Column struct {
	data  *Blob
	ticks []change.Ticks
}

// NewColumn returns an empty column. drop is forwarded to the underlying
// Blob.
func NewColumn(drop func(any)) *Column {
	return &Column{data: NewBlob(drop)}
}

// Len returns the number of rows.
func (c *Column) Len() int { return c.data.Len() }

// IsEmpty reports whether the column has zero rows.
func (c *Column) IsEmpty() bool { return c.data.IsEmpty() }

// GetData returns the component value at row.
func (c *Column) GetData(row int) any { return c.data.Get(row) }

// GetTicks returns a pointer to the ChangeTicks for row, which query
// fetchers read directly and Mut wrappers update in place.
func (c *Column) GetTicks(row int) *change.Ticks { return &c.ticks[row] }

// Push appends a new row, stamping its ticks as added+changed at
// changeTick.
func (c *Column) Push(value any, changeTick uint32) {
	c.data.Push(value)
	c.ticks = append(c.ticks, change.NewTicks(changeTick))
}

// Replace overwrites row with value and stamps Changed at changeTick,
// leaving Added untouched (an insert onto an existing entity is a mutation,
// not a fresh add).
func (c *Column) Replace(row int, value any, changeTick uint32) {
	c.data.Replace(row, value)
	c.ticks[row].SetChanged(changeTick)
}

// ReplaceUntracked overwrites row without touching its change ticks, used
// when restoring a value that shouldn't appear as freshly changed.
func (c *Column) ReplaceUntracked(row int, value any) {
	c.data.Replace(row, value)
}

// SwapRemove removes row, returning its value and ticks; the caller patches
// any external sparse index for the relocated row.
func (c *Column) SwapRemove(row int) (any, change.Ticks) {
	v := c.data.SwapRemove(row)
	last := len(c.ticks) - 1
	ticks := c.ticks[row]
	c.ticks[row] = c.ticks[last]
	c.ticks = c.ticks[:last]
	return v, ticks
}

// SwapRemoveAndDrop removes row the same way SwapRemove does but invokes
// the column's drop hook instead of returning the value.
func (c *Column) SwapRemoveAndDrop(row int) {
	v, _ := c.SwapRemove(row)
	if c.data.drop != nil {
		c.data.drop(v)
	}
}

// Clear empties the column.
func (c *Column) Clear() {
	c.data.Clear()
	c.ticks = c.ticks[:0]
}

// CheckChangeTicks clamps every row's change ticks relative to changeTick,
// called once per schedule run (spec.md §4.7's periodic clamp pass).
func (c *Column) CheckChangeTicks(changeTick uint32) {
	for i := range c.ticks {
		c.ticks[i].CheckTicks(changeTick)
	}
}
