package mem

import (
	"github.com/loaderkit/bootmem/internal/format"
)

// Cursor is a read-only iterator over the firmware memory map. The map is
// immutable and restartable; a fresh cursor starts at the first entry.
type Cursor struct {
	p   *Phys
	off uint64
}

// NewCursor returns a cursor over the map at its fixed address.
func NewCursor(p *Phys) Cursor {
	return NewCursorAt(p, format.MapAddr)
}

// NewCursorAt returns a cursor over a map at addr. Tooling uses this to
// walk relocated copies; the allocator itself always reads format.MapAddr.
func NewCursorAt(p *Phys, addr uint64) Cursor {
	return Cursor{p: p, off: addr}
}

// entry decodes the current slot. A slot beyond the window reads as the
// sentinel, so a truncated image terminates the walk instead of looping.
func (c *Cursor) entry() format.E820Entry {
	b, err := c.p.Slice(c.off, format.E820EntrySize)
	if err != nil {
		return format.E820Entry{}
	}
	e, err := format.ReadE820Entry(b, 0)
	if err != nil {
		return format.E820Entry{}
	}
	return e
}

// IsEnd is true when the cursor is past the last entry.
func (c *Cursor) IsEnd() bool {
	return c.entry().End()
}

// Usable is true when the current entry describes RAM the OS may use.
func (c *Cursor) Usable() bool {
	return c.entry().Usable()
}

// Next advances to the following entry. Precondition: !IsEnd().
func (c *Cursor) Next() {
	c.off += format.E820EntrySize
}

// Base returns the current entry's physical base address.
func (c *Cursor) Base() uint64 {
	return c.entry().Base
}

// Length returns the current entry's length in bytes.
func (c *Cursor) Length() uint64 {
	return c.entry().Length
}

// Entry returns the decoded current entry, for rendering.
func (c *Cursor) Entry() format.E820Entry {
	return c.entry()
}
