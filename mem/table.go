package mem

import (
	"github.com/loaderkit/bootmem/internal/buf"
	"github.com/loaderkit/bootmem/internal/format"
)

// Allocation table primitives. Records live serialized inside the managed
// window at m.tableAddr; the live count is m.count. The table's backing
// region is itself described by one of its records (the self-reference),
// so growing the table goes through the ordinary Realloc path.

// recordAt decodes record i. The table backing is kept inside the window
// by Init and growTable, so the bounds check only trips on corruption; a
// short read yields the zero record.
func (m *Map) recordAt(i uint64) format.Record {
	off, ok := buf.MulOverflowSafe(i, format.RecordSize)
	if !ok {
		return format.Record{}
	}
	b, err := m.phys.Slice(m.tableAddr+off, format.RecordSize)
	if err != nil {
		return format.Record{}
	}
	return format.ReadRecord(b, 0)
}

// writeRecord encodes rec into slot i. Out-of-window writes are dropped.
func (m *Map) writeRecord(i uint64, rec format.Record) {
	off, ok := buf.MulOverflowSafe(i, format.RecordSize)
	if !ok {
		return
	}
	b, err := m.phys.Slice(m.tableAddr+off, format.RecordSize)
	if err != nil {
		return
	}
	format.PutRecord(b, 0, rec)
}

// sortTable bubble-sorts records [0, count) ascending by address. The
// count stays small during loader operation, so the quadratic worst case
// is irrelevant next to keeping the code free of allocation.
func (m *Map) sortTable() {
	for swapped := true; swapped; {
		swapped = false
		for i := uint64(0); i+1 < m.count; i++ {
			a := m.recordAt(i)
			b := m.recordAt(i + 1)
			if a.Addr > b.Addr {
				m.writeRecord(i, b)
				m.writeRecord(i+1, a)
				swapped = true
			}
		}
	}
}

// findRecord returns the index of the live record whose base equals addr,
// or -1.
func (m *Map) findRecord(addr uint64) int {
	for i := uint64(0); i < m.count; i++ {
		if m.recordAt(i).Addr == addr {
			return int(i)
		}
	}
	return -1
}

// growTable reserves table backing for one more record, relocating the
// table when the slack runs out. Appending the grown backing's own record
// never appends again, so the recursion through Realloc is one level deep.
func (m *Map) growTable() error {
	newSize, ok := buf.MulOverflowSafe(m.count+1, format.RecordSize)
	if !ok {
		return ErrNoSpace
	}
	addr, err := m.Realloc(m.tableAddr, newSize)
	if err != nil {
		return err
	}
	m.tableAddr = addr
	return nil
}
