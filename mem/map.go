package mem

import (
	"github.com/loaderkit/bootmem/internal/buf"
	"github.com/loaderkit/bootmem/internal/format"
)

// Map is the boot-window allocator: the firmware memory map plus the
// allocation table tracking every block carved out of it.
//
// The zero count / zero tableAddr state means bootstrap failed; every
// operation then returns ErrNotReady. There is no teardown - the loader
// hands control to the kernel with the map still live.
type Map struct {
	phys      *Phys
	mapAddr   uint64
	tableAddr uint64
	count     uint64
}

// NewMap returns an allocator over p reading the firmware map at its
// fixed address. Call Init before any allocation.
func NewMap(p *Phys) *Map {
	return &Map{phys: p, mapAddr: format.MapAddr}
}

// Count returns the number of live allocation records.
func (m *Map) Count() uint64 {
	return m.count
}

// TableAddr returns the allocation table's backing address, zero when
// bootstrap failed.
func (m *Map) TableAddr() uint64 {
	return m.tableAddr
}

// Phys returns the underlying physical window.
func (m *Map) Phys() *Phys {
	return m.phys
}

// Init bootstraps the allocation table out of the memory it will manage.
//
// It walks the firmware map for the first usable region that still has a
// page of room above the bootstrap reservation, then seeds the table there
// with two records: the bootstrap reservation itself and the table's own
// backing (the self-reference). When no region qualifies the table stays
// empty and subsequent allocations fail cleanly.
func (m *Map) Init() {
	m.tableAddr = 0
	m.count = 0

	// The initial backing must hold two records; reservations are page
	// multiples, so that rounds up to one page.
	need := format.AlignPage(2 * format.RecordSize)

	for c := NewCursorAt(m.phys, m.mapAddr); !c.IsEnd(); c.Next() {
		if !c.Usable() {
			continue
		}
		base := c.Base()
		end, ok := buf.AddOverflowSafe(base, c.Length())
		if !ok {
			continue
		}
		if end > m.phys.Size() {
			end = m.phys.Size()
		}
		// Skip regions the loader already occupies, clip ones that
		// straddle the reservation boundary.
		if end < format.ReservedTop {
			continue
		}
		if base < format.ReservedTop {
			base = format.ReservedTop
		}
		if end-base < need {
			continue
		}

		m.tableAddr = base
		m.count = 2
		m.writeRecord(0, format.Record{
			Addr:     0,
			Size:     format.ReservedTop,
			Reserved: format.ReservedTop,
		})
		m.writeRecord(1, format.Record{
			Addr:     base,
			Size:     2 * format.RecordSize,
			Reserved: need,
		})
		return
	}
}

// findSuitableAddr runs the first-fit placement scan for a page-rounded
// size. It walks usable firmware entries in map order; within an entry the
// candidate starts at the entry base and hops over every live record whose
// interval intersects it, landing on the lowest uncovered hole.
func (m *Map) findSuitableAddr(size uint64) (uint64, bool) {
	for c := NewCursorAt(m.phys, m.mapAddr); !c.IsEnd(); c.Next() {
		if !c.Usable() {
			continue
		}
		base := c.Base()
		limit, ok := buf.AddOverflowSafe(base, c.Length())
		if !ok {
			continue
		}
		// The window is the backing for every byte we hand out;
		// firmware ranges beyond it cannot be used.
		if limit > m.phys.Size() {
			limit = m.phys.Size()
		}
		if base >= limit || limit-base < size {
			continue
		}

		candidate := base
		fits := true
		for i := uint64(0); i < m.count; i++ {
			rec := m.recordAt(i)
			candEnd, ok := buf.AddOverflowSafe(candidate, size)
			if !ok {
				fits = false
				break
			}
			// Hop past any record intersecting the candidate
			// interval, including ones that cover it from below:
			// a usable entry may begin inside the bootstrap
			// reservation, putting the first candidate mid-record.
			// Records are sorted ascending, so hopping to a
			// record's end keeps the candidate monotonic.
			if rec.End() > candidate && rec.Addr < candEnd {
				candidate = rec.End()
				candEnd, ok = buf.AddOverflowSafe(candidate, size)
				if !ok || candEnd > limit {
					// An exactly-fitting tail hole is
					// still accepted; only crossing the
					// entry end rejects.
					fits = false
					break
				}
			}
		}
		if fits {
			return candidate, true
		}
	}
	return 0, false
}

// Malloc allocates size bytes and returns the block's physical base.
// The reservation is rounded up to a page; a zero size still reserves one
// page. Fails with ErrNotReady before bootstrap and ErrNoSpace when no
// usable region can host the block.
//
// The table slot is reserved before the block is placed, so a failed call
// may still have grown the self-reference's reservation and relocated the
// table backing. The map stays valid either way; the slack is reused by
// the next allocation.
func (m *Map) Malloc(size uint64) (uint64, error) {
	if m.tableAddr == 0 {
		return 0, ErrNotReady
	}
	reserved, err := pageReservation(size)
	if err != nil {
		return 0, err
	}

	// Reserve the table slot before placing the block. The growth may
	// relocate the table; running placement after it guarantees the new
	// block cannot land on the region the table just claimed.
	if err := m.growTable(); err != nil {
		return 0, err
	}

	addr, ok := m.findSuitableAddr(reserved)
	if !ok {
		return 0, ErrNoSpace
	}

	m.writeRecord(m.count, format.Record{Addr: addr, Size: size, Reserved: reserved})
	m.count++
	m.sortTable()
	return addr, nil
}

// Realloc resizes the block at addr to size bytes.
//
// A zero addr behaves as Malloc. Shrinking, or growing within the block's
// reserved slack, keeps the address. Otherwise the block moves: a new
// placement is found, the old user-visible contents are copied over, and
// the old interval implicitly becomes free for future placement.
func (m *Map) Realloc(addr, size uint64) (uint64, error) {
	if addr == 0 {
		return m.Malloc(size)
	}
	if m.tableAddr == 0 {
		return 0, ErrNotReady
	}
	i := m.findRecord(addr)
	if i < 0 {
		return 0, ErrBadAddr
	}
	rec := m.recordAt(uint64(i))

	if rec.Reserved >= size {
		rec.Size = size
		m.writeRecord(uint64(i), rec)
		return addr, nil
	}

	reserved, err := pageReservation(size)
	if err != nil {
		return 0, err
	}
	newAddr, ok := m.findSuitableAddr(reserved)
	if !ok {
		return 0, ErrNoSpace
	}

	// Copy before retargeting the record: when the block being moved is
	// the table itself, the record must be rewritten inside the new copy.
	if err := m.phys.Copy(newAddr, addr, rec.Size); err != nil {
		return 0, err
	}
	if addr == m.tableAddr {
		m.tableAddr = newAddr
	}
	rec.Addr = newAddr
	rec.Size = size
	rec.Reserved = reserved
	m.writeRecord(uint64(i), rec)
	m.sortTable()
	return newAddr, nil
}

// Free retires the block at addr. A zero or unknown address is a silent
// no-op, and the table's own backing cannot be freed from outside. The
// record gets the retirement sentinel, the resort pushes it past the live
// tail, and the count drops; the bytes themselves are left untouched.
func (m *Map) Free(addr uint64) {
	if addr == 0 || addr == m.tableAddr {
		return
	}
	i := m.findRecord(addr)
	if i < 0 {
		return
	}
	rec := m.recordAt(uint64(i))
	rec.Addr = format.MaxAddr
	m.writeRecord(uint64(i), rec)
	m.sortTable()
	m.count--
}

// pageReservation rounds a requested size up to the page-multiple extent
// actually held. Zero reserves one page.
func pageReservation(size uint64) (uint64, error) {
	if size > format.MaxAddr-format.PageMask {
		return 0, ErrNoSpace
	}
	reserved := format.AlignPage(size)
	if reserved == 0 {
		reserved = format.PageSize
	}
	return reserved, nil
}
