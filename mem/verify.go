package mem

import (
	"errors"
	"fmt"

	"github.com/loaderkit/bootmem/internal/format"
)

// Verify checks every allocator invariant and returns a joined error
// naming all violations, or nil. An uninitialized map is trivially valid.
//
// Invariants:
//  1. no two live reservations overlap
//  2. every live reservation lies within one usable firmware region
//     (the bootstrap reservation is exempt - it exists to cover space
//     the firmware never declared usable)
//  3. addresses and reservations are page multiples
//  4. size never exceeds the reservation
//  5. records are strictly sorted by address
//  6. exactly one live record backs the table, with room for all records
func Verify(m *Map) error {
	if m.tableAddr == 0 {
		return nil
	}

	var errs []error
	n := m.count

	for i := uint64(0); i < n; i++ {
		rec := m.recordAt(i)

		if rec.Retired() {
			errs = append(errs, fmt.Errorf("record %d: retired record below the live count", i))
			continue
		}
		if rec.Size > rec.Reserved {
			errs = append(errs, fmt.Errorf("record %d: size %#x exceeds reservation %#x", i, rec.Size, rec.Reserved))
		}
		if !format.PageAligned(rec.Addr) {
			errs = append(errs, fmt.Errorf("record %d: address %#x not page-aligned", i, rec.Addr))
		}
		if !format.PageAligned(rec.Reserved) {
			errs = append(errs, fmt.Errorf("record %d: reservation %#x not a page multiple", i, rec.Reserved))
		}
		if i+1 < n {
			next := m.recordAt(i + 1)
			if rec.Addr >= next.Addr {
				errs = append(errs, fmt.Errorf("record %d: address %#x not below successor %#x", i, rec.Addr, next.Addr))
			}
			if rec.End() > next.Addr {
				errs = append(errs, fmt.Errorf("record %d: reservation [%#x, %#x) overlaps successor at %#x", i, rec.Addr, rec.End(), next.Addr))
			}
		}
		if !isBootstrap(rec) && !m.containedInUsable(rec) {
			errs = append(errs, fmt.Errorf("record %d: reservation [%#x, %#x) outside every usable region", i, rec.Addr, rec.End()))
		}
	}

	backing := 0
	for i := uint64(0); i < n; i++ {
		rec := m.recordAt(i)
		if rec.Addr != m.tableAddr {
			continue
		}
		backing++
		if need := n * format.RecordSize; rec.Reserved < need {
			errs = append(errs, fmt.Errorf("self-reference: reservation %#x below table footprint %#x", rec.Reserved, need))
		}
	}
	if backing != 1 {
		errs = append(errs, fmt.Errorf("self-reference: %d records back the table at %#x, want 1", backing, m.tableAddr))
	}

	return errors.Join(errs...)
}

// isBootstrap matches the synthetic record covering the loader's low
// reservation.
func isBootstrap(rec format.Record) bool {
	return rec.Addr == 0 && rec.Reserved == format.ReservedTop
}

// containedInUsable reports whether the record's reservation lies wholly
// inside some usable firmware region.
func (m *Map) containedInUsable(rec format.Record) bool {
	for c := NewCursorAt(m.phys, m.mapAddr); !c.IsEnd(); c.Next() {
		if !c.Usable() {
			continue
		}
		base := c.Base()
		end := base + c.Length()
		if rec.Addr >= base && rec.End() <= end {
			return true
		}
	}
	return false
}
