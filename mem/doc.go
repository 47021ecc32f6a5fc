// Package mem implements the boot-window physical-memory allocator.
//
// # Overview
//
// During the early boot window no kernel memory manager exists yet. The
// loader still needs dynamic buffers, most pressingly for the storage
// driver. This package consumes the firmware-provided E820 memory map,
// carves the usable regions into page-granular allocations, and exposes a
// malloc/realloc/free contract plus the function-pointer vtable the storage
// driver consumes.
//
// The physical address space is modeled as a byte-addressed window (Phys),
// backed either by an in-memory slice or a mapped image file (Image). The
// firmware map lives at its fixed address inside the window, and so does
// the allocator's own bookkeeping: the allocation table is an array of
// records stored in memory the allocator itself manages, described by one
// of its own records.
//
// # Usage
//
//	p := mem.WrapPhys(img)
//	m := mem.NewMap(p)
//	m.Init()
//
//	addr, err := m.Malloc(0x500)
//	if err != nil {
//	    return err
//	}
//	addr, err = m.Realloc(addr, 0x2000)
//	m.Free(addr)
//
// # Placement
//
// Allocation is first-fit in firmware-map order: the lowest address inside
// a usable region not covered by the bootstrap reservation or a live
// allocation. Reservations are always multiples of one page (0x1000), so
// once the bootstrap reservation ends on a page boundary every later
// allocation is page-aligned by induction.
//
// # Concurrency
//
// The allocator is single-threaded by design. The boot window runs on one
// logical processor with interrupts off; there is exactly one mutator and
// no locking.
package mem
