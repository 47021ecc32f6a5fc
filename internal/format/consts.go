package format

// Physical layout constants for the boot window.
//
// The firmware writes its E820 memory map at a fixed low address during real
// mode; the loader's reserved region covers its own code, the BIOS data area
// and the map itself. Everything above ReservedTop is fair game for the
// allocator, subject to what the map declares usable.
const (
	// MapAddr is the fixed physical address of the firmware memory map.
	MapAddr = 0x6000

	// ReservedTop is the exclusive upper bound of the bootstrap reservation.
	// [0, ReservedTop) holds loader code, firmware data structures and the
	// memory map; it is never handed out.
	ReservedTop = 0x60000

	// PageSize is the allocation granularity. Every reservation is a
	// multiple of this.
	PageSize = 0x1000

	// PageMask is the bitmask used for page alignment (PageSize - 1).
	PageMask = PageSize - 1
)

// E820 entry layout. Entries are stored back to back at MapAddr with a
// 32-byte stride (the 24-byte ACPI record padded to a power of two).
const (
	// E820EntrySize is the stride between consecutive map entries.
	E820EntrySize = 32

	// Field offsets within an entry.
	E820BaseOff   = 0  // u64 physical base
	E820LengthOff = 8  // u64 length in bytes
	E820TypeOff   = 16 // u32 region classification
	E820AttrOff   = 20 // u32 ACPI 3.0 extended attributes
)

// E820 region classifications, per the ACPI address range types.
const (
	E820TypeUsable      = 1
	E820TypeReserved    = 2
	E820TypeACPIReclaim = 3
	E820TypeACPINVS     = 4
	E820TypeBad         = 5
)

// Allocation record layout. Records are stored back to back at the table's
// base address, inside the managed memory itself.
const (
	// RecordSize is the serialized size of one allocation record.
	RecordSize = 24

	// Field offsets within a record.
	RecAddrOff     = 0  // u64 block base address
	RecSizeOff     = 8  // u64 bytes the client asked for
	RecReservedOff = 16 // u64 bytes actually held, page multiple
)

// MaxAddr is the retirement sentinel. Freeing a block sets its record's
// address to MaxAddr so the next sort pushes it past the live tail.
const MaxAddr = ^uint64(0)

// DriverSize is the size of the storage-driver object block, allocated
// through the normal allocation path during driver bootstrap.
const DriverSize = 0x200
