package format

// Alignment utilities for the boot window. All reservations are page
// multiples, so the allocator only ever needs page-granular rounding.

// AlignPage returns n aligned up to the next page boundary.
//
// Example:
//
//	AlignPage(1)      = 0x1000
//	AlignPage(0x1000) = 0x1000
//	AlignPage(0x1001) = 0x2000
func AlignPage(n uint64) uint64 {
	return (n + PageMask) &^ uint64(PageMask)
}

// PageAligned reports whether n sits on a page boundary.
func PageAligned(n uint64) bool {
	return n&PageMask == 0
}
