// Package buf contains overflow-safe arithmetic helpers for address math.
package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would
// overflow uint64. Address arithmetic against a firmware-supplied map must
// never wrap; a bogus entry near the top of the address space would
// otherwise turn into a tiny interval.
func AddOverflowSafe(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result
// would overflow uint64. This is essential for count * recordSize
// calculations when sizing the allocation table.
func MulOverflowSafe(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxUint64/b {
		return 0, false
	}
	return a * b, true
}
