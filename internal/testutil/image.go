// Package testutil builds synthetic physical-memory images with firmware
// maps for tests and examples.
package testutil

import (
	"testing"

	"github.com/loaderkit/bootmem/internal/format"
)

// DefaultCeiling is the size of the standard test image: 16 MiB of
// physical address space.
const DefaultCeiling = 0x1000000

// Region describes one firmware map entry to synthesize.
type Region struct {
	Base   uint64
	Length uint64
	Type   uint32
}

// Usable returns a usable-RAM region.
func Usable(base, length uint64) Region {
	return Region{Base: base, Length: length, Type: format.E820TypeUsable}
}

// Reserved returns a firmware-reserved region.
func Reserved(base, length uint64) Region {
	return Region{Base: base, Length: length, Type: format.E820TypeReserved}
}

// MakeImage returns a zeroed physical window of the given size with the
// regions encoded as an E820 map at format.MapAddr, followed by the
// zero-length sentinel entry.
func MakeImage(size uint64, regions ...Region) []byte {
	img := make([]byte, size)
	off := format.MapAddr
	for _, r := range regions {
		e := format.E820Entry{Base: r.Base, Length: r.Length, Type: r.Type, Attr: 1}
		if err := format.PutE820Entry(img, off, e); err != nil {
			panic(err)
		}
		off += format.E820EntrySize
	}
	// Sentinel slot is already zero, but be explicit about reserving it.
	if off+format.E820EntrySize > len(img) {
		panic("testutil: image too small for firmware map")
	}
	return img
}

// BuildImage is MakeImage with test plumbing.
func BuildImage(t testing.TB, size uint64, regions ...Region) []byte {
	t.Helper()
	return MakeImage(size, regions...)
}

// DefaultImage returns the standard fixture: one usable region
// [0x60000, 0x1000000) in a 16 MiB window.
func DefaultImage(t testing.TB) []byte {
	t.Helper()
	return MakeImage(DefaultCeiling,
		Usable(format.ReservedTop, DefaultCeiling-format.ReservedTop))
}
