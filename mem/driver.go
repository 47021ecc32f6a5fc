package mem

import (
	"github.com/loaderkit/bootmem/internal/format"
)

// Driver is the allocator surface handed to the storage subsystem: an
// opaque context plus three function pointers. The storage driver never
// sees the Map type, only this vtable. Sizes cross the boundary as 32-bit
// values and are widened internally; failures flatten to the null address,
// which the driver checks for.
//
// The driver's object block is allocated from the map itself, so the map
// owns the driver record while the driver holds only a non-owning context
// reference back to the map.
type Driver struct {
	// Data is the opaque allocator context (the *Map).
	Data any

	// Addr is the physical base of the driver's object block.
	Addr uint64

	Malloc  func(data any, size uint32) uint64
	Realloc func(data any, addr uint64, size uint32) uint64
	Free    func(data any, addr uint64)
}

// NewDriver allocates the driver object block through the normal
// allocation path and wires the vtable to m.
func NewDriver(m *Map) (*Driver, error) {
	addr, err := m.Malloc(format.DriverSize)
	if err != nil {
		return nil, err
	}
	return &Driver{
		Data: m,
		Addr: addr,
		Malloc: func(data any, size uint32) uint64 {
			a, err := data.(*Map).Malloc(uint64(size))
			if err != nil {
				return 0
			}
			return a
		},
		Realloc: func(data any, addr uint64, size uint32) uint64 {
			a, err := data.(*Map).Realloc(addr, uint64(size))
			if err != nil {
				return 0
			}
			return a
		},
		Free: func(data any, addr uint64) {
			data.(*Map).Free(addr)
		},
	}, nil
}
