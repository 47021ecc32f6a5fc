package mem

import (
	"github.com/loaderkit/bootmem/internal/buf"
)

// Phys is a byte-addressed window over the physical address space,
// beginning at address zero. All allocator state - the firmware map, the
// allocation table, every allocated block - lives inside it.
type Phys struct {
	data []byte
}

// NewPhys returns a zeroed in-memory window of the given size.
func NewPhys(size uint64) *Phys {
	return &Phys{data: make([]byte, size)}
}

// WrapPhys adopts an existing image as the physical window.
func WrapPhys(data []byte) *Phys {
	return &Phys{data: data}
}

// Size returns the window's exclusive upper bound.
func (p *Phys) Size() uint64 {
	return uint64(len(p.data))
}

// Bytes returns the raw window contents.
func (p *Phys) Bytes() []byte {
	return p.data
}

// Slice returns the n bytes at addr, or ErrBounds when the range leaves
// the window.
func (p *Phys) Slice(addr, n uint64) ([]byte, error) {
	end, ok := buf.AddOverflowSafe(addr, n)
	if !ok || end > p.Size() {
		return nil, ErrBounds
	}
	return p.data[addr:end], nil
}

// Copy moves n bytes from src to dst inside the window. Relocation targets
// never overlap their source (the source allocation is still live while the
// destination is chosen), so a forward copy suffices.
func (p *Phys) Copy(dst, src, n uint64) error {
	d, err := p.Slice(dst, n)
	if err != nil {
		return err
	}
	s, err := p.Slice(src, n)
	if err != nil {
		return err
	}
	copy(d, s)
	return nil
}
