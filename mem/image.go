package mem

import (
	"github.com/loaderkit/bootmem/internal/mmfile"
)

// Image is a Phys backed by a mapped image file, used by offline tooling to
// inspect and replay boot-window memory state.
type Image struct {
	*Phys
	m *mmfile.Mapping
}

// OpenImage maps an existing image file read-write.
func OpenImage(path string) (*Image, error) {
	m, err := mmfile.Open(path)
	if err != nil {
		return nil, err
	}
	return &Image{Phys: WrapPhys(m.Data), m: m}, nil
}

// CreateImage makes a zeroed image file of the given size and maps it.
func CreateImage(path string, size uint64) (*Image, error) {
	m, err := mmfile.Create(path, int64(size))
	if err != nil {
		return nil, err
	}
	return &Image{Phys: WrapPhys(m.Data), m: m}, nil
}

// Sync flushes the window back to the file.
func (img *Image) Sync() error {
	return img.m.Sync()
}

// Close releases the mapping.
func (img *Image) Close() error {
	return img.m.Close()
}
