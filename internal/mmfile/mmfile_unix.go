//go:build unix

// Package mmfile provides platform-specific helpers for memory-mapping
// physical-memory image files read-write.
package mmfile

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Mapping is a read-write view of an image file.
type Mapping struct {
	// Data is the mapped file contents. Writes land in the page cache and
	// reach the file on Sync or Close.
	Data []byte

	f *os.File
}

// Open maps the file at path read-write.
func Open(path string) (*Mapping, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("mmfile: empty image %q", path)
	}
	if size > int64(^uint(0)>>1) {
		f.Close()
		return nil, fmt.Errorf("mmfile: image too large to map (%d bytes)", size)
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &Mapping{Data: data, f: f}, nil
}

// Create makes (or truncates) an image file of the given size and maps it.
func Create(path string, size int64) (*Mapping, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()
	return Open(path)
}

// Sync flushes the mapped contents to the file.
func (m *Mapping) Sync() error {
	if m == nil || m.Data == nil {
		return nil
	}
	return unix.Msync(m.Data, unix.MS_SYNC)
}

// Close unmaps the image. Double-close is a no-op.
func (m *Mapping) Close() error {
	if m == nil || m.Data == nil {
		return nil
	}
	data := m.Data
	m.Data = nil
	err := unix.Munmap(data)
	if errors.Is(err, unix.EINVAL) {
		err = nil
	}
	if cerr := m.f.Close(); err == nil {
		err = cerr
	}
	return err
}
