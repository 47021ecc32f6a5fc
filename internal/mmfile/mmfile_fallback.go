//go:build !unix

// Package mmfile provides platform-specific helpers for memory-mapping
// physical-memory image files read-write.
package mmfile

import "os"

// Mapping is a read-write view of an image file. Without mmap the whole
// file is held in memory and written back on Sync/Close.
type Mapping struct {
	Data []byte

	path string
}

// Open loads the file at path.
func Open(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Mapping{Data: data, path: path}, nil
}

// Create makes (or truncates) an image file of the given size and loads it.
func Create(path string, size int64) (*Mapping, error) {
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		return nil, err
	}
	return Open(path)
}

// Sync writes the contents back to the file.
func (m *Mapping) Sync() error {
	if m == nil || m.Data == nil {
		return nil
	}
	return os.WriteFile(m.path, m.Data, 0o644)
}

// Close writes back and releases the buffer. Double-close is a no-op.
func (m *Mapping) Close() error {
	if m == nil || m.Data == nil {
		return nil
	}
	err := m.Sync()
	m.Data = nil
	return err
}
