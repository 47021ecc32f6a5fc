//go:build unix

package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_CreateMapSync(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	path := filepath.Join(t.TempDir(), "image.bin")

	m, err := Create(path, 8192)
	require.NoError(t, err)
	require.Len(t, m.Data, 8192)

	copy(m.Data[4096:], []byte{0xde, 0xad, 0xbe, 0xef})
	require.NoError(t, m.Sync())
	require.NoError(t, m.Close())
	require.NoError(t, m.Close()) // double-close is a no-op

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, raw[4096:4100])
}

func Test_OpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
}

func Test_OpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	_, err := Open(path)
	require.Error(t, err)
}
