package mem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Phys_SliceBounds(t *testing.T) {
	p := NewPhys(0x1000)

	b, err := p.Slice(0xFF0, 0x10)
	require.NoError(t, err)
	assert.Len(t, b, 0x10)

	_, err = p.Slice(0xFF0, 0x11)
	assert.ErrorIs(t, err, ErrBounds)

	_, err = p.Slice(0x1000, 1)
	assert.ErrorIs(t, err, ErrBounds)

	_, err = p.Slice(math.MaxUint64, 2)
	assert.ErrorIs(t, err, ErrBounds, "wrapping ranges are rejected")
}

func Test_Phys_Copy(t *testing.T) {
	p := NewPhys(0x100)
	src, err := p.Slice(0x10, 4)
	require.NoError(t, err)
	copy(src, []byte{1, 2, 3, 4})

	require.NoError(t, p.Copy(0x40, 0x10, 4))
	dst, err := p.Slice(0x40, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, dst)

	assert.ErrorIs(t, p.Copy(0xFF, 0x10, 4), ErrBounds)
	assert.ErrorIs(t, p.Copy(0x40, 0xFF, 4), ErrBounds)
}

func Test_Phys_WrapSharesBacking(t *testing.T) {
	raw := make([]byte, 0x20)
	p := WrapPhys(raw)
	b, err := p.Slice(0, 1)
	require.NoError(t, err)
	b[0] = 0xAA
	assert.Equal(t, byte(0xAA), raw[0])
	assert.Equal(t, uint64(0x20), p.Size())
}
