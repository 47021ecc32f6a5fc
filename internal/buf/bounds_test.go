package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_AddOverflowSafe(t *testing.T) {
	v, ok := AddOverflowSafe(1, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(3), v)

	v, ok = AddOverflowSafe(math.MaxUint64, 0)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, ok = AddOverflowSafe(math.MaxUint64, 1)
	assert.False(t, ok)

	_, ok = AddOverflowSafe(math.MaxUint64-5, 6)
	assert.False(t, ok)
}

func Test_MulOverflowSafe(t *testing.T) {
	v, ok := MulOverflowSafe(0, math.MaxUint64)
	assert.True(t, ok)
	assert.Equal(t, uint64(0), v)

	v, ok = MulOverflowSafe(24, 170)
	assert.True(t, ok)
	assert.Equal(t, uint64(4080), v)

	_, ok = MulOverflowSafe(math.MaxUint64/2, 3)
	assert.False(t, ok)
}
