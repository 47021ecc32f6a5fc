package mem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loaderkit/bootmem/internal/testutil"
)

func Test_Dump_RendersMapAndTable(t *testing.T) {
	m := newTestMap(t)
	_, err := m.Malloc(0x500)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, Dump(m, &out))
	s := out.String()

	assert.Contains(t, s, "firmware memory map:")
	assert.Contains(t, s, "usable")
	assert.Contains(t, s, "allocation table at 0x60000 (3 records)")
	assert.Contains(t, s, "(bootstrap reservation)")
	assert.Contains(t, s, "(allocation table)")
	// 0x500 requested bytes, digit-grouped.
	assert.Contains(t, s, "size 1,280")
}

func Test_Dump_Uninitialized(t *testing.T) {
	img := testutil.MakeImage(testutil.DefaultCeiling,
		testutil.Reserved(0, 0x1000000))
	m := NewMap(WrapPhys(img))
	m.Init()

	var out bytes.Buffer
	require.NoError(t, Dump(m, &out))
	assert.Contains(t, out.String(), "allocation table: not initialized")
}
