package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loaderkit/bootmem/internal/format"
	"github.com/loaderkit/bootmem/internal/testutil"
)

func Test_Cursor_WalksEntries(t *testing.T) {
	img := testutil.MakeImage(testutil.DefaultCeiling,
		testutil.Usable(0, 0x9F000),
		testutil.Reserved(0x9F000, 0x61000),
		testutil.Usable(0x100000, 0xF00000))
	p := WrapPhys(img)

	type row struct {
		base, length uint64
		usable       bool
	}
	var got []row
	for c := NewCursor(p); !c.IsEnd(); c.Next() {
		got = append(got, row{c.Base(), c.Length(), c.Usable()})
	}

	require.Equal(t, []row{
		{0, 0x9F000, true},
		{0x9F000, 0x61000, false},
		{0x100000, 0xF00000, true},
	}, got)
}

func Test_Cursor_EmptyMap(t *testing.T) {
	p := WrapPhys(make([]byte, 0x10000))
	c := NewCursor(p)
	assert.True(t, c.IsEnd())
	assert.False(t, c.Usable())
}

func Test_Cursor_TruncatedWindowReadsAsEnd(t *testing.T) {
	// Window ends in the middle of the entry area; the cursor must treat
	// the missing slot as the sentinel rather than walking off the end.
	img := make([]byte, format.MapAddr+format.E820EntrySize+8)
	require.NoError(t, format.PutE820Entry(img, format.MapAddr,
		format.E820Entry{Base: 0, Length: 0x1000, Type: format.E820TypeUsable}))

	c := NewCursor(WrapPhys(img))
	require.False(t, c.IsEnd())
	c.Next()
	assert.True(t, c.IsEnd())
}

func Test_Cursor_Restartable(t *testing.T) {
	p := WrapPhys(testutil.DefaultImage(t))

	first := NewCursor(p)
	require.False(t, first.IsEnd())
	base := first.Base()
	first.Next()
	require.True(t, first.IsEnd())

	second := NewCursor(p)
	assert.Equal(t, base, second.Base(), "a fresh cursor starts over")
}
