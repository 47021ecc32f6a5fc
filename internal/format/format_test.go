package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_AlignPage(t *testing.T) {
	cases := []struct {
		in, want uint64
	}{
		{0, 0},
		{1, 0x1000},
		{0xFFF, 0x1000},
		{0x1000, 0x1000},
		{0x1001, 0x2000},
		{0x60000, 0x60000},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, AlignPage(c.in), "AlignPage(%#x)", c.in)
	}
}

func Test_PageAligned(t *testing.T) {
	assert.True(t, PageAligned(0))
	assert.True(t, PageAligned(0x60000))
	assert.False(t, PageAligned(0x60030))
}

func Test_E820Entry_RoundTrip(t *testing.T) {
	b := make([]byte, 2*E820EntrySize)
	in := E820Entry{Base: 0x100000, Length: 0x7EE0000, Type: E820TypeUsable, Attr: 1}
	require.NoError(t, PutE820Entry(b, E820EntrySize, in))

	out, err := ReadE820Entry(b, E820EntrySize)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.True(t, out.Usable())
	assert.False(t, out.End())
}

func Test_E820Entry_Sentinel(t *testing.T) {
	b := make([]byte, E820EntrySize)
	e, err := ReadE820Entry(b, 0)
	require.NoError(t, err)
	assert.True(t, e.End())
	assert.False(t, e.Usable())
}

func Test_E820Entry_Truncated(t *testing.T) {
	b := make([]byte, E820EntrySize-1)
	_, err := ReadE820Entry(b, 0)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.ErrorIs(t, PutE820Entry(b, 0, E820Entry{}), ErrTruncated)
}

func Test_Record_RoundTrip(t *testing.T) {
	b := make([]byte, 3*RecordSize)
	in := Record{Addr: 0x61000, Size: 0x500, Reserved: 0x1000}
	PutRecord(b, RecordSize, in)
	out := ReadRecord(b, RecordSize)
	assert.Equal(t, in, out)
	assert.Equal(t, uint64(0x62000), out.End())
	assert.False(t, out.Retired())
}

func Test_Record_Retired(t *testing.T) {
	r := Record{Addr: MaxAddr, Size: 0x10, Reserved: 0x1000}
	assert.True(t, r.Retired())
}

func Test_Record_ShortBuffer(t *testing.T) {
	b := make([]byte, RecordSize-1)
	PutRecord(b, 0, Record{Addr: 1}) // no-op
	assert.Equal(t, Record{}, ReadRecord(b, 0))
}
