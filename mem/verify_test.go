package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loaderkit/bootmem/internal/format"
	"github.com/loaderkit/bootmem/internal/testutil"
)

func Test_Verify_CleanMap(t *testing.T) {
	m := newTestMap(t)
	require.NoError(t, Verify(m))

	_, err := m.Malloc(0x3000)
	require.NoError(t, err)
	require.NoError(t, Verify(m))
}

func Test_Verify_Uninitialized(t *testing.T) {
	img := testutil.MakeImage(testutil.DefaultCeiling,
		testutil.Reserved(0, 0x1000000))
	m := NewMap(WrapPhys(img))
	m.Init()
	assert.NoError(t, Verify(m))
}

func Test_Verify_DetectsMisalignment(t *testing.T) {
	m := newTestMap(t)
	addr, err := m.Malloc(0x1000)
	require.NoError(t, err)

	i := uint64(m.findRecord(addr))
	rec := m.recordAt(i)
	rec.Addr++
	m.writeRecord(i, rec)

	err = Verify(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not page-aligned")
}

func Test_Verify_DetectsOverlap(t *testing.T) {
	m := newTestMap(t)
	a, err := m.Malloc(0x1000)
	require.NoError(t, err)
	_, err = m.Malloc(0x1000)
	require.NoError(t, err)

	i := uint64(m.findRecord(a))
	rec := m.recordAt(i)
	rec.Reserved = 2 * format.PageSize // now covers the neighbor
	m.writeRecord(i, rec)

	err = Verify(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overlaps")
}

func Test_Verify_DetectsSizeOverReservation(t *testing.T) {
	m := newTestMap(t)
	addr, err := m.Malloc(0x100)
	require.NoError(t, err)

	i := uint64(m.findRecord(addr))
	rec := m.recordAt(i)
	rec.Size = rec.Reserved + 1
	m.writeRecord(i, rec)

	err = Verify(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds reservation")
}

func Test_Verify_DetectsEscapedAllocation(t *testing.T) {
	m := newTestMap(t)
	addr, err := m.Malloc(0x1000)
	require.NoError(t, err)

	i := uint64(m.findRecord(addr))
	rec := m.recordAt(i)
	rec.Addr = 0xF00000 + testutil.DefaultCeiling // beyond the usable region
	m.writeRecord(i, rec)
	m.sortTable()

	err = Verify(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside every usable region")
}

func Test_Verify_DetectsBrokenSelfReference(t *testing.T) {
	m := newTestMap(t)

	i := uint64(m.findRecord(m.TableAddr()))
	rec := m.recordAt(i)
	rec.Addr += format.PageSize // table record no longer points at the backing
	m.writeRecord(i, rec)
	m.sortTable()

	err := Verify(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "self-reference")
}
