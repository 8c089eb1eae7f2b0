package header

import (
	"encoding/binary"
	"testing"

	"github.com/dscout/crackle/errs"
	"github.com/dscout/crackle/format"
	"github.com/stretchr/testify/require"
)

func makeValid() []byte {
	buf := make([]byte, Size)
	copy(buf[offMagic:], Magic[:])
	buf[offVersion] = Version
	buf[offDataWidth] = 4
	buf[offStoredDataWidth] = 4
	buf[offFlags] = flagIsSigned | (uint8(format.Permissible) << 1) | (uint8(format.PinsFixedWidth) << flagLabelShift)
	binary.LittleEndian.PutUint32(buf[offSx:], 10)
	binary.LittleEndian.PutUint32(buf[offSy:], 20)
	binary.LittleEndian.PutUint32(buf[offSz:], 30)
	binary.LittleEndian.PutUint32(buf[offGridSize:], 10)
	binary.LittleEndian.PutUint64(buf[offNumLabelBytes:], 1234)
	buf[offMarkovModelOrder] = 2

	return buf
}

func TestParseValid(t *testing.T) {
	h, err := Parse(makeValid())
	require.NoError(t, err)
	require.Equal(t, 4, h.DataWidth)
	require.Equal(t, 4, h.StoredDataWidth)
	require.True(t, h.IsSigned)
	require.Equal(t, format.Permissible, h.CrackFormat)
	require.Equal(t, format.PinsFixedWidth, h.LabelFormat)
	require.Equal(t, uint32(10), h.Sx)
	require.Equal(t, uint32(20), h.Sy)
	require.Equal(t, uint32(30), h.Sz)
	require.Equal(t, uint64(1234), h.NumLabelBytes)
	require.Equal(t, uint8(2), h.MarkovModelOrder)
}

func TestParseTruncated(t *testing.T) {
	_, err := Parse(makeValid()[:Size-1])
	require.ErrorIs(t, err, errs.ErrTruncatedHeader)
}

func TestParseBadMagic(t *testing.T) {
	buf := makeValid()
	buf[0] = 'X'
	_, err := Parse(buf)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestParseBadVersion(t *testing.T) {
	buf := makeValid()
	buf[offVersion] = Version + 1
	_, err := Parse(buf)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestParseBadDataWidth(t *testing.T) {
	buf := makeValid()
	buf[offDataWidth] = 3
	_, err := Parse(buf)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestParseBadLabelFormat(t *testing.T) {
	buf := makeValid()
	buf[offFlags] = buf[offFlags]&^flagLabelMask | (0x3 << flagLabelShift)
	_, err := Parse(buf)
	require.ErrorIs(t, err, errs.ErrInvalidMagic)
}

func TestDerivedSizes(t *testing.T) {
	h, err := Parse(makeValid())
	require.NoError(t, err)

	require.Equal(t, uint64(10*20*30), h.Voxels())
	require.Equal(t, uint64(10*20), h.VoxelsPerSlice())
	require.Equal(t, uint64(10*20*30*4), h.OutputBytes())
	require.Equal(t, lenWidth(10*20*30), h.PinIndexWidth())
	require.Equal(t, lenWidth(30), h.DepthWidth())
	require.Equal(t, lenWidth(10*20), h.ComponentWidth())
	require.Equal(t, uint64(30), h.NumGrids())
	require.Equal(t, uint64(4*30), h.ZIndexBytes())
	require.Equal(t, uint64(5*16/8), h.MarkovModelBytes()) // k=2 -> 4^2=16 rows
}

func TestMarkovModelBytesZero(t *testing.T) {
	buf := makeValid()
	buf[offMarkovModelOrder] = 0
	h, err := Parse(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(0), h.MarkovModelBytes())
}

func lenWidth(n uint64) int {
	w := 1
	for n > (uint64(1) << (8 * uint(w))) {
		w++
	}

	return w
}
