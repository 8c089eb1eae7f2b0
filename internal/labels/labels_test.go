package labels

import (
	"testing"

	"github.com/dscout/crackle/format"
	"github.com/dscout/crackle/header"
	"github.com/stretchr/testify/require"
)

func newHeader(labelFormat format.LabelFormat, sx, sy, sz uint32, dataWidth, storedDataWidth int, numLabelBytes uint64) header.Header {
	return header.Header{
		DataWidth:       dataWidth,
		StoredDataWidth: storedDataWidth,
		LabelFormat:     labelFormat,
		Sx:              sx,
		Sy:              sy,
		Sz:              sz,
		NumLabelBytes:   numLabelBytes,
	}
}

// buildBinary prepends header.Size + 4*sz placeholder bytes (the
// header + z-index region decodeFlat and friends skip over via
// rawLabels) ahead of the given label payload bytes.
func buildBinary(h header.Header, payload []byte) []byte {
	prefix := make([]byte, uint64(header.Size)+h.ZIndexBytes())
	return append(prefix, payload...)
}

func TestDecodeFlatSingleVoxel(t *testing.T) {
	// single-voxel constant volume: sx=sy=sz=1, uniq=[7] (u16), components=[1], renumber=[0].
	payload := []byte{
		1, 0, 0, 0, 0, 0, 0, 0, // num_uniq = 1
		7, 0, // uniq[0] = 7 (u16)
		1, // components[0] = 1
		0, // renumber[0] = 0
	}
	h := newHeader(format.Flat, 1, 1, 1, 2, 2, uint64(len(payload)))
	binary := buildBinary(h, payload)

	labelMap, err := Decode[uint16](h, binary, nil, 1, 0, 1)
	require.NoError(t, err)
	require.Equal(t, []uint16{7}, labelMap)
}

func TestDecodeFixedWidthPinsThreeSlices(t *testing.T) {
	// pin covering 3 slices: sx=2, sy=1, sz=3, pin at index=0 depth=2 label index 1,
	// bg label index 0, uniq=[9, 42].
	payload := []byte{
		9,                      // bgcolor (raw stored value)
		2, 0, 0, 0, 0, 0, 0, 0, // num_uniq = 2
		9, 42, // uniq = [9, 42]
		1, 0, 2, // pin: renumber=1, index=0, depth=2
	}
	h := newHeader(format.PinsFixedWidth, 2, 1, 3, 1, 1, uint64(len(payload)))
	binary := buildBinary(h, payload)

	// flat voxel order is (z,y,x); with sx=2, sy=1 every voxel is its
	// own component, so cc id == flat index.
	ccLabels := []uint32{0, 1, 2, 3, 4, 5}
	n := uint64(6)

	labelMap, err := Decode[uint8](h, binary, ccLabels, n, 0, 3)
	require.NoError(t, err)
	require.Equal(t, []uint8{42, 9, 42, 9, 42, 9}, labelMap)
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	h := newHeader(format.LabelFormat(0xFF), 1, 1, 1, 1, 1, 0)
	_, err := Decode[uint8](h, buildBinary(h, nil), nil, 0, 0, 1)
	require.Error(t, err)
}
