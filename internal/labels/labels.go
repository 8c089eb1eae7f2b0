// Package labels decodes the component-id -> label map from one of the
// three label payload layouts: FLAT, fixed-width
// pins, or variable-width ("condensed") pins.
package labels

import (
	"fmt"

	"github.com/dscout/crackle/errs"
	"github.com/dscout/crackle/format"
	"github.com/dscout/crackle/header"
	"github.com/dscout/crackle/internal/lib"
)

// Integer is the set of output/stored label element types a decode
// routine can be instantiated over.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Decode produces the component id -> label map (domain [0, N)) for the
// label payload format named in h, given the already-colored cc-id
// volume restricted to [zStart, zEnd) (ccLabels, of length
// sx*sy*(zEnd-zStart)) and its component count n.
func Decode[L Integer](h header.Header, binary []byte, ccLabels []uint32, n, zStart, zEnd uint64) ([]L, error) {
	switch h.LabelFormat {
	case format.Flat:
		return decodeFlat[L](h, binary, zStart, zEnd)
	case format.PinsFixedWidth:
		return decodeFixedWidthPins[L](h, binary, ccLabels, n, zStart, zEnd)
	case format.PinsVariableWidth:
		return decodeCondensedPins[L](h, binary, ccLabels, n, zStart, zEnd)
	default:
		return nil, fmt.Errorf("labels: %w", errs.ErrUnsupportedLabelFormat)
	}
}

// rawLabels slices out the label payload region: it starts immediately
// after the header and z-index (header.Size + 4*sz bytes in) and runs
// for h.NumLabelBytes bytes. The Markov model, if present, and the
// crack-code blocks all live after this region.
func rawLabels(h header.Header, binary []byte) ([]byte, error) {
	start := uint64(header.Size) + h.ZIndexBytes()
	end := start + h.NumLabelBytes

	if end > uint64(len(binary)) {
		return nil, fmt.Errorf("labels: label payload [%d:%d) exceeds input length %d: %w", start, end, len(binary), errs.ErrTruncatedCrackBlock)
	}

	return binary[start:end], nil
}

// decodeNumLabels reads the u64 unique-label count, at offset 0 for
// FLAT or after the bgcolor field for the pin formats.
func decodeNumLabels(h header.Header, labelsBinary []byte) (uint64, error) {
	offset := 0
	if h.LabelFormat != format.Flat {
		offset = h.StoredDataWidth
	}

	return lib.ReadUintLE(labelsBinary, offset, 8)
}

// readStoredLabel reads one stored-label element as a width-independent
// int64, sign-extending when the header marks stored labels signed.
// Unsigned 64-bit values are carried as their own bit pattern reinterpreted
// as int64; converting back to an unsigned output type later reproduces
// the original bits exactly.
func readStoredLabel(buf []byte, offset, width int, signed bool) (int64, error) {
	if signed {
		return lib.ReadIntN(buf, offset, width)
	}

	v, err := lib.ReadUintN(buf, offset, width)

	return int64(v), err
}

// decodeUniq reads the num_uniq-length unique-labels table that opens
// every label payload format.
func decodeUniq(h header.Header, labelsBinary []byte) ([]int64, error) {
	numLabels, err := decodeNumLabels(h, labelsBinary)
	if err != nil {
		return nil, fmt.Errorf("labels: num_uniq: %w", err)
	}

	idx := 8
	if h.LabelFormat != format.Flat {
		idx = h.StoredDataWidth + 8
	}

	uniq := make([]int64, numLabels)
	for i := range uniq {
		v, err := readStoredLabel(labelsBinary, idx, h.StoredDataWidth, h.IsSigned)
		if err != nil {
			return nil, fmt.Errorf("labels: uniq[%d]: %w", i, err)
		}
		uniq[i] = v
		idx += h.StoredDataWidth
	}

	return uniq, nil
}

// decodeComponents reads the per-grid-tile component count array
// (num_grids entries, one per Z-slice per SPEC_FULL.md's one-tile-per-
// slice simplification) and the left/right component-count offsets
// (components in slices before zStart, and in slices from zEnd on) that
// let a decoder skip the per-component entries outside [zStart, zEnd).
func decodeComponents(h header.Header, buf []byte, offset, numGrids, componentWidth, zStart, zEnd uint64) ([]uint64, uint64, uint64, error) {
	components := make([]uint64, numGrids)

	j := offset
	for i := range components {
		v, err := lib.ReadUintN(buf, int(j), int(componentWidth))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("labels: components[%d]: %w", i, err)
		}
		components[i] = v
		j += componentWidth
	}

	var leftOffset uint64
	for z := uint64(0); z < zStart; z++ {
		leftOffset += components[z]
	}

	var rightOffset uint64
	for z := uint64(h.Sz); z > zEnd; z-- {
		rightOffset += components[z-1]
	}

	return components, leftOffset, rightOffset, nil
}
