package labels

import (
	"fmt"

	"github.com/dscout/crackle/header"
	"github.com/dscout/crackle/internal/lib"
)

// decodeFixedWidthPins implements PINS_FIXED_WIDTH: a background color,
// a uniq table, then fixed-width (renumber, index, depth) pin records.
// Every component not touched by a pin keeps the background label.
func decodeFixedWidthPins[L Integer](h header.Header, binary []byte, ccLabels []uint32, n, zStart, zEnd uint64) ([]L, error) {
	labelsBinary, err := rawLabels(h, binary)
	if err != nil {
		return nil, err
	}

	bgRaw, err := readStoredLabel(labelsBinary, 0, h.StoredDataWidth, h.IsSigned)
	if err != nil {
		return nil, fmt.Errorf("labels: bgcolor: %w", err)
	}
	bgcolor := L(bgRaw)

	numLabels, err := decodeNumLabels(h, labelsBinary)
	if err != nil {
		return nil, err
	}

	uniq, err := decodeUniq(h, labelsBinary)
	if err != nil {
		return nil, err
	}

	renumWidth := uint64(lib.ByteWidth(numLabels))
	indexWidth := uint64(h.PinIndexWidth())
	depthWidth := uint64(h.DepthWidth())
	pinSize := renumWidth + indexWidth + depthWidth

	offset := 8 + uint64(h.StoredDataWidth)*(uint64(len(uniq))+1)
	if offset > uint64(len(labelsBinary)) {
		return nil, fmt.Errorf("labels: fixed-width pins offset %d exceeds payload length %d", offset, len(labelsBinary))
	}
	numPins := (uint64(len(labelsBinary)) - offset) / pinSize

	labelMap := make([]L, n)
	for i := range labelMap {
		labelMap[i] = bgcolor
	}

	sxy := uint64(h.Sx) * uint64(h.Sy)

	j := offset
	for i := uint64(0); i < numPins; i++ {
		lbl, err := lib.ReadUintN(labelsBinary, int(j), int(renumWidth))
		if err != nil {
			return nil, fmt.Errorf("labels: pin[%d] renumber: %w", i, err)
		}
		idx, err := lib.ReadUintN(labelsBinary, int(j+renumWidth), int(indexWidth))
		if err != nil {
			return nil, fmt.Errorf("labels: pin[%d] index: %w", i, err)
		}
		depth, err := lib.ReadUintN(labelsBinary, int(j+renumWidth+indexWidth), int(depthWidth))
		if err != nil {
			return nil, fmt.Errorf("labels: pin[%d] depth: %w", i, err)
		}
		j += pinSize

		if lbl >= uint64(len(uniq)) {
			return nil, fmt.Errorf("labels: pin[%d] renumber %d out of range for %d uniq labels", i, lbl, len(uniq))
		}

		applyPinColumn(labelMap, ccLabels, uniq[lbl], idx, depth, sxy, zStart, zEnd)
	}

	return labelMap, nil
}

// applyPinColumn paints one pin's vertical run of voxels, clamped to
// [zStart, zEnd) and re-indexed relative to that sub-range (ccLabels
// only covers the selected Z slices).
func applyPinColumn[L Integer](labelMap []L, ccLabels []uint32, label int64, index, depth, sxy, zStart, zEnd uint64) {
	pinZ := int64(index / sxy)
	loc := int64(index) - pinZ*int64(sxy)

	pinZStart := pinZ
	if int64(zStart) > pinZStart {
		pinZStart = int64(zStart)
	}
	pinZEnd := pinZ + int64(depth) + 1
	if int64(zEnd) < pinZEnd {
		pinZEnd = int64(zEnd)
	}

	pinZStart -= int64(zStart)
	pinZEnd -= int64(zStart)

	for z := pinZStart; z < pinZEnd; z++ {
		ccID := ccLabels[loc+int64(sxy)*z]
		labelMap[ccID] = L(label)
	}
}
