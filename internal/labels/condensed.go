package labels

import (
	"fmt"

	"github.com/dscout/crackle/header"
	"github.com/dscout/crackle/internal/lib"
)

type condensedPin struct {
	label int64 // uniq table index, not a renumber field
	index uint64
	depth uint64
}

// decodeCondensedPins implements PINS_VARIABLE_WIDTH: a background
// color, a uniq table, a per-slice component count array, a packed
// field-width byte, then per-uniq-label groups of (pins, direct cc-id
// assignments), each delta-coded.
func decodeCondensedPins[L Integer](h header.Header, binary []byte, ccLabels []uint32, n, zStart, zEnd uint64) ([]L, error) {
	labelsBinary, err := rawLabels(h, binary)
	if err != nil {
		return nil, err
	}

	bgRaw, err := readStoredLabel(labelsBinary, 0, h.StoredDataWidth, h.IsSigned)
	if err != nil {
		return nil, fmt.Errorf("labels: bgcolor: %w", err)
	}
	bgcolor := L(bgRaw)

	uniq, err := decodeUniq(h, labelsBinary)
	if err != nil {
		return nil, err
	}

	indexWidth := uint64(h.PinIndexWidth())
	componentWidth := uint64(h.ComponentWidth())
	numGrids := h.NumGrids()

	offset := 8 + uint64(h.StoredDataWidth)*(uint64(len(uniq))+1)

	components, leftOffset, rightOffsetFromEnd, err := decodeComponents(h, labelsBinary, offset, numGrids, componentWidth, zStart, zEnd)
	if err != nil {
		return nil, err
	}

	var totalComponents uint64
	for _, c := range components {
		totalComponents += c
	}
	rightOffset := totalComponents - rightOffsetFromEnd

	offset += componentWidth * numGrids

	combinedWidth, err := lib.ReadUintLE(labelsBinary, int(offset), 1)
	if err != nil {
		return nil, fmt.Errorf("labels: combined field width byte: %w", err)
	}
	offset++

	numPinsWidth := uint64(1) << (combinedWidth & 0b11)
	depthWidth := uint64(1) << ((combinedWidth >> 2) & 0b11)
	ccLabelWidth := uint64(1) << ((combinedWidth >> 4) & 0b11)

	labelMap := make([]L, n)
	for i := range labelMap {
		labelMap[i] = bgcolor
	}

	var pins []condensedPin

	i := offset
	for label := 0; label < len(uniq); label++ {
		numPins, err := lib.ReadUintN(labelsBinary, int(i), int(numPinsWidth))
		if err != nil {
			return nil, fmt.Errorf("labels: group %d num_pins: %w", label, err)
		}
		i += numPinsWidth

		groupStart := len(pins)
		for j := uint64(0); j < numPins; j++ {
			idx, err := lib.ReadUintN(labelsBinary, int(i+j*indexWidth), int(indexWidth))
			if err != nil {
				return nil, fmt.Errorf("labels: group %d pin[%d] index: %w", label, j, err)
			}
			depth, err := lib.ReadUintN(labelsBinary, int(i+numPins*indexWidth+j*depthWidth), int(depthWidth))
			if err != nil {
				return nil, fmt.Errorf("labels: group %d pin[%d] depth: %w", label, j, err)
			}
			pins = append(pins, condensedPin{label: int64(label), index: idx, depth: depth})
		}

		for j := groupStart + 1; j < len(pins); j++ {
			pins[j].index += pins[j-1].index
		}

		i += numPins * (indexWidth + depthWidth)

		numCCLabels, err := lib.ReadUintN(labelsBinary, int(i), int(numPinsWidth))
		if err != nil {
			return nil, fmt.Errorf("labels: group %d num_cc_labels: %w", label, err)
		}
		i += numPinsWidth

		ccIDs := make([]uint64, numCCLabels)
		for j := range ccIDs {
			v, err := lib.ReadUintN(labelsBinary, int(i), int(ccLabelWidth))
			if err != nil {
				return nil, fmt.Errorf("labels: group %d cc_label[%d]: %w", label, j, err)
			}
			ccIDs[j] = v
			i += ccLabelWidth
		}
		for j := 1; j < len(ccIDs); j++ {
			ccIDs[j] += ccIDs[j-1]
		}

		for _, ccID := range ccIDs {
			if ccID < leftOffset || ccID >= rightOffset {
				continue
			}
			labelMap[ccID-leftOffset] = L(uniq[label])
		}
	}

	sxy := uint64(h.Sx) * uint64(h.Sy)
	for _, p := range pins {
		applyPinColumn(labelMap, ccLabels, uniq[p.label], p.index, p.depth, sxy, zStart, zEnd)
	}

	return labelMap, nil
}
