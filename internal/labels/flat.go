package labels

import (
	"fmt"

	"github.com/dscout/crackle/header"
	"github.com/dscout/crackle/internal/lib"
)

// decodeFlat implements the FLAT label format: a components-per-slice
// count array (used only to locate the renumber table's start/end for
// a restricted Z-range) followed by a flat renumber-index-per-component
// table covering every component in the full volume.
func decodeFlat[L Integer](h header.Header, binary []byte, zStart, zEnd uint64) ([]L, error) {
	labelsBinary, err := rawLabels(h, binary)
	if err != nil {
		return nil, err
	}

	numLabels, err := decodeNumLabels(h, labelsBinary)
	if err != nil {
		return nil, err
	}

	uniq, err := decodeUniq(h, labelsBinary)
	if err != nil {
		return nil, err
	}

	ccLabelWidth := uint64(lib.ByteWidth(numLabels))
	numGrids := h.NumGrids()
	componentWidth := uint64(h.ComponentWidth())

	offset := 8 + uint64(h.StoredDataWidth)*numLabels

	_, leftOffset, rightOffset, err := decodeComponents(h, labelsBinary, offset, numGrids, componentWidth, zStart, zEnd)
	if err != nil {
		return nil, err
	}

	offset += componentWidth*numGrids + leftOffset*ccLabelWidth

	tail := uint64(len(labelsBinary)) - offset - rightOffset*ccLabelWidth
	numFields := tail / ccLabelWidth

	labelMap := make([]L, numFields)

	j := offset
	for i := range labelMap {
		renumIdx, err := lib.ReadUintN(labelsBinary, int(j), int(ccLabelWidth))
		if err != nil {
			return nil, fmt.Errorf("labels: flat renumber[%d]: %w", i, err)
		}
		if renumIdx >= uint64(len(uniq)) {
			return nil, fmt.Errorf("labels: flat renumber[%d]=%d out of range for %d uniq labels", i, renumIdx, len(uniq))
		}

		labelMap[i] = L(uniq[renumIdx])
		j += ccLabelWidth
	}

	return labelMap, nil
}
