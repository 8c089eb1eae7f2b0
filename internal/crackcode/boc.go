package crackcode

import (
	"fmt"

	"github.com/dscout/crackle/errs"
	"github.com/dscout/crackle/internal/lib"
)

// ReadBOCIndex decodes the branch-origin-corner index at the start of a
// slice's crack-code block: a delta-coded, row-major list of corner
// grid coordinates where a boundary contour begins. Coordinates are
// returned as flattened indices into a (sx+1)-wide corner grid.
//
// The block begins with a 4-byte index-size prefix (consumed by the
// caller, here skipped) followed by: num_y (y_width bytes), then for
// each y row a y-delta, a per-row x count, and that many x-deltas.
func ReadBOCIndex(binary []byte, sx, sy uint64) ([]uint64, error) {
	sxe := sx + 1
	xWidth := lib.ByteWidth(sx + 1)
	yWidth := lib.ByteWidth(sy + 1)

	idx := 4

	numY, err := lib.ReadUintN(binary, idx, yWidth)
	if err != nil {
		return nil, fmt.Errorf("crackcode: boc index num_y: %w: %w", err, errs.ErrTruncatedCrackBlock)
	}
	idx += yWidth

	var nodes []uint64
	var y uint64

	for yi := uint64(0); yi < numY; yi++ {
		dy, err := lib.ReadUintN(binary, idx, yWidth)
		if err != nil {
			return nil, fmt.Errorf("crackcode: boc index y delta: %w: %w", err, errs.ErrTruncatedCrackBlock)
		}
		idx += yWidth
		y += dy

		numX, err := lib.ReadUintN(binary, idx, xWidth)
		if err != nil {
			return nil, fmt.Errorf("crackcode: boc index num_x: %w: %w", err, errs.ErrTruncatedCrackBlock)
		}
		idx += xWidth

		var x uint64
		for xi := uint64(0); xi < numX; xi++ {
			dx, err := lib.ReadUintN(binary, idx, xWidth)
			if err != nil {
				return nil, fmt.Errorf("crackcode: boc index x delta: %w: %w", err, errs.ErrTruncatedCrackBlock)
			}
			idx += xWidth
			x += dx
			if x > sx || y > sy {
				return nil, fmt.Errorf("crackcode: boc node (%d, %d) outside the %dx%d corner grid: %w", x, y, sx+1, sy+1, errs.ErrIndexOutOfRange)
			}

			nodes = append(nodes, x+sxe*y)
		}
	}

	return nodes, nil
}
