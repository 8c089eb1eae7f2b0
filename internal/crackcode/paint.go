package crackcode

import (
	"fmt"

	"github.com/dscout/crackle/errs"
	"github.com/dscout/crackle/format"
)

// Paint walks each chain's symbol string across a corner grid overlaid
// on an sx*sy voxel slice and produces the slice's passability bitmap:
// one byte per voxel, 4 bits used (bit0=-y, bit1=+y, bit2=-x, bit3=+x;
// a set bit means that edge is passable).
//
// Impermissible starts every bit set (all edges open) and clears bits
// as contours are drawn, the opposite of Permissible, which starts
// every bit clear and sets bits as contours are drawn. Both converge to
// the same "1 means passable" reading once a chain finishes painting.
func Paint(chains []Chain, sx, sy uint64, polarity format.CrackFormat) ([]byte, error) {
	if polarity == format.Permissible {
		return paintPermissible(chains, int64(sx), int64(sy))
	}

	return paintImpermissible(chains, int64(sx), int64(sy))
}

func paintPermissible(chains []Chain, sx, sy int64) ([]byte, error) {
	edges := make([]byte, sx*sy)

	sxe := sx + 1
	maxLoc := (sx + 1) * (sy + 1)

	for _, chain := range chains {
		y := int64(chain.Node) / sxe
		x := int64(chain.Node) - sxe*y

		var revisit []int64

		for _, symbol := range chain.Symbols {
			loc := x + sx*y
			if loc < 0 || loc >= maxLoc {
				return nil, fmt.Errorf("crackcode: %w", errs.ErrCrackOutOfRangePermissible)
			}

			switch symbol {
			case 'u':
				if x > 0 && y > 0 {
					edges[loc-1-sx] |= 0b0001
				}
				if y > 0 {
					edges[loc-sx] |= 0b0010
				}
				y--
			case 'd':
				if x > 0 {
					edges[loc-1] |= 0b0001
				}
				edges[loc] |= 0b0010
				y++
			case 'l':
				if x > 0 && y > 0 {
					edges[loc-1-sx] |= 0b0100
				}
				if x > 0 {
					edges[loc-1] |= 0b1000
				}
				x--
			case 'r':
				if y > 0 {
					edges[loc-sx] |= 0b0100
				}
				edges[loc] |= 0b1000
				x++
			case 'b':
				revisit = append(revisit, loc)
			case 't':
				if len(revisit) > 0 {
					loc = revisit[len(revisit)-1]
					revisit = revisit[:len(revisit)-1]
					y = loc / sx
					x = loc - sx*y
				}
			}
		}
	}

	return edges, nil
}

func paintImpermissible(chains []Chain, sx, sy int64) ([]byte, error) {
	edges := make([]byte, sx*sy)
	for i := range edges {
		edges[i] = 0b1111
	}

	sxe := sx + 1
	maxLoc := (sx + 1) * (sy + 1)

	for _, chain := range chains {
		y := int64(chain.Node) / sxe
		x := int64(chain.Node) - sxe*y

		var revisit []int64

		for _, symbol := range chain.Symbols {
			loc := x + sx*y
			if loc < 0 || loc >= maxLoc {
				return nil, fmt.Errorf("crackcode: %w", errs.ErrCrackOutOfRangeImpermissible)
			}

			switch symbol {
			case 'u':
				if x > 0 && y > 0 {
					edges[loc-1-sx] &= 0b1110
				}
				if y > 0 {
					edges[loc-sx] &= 0b1101
				}
				y--
			case 'd':
				if x > 0 {
					edges[loc-1] &= 0b1110
				}
				edges[loc] &= 0b1101
				y++
			case 'l':
				if x > 0 && y > 0 {
					edges[loc-1-sx] &= 0b1011
				}
				if x > 0 {
					edges[loc-1] &= 0b0111
				}
				x--
			case 'r':
				if y > 0 {
					edges[loc-sx] &= 0b1011
				}
				edges[loc] &= 0b0111
				x++
			case 'b':
				revisit = append(revisit, loc)
			case 't':
				if len(revisit) > 0 {
					loc = revisit[len(revisit)-1]
					revisit = revisit[:len(revisit)-1]
					y = loc / sx
					x = loc - sx*y
				}
			}
		}
	}

	return edges, nil
}
