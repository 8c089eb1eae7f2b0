package crackcode

import (
	"fmt"

	"github.com/dscout/crackle/errs"
	"github.com/dscout/crackle/internal/lib"
)

// Direction codepoints, a 2-bit encoding of unit steps on the corner
// grid. up^down and left^right both equal 0b10, which
// CodepointsToSymbols exploits to detect a branch close/open without a
// four-way switch.
const (
	dirUp    uint8 = 0b00
	dirRight uint8 = 0b01
	dirDown  uint8 = 0b10
	dirLeft  uint8 = 0b11
	dirNone  uint8 = 255
)

// UnpackCodepoints expands a raw 2-bit-per-nibble crack-code byte
// stream into one codepoint per 2 bits, each delta-coded against the
// previous codepoint mod 4. code's first 4 bytes are a little-endian
// index-size field N; the BOC index occupies the following N bytes and
// is skipped here. This is the non-Markov-coded representation; when a
// Markov model is present markov.DecodeCodepoints is used instead.
func UnpackCodepoints(code []byte) ([]uint8, error) {
	if len(code) == 0 {
		return nil, nil
	}

	n, err := lib.ReadUintLE(code, 0, 4)
	if err != nil {
		return nil, fmt.Errorf("crackcode: index size prefix: %w: %w", err, errs.ErrTruncatedCrackBlock)
	}
	indexSize := int(4 + n)

	if indexSize > len(code) {
		return nil, fmt.Errorf("crackcode: index size %d exceeds block length %d: %w", indexSize, len(code), errs.ErrTruncatedCrackBlock)
	}

	codepoints := make([]uint8, 0, 4*(len(code)-indexSize))
	var last uint8

	for i := indexSize; i < len(code); i++ {
		for j := 0; j < 4; j++ {
			cp := (code[i] >> uint(2*j)) & 0b11
			cp += last
			cp &= 0b11
			last = cp
			codepoints = append(codepoints, cp)
		}
	}

	return codepoints, nil
}

// Chain is a single boundary contour: the corner grid node (flattened
// against a (sx+1)-wide grid) it starts at, and its symbol string.
type Chain struct {
	Node    uint64
	Symbols []byte
}

// CodepointsToSymbols groups a flat codepoint stream into per-contour
// symbol chains, anchored at sortedNodes in order. Each codepoint is one
// of up/right/down/left; consecutive opposite-direction moves
// (down-then-up, right-then-left) close a branch ('t') and
// up-then-down/left-then-right open one ('b'), tracked via
// branchesTaken so a contour with nested branches only ends once every
// branch has closed.
func CodepointsToSymbols(sortedNodes []uint64, codepoints []uint8) []Chain {
	var chains []Chain

	remap := [4]byte{'u', 'r', 'd', 'l'}

	var symbols []byte
	branchesTaken := 0
	var node uint64
	nodeI := 0
	lastMove := dirNone

	for i := 0; i < len(codepoints); i++ {
		if branchesTaken == 0 {
			if nodeI >= len(sortedNodes) {
				break
			}
			node = sortedNodes[nodeI]
			nodeI++
			i--
			branchesTaken = 1

			continue
		}

		move := codepoints[i]

		if (move ^ lastMove) != 0b10 {
			symbols = append(symbols, remap[move])
			lastMove = move

			continue
		} else if (move == dirUp && lastMove == dirDown) || (move == dirLeft && lastMove == dirRight) {
			symbols[len(symbols)-1] = 't'
			branchesTaken--
			lastMove = dirNone
		} else {
			symbols[len(symbols)-1] = 'b'
			branchesTaken++
			lastMove = dirNone
		}

		if branchesTaken == 0 {
			chains = append(chains, Chain{Node: node, Symbols: symbols})
			symbols = nil
		}
	}

	return chains
}
