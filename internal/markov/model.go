// Package markov decodes the optional order-k Markov model used to
// entropy-code crack-code direction deltas.
package markov

import (
	"fmt"

	"github.com/dscout/crackle/errs"
)

// LUT maps a 5-bit row index (0-23, one of the 24 permutations of
// {0,1,2,3} in itertools.permutations order) to an 8-bit value packing
// the permutation two bits per slot: permutation[i] sits at bits
// 2*i..2*i+1.
var LUT = [24]uint8{
	0b11100100, 0b10110100, 0b11011000, 0b01111000,
	0b10011100, 0b01101100, 0b11100001, 0b10110001,
	0b11001001, 0b00111001, 0b10001101, 0b00101101,
	0b11010010, 0b01110010, 0b11000110, 0b00110110,
	0b01001110, 0b00011110, 0b10010011, 0b01100011,
	0b10000111, 0b00100111, 0b01001011, 0b00011011,
}

// Model is a decoded order-k Markov transition table. Model[row] is the
// permutation of {0,1,2,3}, most to least likely direction delta,
// predicted for context value row: a base-4 number formed from the last
// k decoded deltas.
type Model [][4]uint8

// FromStored decodes a packed Markov model table of the given order
// from stream, 5 bits per row, each row an index into LUT. Rows may
// cross byte boundaries.
func FromStored(stream []byte, order int) (Model, error) {
	if order <= 0 {
		return nil, nil
	}

	nRows := pow4(order)
	model := make(Model, 0, nRows)
	pos := 0

	for i := 0; i < len(stream) && len(model) < nRows; i++ {
		for pos < 8 && len(model) < nRows {
			var decoded int
			if pos+5 > 8 && i < len(stream)-1 {
				decoded = int(stream[i]>>uint(pos)) & 0b11111
				decoded |= int(stream[i+1]&^(^uint8(0)<<uint(pos+5-8))) << uint(8-pos)
				decoded &= 0b11111
			} else {
				decoded = int(stream[i]>>uint(pos)) & 0b11111
			}

			if decoded < 0 || decoded >= len(LUT) {
				return nil, fmt.Errorf("markov: decoded row index %d out of range: %w", decoded, errs.ErrMarkovUnderflow)
			}

			packed := LUT[decoded]
			model = append(model, [4]uint8{
				packed & 0b11,
				(packed >> 2) & 0b11,
				(packed >> 4) & 0b11,
				(packed >> 6) & 0b11,
			})

			pos += 5
		}

		pos -= 8
	}

	if len(model) < nRows {
		return nil, fmt.Errorf("markov: model stream truncated, got %d of %d rows: %w", len(model), nRows, errs.ErrMarkovUnderflow)
	}

	return model, nil
}

// DecodeCodepoints expands a Markov-coded crack-code byte stream into
// its underlying direction-delta stream (values in [0,3]), driven by
// model. crackCode's first two bits are the raw, uncoded starting
// direction; everything after is a variable-length prefix code resolved
// against model's current context row, followed by a running mod-4
// prefix sum over the whole output.
func DecodeCodepoints(crackCode []byte, model Model) ([]uint8, error) {
	if len(crackCode) == 0 {
		return nil, nil
	}
	if len(model) == 0 {
		return nil, fmt.Errorf("markov: empty model: %w", errs.ErrMarkovUnderflow)
	}

	buf := newCircularBuf(order(len(model)))
	stream := make([]uint8, 0, len(crackCode)*4)

	pos := 2
	startDir := crackCode[0] & 0b11
	stream = append(stream, startDir)
	buf.pushBack(startDir)

	modelRow := buf.toBase10()

	for i := 0; i < len(crackCode); i++ {
		word := uint16(crackCode[i])
		if i < len(crackCode)-1 {
			word |= uint16(crackCode[i+1]) << 8
		}

		for pos < 8 {
			if modelRow < 0 || modelRow >= len(model) {
				return nil, fmt.Errorf("markov: context row %d out of range for %d-row model: %w", modelRow, len(model), errs.ErrMarkovUnderflow)
			}

			codepoint := (word >> uint(pos)) & 0b111

			var delta uint8
			switch {
			case codepoint&0b1 == 0:
				delta = model[modelRow][0]
				pos++
			case codepoint&0b10 == 0:
				delta = model[modelRow][1]
				pos += 2
			case codepoint&0b100 == 0:
				delta = model[modelRow][2]
				pos += 3
			default:
				delta = model[modelRow][3]
				pos += 3
			}

			stream = append(stream, delta)
			modelRow = buf.pushBackAndUpdate(delta)
		}

		pos -= 8
	}

	for i := 1; i < len(stream); i++ {
		stream[i] += stream[i-1]
		if stream[i] > 3 {
			stream[i] -= 4
		}
	}

	return stream, nil
}

// order recovers k from a model's row count (4^k), assuming nRows is
// itself a power of 4 (guaranteed by FromStored).
func order(nRows int) int {
	k := 0
	for n := nRows; n > 1; n /= 4 {
		k++
	}

	return k
}

func pow4(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 4
	}

	return v
}

// circularBuf is a fixed-capacity ring tracking the last `order` decoded
// deltas and their base-4 value, updated incrementally so each push is
// O(1) rather than resumming the whole window.
type circularBuf struct {
	data         []uint8
	idx          int
	base10Cached int
}

func newCircularBuf(order int) *circularBuf {
	return &circularBuf{data: make([]uint8, order)}
}

func (b *circularBuf) front() uint8 {
	return b.data[b.idx]
}

func (b *circularBuf) pushBack(elem uint8) {
	if len(b.data) == 0 {
		return
	}
	b.data[b.idx] = elem
	b.idx++
	if b.idx >= len(b.data) {
		b.idx = 0
	}
}

func (b *circularBuf) pushBackAndUpdate(elem uint8) int {
	if len(b.data) == 0 {
		return 0
	}
	b.base10Cached -= int(b.front())
	b.base10Cached >>= 2
	b.base10Cached += int(elem) * (1 << uint(2*(len(b.data)-1)))
	b.pushBack(elem)

	return b.base10Cached
}

func (b *circularBuf) toBase10() int {
	base10 := 0
	j := b.idx
	for i := 0; i < len(b.data); i++ {
		base10 += pow4(i) * int(b.data[j])
		j++
		if j >= len(b.data) {
			j = 0
		}
	}
	b.base10Cached = base10

	return base10
}
