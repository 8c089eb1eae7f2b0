// Package crackle decodes the "crackle" lossless compression format for
// dense 3D integer label volumes: an order-k Markov
// or raw-delta coded crack-code boundary representation, colored into
// connected components and resolved against one of three label payload
// layouts.
package crackle

import (
	"encoding/binary"
	"fmt"

	"github.com/dscout/crackle/errs"
	"github.com/dscout/crackle/header"
	"github.com/dscout/crackle/internal/cc3d"
	"github.com/dscout/crackle/internal/crackcode"
	"github.com/dscout/crackle/internal/labels"
	"github.com/dscout/crackle/internal/markov"
	"github.com/dscout/crackle/internal/options"
	"github.com/dscout/crackle/internal/pool"
	"github.com/dscout/crackle/internal/xxh"
)

// DecompressedSize reads just the header of input and reports the full
// volume's dimensions and output element width, letting a caller size
// its output buffer before calling Decompress.
func DecompressedSize(input []byte) (sx, sy, sz uint64, dataWidth int, err error) {
	h, err := header.Parse(input)
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return uint64(h.Sx), uint64(h.Sy), uint64(h.Sz), h.DataWidth, nil
}

// Checksum computes an xxHash64 fingerprint of data, for callers and
// tests that want to compare two decodes without diffing full buffers
// (useful for asserting two decodes of the same input are bit-identical).
func Checksum(data []byte) uint64 {
	return xxh.Sum(data)
}

// Decompress decodes input into output. output must be at least as
// large as the decoded byte range requires: sx*sy*(z_end-z_start)*
// DataWidth, where z_start/z_end default to the full volume unless
// WithZRange narrows them.
func Decompress(input, output []byte, opts ...Option) error {
	cfg := newDecodeConfig()
	options.Apply(cfg, opts...)

	h, err := parseHeader(input, cfg.strictVersion)
	if err != nil {
		return err
	}

	if output == nil {
		return fmt.Errorf("crackle: %w", errs.ErrNullOutput)
	}

	zStart, zEnd, err := clampZRange(cfg, int64(h.Sz))
	if err != nil {
		return err
	}
	zr := uint64(zEnd - zStart)

	required := uint64(h.Sx) * uint64(h.Sy) * zr * uint64(h.DataWidth)
	if uint64(len(output)) < required {
		return fmt.Errorf("crackle: %w", errs.ErrOutputTooSmall)
	}

	if h.Sx == 0 || h.Sy == 0 || zr == 0 {
		return nil
	}

	model, err := decodeMarkovModel(h, input)
	if err != nil {
		return err
	}

	edgesPerSlice, cleanup, err := decodeEdges(h, input, model, uint64(zStart), uint64(zEnd))
	defer cleanup()
	if err != nil {
		return err
	}

	ccLabels, n := cc3d.Label(edgesPerSlice, uint64(h.Sx), uint64(h.Sy), zr)

	return fillOutput(h, input, output, ccLabels, uint64(n), uint64(zStart), uint64(zEnd))
}

func parseHeader(input []byte, strict bool) (header.Header, error) {
	if strict {
		return header.Parse(input)
	}

	return header.ParseAllowUnknownVersion(input)
}

// clampZRange mirrors the original library's z_start/z_end clamping:
// a negative z_start clamps to 0, a negative z_end clamps to sz, and
// either bound is clamped into [0, sz] (z_start additionally into
// [0, sz-1] when sz > 0) before the non-empty check.
func clampZRange(cfg *decodeConfig, sz int64) (int64, int64, error) {
	zStart := cfg.zStart
	if zStart < 0 {
		zStart = 0
	}
	if sz > 0 && zStart > sz-1 {
		zStart = sz - 1
	}

	zEnd := cfg.zEnd
	if zEnd < 0 {
		zEnd = sz
	}
	if zEnd > sz {
		zEnd = sz
	}

	if zStart >= zEnd {
		return 0, 0, fmt.Errorf("crackle: z_start=%d z_end=%d: %w", zStart, zEnd, errs.ErrEmptyZRange)
	}

	return zStart, zEnd, nil
}

func decodeMarkovModel(h header.Header, input []byte) (markov.Model, error) {
	if h.MarkovModelOrder == 0 {
		return nil, nil
	}

	offset := uint64(header.Size) + h.ZIndexBytes() + h.NumLabelBytes
	end := offset + h.MarkovModelBytes()
	if end > uint64(len(input)) {
		return nil, fmt.Errorf("crackle: markov model [%d:%d) exceeds input length %d: %w", offset, end, len(input), errs.ErrMarkovUnderflow)
	}

	return markov.FromStored(input[offset:end], int(h.MarkovModelOrder))
}

// zSliceOffsets decodes the per-slice code-block sizes stored at the
// start of the z-index and prefix-sums them into
// absolute byte offsets into input: the crack-code block for slice z is
// input[offsets[z]:offsets[z+1]].
func zSliceOffsets(h header.Header, input []byte) ([]uint64, func(), error) {
	sz := int(h.Sz)

	sizes, cleanup := pool.GetUint32s(sz)

	base := uint64(header.Size)
	for z := 0; z < sz; z++ {
		off := base + uint64(z)*4
		if off+4 > uint64(len(input)) {
			cleanup()
			return nil, func() {}, fmt.Errorf("crackle: z-index entry %d exceeds input length %d: %w", z, len(input), errs.ErrTruncatedZIndex)
		}
		sizes[z] = binary.LittleEndian.Uint32(input[off:])
	}

	blocksBase := uint64(header.Size) + h.ZIndexBytes() + h.NumLabelBytes + h.MarkovModelBytes()

	offsets := make([]uint64, sz+1)
	offsets[0] = blocksBase
	for z := 0; z < sz; z++ {
		offsets[z+1] = offsets[z] + uint64(sizes[z])
	}

	return offsets, cleanup, nil
}

// decodeEdges builds the passability bitmap for every slice in
// [zStart, zEnd), one sx*sy-length byte slice per Z. A slice whose
// crack-code block is empty carries no boundary contour and is a single
// uniform component: every voxel gets all four passability bits set
// (both polarities read a set bit as passable), so cc3d joins the whole
// slice into one in-plane component regardless of CrackFormat.
func decodeEdges(h header.Header, input []byte, model markov.Model, zStart, zEnd uint64) ([][]byte, func(), error) {
	offsets, cleanupOffsets, err := zSliceOffsets(h, input)
	if err != nil {
		return nil, func() {}, err
	}
	defer cleanupOffsets()

	sx, sy := uint64(h.Sx), uint64(h.Sy)
	sxy := sx * sy

	edgesPerSlice := make([][]byte, zEnd-zStart)
	var cleanups []func()
	cleanup := func() {
		for _, c := range cleanups {
			c()
		}
	}

	for z := zStart; z < zEnd; z++ {
		if offsets[z+1] > uint64(len(input)) || offsets[z] > offsets[z+1] {
			cleanup()
			return nil, func() {}, fmt.Errorf("crackle: crack-code block for slice %d exceeds input length %d: %w", z, len(input), errs.ErrTruncatedCrackBlock)
		}
		code := input[offsets[z]:offsets[z+1]]

		if len(code) == 0 {
			buf, bufCleanup := pool.GetBytes(int(sxy))
			for i := range buf { // pooled buffers carry stale data from a prior slice
				buf[i] = 0b1111
			}
			cleanups = append(cleanups, bufCleanup)
			edgesPerSlice[z-zStart] = buf

			continue
		}

		edges, err := decodeSliceEdges(h, code, sx, sy, model)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("crackle: slice %d: %w", z, err)
		}
		edgesPerSlice[z-zStart] = edges
	}

	return edgesPerSlice, cleanup, nil
}

func decodeSliceEdges(h header.Header, code []byte, sx, sy uint64, model markov.Model) ([]byte, error) {
	nodes, err := crackcode.ReadBOCIndex(code, sx, sy)
	if err != nil {
		return nil, err
	}

	var codepoints []uint8
	if model != nil {
		// The Markov-coded stream starts after the 4-byte index-size
		// prefix and the BOC index it sizes.
		indexSize := 4 + uint64(binary.LittleEndian.Uint32(code))
		if indexSize > uint64(len(code)) {
			return nil, fmt.Errorf("crackle: index size %d exceeds block length %d: %w", indexSize, len(code), errs.ErrTruncatedCrackBlock)
		}
		codepoints, err = markov.DecodeCodepoints(code[indexSize:], model)
	} else {
		codepoints, err = crackcode.UnpackCodepoints(code)
	}
	if err != nil {
		return nil, err
	}

	chains := crackcode.CodepointsToSymbols(nodes, codepoints)

	return crackcode.Paint(chains, sx, sy, h.CrackFormat)
}

// fillOutput decodes the component->label map for h.LabelFormat and
// writes one little-endian DataWidth-byte element per voxel into
// output, dispatching the label-width generic over h.DataWidth (the
// output element width, independent of StoredDataWidth).
func fillOutput(h header.Header, input, output []byte, ccLabels []uint32, n, zStart, zEnd uint64) error {
	switch h.DataWidth {
	case 1:
		return decodeAndWrite[uint8](h, input, output, ccLabels, n, zStart, zEnd)
	case 2:
		return decodeAndWrite[uint16](h, input, output, ccLabels, n, zStart, zEnd)
	case 4:
		return decodeAndWrite[uint32](h, input, output, ccLabels, n, zStart, zEnd)
	case 8:
		return decodeAndWrite[uint64](h, input, output, ccLabels, n, zStart, zEnd)
	default:
		return fmt.Errorf("crackle: unsupported data width %d: %w", h.DataWidth, errs.ErrInvalidMagic)
	}
}

func decodeAndWrite[L labels.Integer](h header.Header, input, output []byte, ccLabels []uint32, n, zStart, zEnd uint64) error {
	labelMap, err := labels.Decode[L](h, input, ccLabels, n, zStart, zEnd)
	if err != nil {
		return err
	}

	writeOutput(output, labelMap, ccLabels, h.DataWidth)

	return nil
}

func writeOutput[L labels.Integer](output []byte, labelMap []L, ccLabels []uint32, width int) {
	for i, id := range ccLabels {
		v := uint64(labelMap[id])
		switch width {
		case 1:
			output[i] = byte(v)
		case 2:
			binary.LittleEndian.PutUint16(output[i*2:], uint16(v))
		case 4:
			binary.LittleEndian.PutUint32(output[i*4:], uint32(v))
		case 8:
			binary.LittleEndian.PutUint64(output[i*8:], v)
		}
	}
}
