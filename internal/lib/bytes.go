// Package lib provides the little-endian byte-reading primitives shared
// by every decode stage: fixed-width reads for header fields, and
// arbitrary-width (1-8 byte) reads for the variable-width fields whose
// size is derived from ByteWidth (BOC-index coordinates, pin indices and
// depths, component counts, renumber indices).
package lib

import (
	"encoding/binary"
	"fmt"
)

// ReadUintLE reads a width-byte (1, 2, 4, or 8) little-endian unsigned
// integer at offset in buf. It returns an error if the read would run
// past the end of buf or width is not one of the supported sizes.
func ReadUintLE(buf []byte, offset, width int) (uint64, error) {
	if offset < 0 || width < 0 || offset+width > len(buf) {
		return 0, fmt.Errorf("lib: read of %d bytes at offset %d exceeds buffer of length %d", width, offset, len(buf))
	}

	switch width {
	case 1:
		return uint64(buf[offset]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf[offset:])), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf[offset:])), nil
	case 8:
		return binary.LittleEndian.Uint64(buf[offset:]), nil
	default:
		return 0, fmt.Errorf("lib: unsupported fixed width %d", width)
	}
}

// ReadUintN reads a little-endian unsigned integer of arbitrary width in
// [1,8] bytes at offset in buf. This is the variable-width counterpart
// to ReadUintLE, used for fields whose byte width is computed from
// ByteWidth rather than fixed at 1/2/4/8.
func ReadUintN(buf []byte, offset, width int) (uint64, error) {
	if width < 1 || width > 8 {
		return 0, fmt.Errorf("lib: width %d out of range [1,8]", width)
	}
	if offset < 0 || offset+width > len(buf) {
		return 0, fmt.Errorf("lib: read of %d bytes at offset %d exceeds buffer of length %d", width, offset, len(buf))
	}

	var v uint64
	for i := 0; i < width; i++ {
		v |= uint64(buf[offset+i]) << (8 * uint(i))
	}

	return v, nil
}

// ReadIntN reads a little-endian two's-complement signed integer of
// arbitrary width in [1,8] bytes at offset in buf, sign-extending to
// int64 based on the high bit of the width-th byte.
func ReadIntN(buf []byte, offset, width int) (int64, error) {
	v, err := ReadUintN(buf, offset, width)
	if err != nil {
		return 0, err
	}

	signBit := uint64(1) << (8*uint(width) - 1)
	if v&signBit != 0 {
		v |= ^uint64(0) << (8 * uint(width))
	}

	return int64(v), nil
}

// ByteWidth returns the minimum number of bytes (1-8) needed to hold any
// unsigned value in [0, n), used throughout the header and label payload
// decoders to size variable-width fields (BOC-index axes, pin indices,
// depths, component counts, renumber indices).
func ByteWidth(n uint64) int {
	for w := 1; w < 8; w++ {
		if n <= uint64(1)<<(8*uint(w)) {
			return w
		}
	}

	return 8
}
