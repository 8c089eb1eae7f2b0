// Package header parses and validates the fixed-size prefix of a
// crackle blob and exposes the sizes every later decode stage derives
// from it.
package header

import (
	"bytes"
	"fmt"

	"github.com/dscout/crackle/errs"
	"github.com/dscout/crackle/format"
	"github.com/dscout/crackle/internal/lib"
)

// Magic identifies a crackle blob. It appears at byte offset 0.
var Magic = [4]byte{'C', 'R', 'K', 'L'}

// Version is the only FormatVersion this package decodes. Any other
// value is rejected rather than guessed at: a legacy edge-bit
// permutation is never inferred from the byte contents alone.
const Version = 1

// Size is the fixed byte length of a crackle header.
const Size = 40

// Field byte offsets within the header, as read by Parse.
const (
	offMagic            = 0  // 4 bytes
	offVersion          = 4  // 1 byte
	offDataWidth        = 5  // 1 byte
	offStoredDataWidth  = 6  // 1 byte
	offFlags            = 7  // 1 byte
	offSx               = 8  // 4 bytes
	offSy               = 12 // 4 bytes
	offSz               = 16 // 4 bytes
	offGridSize         = 20 // 4 bytes
	offNumLabelBytes    = 24 // 8 bytes
	offMarkovModelOrder = 32 // 1 byte
	// bytes 33-39 reserved, zero-filled
)

const (
	flagIsSigned    = 0x01
	flagCrackFormat = 0x02
	flagLabelShift  = 2
	flagLabelMask   = 0x0C
)

// Header is the fixed-size prefix of a crackle blob.
type Header struct {
	// DataWidth is the output label element width in bytes (1, 2, 4, or 8).
	DataWidth int
	// StoredDataWidth is the stored unique-label element width in bytes.
	StoredDataWidth int
	// IsSigned selects how stored labels are interpreted.
	IsSigned bool
	// CrackFormat is the edge-bit polarity used by the crack-code painter.
	CrackFormat format.CrackFormat
	// LabelFormat selects the label payload layout.
	LabelFormat format.LabelFormat
	// Sx, Sy, Sz are the volume dimensions.
	Sx, Sy, Sz uint32
	// GridSize is the in-plane tile size for pin components. This
	// implementation fixes one tile per Z-slice (see SPEC_FULL.md
	// section 4.B), so GridSize is carried through for forward
	// compatibility but does not affect NumGrids.
	GridSize uint32
	// NumLabelBytes is the byte length of the label payload.
	NumLabelBytes uint64
	// MarkovModelOrder is k; 0 disables the Markov decoder.
	MarkovModelOrder uint8
	// FormatVersion is the wire format revision byte. Only Version (1)
	// is implemented; Parse rejects anything else, while
	// ParseAllowUnknownVersion leaves that decision to the caller
	// (crackle.WithStrictVersion(false)).
	FormatVersion uint8
}

// Parse reads and validates a Header from the start of buf, rejecting
// any FormatVersion other than Version.
func Parse(buf []byte) (Header, error) {
	h, version, err := parse(buf)
	if err != nil {
		return h, err
	}

	if version != Version {
		return Header{}, fmt.Errorf("header: unsupported format version %d: %w", version, errs.ErrInvalidMagic)
	}

	return h, nil
}

// ParseAllowUnknownVersion parses a Header like Parse, but does not
// reject a FormatVersion other than Version: the caller takes
// responsibility for deciding whether to proceed against a wire
// revision this package has never validated against (see
// crackle.WithStrictVersion).
func ParseAllowUnknownVersion(buf []byte) (Header, error) {
	h, _, err := parse(buf)
	return h, err
}

func parse(buf []byte) (Header, uint8, error) {
	var h Header

	if len(buf) < Size {
		return h, 0, fmt.Errorf("header: %w", errs.ErrTruncatedHeader)
	}

	if !bytes.Equal(buf[offMagic:offMagic+4], Magic[:]) {
		return h, 0, fmt.Errorf("header: bad magic: %w", errs.ErrInvalidMagic)
	}

	version, _ := lib.ReadUintLE(buf, offVersion, 1)

	dataWidth, _ := lib.ReadUintLE(buf, offDataWidth, 1)
	storedDataWidth, _ := lib.ReadUintLE(buf, offStoredDataWidth, 1)
	flags, _ := lib.ReadUintLE(buf, offFlags, 1)
	sx, _ := lib.ReadUintLE(buf, offSx, 4)
	sy, _ := lib.ReadUintLE(buf, offSy, 4)
	sz, _ := lib.ReadUintLE(buf, offSz, 4)
	gridSize, _ := lib.ReadUintLE(buf, offGridSize, 4)
	numLabelBytes, _ := lib.ReadUintLE(buf, offNumLabelBytes, 8)
	markovOrder, _ := lib.ReadUintLE(buf, offMarkovModelOrder, 1)

	h = Header{
		DataWidth:        int(dataWidth),
		StoredDataWidth:  int(storedDataWidth),
		IsSigned:         flags&flagIsSigned != 0,
		CrackFormat:      format.CrackFormat((flags & flagCrackFormat) >> 1),
		LabelFormat:      format.LabelFormat((flags & flagLabelMask) >> flagLabelShift),
		Sx:               uint32(sx),
		Sy:               uint32(sy),
		Sz:               uint32(sz),
		GridSize:         uint32(gridSize),
		NumLabelBytes:    numLabelBytes,
		MarkovModelOrder: uint8(markovOrder),
		FormatVersion:    uint8(version),
	}

	if err := h.validate(); err != nil {
		return Header{}, uint8(version), err
	}

	return h, uint8(version), nil
}

func validWidth(w int) bool {
	return w == 1 || w == 2 || w == 4 || w == 8
}

func (h Header) validate() error {
	if !validWidth(h.DataWidth) || !validWidth(h.StoredDataWidth) {
		return fmt.Errorf("header: unsupported element width (data=%d stored=%d): %w", h.DataWidth, h.StoredDataWidth, errs.ErrInvalidMagic)
	}
	if !h.CrackFormat.Valid() {
		return fmt.Errorf("header: unsupported crack format %d: %w", h.CrackFormat, errs.ErrInvalidMagic)
	}
	if !h.LabelFormat.Valid() {
		return fmt.Errorf("header: unsupported label format %d: %w", h.LabelFormat, errs.ErrInvalidMagic)
	}

	return nil
}

// Voxels returns sx*sy*sz.
func (h Header) Voxels() uint64 {
	return uint64(h.Sx) * uint64(h.Sy) * uint64(h.Sz)
}

// VoxelsPerSlice returns sx*sy.
func (h Header) VoxelsPerSlice() uint64 {
	return uint64(h.Sx) * uint64(h.Sy)
}

// OutputBytes returns the number of bytes a fully decoded output buffer
// must hold: sx*sy*sz*DataWidth.
func (h Header) OutputBytes() uint64 {
	return h.Voxels() * uint64(h.DataWidth)
}

// PinIndexWidth is the byte width of a pin's voxel index field,
// ceil(log2(sx*sy*sz)/8).
func (h Header) PinIndexWidth() int {
	return lib.ByteWidth(h.Voxels())
}

// DepthWidth is the byte width of a pin's depth field, ceil(log2(sz)/8).
func (h Header) DepthWidth() int {
	return lib.ByteWidth(uint64(h.Sz))
}

// ComponentWidth is the byte width used to store a per-grid component
// count, ceil(log2(sx*sy)/8).
func (h Header) ComponentWidth() int {
	return lib.ByteWidth(h.VoxelsPerSlice())
}

// NumGrids is the number of in-plane grid tiles times sz. This
// implementation fixes one tile per Z-slice (SPEC_FULL.md section 4.B),
// so NumGrids == Sz.
func (h Header) NumGrids() uint64 {
	return uint64(h.Sz)
}

// ZIndexBytes is the byte length of the per-slice Z-index
// (4 bytes * sz).
func (h Header) ZIndexBytes() uint64 {
	return 4 * uint64(h.Sz)
}

// MarkovModelBytes is the byte length of the serialized Markov model
// table, ceil(5*4^k / 8), or 0 when MarkovModelOrder is 0.
func (h Header) MarkovModelBytes() uint64 {
	if h.MarkovModelOrder == 0 {
		return 0
	}

	rows := uint64(1) << (2 * uint(h.MarkovModelOrder)) // 4^k
	bits := 5 * rows

	return (bits + 7) / 8
}
