// Package format defines the small enumerations carried in a crackle
// header: the crack-code edge polarity and the label payload layout.
package format

type (
	// CrackFormat selects how the edge painter (internal/crackcode)
	// interprets a 0/1 bit in the passability bitmap.
	CrackFormat uint8
	// LabelFormat selects which of the three label payload layouts
	// (internal/labels) the component->label map is read from.
	LabelFormat uint8
)

const (
	// Impermissible starts a slice's edge bits all-1 (open) and clears
	// bits as contours are drawn: a cleared bit blocks traversal.
	Impermissible CrackFormat = 0x0
	// Permissible starts a slice's edge bits all-0 (closed) and sets
	// bits as contours are drawn: a set bit is the only passable one.
	Permissible CrackFormat = 0x1
)

const (
	// Flat stores one renumber index per component, flattened across
	// all slices, preceded by a unique-label table.
	Flat LabelFormat = 0x0
	// PinsFixedWidth stores a background color plus fixed-width pin
	// records (renumber, index, depth).
	PinsFixedWidth LabelFormat = 0x1
	// PinsVariableWidth stores pins and direct component->label
	// assignments grouped per unique label, with per-field widths
	// packed into a single header byte.
	PinsVariableWidth LabelFormat = 0x2
)

func (f CrackFormat) String() string {
	switch f {
	case Impermissible:
		return "Impermissible"
	case Permissible:
		return "Permissible"
	default:
		return "Unknown"
	}
}

// Valid reports whether f is one of the defined CrackFormat values.
func (f CrackFormat) Valid() bool {
	return f == Impermissible || f == Permissible
}

func (f LabelFormat) String() string {
	switch f {
	case Flat:
		return "Flat"
	case PinsFixedWidth:
		return "PinsFixedWidth"
	case PinsVariableWidth:
		return "PinsVariableWidth"
	default:
		return "Unknown"
	}
}

// Valid reports whether f is one of the defined LabelFormat values.
func (f LabelFormat) Valid() bool {
	switch f {
	case Flat, PinsFixedWidth, PinsVariableWidth:
		return true
	default:
		return false
	}
}
