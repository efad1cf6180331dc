package spec

import (
	"fmt"
	"strings"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// MarkShape selects a homing mark.
type MarkShape int

// Mark shapes. Only MarkNone, MarkDots, and MarkWindows are built; the
// others are declared so profiles can name them, and building them fails
// with an UNSUPPORTED error.
const (
	MarkCustom MarkShape = iota - 1
	MarkNone
	MarkDots
	MarkLine
	MarkWindows
	MarkRing
	MarkPolygon
	MarkDish
	MarkFMTowns
	MarkHexArray
)

var markNames = map[MarkShape]string{
	MarkCustom:   "CUSTOM",
	MarkNone:     "NONE",
	MarkDots:     "DOTS",
	MarkLine:     "LINE",
	MarkWindows:  "WINDOWS",
	MarkRing:     "RING",
	MarkPolygon:  "POLYGON",
	MarkDish:     "DISH",
	MarkFMTowns:  "FMTOWNS",
	MarkHexArray: "HEXARRAY",
}

func (s MarkShape) String() string {
	if n, ok := markNames[s]; ok {
		return n
	}
	return fmt.Sprintf("MarkShape(%d)", int(s))
}

// Implemented reports whether a builder exists for the shape.
func (s MarkShape) Implemented() bool {
	return s == MarkNone || s == MarkDots || s == MarkWindows
}

// ParseMarkShape parses a shape name, case-insensitively.
func ParseMarkShape(name string) (MarkShape, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	if want == "" {
		return MarkNone, nil
	}
	for s, n := range markNames {
		if n == want {
			return s, nil
		}
	}
	return MarkNone, errors.New(errors.ErrCodeInvalidSpec, "unknown mark shape %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s MarkShape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *MarkShape) UnmarshalText(b []byte) error {
	v, err := ParseMarkShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// KeyMarkSpec configures a homing mark.
type KeyMarkSpec struct {
	Shape    MarkShape `json:"shape" toml:"shape"`
	Count    int       `json:"count" toml:"count"`
	Size     float64   `json:"size" toml:"size"`         // ring radius (mm)
	Depth    float64   `json:"depth" toml:"depth"`       // dot radius (mm)
	Offset   vec.Vec2  `json:"offset" toml:"offset"`     // multiple of the top footprint
	Rotation vec.Vec2  `json:"rotation" toml:"rotation"` // degrees
}

// DefaultMark returns a mark spec with no shape selected.
func DefaultMark() KeyMarkSpec {
	return KeyMarkSpec{
		Shape: MarkNone,
		Count: 2,
		Size:  2,
		Depth: 0.5,
	}
}
