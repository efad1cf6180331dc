package spec

import (
	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// UnitPitch is the nominal keyboard-unit pitch in millimetres.
const UnitPitch = 19.05

// KeySizeSpec is the key footprint in keyboard units and the pitch of one unit.
type KeySizeSpec struct {
	Units   vec.Vec2 `json:"units" toml:"units"`
	Spacing vec.Vec2 `json:"spacing" toml:"spacing"`
}

// DefaultSize returns a 1×1 unit footprint on the standard pitch.
func DefaultSize() KeySizeSpec {
	return KeySizeSpec{
		Units:   vec.Vec2{X: 1, Y: 1},
		Spacing: vec.Splat2(UnitPitch),
	}
}

// WithUnits returns a copy with the unit footprint replaced.
func (s KeySizeSpec) WithUnits(u vec.Vec2) KeySizeSpec {
	s.Units = u
	return s
}

// CoreSize is the extra size beyond one unit: max(0, units-1) * spacing.
func (s KeySizeSpec) CoreSize() vec.Vec2 {
	return s.Units.AddScalar(-1).Max(vec.Vec2{}).Mul(s.Spacing)
}

// FullSize is the full footprint: units * spacing.
func (s KeySizeSpec) FullSize() vec.Vec2 {
	return s.Units.Mul(s.Spacing)
}

// Validate checks that units are non-negative and spacing is positive.
func (s KeySizeSpec) Validate() error {
	if err := errors.ValidateNonNegative("units.x", s.Units.X); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("units.y", s.Units.Y); err != nil {
		return err
	}
	if err := errors.ValidatePositive("spacing.x", s.Spacing.X); err != nil {
		return err
	}
	return errors.ValidatePositive("spacing.y", s.Spacing.Y)
}
