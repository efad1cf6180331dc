package mount

import (
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Stem and stabilizer heights per standard.
const (
	MXStemHeight   = 3.8
	MXStabHeight   = 3.8
	ChocStemHeight = 3.8
	ChocStabHeight = 2.2
)

// DefaultPadding lets cuts clear the keycap base.
const DefaultPadding = 0.1

// Standard is a switch mount standard.
type Standard interface {
	// Kind identifies the standard.
	Kind() spec.Standard
	// MakeStem builds the switch stem hanging from z = padding.
	MakeStem() (kernel.Solid, error)
	// MakeStabStem builds the stem used at stabilizer points.
	MakeStabStem() (kernel.Solid, error)
	// MakeNegative builds the cavity that clears the switch housing.
	MakeNegative(size spec.KeySizeSpec, padding float64) (kernel.Solid, error)
	// NegativeTopSize is the rounded rect of the cavity's top face;
	// Z carries the corner radius.
	NegativeTopSize(size spec.KeySizeSpec) vec.Vec3
	// SkirtHeight is the height of the cavity, i.e. where stems attach.
	SkirtHeight(preplate bool) float64
	// Gap is the stabilizer offset from centre for a key of the given units.
	Gap(units float64) float64
	// MakeSupport builds the drafted boss that carries the stem.
	MakeSupport(height, margin float64) (kernel.Solid, error)
	// StabSupportLong is the long side of a stabilizer support.
	StabSupportLong() float64
}

// For returns the standard selected by m.
func For(m spec.KeyMountSpec) Standard {
	if m.Standard() == spec.MX {
		return MX{}
	}
	return Choc{}
}
