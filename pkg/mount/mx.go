package mount

import (
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// MXStem describes a Cherry MX cross stem.
type MXStem struct {
	Thin      float64 // cross arm width
	Long      float64 // cross arm length
	H         float64
	D         float64 // outer diameter
	Padding   float64
	Tolerance float64
	Box       bool // clip the cylinder to a D × Long block
}

// DefaultMXStem returns the standard box-style MX stem.
func DefaultMXStem() MXStem {
	return MXStem{
		Thin:      1.17,
		Long:      4.10,
		H:         MXStemHeight,
		D:         5.5,
		Padding:   DefaultPadding,
		Tolerance: 0.06,
		Box:       true,
	}
}

const (
	mxCrossFillet = 0.45
	mxChamfer     = 0.2
	supportDraft  = 1.5
)

// Build makes the stem spanning z = -H .. Padding.
func (s MXStem) Build() (kernel.Solid, error) {
	z0, z1 := -s.H, s.Padding

	body, err := chamferedCylinder(s.D/2, z0, z1, mxChamfer)
	if err != nil {
		return kernel.Solid{}, err
	}

	w := s.Thin + 2*s.Tolerance
	l := s.Long + 2*s.Tolerance
	cross := kernel.RoundRect(vec.Vec2{X: w, Y: l}, 0).
		Union(kernel.RoundRect(vec.Vec2{X: l, Y: w}, 0), mxCrossFillet)
	// run the cut past both ends so no skin is left
	slot, err := kernel.Extrude(cross, z0-1, z1+1)
	if err != nil {
		return kernel.Solid{}, err
	}
	stem := body.Cut(slot)

	if s.Box {
		block, err := kernel.Extrude(kernel.RoundRect(vec.Vec2{X: s.D, Y: s.Long}, 0), z0-1, z1+1)
		if err != nil {
			return kernel.Solid{}, err
		}
		stem = stem.Intersect(block)
	}
	return stem, nil
}

// chamferedCylinder is a cylinder from z0 to z1 whose bottom edge is
// chamfered by c.
func chamferedCylinder(r, z0, z1, c float64) (kernel.Solid, error) {
	foot, err := kernel.Circle(r - c)
	if err != nil {
		return kernel.Solid{}, err
	}
	full, err := kernel.Circle(r)
	if err != nil {
		return kernel.Solid{}, err
	}
	bevel, err := kernel.Taper(foot, full, z0, z0+c)
	if err != nil {
		return kernel.Solid{}, err
	}
	shaft, err := kernel.Extrude(full, z0+c, z1)
	if err != nil {
		return kernel.Solid{}, err
	}
	return bevel.Union(shaft), nil
}

// MX is the Cherry MX-style standard.
type MX struct{}

var _ Standard = MX{}

var mxNegative = negativeShape{
	clearance: 15.4,
	radius:    1.75,
	rim:       1.2,
	tier1:     vec.Vec2{X: 0.39496, Y: 3},
	tier2:     vec.Vec2{X: 1.1547, Y: 2},
}

func (MX) Kind() spec.Standard { return spec.MX }

func (MX) MakeStem() (kernel.Solid, error) { return DefaultMXStem().Build() }

func (MX) MakeStabStem() (kernel.Solid, error) {
	s := DefaultMXStem()
	s.H = MXStabHeight
	return s.Build()
}

func (MX) MakeNegative(size spec.KeySizeSpec, padding float64) (kernel.Solid, error) {
	return mxNegative.build(size, padding)
}

func (MX) NegativeTopSize(size spec.KeySizeSpec) vec.Vec3 { return mxNegative.topSize(size) }

func (MX) SkirtHeight(preplate bool) float64 {
	if preplate {
		return 5.0
	}
	return 5.0 + 1.2
}

func (MX) Gap(u float64) float64 {
	switch {
	case u >= 3:
		return (u - 1) / 2 * spec.UnitPitch
	case u >= 2:
		return 1.25 / 2 * spec.UnitPitch
	}
	return 0
}

func (MX) MakeSupport(height, margin float64) (kernel.Solid, error) {
	return mxSupport(DefaultMXStem(), height, margin)
}

func (MX) StabSupportLong() float64 { return 4.1 }

// mxSupport is a drafted cylinder around the stem, clipped to a drafted
// block for box stems.
func mxSupport(s MXStem, height, margin float64) (kernel.Solid, error) {
	core, err := kernel.DraftedCylinder(s.D/2+margin, height, supportDraft)
	if err != nil {
		return kernel.Solid{}, err
	}
	if !s.Box {
		return core, nil
	}
	block, err := kernel.DraftedBlock(s.D+2*margin, s.Long+2*margin, height, supportDraft)
	if err != nil {
		return kernel.Solid{}, err
	}
	return core.Intersect(block), nil
}
