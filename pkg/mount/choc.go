package mount

import (
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// ChocStem describes a Kailh Choc v1 twin-lobe stem.
type ChocStem struct {
	Thin      float64
	Long      float64
	Gap       float64 // lobe centre spacing
	H         float64
	Padding   float64
	Tolerance float64
}

// DefaultChocStem returns the standard Choc v1 stem.
func DefaultChocStem() ChocStem {
	return ChocStem{
		Thin:      1.2,
		Long:      3.0,
		Gap:       5.7,
		H:         ChocStemHeight,
		Padding:   DefaultPadding,
		Tolerance: 0.035,
	}
}

// lobe is the pinched outline of one stem leg. Its long sides bow inward to
// 0.65 of the half width at the middle.
func (s ChocStem) lobe() (kernel.Profile, error) {
	ex := s.Thin/2 - s.Tolerance
	ey := s.Long/2 - s.Tolerance
	outline := kernel.RoundRect(vec.Vec2{X: 2 * ex, Y: 2 * ey}, ex/1.5)

	// circle through (ex, ±(ey-ex)) and (0.65ex, 0), centred on the x axis
	k := ey - ex
	cx := (0.5775*ex*ex + k*k) / (0.7 * ex)
	pinch, err := kernel.Circle(cx - 0.65*ex)
	if err != nil {
		return kernel.Profile{}, err
	}
	return outline.
		Cut(pinch.Translate(vec.Vec2{X: cx})).
		Cut(pinch.Translate(vec.Vec2{X: -cx})), nil
}

// Build makes both lobes spanning z = -H .. Padding.
func (s ChocStem) Build() (kernel.Solid, error) {
	ex := s.Thin/2 - s.Tolerance
	ey := s.Long/2 - s.Tolerance
	z0, z1 := -s.H, s.Padding
	c := ex / 3

	lobe, err := s.lobe()
	if err != nil {
		return kernel.Solid{}, err
	}
	leg, err := kernel.Extrude(lobe, z0, z1)
	if err != nil {
		return kernel.Solid{}, err
	}
	// bottom chamfer
	foot, err := kernel.Taper(
		kernel.RoundRect(vec.Vec2{X: 2*ex - 2*c, Y: 2*ey - 2*c}, ex/1.5-c),
		kernel.RoundRect(vec.Vec2{X: 2 * ex, Y: 2 * ey}, ex/1.5),
		z0, z0+c)
	if err != nil {
		return kernel.Solid{}, err
	}
	upper, err := kernel.Extrude(kernel.RoundRect(vec.Vec2{X: 2 * ex, Y: 2 * ey}, 0), z0+c, z1+1)
	if err != nil {
		return kernel.Solid{}, err
	}
	leg = leg.Intersect(foot.Union(upper))

	return leg.Translate(vec.Vec3{X: s.Gap / 2}).Union(leg.Translate(vec.Vec3{X: -s.Gap / 2})), nil
}

// Choc is the Kailh Choc v1 low-profile standard.
type Choc struct{}

var _ Standard = Choc{}

var chocNegative = negativeShape{
	clearance: 15.2 + 0.7,
	radius:    2.0,
	rim:       0.8,
	tier1:     vec.Vec2{X: 0.3, Y: 2},
	tier2:     vec.Vec2{X: 0.4, Y: 0.5},
}

// chocStabStem is the MX-style box stem used for Choc stabilizers.
func chocStabStem() MXStem {
	s := DefaultMXStem()
	s.Thin, s.Long, s.H = 1.0, 4.0, ChocStabHeight
	return s
}

func (Choc) Kind() spec.Standard { return spec.Choc }

func (Choc) MakeStem() (kernel.Solid, error) { return DefaultChocStem().Build() }

func (Choc) MakeStabStem() (kernel.Solid, error) { return chocStabStem().Build() }

func (Choc) MakeNegative(size spec.KeySizeSpec, padding float64) (kernel.Solid, error) {
	return chocNegative.build(size, padding)
}

func (Choc) NegativeTopSize(size spec.KeySizeSpec) vec.Vec3 { return chocNegative.topSize(size) }

func (Choc) SkirtHeight(preplate bool) float64 {
	if preplate {
		return 2.5
	}
	return 2.5 + 0.8
}

func (Choc) Gap(u float64) float64 {
	switch {
	case u >= 6.25:
		return 76.0 / 2
	case u >= 2:
		return 24.0 / 2
	}
	return 0
}

func (Choc) MakeSupport(height, margin float64) (kernel.Solid, error) {
	s := DefaultChocStem()
	return kernel.RoundDraftedBlock(s.Gap+s.Thin+2*margin, s.Long+2*margin, height, 1, supportDraft)
}

func (Choc) StabSupportLong() float64 { return 4.0 }
