package mount

import (
	"math"

	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// negativeShape describes a switch cavity: a rounded rect lined with a
// plate rim and two tiers that thicken the wall towards the top.
type negativeShape struct {
	clearance float64  // 1U cavity width
	radius    float64  // corner fillet of the cavity outline
	rim       float64  // straight plate-mount rim height
	tier1     vec.Vec2 // (inset, rise) of the first tier
	tier2     vec.Vec2 // (inset, rise) of the second tier
}

func (n negativeShape) height() float64 {
	return n.rim + n.tier1.Y + n.tier2.Y
}

func (n negativeShape) inset() float64 {
	return n.tier1.X + n.tier2.X
}

func (n negativeShape) outline(size spec.KeySizeSpec) vec.Vec2 {
	return size.CoreSize().AddScalar(n.clearance)
}

func (n negativeShape) topSize(size spec.KeySizeSpec) vec.Vec3 {
	s := n.outline(size).AddScalar(-2 * n.inset())
	return s.ToVec3(math.Max(0.01, n.radius-n.inset()))
}

// build extrudes the outline from -padding to the skirt height and removes
// the tiered lining.
func (n negativeShape) build(size spec.KeySizeSpec, padding float64) (kernel.Solid, error) {
	outline := n.outline(size)
	path := kernel.RoundRect(outline, n.radius)
	top := padding + n.height()

	outside := math.Max(1, (size.FullSize().X-outline.X)/2)
	t1 := padding + n.rim + n.tier1.Y
	lining, err := kernel.Polygon([]vec.Vec2{
		{X: outside, Y: 0},
		{X: 0, Y: 0},
		{X: 0, Y: padding + n.rim},
		{X: -n.tier1.X, Y: t1},
		{X: -n.inset(), Y: top},
		{X: outside, Y: top},
	})
	if err != nil {
		return kernel.Solid{}, err
	}

	cavity, err := kernel.Extrude(path, 0, top)
	if err != nil {
		return kernel.Solid{}, err
	}
	return cavity.Cut(kernel.RimSweep(path, lining)).Translate(vec.Vec3{Z: -padding}), nil
}
