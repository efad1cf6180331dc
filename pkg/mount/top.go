package mount

import (
	"github.com/matzehuels/keyforge/pkg/body"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// DefaultWallThickness is the shell thickness left under the top surface.
const DefaultWallThickness = 1.2

// chocSupportMargin is the wall around the Choc stem boss.
const chocSupportMargin = 1.2

// MakeTopNegative builds the hollowing cut above the switch cavity. It
// follows the inside of the shell at the given thickness and leaves the
// stem boss, cross ribs, and stabilizer bosses standing.
func MakeTopNegative(s spec.KeySpec, thickness float64) (kernel.Solid, error) {
	std := For(s.Mount)
	b := s.Body.Clamp()
	core := s.CoreSize()
	full := s.Size.FullSize()
	skirt := std.SkirtHeight(false)

	top := std.NegativeTopSize(s.Size)
	column, err := kernel.Extrude(kernel.RoundRect(top.ToVec2(), top.Z), -0.1, b.Height)
	if err != nil {
		return kernel.Solid{}, err
	}

	inner, err := body.MakeCore(b.Shrink(thickness), core)
	if err != nil {
		return kernel.Solid{}, err
	}
	scoop, err := body.MakeScoop(b, core, body.ScoopOptions{ExtraHeight: 2 * thickness})
	if err != nil {
		return kernel.Solid{}, err
	}
	hollow := column.Intersect(inner.Cut(scoop.At(vec.Vec3{Z: b.Height - thickness})))

	supports, err := topSupports(s, std, thickness, full)
	if err != nil {
		return kernel.Solid{}, err
	}
	return hollow.BlendCut(supports.Translate(vec.Vec3{Z: skirt}), thickness/6), nil
}

// topSupports gathers the stem boss, the cross ribs, and the stabilizer
// bosses with their perpendicular ribs, all rising from z = 0.
func topSupports(s spec.KeySpec, std Standard, thickness float64, full vec.Vec2) (kernel.Solid, error) {
	h := s.Body.Height

	var stem kernel.Solid
	var err error
	if std.Kind() == spec.MX {
		stem, err = std.MakeSupport(h, thickness/6)
	} else {
		stem, err = std.MakeSupport(h, chocSupportMargin)
	}
	if err != nil {
		return kernel.Solid{}, err
	}

	xRib, err := kernel.DraftedBlock(full.X, thickness, h, supportDraft)
	if err != nil {
		return kernel.Solid{}, err
	}
	yRib, err := kernel.DraftedBlock(thickness, full.Y, h, supportDraft)
	if err != nil {
		return kernel.Solid{}, err
	}

	stab, err := stabSupport(std, h, thickness/6)
	if err != nil {
		return kernel.Solid{}, err
	}
	gx := std.Gap(s.Size.Units.X)
	gy := std.Gap(s.Size.Units.Y)
	out := stem.Union(xRib, yRib)
	if gx != 0 {
		pair := stab.Union(yRib)
		out = out.Union(pair.Translate(vec.Vec3{X: gx}), pair.Translate(vec.Vec3{X: -gx}))
	}
	if gy != 0 {
		pair := stab.Union(xRib)
		out = out.Union(pair.Translate(vec.Vec3{Y: gy}), pair.Translate(vec.Vec3{Y: -gy}))
	}
	return out, nil
}
