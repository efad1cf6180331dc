package body

import (
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// topLift is how far the top section sits above the nominal height so the
// scoop always has material to cut.
const topLift = 0.05

// MakeCore builds the loft through the base, mid, and top sections of b,
// enlarged by core. The mid section leans by half the body angle and the top
// section by the full angle.
func MakeCore(b spec.KeyBody, core vec.Vec2) (kernel.Solid, error) {
	b = b.Clamp()
	base, mid, top := b.BaseSize(core), b.MidSize(core), b.TopSize(core)
	return kernel.Loft3(
		kernel.Section{Size: base.ToVec2(), Radius: base.Z, Z: 0},
		kernel.Section{Size: mid.ToVec2(), Radius: mid.Z, Offset: vec.Vec2{Y: -b.Offset.Y / 2}, Z: b.Height / 2, Tilt: b.Angle / 2},
		kernel.Section{Size: top.ToVec2(), Radius: top.Z, Offset: vec.Vec2{Y: -b.Offset.Y}, Z: b.Height + topLift, Tilt: b.Angle},
	)
}

// TopCenter is the centre of the core's top section.
func TopCenter(b spec.KeyBody) vec.Vec3 {
	return vec.Vec3{Y: -b.Offset.Y, Z: b.Height + topLift}
}
