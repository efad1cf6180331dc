package body

import (
	"math"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// coverageTolerance is the largest residual height a probe may leave above
// the dish.
const coverageTolerance = 1e-6

// TopFaceProbes returns the corners and edge midpoints of the core's top
// face in world coordinates. Corners sit on their fillet arcs.
func TopFaceProbes(b spec.KeyBody, core vec.Vec2) []vec.Vec3 {
	b = b.Clamp()
	top := b.TopSize(core)
	hx, hy := top.X/2, top.Y/2
	r := math.Min(top.Z, math.Min(hx, hy))
	inset := r * (1 - 1/math.Sqrt2)

	local := []vec.Vec2{
		{X: hx - inset, Y: hy - inset},
		{X: -hx + inset, Y: hy - inset},
		{X: hx - inset, Y: -hy + inset},
		{X: -hx + inset, Y: -hy + inset},
		{X: hx},
		{X: -hx},
		{Y: hy},
		{Y: -hy},
	}
	center := TopCenter(b)
	probes := make([]vec.Vec3, len(local))
	for i, p := range local {
		probes[i] = p.ToVec3(0).RotateX(b.Angle).Add(center)
	}
	return probes
}

// CheckScoopCoverage verifies that every top-face probe of the core lies
// inside the placed scoop cutter. A dish that leaves any part of the top
// face standing yields a SCOOP_COVERAGE error naming the first such point.
func CheckScoopCoverage(b spec.KeyBody, core vec.Vec2) error {
	s, err := MakeScoop(b, core, ScoopOptions{})
	if err != nil {
		return err
	}
	cutter := s.At(ScoopAnchor(b.Clamp()))
	for _, p := range TopFaceProbes(b, core) {
		if d := cutter.Distance(p); d > coverageTolerance {
			return errors.New(errors.ErrCodeScoopCoverage,
				"scoop misses the top face at %v (residual %.3fmm)", p, d)
		}
	}
	return nil
}
