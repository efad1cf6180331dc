package kernel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"

	"github.com/matzehuels/keyforge/pkg/vec"
)

// surfaceTolerance is how close to zero the field must be for a raycast
// result to count as a hit.
const surfaceTolerance = 1e-2

// Raycast marches from origin along dir and returns the first surface point
// within maxDist. The bool is false when the ray escapes.
//
// Steps are under-relaxed to 0.9 of the field value with no sigmoid scaling,
// so the march converges onto the surface instead of overshooting it.
func Raycast(s Solid, origin, dir vec.Vec3, maxDist float64) (vec.Vec3, bool) {
	if s.IsEmpty() || dir.Mag() == 0 {
		return vec.Vec3{}, false
	}
	dir = dir.Normalize()
	hit, t, _ := sdf.Raycast3(s.sdf, toV3(origin), toV3(dir), 0, 0.9, 1e-4, maxDist, 4000)
	if t < 0 || t > maxDist {
		return vec.Vec3{}, false
	}
	p := fromV3(hit)
	if math.Abs(s.Distance(p)) > surfaceTolerance {
		return vec.Vec3{}, false
	}
	return p, true
}

// Normal estimates the outward surface normal at p by central differences.
func Normal(s Solid, p vec.Vec3) vec.Vec3 {
	const e = 1e-3
	dx := s.Distance(p.Add(vec.Vec3{X: e})) - s.Distance(p.Sub(vec.Vec3{X: e}))
	dy := s.Distance(p.Add(vec.Vec3{Y: e})) - s.Distance(p.Sub(vec.Vec3{Y: e}))
	dz := s.Distance(p.Add(vec.Vec3{Z: e})) - s.Distance(p.Sub(vec.Vec3{Z: e}))
	return vec.Vec3{X: dx, Y: dy, Z: dz}.Normalize()
}
