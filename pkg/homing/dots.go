package homing

import (
	"math"

	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// DotAngles returns the ring angles, in degrees relative to the top of the
// ring. An even count is rotated half a step so no dot sits at the top.
func DotAngles(count int) []float64 {
	if count <= 0 {
		return nil
	}
	start := float64((count%2+1)%2) * 180 / float64(count)
	angles := make([]float64, count)
	for i := range angles {
		angles[i] = start + float64(i)*360/float64(count)
	}
	return angles
}

// DotPoints returns the mark positions around center projected onto the
// surface of solid. A count of one or less yields the projected centre.
func DotPoints(solid kernel.Solid, center vec.Vec3, s spec.KeySpec) ([]vec.Vec3, error) {
	dir := AngleToDirection(s.Body.Angle)

	ring := []vec.Vec3{center}
	if s.Mark.Count > 1 {
		ring = ring[:0]
		for _, a := range DotAngles(s.Mark.Count) {
			r := vec.Radians(a + 90)
			p := vec.Vec3{X: s.Mark.Size * math.Cos(r), Y: s.Mark.Size * math.Sin(r)}
			ring = append(ring, p.RotateX(s.Body.Angle).Add(center))
		}
	}

	pts := make([]vec.Vec3, 0, len(ring))
	for _, p := range ring {
		hit, err := ProjectHighest(solid, p, dir)
		if err != nil {
			return nil, err
		}
		pts = append(pts, hit)
	}
	return pts, nil
}

// AddDots unions spheres of radius s.Mark.Depth at the dot positions.
func AddDots(solid kernel.Solid, s spec.KeySpec) (kernel.Solid, error) {
	center, err := CapCenter(solid, s)
	if err != nil {
		return kernel.Solid{}, err
	}
	pts, err := DotPoints(solid, center, s)
	if err != nil {
		return kernel.Solid{}, err
	}
	out := solid
	for _, p := range pts {
		dot, err := kernel.Sphere(s.Mark.Depth, p)
		if err != nil {
			return kernel.Solid{}, err
		}
		out = out.Union(dot)
	}
	return out, nil
}
