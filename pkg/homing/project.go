package homing

import (
	"math"

	"github.com/matzehuels/keyforge/pkg/body"
	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// AngleToDirection returns the unit projection direction for a scoop
// tilted by angle degrees: (0, sin(90-angle), -tan(90-angle)), normalized.
func AngleToDirection(angle float64) vec.Vec3 {
	r := vec.Radians(90 - angle)
	return vec.Vec3{Y: math.Sin(r), Z: -math.Tan(r)}.Normalize()
}

// ProjectHighest returns the highest point where the line through point
// along dir meets solid.
func ProjectHighest(solid kernel.Solid, point, dir vec.Vec3) (vec.Vec3, error) {
	if dir.Mag() == 0 {
		return vec.Vec3{}, errors.New(errors.ErrCodeInvalidInput, "projection direction is zero")
	}
	dir = dir.Normalize()
	if dir.Z > 0 {
		dir = dir.Scale(-1)
	}
	if dir.Z == 0 {
		return vec.Vec3{}, errors.New(errors.ErrCodeInvalidInput, "projection direction %v is horizontal", dir)
	}

	bb := solid.Bounds()
	above := (bb.Max.Z + 1 - point.Z) / -dir.Z
	below := (point.Z - bb.Min.Z + 1) / -dir.Z
	start := point.Sub(dir.Scale(above))
	hit, ok := kernel.Raycast(solid, start, dir, above+below)
	if !ok {
		return vec.Vec3{}, errors.New(errors.ErrCodeNoSurface, "no surface along %v through %v", dir, point)
	}
	return hit, nil
}

// centerStep is the spacing of centreline probes in CapCenter.
const centerStep = 0.25

// onScoopTolerance is how close a probe hit must be to the scoop surface to
// count as part of the sculpted top face.
const onScoopTolerance = 0.02

// CapCenter returns the centre of the sculpted top face, moved by the mark
// offset. It walks the x = 0 centreline in the scoop frame and averages the
// front and back points where the surface still follows the scoop. It
// fails with NO_SURFACE when no centreline probe lands on the scoop.
func CapCenter(solid kernel.Solid, s spec.KeySpec) (vec.Vec3, error) {
	b := s.Body.Clamp()
	core := s.CoreSize()
	top := b.TopSize(core)

	front, back, ok := scoopRim(solid, b, core)
	if !ok {
		return vec.Vec3{}, errors.New(errors.ErrCodeNoSurface, "no scooped top face along the centreline of %v", body.TopCenter(b))
	}
	center := front.Add(back).Scale(0.5)

	off := vec.Vec3{X: top.X * s.Mark.Offset.X, Y: top.Y * s.Mark.Offset.Y}.RotateX(b.Angle)
	return center.Add(off), nil
}

func scoopRim(solid kernel.Solid, b spec.KeyBody, core vec.Vec2) (front, back vec.Vec3, ok bool) {
	scoop, err := body.MakeScoop(b, core, body.ScoopOptions{})
	if err != nil {
		return front, back, false
	}
	anchor := body.ScoopAnchor(b)
	cutter := scoop.At(anchor)

	down := vec.Vec3{Z: -1}.RotateX(b.Angle)
	reach := b.TopSize(core).Y/2 + b.Depth
	lift := 2*b.Depth + 2
	for y := -reach; y <= reach; y += centerStep {
		from := vec.Vec3{Y: y, Z: lift}.RotateX(b.Angle).Add(anchor)
		hit, found := kernel.Raycast(solid, from, down, 2*lift+b.Height)
		if !found || math.Abs(cutter.Distance(hit)) > onScoopTolerance {
			continue
		}
		if !ok {
			front, ok = hit, true
		}
		back = hit
	}
	return front, back, ok
}
