package kernel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Section is one rounded-rect slice of a [Loft3], tilted about X through
// its centre.
type Section struct {
	Size   vec.Vec2 // full width and depth, measured in the tilted plane
	Radius float64  // corner fillet
	Offset vec.Vec2 // centre displacement in XY
	Z      float64  // height of the slice centre
	Tilt   float64  // degrees about X; positive raises the back edge
}

// Loft3 sweeps smoothly through three sections and caps the result with the
// plane of the top section.
//
// Size, radius, offset, and tilt are interpolated quadratically so the side
// walls pass exactly through every section. The bottom cap is flat at
// bottom.Z.
func Loft3(bottom, mid, top Section) (Solid, error) {
	if !(bottom.Z < mid.Z && mid.Z < top.Z) {
		return Solid{}, errors.New(errors.ErrCodeGeometry,
			"loft sections must be stacked bottom to top (%.3f, %.3f, %.3f)", bottom.Z, mid.Z, top.Z)
	}
	for _, s := range []Section{bottom, mid, top} {
		if s.Size.X <= 0 || s.Size.Y <= 0 {
			return Solid{}, errors.New(errors.ErrCodeGeometry, "loft section has non-positive size %v", s.Size)
		}
	}

	l := &loftSDF{sections: [3]Section{bottom, mid, top}, z0: bottom.Z, z1: top.Z}
	rad := vec.Radians(top.Tilt)
	l.normal = vec.Vec3{Y: -math.Sin(rad), Z: math.Cos(rad)}
	l.anchor = vec.Vec3{X: top.Offset.X, Y: top.Offset.Y, Z: top.Z}

	slope := 0.0
	h := top.Z - bottom.Z
	for _, pick := range []func(Section) float64{
		func(s Section) float64 { return s.Size.X / 2 },
		func(s Section) float64 { return s.Size.Y / 2 },
		func(s Section) float64 { return s.Offset.X },
		func(s Section) float64 { return s.Offset.Y },
	} {
		v0, v1, v2 := pick(bottom), pick(mid), pick(top)
		d0 := math.Abs(-3*v0+4*v1-v2) / h
		d1 := math.Abs(v0-4*v1+3*v2) / h
		slope = math.Max(slope, math.Max(d0, d1))
	}
	// stretching y into the tilted plane steepens the field by 1/cos
	lean := math.Cos(vec.Radians(quadAbsMax(bottom.Tilt, mid.Tilt, top.Tilt)))
	l.lipschitz = lean * lean / math.Sqrt(1+slope*slope)

	b, m, t := bottom, mid, top
	maxX := quadMax(b.Size.X/2, m.Size.X/2, t.Size.X/2) + quadAbsMax(b.Offset.X, m.Offset.X, t.Offset.X)
	maxY := quadMax(b.Size.Y/2, m.Size.Y/2, t.Size.Y/2) + quadAbsMax(b.Offset.Y, m.Offset.Y, t.Offset.Y)
	rise := maxY * math.Abs(math.Tan(rad))
	l.bb = sdf.Box3{
		Min: v3.Vec{X: -maxX, Y: -maxY, Z: bottom.Z},
		Max: v3.Vec{X: maxX, Y: maxY, Z: top.Z + rise},
	}
	return Solid{l}, nil
}

type loftSDF struct {
	sections  [3]Section
	z0, z1    float64
	normal    vec.Vec3
	anchor    vec.Vec3
	lipschitz float64
	bb        sdf.Box3
}

var _ sdf.SDF3 = (*loftSDF)(nil)

// quad is the Lagrange quadratic through a, b, c at t = 0, ½, 1.
func quad(a, b, c, t float64) float64 {
	return a*(1-t)*(1-2*t) + 4*b*t*(1-t) + c*t*(2*t-1)
}

// quadMax is the largest value quad takes for t in [0, 1].
func quadMax(a, b, c float64) float64 {
	v := math.Max(a, c)
	if den := 4*a - 8*b + 4*c; den != 0 {
		if t := (3*a - 4*b + c) / den; t > 0 && t < 1 {
			v = math.Max(v, quad(a, b, c, t))
		}
	}
	return v
}

func quadAbsMax(a, b, c float64) float64 {
	return math.Max(quadMax(a, b, c), quadMax(-a, -b, -c))
}

// sliceIterations refines which tilted slice a point lies on.
const sliceIterations = 4

// slice returns the parameter of the tilted slice through p, with that
// slice's centre y and tilt in radians.
func (l *loftSDF) slice(p v3.Vec) (t, oy, tilt float64) {
	b, m, s := l.sections[0], l.sections[1], l.sections[2]
	clamp := func(z float64) float64 { return math.Max(0, math.Min(1, (z-l.z0)/(l.z1-l.z0))) }

	t = clamp(p.Z)
	for i := 0; i < sliceIterations; i++ {
		oy = quad(b.Offset.Y, m.Offset.Y, s.Offset.Y, t)
		tilt = vec.Radians(quad(b.Tilt, m.Tilt, s.Tilt, t))
		t = clamp(p.Z - (p.Y-oy)*math.Tan(tilt))
	}
	oy = quad(b.Offset.Y, m.Offset.Y, s.Offset.Y, t)
	tilt = vec.Radians(quad(b.Tilt, m.Tilt, s.Tilt, t))
	return t, oy, tilt
}

func (l *loftSDF) Evaluate(p v3.Vec) float64 {
	t, oy, tilt := l.slice(p)
	b, m, s := l.sections[0], l.sections[1], l.sections[2]

	hx := quad(b.Size.X, m.Size.X, s.Size.X, t) / 2
	hy := quad(b.Size.Y, m.Size.Y, s.Size.Y, t) / 2
	r := quad(b.Radius, m.Radius, s.Radius, t)
	r = math.Max(0, math.Min(r, math.Min(hx, hy)))
	ox := quad(b.Offset.X, m.Offset.X, s.Offset.X, t)

	// distance along the tilted slice, not across the horizontal
	ly := (p.Y - oy) / math.Cos(tilt)
	side := roundRectDistance(p.X-ox, ly, hx, hy, r) * l.lipschitz
	floor := l.z0 - p.Z
	lid := fromV3(p).Sub(l.anchor).Dot(l.normal)
	return math.Max(side, math.Max(floor, lid))
}

func (l *loftSDF) BoundingBox() sdf.Box3 { return l.bb }

// roundRectDistance is the exact 2D distance to a rectangle of half extents
// hx, hy with corner radius r.
func roundRectDistance(x, y, hx, hy, r float64) float64 {
	qx := math.Abs(x) - hx + r
	qy := math.Abs(y) - hy + r
	outside := math.Hypot(math.Max(qx, 0), math.Max(qy, 0))
	inside := math.Min(math.Max(qx, qy), 0)
	return outside + inside - r
}
