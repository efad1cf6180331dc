package kernel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Box returns a box of the given size centred on the origin, with edges
// rounded by round.
func Box(size vec.Vec3, round float64) (Solid, error) {
	s, err := sdf.Box3D(toV3(size), round)
	if err != nil {
		return Solid{}, errors.Wrap(errors.ErrCodeGeometry, err, "box %v", size)
	}
	return Solid{s}, nil
}

// Cylinder returns a Z-aligned cylinder spanning z0..z1 with its bottom
// and top edges rounded by round.
func Cylinder(r, z0, z1, round float64) (Solid, error) {
	h := z1 - z0
	s, err := sdf.Cylinder3D(h, r, round)
	if err != nil {
		return Solid{}, errors.Wrap(errors.ErrCodeGeometry, err, "cylinder r=%.3f h=%.3f", r, h)
	}
	return Solid{s}.Translate(vec.Vec3{Z: z0 + h/2}), nil
}

// Sphere returns a sphere of radius r centred at c.
func Sphere(r float64, c vec.Vec3) (Solid, error) {
	s, err := sdf.Sphere3D(r)
	if err != nil {
		return Solid{}, errors.Wrap(errors.ErrCodeGeometry, err, "sphere r=%.3f", r)
	}
	return Solid{s}.Translate(c), nil
}

// Extrude sweeps p straight up from z0 to z1.
func Extrude(p Profile, z0, z1 float64) (Solid, error) {
	h := z1 - z0
	if h <= 0 {
		return Solid{}, errors.New(errors.ErrCodeGeometry, "extrusion height must be positive, got %.3f", h)
	}
	return Solid{sdf.Extrude3D(p.sdf, h)}.Translate(vec.Vec3{Z: z0 + h/2}), nil
}

// Taper lofts linearly from bottom at z0 to top at z1.
func Taper(bottom, top Profile, z0, z1 float64) (Solid, error) {
	h := z1 - z0
	if h <= 0 {
		return Solid{}, errors.New(errors.ErrCodeGeometry, "loft height must be positive, got %.3f", h)
	}
	s, err := sdf.Loft3D(bottom.sdf, top.sdf, h, 0)
	if err != nil {
		return Solid{}, errors.Wrap(errors.ErrCodeGeometry, err, "loft")
	}
	return Solid{s}.Translate(vec.Vec3{Z: z0 + h/2}), nil
}

// Revolve spins p about the Z axis; the profile's X is the radius and its Y
// becomes Z.
func Revolve(p Profile) (Solid, error) {
	s, err := sdf.Revolve3D(p.sdf)
	if err != nil {
		return Solid{}, errors.Wrap(errors.ErrCodeGeometry, err, "revolve")
	}
	return Solid{s}, nil
}

// =============================================================================
// Drafted shapes
// =============================================================================

// draftGrowth is how far a wall drafted by deg degrees moves outward over h.
func draftGrowth(h, deg float64) float64 {
	return h * math.Tan(vec.Radians(deg))
}

// DraftedCylinder is a cylinder of radius r from 0 to h whose wall leans
// outward by draft degrees.
func DraftedCylinder(r, h, draft float64) (Solid, error) {
	bottom, err := Circle(r)
	if err != nil {
		return Solid{}, err
	}
	top, err := Circle(r + draftGrowth(h, draft))
	if err != nil {
		return Solid{}, err
	}
	return Taper(bottom, top, 0, h)
}

// DraftedBlock is an x × y block from 0 to h whose walls lean outward by
// draft degrees.
func DraftedBlock(x, y, h, draft float64) (Solid, error) {
	return RoundDraftedBlock(x, y, h, 0, draft)
}

// RoundDraftedBlock is [DraftedBlock] with vertical edges filleted by r.
func RoundDraftedBlock(x, y, h, r, draft float64) (Solid, error) {
	g := 2 * draftGrowth(h, draft)
	bottom := RoundRect(vec.Vec2{X: x, Y: y}, r)
	top := RoundRect(vec.Vec2{X: x + g, Y: y + g}, r)
	return Taper(bottom, top, 0, h)
}

// Capsule is the set of points within r of the segment a–b.
func Capsule(a, b vec.Vec3, r float64) (Solid, error) {
	if r <= 0 {
		return Solid{}, errors.New(errors.ErrCodeGeometry, "capsule radius must be positive, got %.3f", r)
	}
	lo := vec.Vec3{X: math.Min(a.X, b.X) - r, Y: math.Min(a.Y, b.Y) - r, Z: math.Min(a.Z, b.Z) - r}
	hi := vec.Vec3{X: math.Max(a.X, b.X) + r, Y: math.Max(a.Y, b.Y) + r, Z: math.Max(a.Z, b.Z) + r}
	return Solid{&capsuleSDF{a: a, ab: b.Sub(a), r: r, bb: box3(Bounds{Min: lo, Max: hi})}}, nil
}

type capsuleSDF struct {
	a, ab vec.Vec3
	r     float64
	bb    sdf.Box3
}

var _ sdf.SDF3 = (*capsuleSDF)(nil)

func (c *capsuleSDF) Evaluate(p v3.Vec) float64 {
	ap := fromV3(p).Sub(c.a)
	t := 0.0
	if l2 := c.ab.Dot(c.ab); l2 > 0 {
		t = math.Max(0, math.Min(1, ap.Dot(c.ab)/l2))
	}
	return ap.Sub(c.ab.Scale(t)).Mag() - c.r
}

func (c *capsuleSDF) BoundingBox() sdf.Box3 { return c.bb }
