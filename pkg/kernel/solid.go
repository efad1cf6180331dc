package kernel

import (
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/keyforge/pkg/vec"
)

// Solid is an immutable 3D solid. The zero value is the empty solid.
type Solid struct {
	sdf sdf.SDF3
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min vec.Vec3
	Max vec.Vec3
}

// Size returns the extent of the box.
func (b Bounds) Size() vec.Vec3 { return b.Max.Sub(b.Min) }

// Center returns the midpoint of the box.
func (b Bounds) Center() vec.Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// IsEmpty reports whether s holds no geometry.
func (s Solid) IsEmpty() bool { return s.sdf == nil }

// Bounds returns the bounding box of s.
func (s Solid) Bounds() Bounds {
	if s.IsEmpty() {
		return Bounds{}
	}
	bb := s.sdf.BoundingBox()
	return Bounds{Min: fromV3(bb.Min), Max: fromV3(bb.Max)}
}

// Distance evaluates the signed distance at p. The empty solid is
// infinitely far from every point.
func (s Solid) Distance(p vec.Vec3) float64 {
	if s.IsEmpty() {
		return farAway
	}
	return s.sdf.Evaluate(toV3(p))
}

// Contains reports whether p lies strictly inside s.
func (s Solid) Contains(p vec.Vec3) bool {
	return s.Distance(p) < 0
}

// =============================================================================
// Booleans
// =============================================================================

// Union returns s joined with others. Empty operands are skipped.
func (s Solid) Union(others ...Solid) Solid {
	parts := make([]sdf.SDF3, 0, len(others)+1)
	for _, o := range append([]Solid{s}, others...) {
		if !o.IsEmpty() {
			parts = append(parts, o.sdf)
		}
	}
	switch len(parts) {
	case 0:
		return Solid{}
	case 1:
		return Solid{parts[0]}
	}
	return Solid{sdf.Union3D(parts...)}
}

// BlendUnion joins s and o with a fillet of radius r along the seam.
func (s Solid) BlendUnion(o Solid, r float64) Solid {
	if s.IsEmpty() || o.IsEmpty() || r <= 0 {
		return s.Union(o)
	}
	u := sdf.Union3D(s.sdf, o.sdf)
	if us, ok := u.(*sdf.UnionSDF3); ok {
		us.SetMin(sdf.PolyMin(r))
	}
	return Solid{u}
}

// Cut returns s with o removed.
func (s Solid) Cut(o Solid) Solid {
	if s.IsEmpty() || o.IsEmpty() {
		return s
	}
	return Solid{sdf.Difference3D(s.sdf, o.sdf)}
}

// BlendCut removes o from s and rounds the new edges by radius r.
func (s Solid) BlendCut(o Solid, r float64) Solid {
	if s.IsEmpty() || o.IsEmpty() || r <= 0 {
		return s.Cut(o)
	}
	d := sdf.Difference3D(s.sdf, o.sdf)
	if ds, ok := d.(*sdf.DifferenceSDF3); ok {
		ds.SetMax(sdf.PolyMax(r))
	}
	return Solid{d}
}

// Intersect returns the volume shared by s and o.
func (s Solid) Intersect(o Solid) Solid {
	if s.IsEmpty() || o.IsEmpty() {
		return Solid{}
	}
	return Solid{sdf.Intersect3D(s.sdf, o.sdf)}
}

// =============================================================================
// Transforms
// =============================================================================

// Translate moves s by d.
func (s Solid) Translate(d vec.Vec3) Solid {
	if s.IsEmpty() || d == (vec.Vec3{}) {
		return s
	}
	return Solid{sdf.Transform3D(s.sdf, sdf.Translate3d(toV3(d)))}
}

// RotateX rotates s about the X axis by deg degrees.
func (s Solid) RotateX(deg float64) Solid {
	if s.IsEmpty() || deg == 0 {
		return s
	}
	return Solid{sdf.Transform3D(s.sdf, sdf.RotateX(vec.Radians(deg)))}
}

// RotateZ rotates s about the Z axis by deg degrees.
func (s Solid) RotateZ(deg float64) Solid {
	if s.IsEmpty() || deg == 0 {
		return s
	}
	return Solid{sdf.Transform3D(s.sdf, sdf.RotateZ(vec.Radians(deg)))}
}

// PlaceOn translates s so its bounding box rests on z.
func (s Solid) PlaceOn(z float64) Solid {
	if s.IsEmpty() {
		return s
	}
	return s.Translate(vec.Vec3{Z: z - s.Bounds().Min.Z})
}

// =============================================================================
// Conversions
// =============================================================================

// farAway is the distance reported for the empty solid.
const farAway = 1e9

func toV3(v vec.Vec3) v3.Vec   { return v3.Vec{X: v.X, Y: v.Y, Z: v.Z} }
func fromV3(v v3.Vec) vec.Vec3 { return vec.Vec3{X: v.X, Y: v.Y, Z: v.Z} }

func box3(b Bounds) sdf.Box3 {
	return sdf.Box3{Min: toV3(b.Min), Max: toV3(b.Max)}
}
