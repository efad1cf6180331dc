package kernel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// DishParams describes a swept-arc cutter.
//
// The profile is a three-point arc across X with half-width HalfWidth and
// sag |Sag|. It is swept along a second arc across Y with half-length
// HalfLength and the same sag. A positive Sag dips below Origin (a concave
// dish); a negative Sag bulges above it (a convex dome). Top closes the
// profile above the chord. The sweep plane is tilted by Angle degrees about
// X around Origin.
type DishParams struct {
	HalfWidth  float64
	HalfLength float64
	Sag        float64
	Top        float64
	Angle      float64
	Origin     vec.Vec3
}

// Dish builds the cutter described by p.
func Dish(p DishParams) (Solid, error) {
	s := math.Abs(p.Sag)
	if s == 0 || p.HalfWidth <= s || p.HalfLength <= s {
		return Solid{}, errors.New(errors.ErrCodeGeometry,
			"degenerate dish arc (half-width %.3f, half-length %.3f, sag %.3f)", p.HalfWidth, p.HalfLength, p.Sag)
	}
	if p.Top <= 0 {
		return Solid{}, errors.New(errors.ErrCodeGeometry, "dish top must be positive, got %.3f", p.Top)
	}

	d := &dishSDF{
		concave: p.Sag > 0,
		sag:     s,
		halfW:   p.HalfWidth,
		top:     p.Top,
		angle:   p.Angle,
		origin:  p.Origin,
		pathR:   (p.HalfLength*p.HalfLength + s*s) / (2 * s),
		profR:   (p.HalfWidth*p.HalfWidth + s*s) / (2 * s),
	}
	if d.concave {
		d.profC = d.profR - s
	} else {
		d.profC = s - d.profR
	}
	d.phiMax = math.Asin(math.Min(1, p.HalfLength/d.pathR))
	d.bb = d.bounds(p.HalfLength)
	return Solid{d}, nil
}

type dishSDF struct {
	concave      bool
	sag          float64
	halfW        float64
	top          float64
	angle        float64
	origin       vec.Vec3
	pathR        float64
	profR, profC float64
	phiMax       float64
	bb           sdf.Box3
}

var _ sdf.SDF3 = (*dishSDF)(nil)

func (d *dishSDF) Evaluate(p v3.Vec) float64 {
	q := fromV3(p).Sub(d.origin).RotateX(-d.angle)

	// (u, w) is the profile plane at this point along the path: u across the
	// key, w measured from the path arc towards the top of the profile.
	var r, w, phi float64
	if d.concave {
		r = math.Hypot(q.Y, q.Z-d.pathR)
		w = d.pathR - r
		phi = math.Atan2(q.Y, d.pathR-q.Z)
	} else {
		r = math.Hypot(q.Y, q.Z+d.pathR)
		w = r - d.pathR
		phi = math.Atan2(q.Y, q.Z+d.pathR)
	}
	u := q.X

	rect := math.Max(math.Abs(u)-d.halfW, math.Max(-w, w-d.top))
	disk := math.Hypot(u, w-d.profC) - d.profR
	var f float64
	if d.concave {
		f = math.Min(math.Max(disk, w), rect)
	} else {
		f = math.Max(rect, -math.Max(disk, -w))
	}
	return math.Max(f, (math.Abs(phi)-d.phiMax)*r)
}

func (d *dishSDF) BoundingBox() sdf.Box3 { return d.bb }

func (d *dishSDF) bounds(halfLength float64) sdf.Box3 {
	lo, hi := -d.sag, d.top+d.sag
	reach := halfLength + d.top + d.sag
	corners := []vec.Vec3{}
	for _, x := range []float64{-d.halfW, d.halfW} {
		for _, y := range []float64{-reach, reach} {
			for _, z := range []float64{lo, hi} {
				corners = append(corners, vec.Vec3{X: x, Y: y, Z: z})
			}
		}
	}
	minV := vec.Vec3{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	maxV := vec.Vec3{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for _, c := range corners {
		w := c.RotateX(d.angle).Add(d.origin)
		minV = vec.Vec3{X: math.Min(minV.X, w.X), Y: math.Min(minV.Y, w.Y), Z: math.Min(minV.Z, w.Z)}
		maxV = vec.Vec3{X: math.Max(maxV.X, w.X), Y: math.Max(maxV.Y, w.Y), Z: math.Max(maxV.Z, w.Z)}
	}
	return sdf.Box3{Min: toV3(minV), Max: toV3(maxV)}
}
