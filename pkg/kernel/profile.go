package kernel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Profile is a closed 2D region used for extrusion, lofting, revolution, and
// sweeping.
type Profile struct {
	sdf sdf.SDF2
}

// RoundRect returns a size.X × size.Y rectangle centred on the origin with
// corners filleted by r. The radius is limited to half the shorter side.
func RoundRect(size vec.Vec2, r float64) Profile {
	r = math.Max(0, math.Min(r, math.Min(size.X, size.Y)/2))
	return Profile{sdf.Box2D(v2.Vec{X: size.X, Y: size.Y}, r)}
}

// Circle returns a circle of radius r centred on the origin.
func Circle(r float64) (Profile, error) {
	s, err := sdf.Circle2D(r)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeGeometry, err, "circle r=%.3f", r)
	}
	return Profile{s}, nil
}

// Polygon returns the closed polygon through pts.
func Polygon(pts []vec.Vec2) (Profile, error) {
	if len(pts) < 3 {
		return Profile{}, errors.New(errors.ErrCodeGeometry, "polygon needs at least 3 points, got %d", len(pts))
	}
	vs := make([]v2.Vec, len(pts))
	for i, p := range pts {
		vs[i] = v2.Vec{X: p.X, Y: p.Y}
	}
	s, err := sdf.Polygon2D(vs)
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeGeometry, err, "polygon")
	}
	return Profile{s}, nil
}

// Union joins two profiles. A positive r fillets the concave corners where
// they meet.
func (p Profile) Union(o Profile, r float64) Profile {
	u := sdf.Union2D(p.sdf, o.sdf)
	if r > 0 {
		if us, ok := u.(*sdf.UnionSDF2); ok {
			us.SetMin(sdf.PolyMin(r))
		}
	}
	return Profile{u}
}

// Cut removes o from p.
func (p Profile) Cut(o Profile) Profile {
	return Profile{sdf.Difference2D(p.sdf, o.sdf)}
}

// Intersect keeps the area shared by p and o.
func (p Profile) Intersect(o Profile) Profile {
	return Profile{sdf.Intersect2D(p.sdf, o.sdf)}
}

// Translate moves p by d.
func (p Profile) Translate(d vec.Vec2) Profile {
	return Profile{sdf.Transform2D(p.sdf, sdf.Translate2d(v2.Vec{X: d.X, Y: d.Y}))}
}

// Distance evaluates the signed distance of p at q.
func (p Profile) Distance(q vec.Vec2) float64 {
	return p.sdf.Evaluate(v2.Vec{X: q.X, Y: q.Y})
}
