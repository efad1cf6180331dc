package kernel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// RimSweep sweeps section around the outline of path.
//
// The section's X axis is the signed distance from the outline (positive
// outward) and its Y axis is Z. A section occupying X in [-0.3, 0] therefore
// produces a band 0.3 thick lining the inside of the outline.
func RimSweep(path, section Profile) Solid {
	pb := path.sdf.BoundingBox()
	sb := section.sdf.BoundingBox()
	grow := math.Max(0, sb.Max.X)
	return Solid{&rimSweepSDF{
		path:    path.sdf,
		section: section.sdf,
		bb: sdf.Box3{
			Min: v3.Vec{X: pb.Min.X - grow, Y: pb.Min.Y - grow, Z: sb.Min.Y},
			Max: v3.Vec{X: pb.Max.X + grow, Y: pb.Max.Y + grow, Z: sb.Max.Y},
		},
	}}
}

type rimSweepSDF struct {
	path    sdf.SDF2
	section sdf.SDF2
	bb      sdf.Box3
}

var _ sdf.SDF3 = (*rimSweepSDF)(nil)

func (r *rimSweepSDF) Evaluate(p v3.Vec) float64 {
	d := r.path.Evaluate(v2.Vec{X: p.X, Y: p.Y})
	return r.section.Evaluate(v2.Vec{X: d, Y: p.Z})
}

func (r *rimSweepSDF) BoundingBox() sdf.Box3 { return r.bb }
