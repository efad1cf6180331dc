package body

import (
	"math"

	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// wireSamples is the number of segments used to sample each scoop arc.
const wireSamples = 32

// ScoopOptions tunes [MakeScoop].
type ScoopOptions struct {
	// PlaneOnly returns only the sampled arcs, without a solid.
	PlaneOnly bool
	// ExtraHeight raises the closed top of the profile.
	ExtraHeight float64
}

// Wire is the pair of arcs that define a scoop, in scoop coordinates.
type Wire struct {
	Profile []vec.Vec3 // arc across X in the XZ plane
	Path    []vec.Vec3 // arc along Y in the tilted YZ plane
}

// Scoop is the dish cutter at the scoop origin. Place it with [Scoop.At].
type Scoop struct {
	Solid  kernel.Solid
	Wire   Wire
	Params kernel.DishParams
}

// At returns the cutter moved to origin.
func (s Scoop) At(origin vec.Vec3) kernel.Solid {
	return s.Solid.Translate(origin)
}

// ScoopAnchor is where the scoop origin sits on a finished cap.
func ScoopAnchor(b spec.KeyBody) vec.Vec3 {
	return vec.Vec3{Y: -b.Offset.Y, Z: b.Height}
}

// ScoopExtent returns the half-width (X) and half-length (Y) of the dish.
// A ratio below 1 stretches the dish across X; above 1 along Y.
func ScoopExtent(b spec.KeyBody, core vec.Vec2) vec.Vec2 {
	bot := b.BaseSize(core)
	e := vec.Vec2{X: bot.X / 2, Y: bot.Y / 2}
	if b.Ratio < 1 {
		e.X /= b.Ratio
	} else {
		e.Y *= b.Ratio
	}
	return e
}

// MakeScoop builds the dish (or dome when b.Convex) that sculpts the top of
// a core of size core.
func MakeScoop(b spec.KeyBody, core vec.Vec2, opts ScoopOptions) (Scoop, error) {
	b = b.Clamp()
	ext := ScoopExtent(b, core)
	sag := b.Depth
	drop := 0.0
	if b.Convex {
		sag = -b.Depth
		drop = b.Depth
	}

	params := kernel.DishParams{
		HalfWidth:  ext.X,
		HalfLength: ext.Y,
		Sag:        sag,
		Top:        2*b.Depth + opts.ExtraHeight,
		Angle:      b.Angle,
		Origin:     vec.Vec3{Z: -drop},
	}
	s := Scoop{
		Params: params,
		Wire:   sampleWire(ext, sag, b.Angle, -drop),
	}
	if opts.PlaneOnly {
		return s, nil
	}
	solid, err := kernel.Dish(params)
	if err != nil {
		return Scoop{}, err
	}
	s.Solid = solid
	return s, nil
}

// sampleWire samples the profile arc through (-x,0), (0,-sag), (x,0) and the
// path arc through (-y,sag), (0,0), (y,sag), the latter tilted by angle.
func sampleWire(ext vec.Vec2, sag, angle, dz float64) Wire {
	w := Wire{
		Profile: make([]vec.Vec3, 0, wireSamples+1),
		Path:    make([]vec.Vec3, 0, wireSamples+1),
	}
	for i := 0; i <= wireSamples; i++ {
		t := 2*float64(i)/wireSamples - 1
		x := t * ext.X
		w.Profile = append(w.Profile, vec.Vec3{X: x, Z: -arcHeight(x, ext.X, sag) + dz})
		y := t * ext.Y
		p := vec.Vec3{Y: y, Z: arcHeight(y, ext.Y, sag)}.RotateX(angle)
		w.Path = append(w.Path, p.WithZ(p.Z+dz))
	}
	return w
}

// arcHeight is the signed height of the three-point arc with half-chord c
// and sag s at offset x from its centre: s at the chord ends, 0 at x = 0.
func arcHeight(x, c, s float64) float64 {
	if s == 0 {
		return 0
	}
	r := (c*c + s*s) / (2 * math.Abs(s))
	h := r - math.Sqrt(math.Max(0, r*r-x*x))
	return math.Copysign(h, s)
}
