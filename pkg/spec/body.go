package spec

import (
	"math"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Clamp limits for body parameters.
const (
	MaxCurve = 50.0
	MaxAngle = 20.0
)

// KeyBody holds the sculpting parameters of a keycap.
type KeyBody struct {
	Base   vec.Vec2 `json:"base" toml:"base"`     // bottom footprint (mm)
	Top    vec.Vec2 `json:"top" toml:"top"`       // top footprint (mm)
	Height float64  `json:"height" toml:"height"` // height of the top section (mm)
	Curve  float64  `json:"curve" toml:"curve"`   // wall bow, percent
	Corner vec.Vec2 `json:"corner" toml:"corner"` // x = top fillet radius, y = base fillet radius
	Edge   vec.Vec2 `json:"edge" toml:"edge"`     // x = top rim fillet, y = bottom chamfer
	Offset vec.Vec2 `json:"offset" toml:"offset"` // top section stagger
	Angle  float64  `json:"angle" toml:"angle"`   // scoop tilt about X (degrees)
	Depth  float64  `json:"depth" toml:"depth"`   // scoop depth (mm)
	Ratio  float64  `json:"ratio" toml:"ratio"`   // 1 spherical, >1 cylindrical along Y, <1 along X
	Convex bool     `json:"convex" toml:"convex"` // raised dome instead of a dish
}

// DefaultBody returns the base body parameters.
func DefaultBody() KeyBody {
	return KeyBody{
		Base:   vec.Vec2{X: 18.1, Y: 18.1},
		Top:    vec.Vec2{X: 12.4, Y: 14.4},
		Height: 6.5,
		Corner: vec.Vec2{X: 4.0, Y: 1.5},
		Edge:   vec.Vec2{X: 0.3, Y: 0.3},
		Angle:  9,
		Depth:  2.5,
		Ratio:  1.0,
	}
}

// Clamp returns b with angle and curve limited to their documented ranges.
func (b KeyBody) Clamp() KeyBody {
	b.Curve = clamp(b.Curve, -MaxCurve, MaxCurve)
	b.Angle = clamp(b.Angle, -MaxAngle, MaxAngle)
	return b
}

// WithAngle returns a copy with the scoop angle replaced and clamped.
func (b KeyBody) WithAngle(a float64) KeyBody {
	b.Angle = a
	return b.Clamp()
}

// WithCurve returns a copy with the wall curve replaced and clamped.
func (b KeyBody) WithCurve(c float64) KeyBody {
	b.Curve = c
	return b.Clamp()
}

// WithHeight returns a copy with the height replaced.
func (b KeyBody) WithHeight(h float64) KeyBody {
	b.Height = h
	return b
}

// Shrink returns a copy inset by thickness on every side: footprints lose
// 2*thickness and corner radii lose thickness, floored at 0.01.
func (b KeyBody) Shrink(thickness float64) KeyBody {
	b.Base = b.Base.AddScalar(-2 * thickness)
	b.Top = b.Top.AddScalar(-2 * thickness)
	b.Corner = b.Corner.AddScalar(-thickness).Max(vec.Splat2(0.01))
	return b
}

// TopSize returns the top section footprint; Z carries the top corner radius.
func (b KeyBody) TopSize(core vec.Vec2) vec.Vec3 {
	return b.Top.Add(core).ToVec3(b.Corner.X)
}

// BaseSize returns the base section footprint; Z carries the base corner radius.
func (b KeyBody) BaseSize(core vec.Vec2) vec.Vec3 {
	return b.Base.Add(core).ToVec3(b.Corner.Y)
}

// MidSize returns the loft midpoint footprint. Curve bows the midpoint
// outward (positive) or inward (negative) relative to straight walls.
func (b KeyBody) MidSize(core vec.Vec2) vec.Vec3 {
	top, bot := b.TopSize(core), b.BaseSize(core)
	k := 1 + b.Clamp().Curve/100
	return vec.Vec3{
		X: (bot.X-top.X)/2*k + top.X,
		Y: (bot.Y-top.Y)/2*k + top.Y,
		Z: (bot.Z + top.Z) / 2,
	}
}

// AABB returns the body's axis-aligned extent: the base footprint and the
// height reached by the tilted top section.
func (b KeyBody) AABB(core vec.Vec2) vec.Vec3 {
	bot := b.BaseSize(core)
	top := b.TopSize(core)
	rise := math.Abs(top.Y / 2 * math.Sin(vec.Radians(b.Clamp().Angle)))
	return vec.Vec3{X: bot.X, Y: bot.Y, Z: b.Height + rise}
}

// Validate rejects bodies the geometry builders cannot realise.
func (b KeyBody) Validate() error {
	checks := []struct {
		field string
		v     float64
	}{
		{"body.base.x", b.Base.X},
		{"body.base.y", b.Base.Y},
		{"body.top.x", b.Top.X},
		{"body.top.y", b.Top.Y},
		{"body.height", b.Height},
		{"body.ratio", b.Ratio},
	}
	for _, c := range checks {
		if err := errors.ValidatePositive(c.field, c.v); err != nil {
			return err
		}
	}
	if err := errors.ValidatePositive("body.depth", b.Depth); err != nil {
		return err
	}
	if b.Depth >= b.Height {
		return errors.New(errors.ErrCodeInvalidSpec, "scoop depth %.2f must be less than body height %.2f", b.Depth, b.Height)
	}
	for _, v := range []float64{b.Curve, b.Angle, b.Offset.X, b.Offset.Y, b.Edge.X, b.Edge.Y, b.Corner.X, b.Corner.Y} {
		if err := errors.ValidateFinite("body", v); err != nil {
			return err
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
