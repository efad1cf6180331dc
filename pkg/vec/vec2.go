package vec

import (
	"fmt"
	"math"
)

// Vec2 is a 2-component vector.
type Vec2 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Splat2 returns a Vec2 with both components set to v.
func Splat2(v float64) Vec2 {
	return Vec2{X: v, Y: v}
}

// WithX returns a copy of v with X replaced.
func (v Vec2) WithX(x float64) Vec2 {
	v.X = x
	return v
}

// WithY returns a copy of v with Y replaced.
func (v Vec2) WithY(y float64) Vec2 {
	v.Y = y
	return v
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

// AddScalar adds s to both components.
func (v Vec2) AddScalar(s float64) Vec2 { return Vec2{v.X + s, v.Y + s} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// DivScalar divides both components by s.
func (v Vec2) DivScalar(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }

// Max returns the componentwise maximum of v and o.
func (v Vec2) Max(o Vec2) Vec2 { return Vec2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)} }

// Floor returns v with both components rounded down.
func (v Vec2) Floor() Vec2 { return Vec2{math.Floor(v.X), math.Floor(v.Y)} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Mag returns the Euclidean length of v.
func (v Vec2) Mag() float64 { return math.Hypot(v.X, v.Y) }

// Angle returns the direction of v in degrees, in [0, 360).
func (v Vec2) Angle() float64 {
	a := math.Atan2(v.Y, v.X) * 180 / math.Pi
	if a < 0 {
		a += 360
	}
	return a
}

// Rotate returns v rotated counter-clockwise by deg degrees.
func (v Vec2) Rotate(deg float64) Vec2 {
	s, c := math.Sincos(Radians(deg))
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// ToVec3 lifts v into 3D with the given Z.
func (v Vec2) ToVec3(z float64) Vec3 { return Vec3{v.X, v.Y, z} }

func (v Vec2) String() string { return fmt.Sprintf("Vec2(%g,%g)", v.X, v.Y) }

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 { return rad * 180 / math.Pi }
