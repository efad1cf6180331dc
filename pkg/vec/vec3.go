package vec

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component vector.
type Vec3 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	Z float64 `json:"z" toml:"z"`
}

// WithX returns a copy of v with X replaced.
func (v Vec3) WithX(x float64) Vec3 {
	v.X = x
	return v
}

// WithY returns a copy of v with Y replaced.
func (v Vec3) WithY(y float64) Vec3 {
	v.Y = y
	return v
}

// WithZ returns a copy of v with Z replaced.
func (v Vec3) WithZ(z float64) Vec3 {
	v.Z = z
	return v
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Div(o Vec3) Vec3 { return Vec3{v.X / o.X, v.Y / o.Y, v.Z / o.Z} }

// AddXY adds a 2D offset to the X and Y components, leaving Z alone.
func (v Vec3) AddXY(o Vec2) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z} }

// Scale multiplies every component by s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// DivScalar divides every component by s.
func (v Vec3) DivScalar(s float64) Vec3 { return Vec3{v.X / s, v.Y / s, v.Z / s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Mag returns the Euclidean length of v.
func (v Vec3) Mag() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	m := v.Mag()
	if m < 1e-12 {
		return v
	}
	return v.DivScalar(m)
}

// RotateX rotates v about the X axis by deg degrees.
func (v Vec3) RotateX(deg float64) Vec3 {
	s, c := math.Sincos(Radians(deg))
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

// RotateY rotates v about the Y axis by deg degrees.
func (v Vec3) RotateY(deg float64) Vec3 {
	s, c := math.Sincos(Radians(deg))
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

// RotateZ rotates v about the Z axis by deg degrees.
func (v Vec3) RotateZ(deg float64) Vec3 {
	s, c := math.Sincos(Radians(deg))
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}

// ToVec2 drops the Z component.
func (v Vec3) ToVec2() Vec2 { return Vec2{v.X, v.Y} }

func (v Vec3) String() string { return fmt.Sprintf("Vec3(%g,%g,%g)", v.X, v.Y, v.Z) }
