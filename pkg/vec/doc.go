// Package vec provides the 2D and 3D vector value types used as the
// coordinate substrate for keycap geometry.
//
// Vectors are plain values: every operation returns a new vector and never
// modifies its receiver, so specs that embed vectors can be copied freely
// without aliasing.
//
// # Conventions
//
// Angles are in degrees. Rotations follow the right-hand rule, so a positive
// [Vec3.RotateX] turns +Y toward +Z.
//
// # Usage
//
//	top := vec.Vec2{X: 12.4, Y: 14.4}.Add(core)
//	p := vec.Vec3{Y: 7.2}.RotateX(body.Angle)
package vec
