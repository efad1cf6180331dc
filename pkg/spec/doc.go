// Package spec defines the keycap parameter model.
//
// A [KeySpec] aggregates the four parameter groups every builder consumes:
//   - [KeySizeSpec]: footprint in keyboard units and the unit pitch
//   - [KeyBody]: sculpting parameters (footprints, height, curve, scoop)
//   - [KeyMountSpec]: switch standard and stabilizer selection
//   - [KeyMarkSpec]: homing mark selection
//
// All types are plain values without pointers, maps, or slices, so assigning
// a spec copies it completely. Derivation never aliases: With* methods and
// [KeySpec.With] return new values and leave the receiver untouched.
//
// # Clamping
//
// Body angle and curve are clamped silently to [-MaxAngle, MaxAngle] and
// [-MaxCurve, MaxCurve]. Callers must not assume a requested value
// round-trips.
//
// # Usage
//
//	base := spec.Default()
//	wide := base.With(spec.Units(2.25, 1), spec.Angle(13))
package spec
