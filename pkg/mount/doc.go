// Package mount builds the switch-facing geometry of a keycap: stems,
// the cavity (negative) that clears the switch housing, the hollowing cut
// under the top surface, and stabilizer stems.
//
// Two standards are supported through the [Standard] interface:
//
//   - [MX]: Cherry MX-style cross stems
//   - [Choc]: Kailh Choc v1 low-profile twin-lobe stems
//
// Stems hang down from z = padding; callers lift them to the skirt height
// returned by [Standard.SkirtHeight].
package mount
