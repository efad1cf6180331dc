// Package homing adds tactile homing marks to a finished keycap surface.
//
// Marks are located by projecting points onto the sculpted top along the
// down-slope direction of the scoop ([AngleToDirection]). Two shapes are
// built: DOTS (a ring of spheres, or one centred dot) and WINDOWS (an inset
// ring with a raised bulb). Every other mark shape is rejected with an
// UNSUPPORTED error.
package homing
