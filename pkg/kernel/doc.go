// Package kernel is the geometry engine boundary.
//
// Every other package builds keycap geometry through this package; it is the
// only place that imports github.com/deadsy/sdfx. Solids are signed distance
// fields: negative inside, positive outside, zero on the surface.
//
// # Capabilities
//
//   - Primitives: [Box], [Cylinder], [Sphere], 2D [Profile] extrusion,
//     tapered lofts between two profiles, and solids of revolution
//   - Sculpting: [Loft3] (three tilted rounded-rect sections), [Dish]
//     (a three-point arc swept along a perpendicular arc), and [RimSweep]
//     (a radial profile swept around a rounded-rect path)
//   - Booleans: [Solid.Union], [Solid.Cut], [Solid.Intersect], plus blended
//     variants that fillet the seam
//   - Queries: [Solid.Bounds], [Solid.Distance], [Raycast]
//   - Export: [WriteSTL] via marching cubes
//
// Construction failures are returned as GEOMETRY errors from
// github.com/matzehuels/keyforge/pkg/errors and are never retried.
package kernel
