// Package layout arranges a generated key set as it would sit on a keyboard.
//
// Keys are placed row by row in the order they were generated: each key in
// a row sits directly right of the previous one, and rows stack by their
// row number with R4 nearest the origin. The placement can be assembled into
// one solid or drawn as a printable PDF sheet.
package layout

import (
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/profile"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// baseRow is the row placed at the origin.
const baseRow = 4

// Placement is a key and the centre of its footprint on the board, in mm.
type Placement struct {
	Label profile.Label
	Pos   vec.Vec2
}

// Place positions labels in order. Within a row, a key's centre sits half
// the previous key's width plus half its own width right of the previous
// centre; the first key of a row starts half its width from x = 0.
func Place(labels []profile.Label) []Placement {
	type cursor struct{ x, lastUnitX float64 }
	rows := make(map[string]*cursor)

	out := make([]Placement, 0, len(labels))
	for _, l := range labels {
		c, ok := rows[l.Row]
		if !ok {
			c = &cursor{}
			rows[l.Row] = c
		}
		u := l.Units()
		x := spec.UnitPitch/2*(c.lastUnitX+u.X) + c.x
		y := spec.UnitPitch/2*u.Y + spec.UnitPitch*float64(baseRow-l.RowIndex())
		c.x, c.lastUnitX = x, u.X
		out = append(out, Placement{Label: l, Pos: vec.Vec2{X: x, Y: y}})
	}
	return out
}

// Bounds returns the extent of the placed footprints.
func Bounds(ps []Placement) (lo, hi vec.Vec2) {
	for i, p := range ps {
		half := p.Label.Units().Scale(spec.UnitPitch / 2)
		a, b := p.Pos.Sub(half), p.Pos.Add(half)
		if i == 0 {
			lo, hi = a, b
			continue
		}
		lo = vec.Vec2{X: min(lo.X, a.X), Y: min(lo.Y, a.Y)}
		hi = hi.Max(b)
	}
	return lo, hi
}

// Assemble unions every solid at its placement. solids is keyed by label
// string; placements without a solid are skipped.
func Assemble(ps []Placement, solids map[string]kernel.Solid) kernel.Solid {
	var out kernel.Solid
	for _, p := range ps {
		s, ok := solids[p.Label.String()]
		if !ok || s.IsEmpty() {
			continue
		}
		out = out.Union(s.Translate(p.Pos.ToVec3(0)))
	}
	return out
}
