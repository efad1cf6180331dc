package body

import (
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Blank is a core with its scoop already placed, ready to be cut.
type Blank struct {
	Core  kernel.Solid
	Scoop kernel.Solid
}

// MakeBlank builds the core and the scoop positioned on top of it. It fails
// with SCOOP_COVERAGE if the scoop would leave part of the top face uncut.
func MakeBlank(b spec.KeyBody, core vec.Vec2) (Blank, error) {
	if err := CheckScoopCoverage(b, core); err != nil {
		return Blank{}, err
	}
	c, err := MakeCore(b, core)
	if err != nil {
		return Blank{}, err
	}
	s, err := MakeScoop(b, core, ScoopOptions{})
	if err != nil {
		return Blank{}, err
	}
	return Blank{Core: c, Scoop: s.At(ScoopAnchor(b))}, nil
}

// ApplyEdgeFinish cuts the scoop from the core with the rim filleted by
// b.Edge.X, then chamfers the bottom edge by b.Edge.Y.
func ApplyEdgeFinish(blank Blank, b spec.KeyBody, size spec.KeySizeSpec) (kernel.Solid, error) {
	shell := blank.Core.BlendCut(blank.Scoop, b.Edge.X)

	cut, err := bottomChamfer(b, size)
	if err != nil {
		return kernel.Solid{}, err
	}
	return shell.Cut(cut), nil
}

// bottomChamfer is a wedge swept along the base outline. Its section, in
// (outward distance, z), is the triangle (rimW,0), (rimW,rimH), (-edge.y,0).
func bottomChamfer(b spec.KeyBody, size spec.KeySizeSpec) (kernel.Solid, error) {
	base := b.BaseSize(size.CoreSize())
	full := size.FullSize()
	rimW := (full.Y - base.Y) / 2
	rimH := rimW + b.Edge.Y

	section, err := kernel.Polygon([]vec.Vec2{
		{X: rimW, Y: 0},
		{X: rimW, Y: rimH},
		{X: -b.Edge.Y, Y: 0},
	})
	if err != nil {
		return kernel.Solid{}, err
	}
	path := kernel.RoundRect(base.ToVec2(), base.Z)
	return kernel.RimSweep(path, section), nil
}
