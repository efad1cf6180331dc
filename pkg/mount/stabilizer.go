package mount

import (
	"math"

	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// stabSupportMargin is the wall around a stabilizer stem support.
const stabSupportMargin = 0.2

// StabLen returns the wire span for a key of the given units: the pitch
// multiple between POS stems, or twice the stabilizer gap otherwise.
func StabLen(units, pitch float64, mx, pos bool) float64 {
	if pos {
		return math.Floor(units-1) * pitch
	}
	var std Standard = Choc{}
	if mx {
		std = MX{}
	}
	return 2 * std.Gap(units)
}

// MinNegU returns the smallest key width, in units, whose negative still
// fits a stabilizer at gap.
func MinNegU(gap, pitch float64) float64 {
	q := pitch / 4
	return math.Max(1, math.Floor(gap/q)/4+0.75)
}

// CanStabilize reports whether a key of the given units takes stabilizers.
func CanStabilize(units vec.Vec2) bool {
	return units.X >= 2 || units.Y >= 2
}

// StabPoints returns the stabilizer stem positions for s: a pair on X, a
// pair on Y, or both. It is empty when neither axis needs a stabilizer.
func StabPoints(s spec.KeySpec) []vec.Vec2 {
	std := For(s.Mount)
	gx := std.Gap(s.Size.Units.X)
	gy := std.Gap(s.Size.Units.Y)

	var pts []vec.Vec2
	if gx != 0 {
		pts = append(pts, vec.Vec2{X: gx}, vec.Vec2{X: -gx})
	}
	if gy != 0 {
		pts = append(pts, vec.Vec2{Y: gy}, vec.Vec2{Y: -gy})
	}
	return pts
}

// MakeStabilizer places stabilizer stems at every stab point of s.
func MakeStabilizer(s spec.KeySpec) (kernel.Solid, error) {
	stem, err := For(s.Mount).MakeStabStem()
	if err != nil {
		return kernel.Solid{}, err
	}
	return placeAll(stem, StabPoints(s)), nil
}

// MakeStabilizerSupport places stabilizer support bosses at every stab
// point of s.
func MakeStabilizerSupport(s spec.KeySpec) (kernel.Solid, error) {
	supp, err := stabSupport(For(s.Mount), s.Body.Height, stabSupportMargin)
	if err != nil {
		return kernel.Solid{}, err
	}
	return placeAll(supp, StabPoints(s)), nil
}

func stabSupport(std Standard, height, margin float64) (kernel.Solid, error) {
	stem := DefaultMXStem()
	stem.Long = std.StabSupportLong()
	return mxSupport(stem, height, margin)
}

// POSPoints returns a floor(units.x) × floor(units.y) grid at the unit
// pitch, centred on the origin.
func POSPoints(size spec.KeySizeSpec) []vec.Vec2 {
	nx := int(math.Floor(size.Units.X))
	ny := int(math.Floor(size.Units.Y))
	start := vec.Vec2{
		X: -float64(nx-1) * size.Spacing.X / 2,
		Y: -float64(ny-1) * size.Spacing.Y / 2,
	}
	pts := make([]vec.Vec2, 0, max(0, nx*ny))
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			pts = append(pts, start.Add(vec.Vec2{X: float64(x), Y: float64(y)}.Mul(size.Spacing)))
		}
	}
	return pts
}

// MakePOSStems places stem at every POS point of size.
func MakePOSStems(stem kernel.Solid, size spec.KeySizeSpec) kernel.Solid {
	return placeAll(stem, POSPoints(size))
}

func placeAll(s kernel.Solid, pts []vec.Vec2) kernel.Solid {
	var out kernel.Solid
	for _, p := range pts {
		out = out.Union(s.Translate(p.ToVec3(0)))
	}
	return out
}
