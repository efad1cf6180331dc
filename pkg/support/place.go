package support

import (
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

const (
	// rimInset is how far leg contacts sit inside the base outline.
	rimInset = 1.0
	// kneeReach is the outward reach of every corner leg.
	kneeReach = 1.5
)

// Options tunes [Build].
type Options struct {
	Lift   float64 // gap between the cap bottom and the build plate
	Braced bool    // brace each shin toward the next leg
}

// DefaultOptions returns an unbraced DefaultLift.
func DefaultOptions() Options {
	return Options{Lift: DefaultLift}
}

// Legs places one leg under each corner of the skirt rim of s, leaning
// outward. Contacts are on the cap bottom at z = 0.
func Legs(s spec.KeySpec, lift float64) []Leg {
	base := s.Body.BaseSize(s.CoreSize())
	hx, hy := base.X/2-rimInset, base.Y/2-rimInset
	corners := []vec.Vec2{{X: hx, Y: hy}, {X: -hx, Y: hy}, {X: -hx, Y: -hy}, {X: hx, Y: -hy}}

	legs := make([]Leg, len(corners))
	for i, c := range corners {
		legs[i] = NewLeg(lift, kneeReach, c.Angle(), TipLen, c.ToVec3(0))
	}
	return legs
}

// Build returns the legs and feet for s, reaching from the cap bottom down
// to z = -opts.Lift.
func Build(bank *Bank, s spec.KeySpec, opts Options) (kernel.Solid, error) {
	if opts.Lift <= 0 {
		opts.Lift = DefaultLift
	}
	legs := Legs(s, opts.Lift)

	var out kernel.Solid
	for i, l := range legs {
		if !opts.Braced {
			leg, err := bank.Leg(l)
			if err != nil {
				return kernel.Solid{}, err
			}
			out = out.Union(leg)
			continue
		}

		knee, err := bank.Knee(l)
		if err != nil {
			return kernel.Solid{}, err
		}
		next := legs[(i+1)%len(legs)]
		toward := next.KneePos().Sub(l.KneePos()).ToVec2()
		shin, err := bank.BracedShin(l.ShinHeight(), []vec.Vec2{toward})
		if err != nil {
			return kernel.Solid{}, err
		}
		out = out.Union(knee.Translate(l.Pos), shin.Translate(l.KneePos()))
	}

	feet, err := bank.Feet(legs, -opts.Lift)
	if err != nil {
		return kernel.Solid{}, err
	}
	return out.Union(feet), nil
}
