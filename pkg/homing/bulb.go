package homing

import (
	"math"

	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Inset bulb dimensions.
const (
	bulbRadius      = 5.0
	bulbHeight      = 1.25
	bulbWallAngle   = 37.5
	insetDepth      = 0.15
	insetDepthDome  = 1.25
	bulbArcSegments = 24
)

// AddInsetBulb sinks a shallow conical recess into the top and raises a
// quarter-ellipse dome inside it, both tilted to the scoop.
func AddInsetBulb(solid kernel.Solid, s spec.KeySpec) (kernel.Solid, error) {
	center, err := CapCenter(solid, s)
	if err != nil {
		return kernel.Solid{}, err
	}
	at, err := ProjectHighest(solid, center, AngleToDirection(s.Body.Angle))
	if err != nil {
		return kernel.Solid{}, err
	}

	inset := insetDepth
	if s.Body.Convex {
		inset = insetDepthDome
	}

	wall := vec.Radians(90 - bulbWallAngle)
	cutProfile, err := kernel.Polygon([]vec.Vec2{
		{X: 0, Y: -inset},
		{X: bulbRadius, Y: -inset},
		{X: bulbRadius + 10*math.Cos(wall), Y: -inset + 10*math.Sin(wall)},
		{X: 0, Y: -inset + 10*math.Sin(wall)},
	})
	if err != nil {
		return kernel.Solid{}, err
	}
	cut, err := kernel.Revolve(cutProfile)
	if err != nil {
		return kernel.Solid{}, err
	}

	rx := bulbRadius + 0.2
	arc := []vec.Vec2{{X: 0, Y: -inset}}
	for i := 0; i <= bulbArcSegments; i++ {
		a := math.Pi / 2 * float64(i) / bulbArcSegments
		arc = append(arc, vec.Vec2{X: rx * math.Cos(a), Y: -inset + bulbHeight*math.Sin(a)})
	}
	bulbProfile, err := kernel.Polygon(arc)
	if err != nil {
		return kernel.Solid{}, err
	}
	bulb, err := kernel.Revolve(bulbProfile)
	if err != nil {
		return kernel.Solid{}, err
	}

	place := func(k kernel.Solid) kernel.Solid { return k.RotateX(s.Body.Angle).Translate(at) }
	return solid.Cut(place(cut)).Union(place(bulb)), nil
}
