package homing

import (
	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
)

// Apply adds the mark selected by s.Mark.Shape to solid.
func Apply(solid kernel.Solid, s spec.KeySpec) (kernel.Solid, error) {
	switch s.Mark.Shape {
	case spec.MarkNone:
		return solid, nil
	case spec.MarkDots:
		return AddDots(solid, s)
	case spec.MarkWindows:
		return AddInsetBulb(solid, s)
	}
	return kernel.Solid{}, errors.New(errors.ErrCodeUnsupported, "homing mark %s is not implemented", s.Mark.Shape)
}
