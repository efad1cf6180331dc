// Package keycap assembles a complete keycap solid from a [spec.KeySpec].
//
// Build runs the fixed construction order: scoop coverage check, core cut by
// the scoop, edge finish, homing marks, mount and top negatives, stem, then
// stabilization and optional print supports.
//
// # Usage
//
//	s := spec.Default().With(spec.Units(2, 1), spec.MXMount(false))
//	solid, err := keycap.Build(s, keycap.Options{Logger: logger})
package keycap

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/keyforge/pkg/body"
	"github.com/matzehuels/keyforge/pkg/homing"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/mount"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/support"
	"github.com/matzehuels/keyforge/pkg/vec"
)

// Options configures Build.
type Options struct {
	// Logger receives per-stage debug timings. Nil disables logging.
	Logger *log.Logger
	// SupportLegs adds print support legs under the skirt.
	SupportLegs bool
	// Supports tunes the legs when SupportLegs is set.
	Supports support.Options
	// Bank memoises leg parts across builds. A private bank is used when nil.
	Bank *support.Bank
	// WallThickness of the hollowed top; defaults to mount.DefaultWallThickness.
	WallThickness float64
}

// Build returns the keycap described by s.
func Build(s spec.KeySpec, opts Options) (kernel.Solid, error) {
	s = s.With()
	if err := s.Validate(); err != nil {
		return kernel.Solid{}, err
	}
	if opts.WallThickness <= 0 {
		opts.WallThickness = mount.DefaultWallThickness
	}
	st := stages{logger: opts.Logger}
	std := mount.For(s.Mount)
	core := s.CoreSize()

	var blank body.Blank
	if err := st.run("blank", func() (err error) {
		blank, err = body.MakeBlank(s.Body, core)
		return err
	}); err != nil {
		return kernel.Solid{}, err
	}

	var kc kernel.Solid
	if err := st.run("edge finish", func() (err error) {
		kc, err = body.ApplyEdgeFinish(blank, s.Body, s.Size)
		return err
	}); err != nil {
		return kernel.Solid{}, err
	}

	if err := st.run("homing", func() (err error) {
		kc, err = homing.Apply(kc, s)
		return err
	}); err != nil {
		return kernel.Solid{}, err
	}

	skirt := std.SkirtHeight(false)
	if err := st.run("negatives", func() error {
		neg, err := std.MakeNegative(s.Size, mount.DefaultPadding)
		if err != nil {
			return err
		}
		top, err := mount.MakeTopNegative(s, opts.WallThickness)
		if err != nil {
			return err
		}
		kc = kc.Cut(neg.Union(top))
		return nil
	}); err != nil {
		return kernel.Solid{}, err
	}

	if err := st.run("stems", func() error {
		stems, err := buildStems(s, std)
		if err != nil {
			return err
		}
		kc = kc.Union(stems.Translate(vec.Vec3{Z: skirt}))
		return nil
	}); err != nil {
		return kernel.Solid{}, err
	}

	if opts.SupportLegs {
		if err := st.run("supports", func() error {
			bank := opts.Bank
			if bank == nil {
				bank = support.NewBank()
			}
			legs, err := support.Build(bank, s, opts.Supports)
			if err != nil {
				return err
			}
			kc = kc.Union(legs)
			return nil
		}); err != nil {
			return kernel.Solid{}, err
		}
	}
	return kc, nil
}

// buildStems returns the stems for s before they are lifted to the skirt:
// POS stems under every unit, or the main stem plus stabilizer stems, or
// the main stem alone.
func buildStems(s spec.KeySpec, std mount.Standard) (kernel.Solid, error) {
	stem, err := std.MakeStem()
	if err != nil {
		return kernel.Solid{}, err
	}
	switch {
	case s.Mount.Stab && s.Mount.StabIsPOS:
		return mount.MakePOSStems(stem, s.Size), nil
	case s.Mount.Stab && mount.CanStabilize(s.Size.Units):
		stab, err := mount.MakeStabilizer(s)
		if err != nil {
			return kernel.Solid{}, err
		}
		return stem.Union(stab), nil
	}
	return stem, nil
}

// stages runs build steps and logs how long each took.
type stages struct {
	logger *log.Logger
}

func (st stages) run(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if st.logger != nil {
		if err != nil {
			st.logger.Debug("stage failed", "stage", name, "error", err)
		} else {
			st.logger.Debug("stage done", "stage", name, "elapsed", time.Since(start).Round(time.Microsecond))
		}
	}
	return err
}

