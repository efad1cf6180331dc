package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/keyforge/pkg/cache"
	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/layout"
	"github.com/matzehuels/keyforge/pkg/profile"
)

// Assembly formats.
const (
	FormatAssemblySTL = "stl"
	FormatSheetPDF    = "pdf"
)

// LayoutResult holds the assembly outputs keyed by format.
type LayoutResult struct {
	Placements []layout.Placement
	Artifacts  map[string][]byte
	CacheHit   bool
}

// Layout places the variants on the board and produces the requested
// assembly formats: "stl" for the union of every placed keycap and "pdf" for
// a 1:1 footprint sheet. Outputs are cached by the set of keys.
func (r *Runner) Layout(ctx context.Context, variants []profile.Variant, formats []string, sheet layout.SheetOptions, opts Options) (*LayoutResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if len(variants) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no keys to lay out")
	}
	if len(formats) == 0 {
		formats = []string{FormatSheetPDF}
	}

	labels := make([]profile.Label, len(variants))
	ids := make([]string, len(variants))
	for i, v := range variants {
		labels[i] = v.Label
		ids[i] = v.Label.String() + "@" + v.Spec.Hash()
	}
	setHash := cache.SetHash(ids)

	res := &LayoutResult{
		Placements: layout.Place(labels),
		Artifacts:  make(map[string][]byte, len(formats)),
	}

	var missing []string
	for _, f := range formats {
		if f != FormatAssemblySTL && f != FormatSheetPDF {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid layout format: %q (must be stl or pdf)", f)
		}
		key := r.Keyer.LayoutKey(setHash, cache.LayoutKeyOpts{Format: f})
		if data, ok := r.lookup(ctx, key, f, opts.Refresh); ok {
			res.Artifacts[f] = data
			continue
		}
		missing = append(missing, f)
	}
	if len(missing) == 0 {
		res.CacheHit = true
		return res, nil
	}

	for _, f := range missing {
		var data []byte
		var err error
		switch f {
		case FormatSheetPDF:
			data, err = layout.Sheet(res.Placements, sheet)
		case FormatAssemblySTL:
			data, err = r.assemble(ctx, variants, res.Placements, opts)
		}
		if err != nil {
			return nil, fmt.Errorf("layout %s: %w", f, err)
		}
		res.Artifacts[f] = data
		if err := r.Cache.Set(ctx, r.Keyer.LayoutKey(setHash, cache.LayoutKeyOpts{Format: f}), data, cache.LayoutTTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		}
	}
	return res, nil
}

// assemble builds every keycap and meshes their union.
func (r *Runner) assemble(ctx context.Context, variants []profile.Variant, ps []layout.Placement, opts Options) ([]byte, error) {
	solids := make([]kernel.Solid, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, v := range variants {
		g.Go(func() error {
			s, err := r.Solid(gctx, v.Label.String(), v.Spec, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", v.Label, err)
			}
			solids[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byLabel := make(map[string]kernel.Solid, len(solids))
	for i, v := range variants {
		byLabel[v.Label.String()] = solids[i]
	}
	return kernel.STL(layout.Assemble(ps, byLabel), opts.MeshCells)
}
