package profile

import (
	"context"

	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/spec"
)

// Variant is one labelled keycap of a profile.
type Variant struct {
	Label Label
	Spec  spec.KeySpec
}

// Enumerate returns every variant of p. Row base keys come first within
// each row, followed by the row's variants. A variant whose label repeats
// an earlier one replaces it in place.
func Enumerate(p *Profile, mx bool) []Variant {
	std := spec.Choc
	if mx {
		std = spec.MX
	}

	var out []Variant
	index := make(map[string]int)
	add := func(row, suffix string, s spec.KeySpec) {
		v := Variant{
			Label: NewLabel(p.Name, std, row, s.Size.Units, suffix),
			Spec:  s,
		}
		key := v.Label.String()
		if i, ok := index[key]; ok {
			out[i] = v
			return
		}
		index[key] = len(out)
		out = append(out, v)
	}

	for _, r := range p.Rows {
		rs := p.Base.With(r.Options()...)
		if mx {
			rs = ToMX(rs, p.MXHeight)
		}
		add(r.Name, "", rs)
		for _, k := range r.Keys {
			add(r.Name, k.Suffix, rs.With(k.Options()...))
		}
	}
	return out
}

// Builder turns a spec into a solid.
type Builder func(ctx context.Context, s spec.KeySpec) (kernel.Solid, error)

// Result is the outcome of building one variant.
type Result struct {
	Variant Variant
	Solid   kernel.Solid
	Err     error
}

// Generate builds every variant of p in order. A failing variant is
// recorded in its Result and the remaining variants still build; only
// cancellation of ctx stops the run early, in which case the results so far
// are returned with ctx's error.
func Generate(ctx context.Context, p *Profile, mx bool, build Builder) ([]Result, error) {
	variants := Enumerate(p, mx)
	results := make([]Result, 0, len(variants))
	for _, v := range variants {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		solid, err := build(ctx, v.Spec)
		results = append(results, Result{Variant: v, Solid: solid, Err: err})
	}
	return results, nil
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
