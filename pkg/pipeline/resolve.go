package pipeline

import (
	"strings"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/profile"
	"github.com/matzehuels/keyforge/pkg/spec"
)

// ResolveLabel turns a variant label such as "GLK_KL_R2_100x100_home" back
// into the variant its profile enumerates under that name.
func ResolveLabel(text string) (profile.Variant, error) {
	l, err := profile.ParseLabel(text)
	if err != nil {
		return profile.Variant{}, err
	}
	p, err := profile.Load(l.Profile)
	if err != nil {
		return profile.Variant{}, err
	}
	want := l.String()
	for _, v := range profile.Enumerate(p, l.Mount == spec.MX) {
		if strings.EqualFold(v.Label.String(), want) {
			return v, nil
		}
	}
	return profile.Variant{}, errors.New(errors.ErrCodeNotFound, "profile %s has no key %s", p.Name, want)
}

// ResolveLabels resolves every label, stopping at the first unknown one.
func ResolveLabels(texts []string) ([]profile.Variant, error) {
	out := make([]profile.Variant, 0, len(texts))
	for _, t := range texts {
		v, err := ResolveLabel(t)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
