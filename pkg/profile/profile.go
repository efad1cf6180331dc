// Package profile enumerates the named keycap set of a sculpted profile.
//
// A profile is a base [spec.KeySpec], a table of rows (scoop angle and body
// height) and, per row, the key variants the target layouts need. Profiles
// are TOML documents; the built-in ones are embedded in the binary.
//
// # Enumeration
//
// For every row, [Enumerate] emits the row's 1U base key followed by each of
// its variants, optionally transformed for the MX standard. Each variant is
// named by a [Label]; when two variants share a label the later one wins.
//
// # Usage
//
//	p, err := profile.Load("glk")
//	for _, v := range profile.Enumerate(p, false) {
//	    fmt.Println(v.Label)
//	}
package profile

import (
	"bytes"
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

//go:embed profiles/*.toml
var profileFS embed.FS

// Profile is a decoded profile document.
type Profile struct {
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	MXHeight    float64      `toml:"mx_height"` // height added by the MX transform
	Base        spec.KeySpec `toml:"base"`
	Rows        []Row        `toml:"rows"`
}

// Row is one sculpted row.
type Row struct {
	Name   string       `toml:"name"`
	Angle  float64      `toml:"angle"`
	Height float64      `toml:"height"`
	Keys   []KeyVariant `toml:"keys"`
}

// KeyVariant is one key of a row. Nil fields keep the row's value.
type KeyVariant struct {
	Units     []float64       `toml:"units"`
	Angle     *float64        `toml:"angle"`
	Ratio     *float64        `toml:"ratio"`
	Convex    *bool           `toml:"convex"`
	EdgeTop   *float64        `toml:"edge_top"`
	Height    *float64        `toml:"height"`
	Mark      *spec.MarkShape `toml:"mark"`
	MarkCount *int            `toml:"mark_count"`
	Suffix    string          `toml:"suffix"`
}

// Names lists the embedded profiles.
func Names() []string {
	entries, _ := profileFS.ReadDir("profiles")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

// Load returns the embedded profile with the given name, case-insensitively.
func Load(name string) (*Profile, error) {
	file := path.Join("profiles", strings.ToLower(name)+".toml")
	data, err := profileFS.ReadFile(file)
	if err != nil {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown profile %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return Parse(data)
}

// Parse decodes and validates a profile document. Base fields the document
// leaves out keep their [spec.Default] values.
func Parse(data []byte) (*Profile, error) {
	p := &Profile{Base: spec.Default()}
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode profile")
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown profile key %q", undec[0].String())
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks names, units, and the base spec.
func (p *Profile) Validate() error {
	if err := errors.ValidateLabelSegment("profile name", p.Name); err != nil {
		return err
	}
	if len(p.Rows) == 0 {
		return errors.New(errors.ErrCodeInvalidSpec, "profile %s has no rows", p.Name)
	}
	if err := p.Base.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSpec, err, "profile %s base", p.Name)
	}
	seen := make(map[string]bool, len(p.Rows))
	for _, r := range p.Rows {
		if err := errors.ValidateLabelSegment("row name", r.Name); err != nil {
			return err
		}
		if seen[r.Name] {
			return errors.New(errors.ErrCodeInvalidSpec, "duplicate row %s", r.Name)
		}
		seen[r.Name] = true
		for i, k := range r.Keys {
			if len(k.Units) != 2 || k.Units[0] <= 0 || k.Units[1] <= 0 {
				return errors.New(errors.ErrCodeInvalidSpec, "row %s key %d: units must be two positive numbers, got %v", r.Name, i, k.Units)
			}
			if k.Suffix != "" {
				if err := errors.ValidateLabelSegment("suffix", k.Suffix); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Row returns the row with the given name.
func (p *Profile) Row(name string) (Row, bool) {
	for _, r := range p.Rows {
		if r.Name == name {
			return r, true
		}
	}
	return Row{}, false
}

// Options returns the overrides a row applies to the base spec.
func (r Row) Options() []spec.Option {
	return []spec.Option{spec.Angle(r.Angle), spec.Height(r.Height)}
}

// Options returns the overrides a key applies to its row's spec.
func (k KeyVariant) Options() []spec.Option {
	opts := []spec.Option{spec.Units(k.Units[0], k.Units[1])}
	if k.Angle != nil {
		opts = append(opts, spec.Angle(*k.Angle))
	}
	if k.Ratio != nil {
		opts = append(opts, spec.Ratio(*k.Ratio))
	}
	if k.Convex != nil {
		opts = append(opts, spec.Convex(*k.Convex))
	}
	if k.EdgeTop != nil {
		opts = append(opts, spec.TopEdge(*k.EdgeTop))
	}
	if k.Height != nil {
		opts = append(opts, spec.Height(*k.Height))
	}
	if k.Mark != nil {
		count := 0
		if k.MarkCount != nil {
			count = *k.MarkCount
		}
		opts = append(opts, spec.Mark(*k.Mark, count))
	}
	return opts
}

// UnitsVec returns the key footprint.
func (k KeyVariant) UnitsVec() vec.Vec2 {
	return vec.Vec2{X: k.Units[0], Y: k.Units[1]}
}

// ToMX converts s to the MX standard, raising the body by dh to make up the
// taller skirt.
func ToMX(s spec.KeySpec, dh float64) spec.KeySpec {
	return s.With(spec.AddHeight(dh), spec.MXMount(true))
}
