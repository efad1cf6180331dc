package spec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/keyforge/pkg/vec"
)

// KeySpec is the complete configuration of one keycap.
type KeySpec struct {
	Body  KeyBody      `json:"body" toml:"body"`
	Size  KeySizeSpec  `json:"size" toml:"size"`
	Mount KeyMountSpec `json:"mount" toml:"mount"`
	Mark  KeyMarkSpec  `json:"mark" toml:"mark"`
}

// Default returns a spec assembled from every group's defaults.
func Default() KeySpec {
	return KeySpec{
		Body:  DefaultBody(),
		Size:  DefaultSize(),
		Mount: DefaultMount(),
		Mark:  DefaultMark(),
	}
}

// Option overrides part of a spec during derivation.
type Option func(*KeySpec)

// With derives a new spec from s with the given overrides applied in order.
// The body is clamped after all overrides run.
func (s KeySpec) With(opts ...Option) KeySpec {
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	s.Body = s.Body.Clamp()
	return s
}

// Validate checks the size and body groups.
func (s KeySpec) Validate() error {
	if err := s.Size.Validate(); err != nil {
		return err
	}
	return s.Body.Validate()
}

// CoreSize is shorthand for s.Size.CoreSize().
func (s KeySpec) CoreSize() vec.Vec2 {
	return s.Size.CoreSize()
}

// Fingerprint returns a canonical encoding of the spec for cache keys.
func (s KeySpec) Fingerprint() []byte {
	data, _ := json.Marshal(s)
	return data
}

// Hash returns the hex SHA-256 of the fingerprint.
func (s KeySpec) Hash() string {
	sum := sha256.Sum256(s.Fingerprint())
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// Options
// =============================================================================

// Units sets the unit footprint.
func Units(x, y float64) Option {
	return func(s *KeySpec) { s.Size.Units = vec.Vec2{X: x, Y: y} }
}

// Angle sets the scoop angle.
func Angle(a float64) Option {
	return func(s *KeySpec) { s.Body.Angle = a }
}

// Curve sets the wall curve.
func Curve(c float64) Option {
	return func(s *KeySpec) { s.Body.Curve = c }
}

// Height sets the body height.
func Height(h float64) Option {
	return func(s *KeySpec) { s.Body.Height = h }
}

// AddHeight raises the body height by dh.
func AddHeight(dh float64) Option {
	return func(s *KeySpec) { s.Body.Height += dh }
}

// Ratio sets the scoop ratio.
func Ratio(r float64) Option {
	return func(s *KeySpec) { s.Body.Ratio = r }
}

// Depth sets the scoop depth.
func Depth(d float64) Option {
	return func(s *KeySpec) { s.Body.Depth = d }
}

// Convex selects a domed top.
func Convex(c bool) Option {
	return func(s *KeySpec) { s.Body.Convex = c }
}

// TopEdge sets the top rim fillet radius.
func TopEdge(r float64) Option {
	return func(s *KeySpec) { s.Body.Edge.X = r }
}

// Offset sets the top section stagger.
func Offset(o vec.Vec2) Option {
	return func(s *KeySpec) { s.Body.Offset = o }
}

// Mark sets the mark shape and, when count > 0, the mark count.
func Mark(shape MarkShape, count int) Option {
	return func(s *KeySpec) {
		s.Mark.Shape = shape
		if count > 0 {
			s.Mark.Count = count
		}
	}
}

// MXMount switches both the mount and the stem to the MX standard.
func MXMount(mx bool) Option {
	return func(s *KeySpec) {
		s.Mount.MXMount = mx
		s.Mount.MXStem = mx
	}
}

// POSStabilizer selects multi-stem stabilization.
func POSStabilizer(pos bool) Option {
	return func(s *KeySpec) { s.Mount.StabIsPOS = pos }
}

// Body applies fn to a copy of the body.
func Body(fn func(*KeyBody)) Option {
	return func(s *KeySpec) { fn(&s.Body) }
}
