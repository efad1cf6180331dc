package spec

import (
	"math"
	"testing"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/vec"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSizes(t *testing.T) {
	tests := []struct {
		name     string
		units    vec.Vec2
		spacing  vec.Vec2
		wantCore vec.Vec2
		wantFull vec.Vec2
	}{
		{"1u", vec.Vec2{X: 1, Y: 1}, vec.Splat2(19.05), vec.Vec2{}, vec.Vec2{X: 19.05, Y: 19.05}},
		{"2.25u", vec.Vec2{X: 2.25, Y: 1}, vec.Splat2(19.05), vec.Vec2{X: 1.25 * 19.05}, vec.Vec2{X: 2.25 * 19.05, Y: 19.05}},
		{"vertical 2u", vec.Vec2{X: 1, Y: 2}, vec.Splat2(19.05), vec.Vec2{Y: 19.05}, vec.Vec2{X: 19.05, Y: 38.1}},
		{"custom pitch", vec.Vec2{X: 3, Y: 1.5}, vec.Vec2{X: 18, Y: 17}, vec.Vec2{X: 36, Y: 8.5}, vec.Vec2{X: 54, Y: 25.5}},
		{"below one unit", vec.Vec2{X: 0.5, Y: 1}, vec.Splat2(19.05), vec.Vec2{}, vec.Vec2{X: 9.525, Y: 19.05}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := KeySizeSpec{Units: tt.units, Spacing: tt.spacing}
			core, full := s.CoreSize(), s.FullSize()
			if !near(core.X, tt.wantCore.X) || !near(core.Y, tt.wantCore.Y) {
				t.Errorf("CoreSize() = %v, want %v", core, tt.wantCore)
			}
			if !near(full.X, tt.wantFull.X) || !near(full.Y, tt.wantFull.Y) {
				t.Errorf("FullSize() = %v, want %v", full, tt.wantFull)
			}
		})
	}
}

func TestSizeValidate(t *testing.T) {
	tests := []struct {
		name    string
		size    KeySizeSpec
		wantErr bool
	}{
		{"default", DefaultSize(), false},
		{"zero units", KeySizeSpec{Spacing: vec.Splat2(19.05)}, false},
		{"negative units", KeySizeSpec{Units: vec.Vec2{X: -1, Y: 1}, Spacing: vec.Splat2(19.05)}, true},
		{"zero spacing", KeySizeSpec{Units: vec.Vec2{X: 1, Y: 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.size.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidSpec) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSpec)
			}
		})
	}
}

func TestBodyClamp(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		curve     float64
		wantAngle float64
		wantCurve float64
	}{
		{"in range", 9, 18, 9, 18},
		{"upper bound", 20, 50, 20, 50},
		{"lower bound", -20, -50, -20, -50},
		{"over range", 35, 120, 20, 50},
		{"under range", -45, -75, -20, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DefaultBody().WithAngle(tt.angle).WithCurve(tt.curve)
			if b.Angle != tt.wantAngle {
				t.Errorf("Angle = %v, want %v", b.Angle, tt.wantAngle)
			}
			if b.Curve != tt.wantCurve {
				t.Errorf("Curve = %v, want %v", b.Curve, tt.wantCurve)
			}

			s := Default().With(Angle(tt.angle), Curve(tt.curve))
			if s.Body.Angle != tt.wantAngle || s.Body.Curve != tt.wantCurve {
				t.Errorf("With() body = (%v, %v), want (%v, %v)", s.Body.Angle, s.Body.Curve, tt.wantAngle, tt.wantCurve)
			}
		})
	}
}

func TestBodyDerivedSizes(t *testing.T) {
	b := DefaultBody()
	b.Curve = 18
	core := vec.Vec2{X: 19.05}

	top := b.TopSize(core)
	if !near(top.X, 12.4+19.05) || !near(top.Y, 14.4) || top.Z != 4.0 {
		t.Errorf("TopSize() = %v", top)
	}

	base := b.BaseSize(core)
	if !near(base.X, 18.1+19.05) || !near(base.Y, 18.1) || base.Z != 1.5 {
		t.Errorf("BaseSize() = %v", base)
	}

	mid := b.MidSize(core)
	wantX := (base.X-top.X)/2*1.18 + top.X
	if !near(mid.X, wantX) || !near(mid.Z, 2.75) {
		t.Errorf("MidSize() = %v, want x=%v z=2.75", mid, wantX)
	}

	straight := b.WithCurve(0).MidSize(core)
	if !near(straight.Y, (base.Y+top.Y)/2) {
		t.Errorf("straight MidSize().Y = %v, want %v", straight.Y, (base.Y+top.Y)/2)
	}

	box := b.AABB(vec.Vec2{})
	wantZ := 6.5 + 7.2*math.Sin(vec.Radians(9))
	if !near(box.X, 18.1) || !near(box.Z, wantZ) {
		t.Errorf("AABB() = %v, want z=%v", box, wantZ)
	}
}

func TestBodyShrink(t *testing.T) {
	b := DefaultBody().Shrink(1.2)
	if !near(b.Base.X, 15.7) || !near(b.Top.Y, 12.0) {
		t.Errorf("Shrink footprints = %v %v", b.Base, b.Top)
	}
	if !near(b.Corner.X, 2.8) || !near(b.Corner.Y, 0.3) {
		t.Errorf("Shrink corner = %v", b.Corner)
	}
	if c := DefaultBody().Shrink(5).Corner; c.Y != 0.01 {
		t.Errorf("Shrink corner floor = %v, want 0.01", c.Y)
	}
}

func TestBodyValidate(t *testing.T) {
	deep := DefaultBody()
	deep.Depth = 7
	if err := deep.Validate(); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("Validate() deep scoop error = %v, want INVALID_SPEC", err)
	}
	if err := DefaultBody().Validate(); err != nil {
		t.Errorf("Validate() default error = %v", err)
	}
}

func TestDeriveDoesNotAlias(t *testing.T) {
	orig := Default()
	clone := orig.With()

	if clone != orig {
		t.Fatalf("With() without overrides = %+v, want %+v", clone, orig)
	}

	clone.Body.Base.X = 99
	clone.Size.Units.Y = 3
	clone.Mark.Offset.Y = 0.5
	if orig.Body.Base.X != 18.1 {
		t.Errorf("original body.base modified: %v", orig.Body.Base)
	}
	if orig.Size.Units.Y != 1 {
		t.Errorf("original size.units modified: %v", orig.Size.Units)
	}
	if orig.Mark.Offset.Y != 0 {
		t.Errorf("original mark.offset modified: %v", orig.Mark.Offset)
	}

	derived := orig.With(Units(2, 1), Convex(true))
	if orig.Size.Units.X != 1 || orig.Body.Convex {
		t.Errorf("With() modified receiver: %+v", orig)
	}
	if derived.Size.Units.X != 2 || !derived.Body.Convex {
		t.Errorf("With() = %+v", derived)
	}
}

func TestOptions(t *testing.T) {
	s := Default().With(
		MXMount(false),
		AddHeight(2.9),
		Mark(MarkDots, 1),
		TopEdge(0.15),
		Ratio(0.6),
		Depth(2.4),
		Height(8),
		POSStabilizer(true),
		Body(func(b *KeyBody) { b.Offset.Y = 0.85 }),
	)

	if s.Mount.Standard() != Choc || s.Mount.MXStem {
		t.Errorf("mount = %+v, want choc", s.Mount)
	}
	if s.Body.Height != 8 {
		t.Errorf("height = %v, want 8", s.Body.Height)
	}
	if s.Mark.Shape != MarkDots || s.Mark.Count != 1 {
		t.Errorf("mark = %+v", s.Mark)
	}
	if s.Body.Edge.X != 0.15 || s.Body.Ratio != 0.6 || s.Body.Depth != 2.4 || s.Body.Offset.Y != 0.85 {
		t.Errorf("body = %+v", s.Body)
	}
	if !s.Mount.StabIsPOS {
		t.Error("StabIsPOS = false, want true")
	}

	if got := Default().With(Mark(MarkWindows, 0)).Mark.Count; got != 2 {
		t.Errorf("Mark count with zero override = %v, want 2", got)
	}
}

func TestMarkShape(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        MarkShape
		implemented bool
		wantErr     bool
	}{
		{"none", "NONE", MarkNone, true, false},
		{"empty", "", MarkNone, true, false},
		{"dots lower", "dots", MarkDots, true, false},
		{"windows", "WINDOWS", MarkWindows, true, false},
		{"ring", "RING", MarkRing, false, false},
		{"hexarray", "HexArray", MarkHexArray, false, false},
		{"custom", "CUSTOM", MarkCustom, false, false},
		{"unknown", "STAR", MarkNone, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got MarkShape
			err := got.UnmarshalText([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("got = %v, want %v", got, tt.want)
			}
			if got.Implemented() != tt.implemented {
				t.Errorf("Implemented() = %v, want %v", got.Implemented(), tt.implemented)
			}
			text, _ := got.MarshalText()
			if back, _ := ParseMarkShape(string(text)); back != got {
				t.Errorf("round trip = %v, want %v", back, got)
			}
		})
	}
}

func TestStandard(t *testing.T) {
	if got := (KeyMountSpec{MXMount: true}).Standard(); got != MX || got.String() != "MX" {
		t.Errorf("MX standard = %v", got)
	}
	if got := (KeyMountSpec{}).Standard(); got != Choc || got.String() != "KL" {
		t.Errorf("choc standard = %v", got)
	}
}

func TestFingerprint(t *testing.T) {
	a := Default().Fingerprint()
	b := Default().Fingerprint()
	c := Default().With(Units(2, 1)).Fingerprint()
	if string(a) != string(b) {
		t.Error("Fingerprint should be deterministic")
	}
	if string(a) == string(c) {
		t.Error("different specs should have different fingerprints")
	}
}

func TestHash(t *testing.T) {
	h := Default().Hash()
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
	if h != Default().Hash() {
		t.Error("Hash should be deterministic")
	}
	if h == Default().With(Angle(3)).Hash() {
		t.Error("different specs should have different hashes")
	}
}
