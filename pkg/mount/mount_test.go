package mount

import (
	"math"
	"testing"

	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

func TestGap(t *testing.T) {
	tests := []struct {
		units float64
		mx    float64
		choc  float64
	}{
		{1, 0, 0},
		{1.99, 0, 0},
		{2.0, 11.90625, 12},
		{2.99, 11.90625, 12},
		{3.0, 19.05, 12},
		{6.25, 50.00625, 38},
	}
	for _, tt := range tests {
		if got := (MX{}).Gap(tt.units); math.Abs(got-tt.mx) > 1e-9 {
			t.Errorf("MX.Gap(%v) = %v, want %v", tt.units, got, tt.mx)
		}
		if got := (Choc{}).Gap(tt.units); math.Abs(got-tt.choc) > 1e-9 {
			t.Errorf("Choc.Gap(%v) = %v, want %v", tt.units, got, tt.choc)
		}
	}
}

func TestSkirtHeight(t *testing.T) {
	tests := []struct {
		name     string
		std      Standard
		preplate bool
		want     float64
	}{
		{"mx", MX{}, false, 6.2},
		{"mx preplate", MX{}, true, 5.0},
		{"choc", Choc{}, false, 3.3},
		{"choc preplate", Choc{}, true, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.std.SkirtHeight(tt.preplate); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SkirtHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFor(t *testing.T) {
	if got := For(spec.KeyMountSpec{MXMount: true}).Kind(); got != spec.MX {
		t.Errorf("For(mx).Kind() = %v, want MX", got)
	}
	if got := For(spec.KeyMountSpec{}).Kind(); got != spec.Choc {
		t.Errorf("For(choc).Kind() = %v, want KL", got)
	}
}

func TestStabilizerMath(t *testing.T) {
	if got := StabLen(2, spec.UnitPitch, true, false); math.Abs(got-23.8125) > 1e-9 {
		t.Errorf("StabLen(mx 2u) = %v, want 23.8125", got)
	}
	if got := StabLen(6.25, spec.UnitPitch, false, false); got != 76 {
		t.Errorf("StabLen(choc 6.25u) = %v, want 76", got)
	}
	if got := StabLen(3.5, spec.UnitPitch, false, true); math.Abs(got-38.1) > 1e-9 {
		t.Errorf("StabLen(pos 3.5u) = %v, want 38.1", got)
	}
	if got := MinNegU(0, spec.UnitPitch); got != 1 {
		t.Errorf("MinNegU(0) = %v, want 1", got)
	}
	if got := MinNegU(12, spec.UnitPitch); got != 1.25 {
		t.Errorf("MinNegU(12) = %v, want 1.25", got)
	}
}

func TestCanStabilize(t *testing.T) {
	tests := []struct {
		units vec.Vec2
		want  bool
	}{
		{vec.Vec2{X: 1, Y: 1}, false},
		{vec.Vec2{X: 1.75, Y: 1}, false},
		{vec.Vec2{X: 2, Y: 1}, true},
		{vec.Vec2{X: 1, Y: 2}, true},
	}
	for _, tt := range tests {
		if got := CanStabilize(tt.units); got != tt.want {
			t.Errorf("CanStabilize(%v) = %v, want %v", tt.units, got, tt.want)
		}
	}
}

func TestStabPoints(t *testing.T) {
	tests := []struct {
		name string
		spec spec.KeySpec
		want []vec.Vec2
	}{
		{"1u", spec.Default(), nil},
		{"2u wide mx", spec.Default().With(spec.Units(2, 1)), []vec.Vec2{{X: 11.90625}, {X: -11.90625}}},
		{"2u tall choc", spec.Default().With(spec.Units(1, 2), spec.MXMount(false)), []vec.Vec2{{Y: 12}, {Y: -12}}},
		{"2x2 choc", spec.Default().With(spec.Units(2, 2), spec.MXMount(false)), []vec.Vec2{{X: 12}, {X: -12}, {Y: 12}, {Y: -12}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StabPoints(tt.spec)
			if len(got) != len(tt.want) {
				t.Fatalf("StabPoints() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Sub(tt.want[i]).Mag() > 1e-9 {
					t.Errorf("StabPoints()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPOSPoints(t *testing.T) {
	tests := []struct {
		name  string
		units vec.Vec2
		want  []vec.Vec2
	}{
		{"1u", vec.Vec2{X: 1, Y: 1}, []vec.Vec2{{}}},
		{"2.25u", vec.Vec2{X: 2.25, Y: 1}, []vec.Vec2{{X: -9.525}, {X: 9.525}}},
		{"under 1u", vec.Vec2{X: 0.5, Y: 1}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := POSPoints(spec.DefaultSize().WithUnits(tt.units))
			if len(got) != len(tt.want) {
				t.Fatalf("POSPoints() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i].Sub(tt.want[i]).Mag() > 1e-9 {
					t.Errorf("POSPoints()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestMXStem(t *testing.T) {
	stem, err := (MX{}).MakeStem()
	if err != nil {
		t.Fatalf("MakeStem: %v", err)
	}
	tests := []struct {
		name string
		p    vec.Vec3
		want bool
	}{
		{"wall", vec.Vec3{X: 2.4, Z: -1}, true},
		{"between arms", vec.Vec3{X: 1.5, Y: 1.5, Z: -1}, true},
		{"cross slot", vec.Vec3{X: 1.0, Z: -1}, false},
		{"centre", vec.Vec3{Z: -1}, false},
		{"clipped by box", vec.Vec3{Y: 2.4, Z: -1}, false},
		{"below", vec.Vec3{X: 2.4, Z: -3.9}, false},
		{"top padding", vec.Vec3{X: 2.4, Z: 0.05}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stem.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestChocStem(t *testing.T) {
	stem, err := (Choc{}).MakeStem()
	if err != nil {
		t.Fatalf("MakeStem: %v", err)
	}
	tests := []struct {
		name string
		p    vec.Vec3
		want bool
	}{
		{"right lobe", vec.Vec3{X: 2.85, Z: -1}, true},
		{"left lobe", vec.Vec3{X: -2.85, Z: -1}, true},
		{"between lobes", vec.Vec3{Z: -1}, false},
		{"outside lobe", vec.Vec3{X: 3.5, Z: -1}, false},
		{"below", vec.Vec3{X: 2.85, Z: -3.9}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stem.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestNegativeTopSize(t *testing.T) {
	size := spec.DefaultSize()
	mx := (MX{}).NegativeTopSize(size)
	if math.Abs(mx.X-12.30068) > 1e-6 || math.Abs(mx.Z-0.20034) > 1e-6 {
		t.Errorf("MX NegativeTopSize = %v", mx)
	}
	choc := (Choc{}).NegativeTopSize(size)
	if math.Abs(choc.X-14.5) > 1e-6 || math.Abs(choc.Z-1.3) > 1e-6 {
		t.Errorf("Choc NegativeTopSize = %v", choc)
	}
}

func TestMakeNegative(t *testing.T) {
	neg, err := (MX{}).MakeNegative(spec.DefaultSize(), DefaultPadding)
	if err != nil {
		t.Fatalf("MakeNegative: %v", err)
	}
	tests := []struct {
		name string
		p    vec.Vec3
		want bool
	}{
		{"centre", vec.Vec3{Z: 3}, true},
		{"under the rim", vec.Vec3{X: 7.5, Z: 0.5}, true},
		{"tiered wall", vec.Vec3{X: 7.5, Z: 5.5}, false},
		{"above skirt", vec.Vec3{Z: 6.5}, false},
		{"below base", vec.Vec3{Z: -0.2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := neg.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMakeTopNegative(t *testing.T) {
	s := spec.Default().With(spec.MXMount(false))
	top, err := MakeTopNegative(s, DefaultWallThickness)
	if err != nil {
		t.Fatalf("MakeTopNegative: %v", err)
	}
	if top.Contains(vec.Vec3{Z: s.Body.Height + 1}) {
		t.Error("top negative should stay under the shell")
	}
	if !top.Contains(vec.Vec3{X: 5, Y: 5, Z: 3.6}) {
		t.Error("top negative should hollow the corner under the dish")
	}
}

func TestMakeStabilizer(t *testing.T) {
	one, err := MakeStabilizer(spec.Default())
	if err != nil {
		t.Fatalf("MakeStabilizer(1u): %v", err)
	}
	if !one.IsEmpty() {
		t.Error("1u key should have no stabilizer stems")
	}

	two, err := MakeStabilizer(spec.Default().With(spec.Units(2, 1)))
	if err != nil {
		t.Fatalf("MakeStabilizer(2u): %v", err)
	}
	if !two.Contains(vec.Vec3{X: 11.90625 + 2.4, Z: -1}) {
		t.Error("2u stabilizer should place a stem at the gap")
	}
}
