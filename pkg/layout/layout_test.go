package layout

import (
	"bytes"
	"math"
	"testing"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/profile"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

func label(t *testing.T, s string) profile.Label {
	t.Helper()
	l, err := profile.ParseLabel(s)
	if err != nil {
		t.Fatalf("ParseLabel(%q): %v", s, err)
	}
	return l
}

func near(a, b vec.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestPlace(t *testing.T) {
	const p = spec.UnitPitch
	labels := []profile.Label{
		label(t, "GLK_KL_R4_100x100"),
		label(t, "GLK_KL_R4_150x100"),
		label(t, "GLK_KL_R4_200x100"),
		label(t, "GLK_KL_R1_100x100"),
		label(t, "GLK_KL_R3_100x200_numplen"),
		label(t, "GLK_KL_R1_625x100_space"),
	}
	want := []vec.Vec2{
		{X: p / 2, Y: p / 2},
		{X: p/2 + p/2*(1+1.5), Y: p / 2},
		{X: p/2 + p/2*(1+1.5) + p/2*(1.5+2), Y: p / 2},
		{X: p / 2, Y: p/2 + 3*p},
		{X: p / 2, Y: p + p},
		{X: p/2 + p/2*(1+6.25), Y: p/2 + 3*p},
	}

	got := Place(labels)
	if len(got) != len(want) {
		t.Fatalf("len(Place()) = %d, want %d", len(got), len(want))
	}
	for i, pl := range got {
		if !near(pl.Pos, want[i]) {
			t.Errorf("Place()[%d] %s = %v, want %v", i, pl.Label, pl.Pos, want[i])
		}
		if pl.Label != labels[i] {
			t.Errorf("Place()[%d] label = %v, want %v", i, pl.Label, labels[i])
		}
	}
}

func TestBounds(t *testing.T) {
	ps := Place([]profile.Label{
		label(t, "GLK_KL_R4_100x100"),
		label(t, "GLK_KL_R4_200x100"),
		label(t, "GLK_KL_R3_100x100"),
	})
	lo, hi := Bounds(ps)
	if !near(lo, vec.Vec2{}) {
		t.Errorf("lo = %v, want origin", lo)
	}
	if want := (vec.Vec2{X: 3 * spec.UnitPitch, Y: 2 * spec.UnitPitch}); !near(hi, want) {
		t.Errorf("hi = %v, want %v", hi, want)
	}
}

func TestAssemble(t *testing.T) {
	ps := Place([]profile.Label{
		label(t, "GLK_KL_R4_100x100"),
		label(t, "GLK_KL_R4_100x100_convex"),
		label(t, "GLK_KL_R3_100x100"),
	})
	cube, err := kernel.Box(vec.Vec3{X: 10, Y: 10, Z: 5}, 0)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	solids := map[string]kernel.Solid{
		"GLK_KL_R4_100x100":        cube,
		"GLK_KL_R4_100x100_convex": cube,
	}
	a := Assemble(ps, solids)

	tests := []struct {
		p    vec.Vec3
		want bool
	}{
		{ps[0].Pos.ToVec3(0), true},
		{ps[1].Pos.ToVec3(0), true},
		{ps[2].Pos.ToVec3(0), false}, // no solid for R3
	}
	for _, tt := range tests {
		if got := a.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestSheet(t *testing.T) {
	ps := Place([]profile.Label{
		label(t, "GLK_KL_R2_100x100_home"),
		label(t, "GLK_KL_R2_175x100_caps"),
	})
	data, err := Sheet(ps, SheetOptions{Title: "GLK KL", Gap: 1})
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("Sheet() does not start with a PDF header: %q", data[:8])
	}

	if _, err := Sheet(nil, DefaultSheetOptions()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Sheet(nil) error = %v, want INVALID_INPUT", err)
	}
}
