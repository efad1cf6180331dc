package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/keyforge/pkg/cache"
	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/layout"
	"github.com/matzehuels/keyforge/pkg/profile"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/vec"
)

const testCells = 24

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"stl", false},
		{"png", false},
		{"webp", false},
		{"step", true},
		{"STL", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"stl", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"stl", "obj"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSTL {
		t.Errorf("Formats = %v, want [stl]", opts.Formats)
	}
	if opts.MeshCells != DefaultMeshCells {
		t.Errorf("MeshCells = %d, want %d", opts.MeshCells, DefaultMeshCells)
	}
	if opts.Workers <= 0 {
		t.Errorf("Workers = %d, want > 0", opts.Workers)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	legs := Options{SupportLegs: true}
	if err := legs.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if legs.Supports.Lift == 0 {
		t.Error("SupportLegs should default the lift")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"png"}, MeshCells: 64}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.MeshCells != first.MeshCells || opts.PreviewSize != first.PreviewSize || opts.Workers != first.Workers {
		t.Errorf("second call changed options: %+v vs %+v", opts, first)
	}
}

func TestOptionsRejectsBadMeshCells(t *testing.T) {
	for _, cells := range []int{4, 5000} {
		opts := Options{MeshCells: cells}
		if err := opts.ValidateAndSetDefaults(); err == nil {
			t.Errorf("MeshCells %d should fail", cells)
		}
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func chocSpec() spec.KeySpec {
	return spec.Default().With(spec.MXMount(false))
}

func TestRunnerBuildUsesCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSTL}, MeshCells: testCells}

	first, err := r.Build(ctx, "choc", chocSpec(), opts)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if first.CacheHit {
		t.Error("first build should miss the cache")
	}
	if first.Solid.IsEmpty() {
		t.Error("first build should return the solid")
	}
	if len(first.Artifacts[FormatSTL]) == 0 {
		t.Fatal("missing stl artifact")
	}

	second, err := r.Build(ctx, "choc", chocSpec(), opts)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if !second.CacheHit {
		t.Error("second build should hit the cache")
	}
	if !second.Solid.IsEmpty() {
		t.Error("cache hit should not build the solid")
	}
	if !bytes.Equal(first.Artifacts[FormatSTL], second.Artifacts[FormatSTL]) {
		t.Error("cached stl differs from the built one")
	}

	opts.Refresh = true
	third, err := r.Build(ctx, "choc", chocSpec(), opts)
	if err != nil {
		t.Fatalf("refresh Build: %v", err)
	}
	if third.CacheHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerBuildDifferentSpecsMiss(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatSTL}, MeshCells: testCells}

	if _, err := r.Build(ctx, "a", chocSpec(), opts); err != nil {
		t.Fatal(err)
	}
	res, err := r.Build(ctx, "b", chocSpec().With(spec.Angle(8)), opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHit {
		t.Error("a different spec must not reuse the cached mesh")
	}
}

func TestRunnerBuildPreview(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Build(context.Background(), "choc", chocSpec(), Options{
		Formats:     []string{FormatPNG},
		PreviewSize: 24,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	png := res.Artifacts[FormatPNG]
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("png artifact has wrong magic: %q", png[:min(8, len(png))])
	}
}

func TestRunnerBuildFailure(t *testing.T) {
	r := newTestRunner(t)
	s := chocSpec().With(spec.Mark(spec.MarkRing, 1))
	res, err := r.Build(context.Background(), "ring", s, Options{MeshCells: testCells})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("err = %v, want UNSUPPORTED", err)
	}
	if res == nil || res.Err == nil {
		t.Fatal("result should carry the error")
	}
	if res.Label != "ring" || res.SpecHash == "" {
		t.Errorf("result = %+v, want label and hash set", res)
	}
}

func testVariants() []profile.Variant {
	mk := func(row, suffix string, s spec.KeySpec) profile.Variant {
		return profile.Variant{
			Label: profile.NewLabel("T", spec.Choc, row, vec.Vec2{X: 1, Y: 1}, suffix),
			Spec:  s,
		}
	}
	return []profile.Variant{
		mk("R1", "", chocSpec()),
		mk("R2", "ring", chocSpec().With(spec.Mark(spec.MarkRing, 1))),
		mk("R3", "", chocSpec().With(spec.Angle(4))),
	}
}

func TestBatchIsolatesFailures(t *testing.T) {
	r := newTestRunner(t)
	batch, err := r.Batch(context.Background(), testVariants(), Options{MeshCells: testCells, Workers: 2})
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if len(batch.Keys) != 3 {
		t.Fatalf("got %d keys, want 3", len(batch.Keys))
	}
	failed := batch.Failed()
	if len(failed) != 1 || failed[0].Label != "T_KL_R2_100x100_ring" {
		t.Fatalf("failed = %v, want only the ring key", failed)
	}
	for _, i := range []int{0, 2} {
		if len(batch.Keys[i].Artifacts[FormatSTL]) == 0 {
			t.Errorf("key %s has no stl", batch.Keys[i].Label)
		}
	}

	var seen []int
	opts := Options{MeshCells: testCells, Workers: 2, Progress: func(done, total int) {
		if total != 3 {
			t.Errorf("Progress total = %d, want 3", total)
		}
		seen = append(seen, done)
	}}
	again, err := r.Batch(context.Background(), testVariants(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := again.Hits(); got != 2 {
		t.Errorf("Hits() = %d, want 2", got)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("Progress calls = %v, want [1 2 3]", seen)
	}
}

func TestBatchCancelled(t *testing.T) {
	r := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := r.Batch(ctx, testVariants(), Options{MeshCells: testCells})
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(batch.Keys) != 3 {
		t.Fatalf("got %d keys, want 3", len(batch.Keys))
	}
	for _, k := range batch.Keys {
		if k.Err == nil {
			t.Errorf("key %s should carry the cancellation", k.Label)
		}
	}
}

func TestManifest(t *testing.T) {
	dir := t.TempDir()
	m := NewManifest("GLK", "KL")
	if _, err := uuid.Parse(m.RunID); err != nil {
		t.Errorf("RunID %q is not a uuid: %v", m.RunID, err)
	}

	ok := &KeyResult{
		Label:     "GLK_KL_R1_100x100",
		SpecHash:  "abc",
		Artifacts: map[string][]byte{"stl": []byte("solid"), "png": []byte("img")},
	}
	files, err := WriteArtifacts(dir, ok)
	if err != nil {
		t.Fatalf("WriteArtifacts: %v", err)
	}
	want := []string{"GLK_KL_R1_100x100.png", "GLK_KL_R1_100x100.stl"}
	if len(files) != 2 || files[0] != want[0] || files[1] != want[1] {
		t.Errorf("files = %v, want %v", files, want)
	}
	m.Add(ok, files)
	m.Add(&KeyResult{Label: "bad", Err: errors.New(errors.ErrCodeGeometry, "boom")}, nil)

	path, err := WriteManifest(dir, m)
	if err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Manifest
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("manifest is not json: %v", err)
	}
	if got.RunID != m.RunID || len(got.Keys) != 2 {
		t.Errorf("manifest = %+v", got)
	}
	if got.Keys[1].Error == "" {
		t.Error("failed key should record its error")
	}
	if _, err := os.Stat(filepath.Join(dir, want[1])); err != nil {
		t.Errorf("artifact not written: %v", err)
	}
}

func TestResolveLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		code  errors.Code
	}{
		{"home key", "GLK_KL_R2_100x100_home", ""},
		{"base key", "GLK_MX_R3_100x100", ""},
		{"lower case profile", "glk_KL_R4_100x100", ""},
		{"unknown suffix", "GLK_KL_R2_100x100_nope", errors.ErrCodeNotFound},
		{"unknown profile", "XYZ_KL_R2_100x100", errors.ErrCodeNotFound},
		{"malformed", "GLK-KL", errors.ErrCodeInvalidLabel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ResolveLabel(tt.label)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("err = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveLabel: %v", err)
			}
			if err := v.Spec.Validate(); err != nil {
				t.Errorf("resolved spec invalid: %v", err)
			}
		})
	}
}

func TestLayoutSheetCached(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	variants := testVariants()

	res, err := r.Layout(ctx, variants, []string{FormatSheetPDF}, layout.DefaultSheetOptions(), Options{})
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if !bytes.HasPrefix(res.Artifacts[FormatSheetPDF], []byte("%PDF-")) {
		t.Error("sheet is not a pdf")
	}
	if len(res.Placements) != len(variants) {
		t.Errorf("got %d placements, want %d", len(res.Placements), len(variants))
	}

	again, err := r.Layout(ctx, variants, []string{FormatSheetPDF}, layout.DefaultSheetOptions(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheHit {
		t.Error("second layout should hit the cache")
	}
}

func TestLayoutRejects(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	if _, err := r.Layout(ctx, nil, nil, layout.DefaultSheetOptions(), Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("empty layout err = %v, want INVALID_INPUT", err)
	}
	if _, err := r.Layout(ctx, testVariants(), []string{"svg"}, layout.DefaultSheetOptions(), Options{}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format err = %v, want INVALID_FORMAT", err)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if r.Cache == nil || r.Logger == nil || r.Bank == nil {
		t.Fatalf("NewRunner left a nil field: %+v", r)
	}
	key := r.Keyer.MeshKey("abc", cache.MeshKeyOpts{Format: FormatSTL})
	if !strings.HasPrefix(key, GeometryRevision+":mesh:") {
		t.Errorf("MeshKey() = %q, want %s:mesh: prefix", key, GeometryRevision)
	}
}
