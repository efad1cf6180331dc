package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/cache"
	"github.com/matzehuels/keyforge/pkg/config"
	"github.com/matzehuels/keyforge/pkg/pipeline"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(io.Discard, log.InfoLevel)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	want := []string{"build", "profile", "preview", "layout", "cache", "config", "completion"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			if err != nil || cmd.Name() != name {
				t.Errorf("Find(%q) = %v, %v", name, cmd, err)
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"stl", []string{"stl"}},
		{"stl, png", []string{"stl", "png"}},
		{"stl,,webp", []string{"stl", "webp"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseFormats(tt.in)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildFlagsOverrides(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	flags := addBuildFlags(cmd, "stl")
	if err := cmd.Flags().Parse([]string{"--resolution", "64", "-f", "png,webp", "--no-cache"}); err != nil {
		t.Fatal(err)
	}

	o := flags.overrides()
	if o.MeshCells == nil || *o.MeshCells != 64 {
		t.Errorf("MeshCells = %v, want 64", o.MeshCells)
	}
	if strings.Join(o.Formats, ",") != "png,webp" {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.Workers != nil || o.OutputDir != nil {
		t.Error("unset flags must not override the config")
	}
	if !o.NoCache {
		t.Error("NoCache should be set")
	}

	cfg, err := config.Resolve(config.Default(), o)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != cache.BackendNone || cfg.MeshCells != 64 {
		t.Errorf("resolved = %+v", cfg)
	}
}

func TestBuildFlagsForceFormats(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	flags := addBuildFlags(cmd, "png")
	flags.forceFormats = []string{pipeline.FormatPNG}
	if got := flags.overrides().Formats; len(got) != 1 || got[0] != "png" {
		t.Errorf("Formats = %v, want [png]", got)
	}
}

func TestBuildFlagsView(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	flags := addBuildFlags(cmd, "png")
	flags.addViewFlags()
	if err := cmd.Flags().Parse([]string{"--yaw", "10"}); err != nil {
		t.Fatal(err)
	}
	opts := flags.pipelineOptions(config.Default())
	if opts.Yaw != 10 {
		t.Errorf("Yaw = %v, want 10", opts.Yaw)
	}
	if opts.Pitch != 0 {
		t.Errorf("unset Pitch = %v, want 0 so the pipeline default applies", opts.Pitch)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestCacheLocation(t *testing.T) {
	tests := []struct {
		name string
		opts cache.Options
		want string
	}{
		{"file", cache.Options{Dir: "/tmp/c"}, "/tmp/c"},
		{"none", cache.Options{Backend: cache.BackendNone}, "disabled"},
		{"redis", cache.Options{Backend: cache.BackendRedis, Redis: cache.RedisConfig{Addr: "h:1"}}, "redis://h:1/0 (keyforge:*)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cacheLocation(tt.opts); got != tt.want {
				t.Errorf("cacheLocation() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigPathFlag(t *testing.T) {
	c := newTestCLI(t)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "path", "--config", "/tmp/kf.toml"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if strings.TrimSpace(out.String()) != "/tmp/kf.toml" {
		t.Errorf("output = %q", out.String())
	}
}

func TestConfigShowsFile(t *testing.T) {
	c := newTestCLI(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("mesh_cells = 77\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "--config", path})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "mesh_cells = 77") {
		t.Errorf("output missing file value:\n%s", out.String())
	}
}

func TestBuildSpecFile(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()
	specPath := filepath.Join(dir, "probe.toml")
	if err := os.WriteFile(specPath, []byte("[mount]\nmx_mount = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	var out bytes.Buffer
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"build", "--spec", specPath, "-o", outDir, "--resolution", "24", "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "FILE_KL_R0_100x100_probe") || !strings.Contains(out.String(), "1 keys") {
		t.Errorf("build output missing key or stats:\n%s", out.String())
	}

	if _, err := os.Stat(filepath.Join(outDir, "FILE_KL_R0_100x100_probe.stl")); err != nil {
		t.Errorf("stl not written: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, pipeline.ManifestName))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	var m pipeline.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if len(m.Keys) != 1 || m.Keys[0].Error != "" {
		t.Errorf("manifest keys = %+v", m.Keys)
	}
}

func TestBuildRequiresInput(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	root.SetArgs([]string{"build"})
	root.SetErr(io.Discard)
	if err := root.Execute(); err == nil {
		t.Error("build without labels should fail")
	}
}
