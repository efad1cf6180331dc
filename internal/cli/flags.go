package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/config"
	"github.com/matzehuels/keyforge/pkg/pipeline"
	"github.com/matzehuels/keyforge/pkg/preview"
)

// buildFlags holds the flags shared by every command that builds keys.
// Only flags the user set override the config file.
type buildFlags struct {
	cmd *cobra.Command

	output      string
	formats     string
	cells       int
	workers     int
	previewSize int
	noCache     bool
	refresh     bool
	supportLegs bool
	backend     string
	redisAddr   string
	yaw         float64
	pitch       float64

	// forceFormats replaces the config formats when --format is not set.
	forceFormats []string
}

// addBuildFlags registers the shared build flags on cmd. An empty
// defaultFormats leaves out --format.
func addBuildFlags(cmd *cobra.Command, defaultFormats string) *buildFlags {
	b := &buildFlags{cmd: cmd}
	f := cmd.Flags()
	f.StringVarP(&b.output, "output", "o", "", "output directory (default: config output_dir)")
	if defaultFormats != "" {
		f.StringVarP(&b.formats, "format", "f", "", "output format(s): "+defaultFormats+" (comma-separated; stl, png, webp)")
	}
	f.IntVar(&b.cells, "resolution", pipeline.DefaultMeshCells, "mesh cells along the longest side")
	f.IntVarP(&b.workers, "workers", "j", pipeline.DefaultWorkers, "keys built in parallel")
	f.IntVar(&b.previewSize, "size", 0, "preview size in pixels")
	f.BoolVar(&b.noCache, "no-cache", false, "disable caching")
	f.BoolVar(&b.refresh, "refresh", false, "rebuild even when cached")
	f.BoolVar(&b.supportLegs, "supports", false, "add print support legs")
	f.StringVar(&b.backend, "cache", "", "cache backend: file, redis, none")
	f.StringVar(&b.redisAddr, "redis", "", "redis address for the redis cache")
	return b
}

// overrides returns the flags the user changed.
func (b *buildFlags) overrides() config.Overrides {
	var o config.Overrides
	if b == nil || b.cmd == nil {
		return o
	}
	f := b.cmd.Flags()
	if f.Changed("output") {
		o.OutputDir = &b.output
	}
	if f.Changed("format") {
		o.Formats = parseFormats(b.formats)
	} else if len(b.forceFormats) > 0 {
		o.Formats = b.forceFormats
	}
	if f.Changed("resolution") {
		o.MeshCells = &b.cells
	}
	if f.Changed("workers") {
		o.Workers = &b.workers
	}
	if f.Changed("size") {
		o.PreviewSize = &b.previewSize
	}
	if f.Changed("cache") {
		o.CacheBackend = &b.backend
	}
	if f.Changed("redis") {
		o.RedisAddr = &b.redisAddr
	}
	o.NoCache = b.noCache
	return o
}

// pipelineOptions turns the resolved config into build options.
func (b *buildFlags) pipelineOptions(cfg config.Config) pipeline.Options {
	opts := cfg.PipelineOptions()
	opts.Refresh = b.refresh
	opts.SupportLegs = b.supportLegs
	if b.cmd != nil && b.cmd.Flags().Changed("yaw") {
		opts.Yaw = b.yaw
	}
	if b.cmd != nil && b.cmd.Flags().Changed("pitch") {
		opts.Pitch = b.pitch
	}
	return opts
}

// addViewFlags registers the preview camera flags.
func (b *buildFlags) addViewFlags() {
	b.cmd.Flags().Float64Var(&b.yaw, "yaw", preview.DefaultYaw, "camera yaw in degrees")
	b.cmd.Flags().Float64Var(&b.pitch, "pitch", preview.DefaultPitch, "camera pitch in degrees")
}
