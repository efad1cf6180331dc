// Package pipeline provides the keycap build pipeline for keyforge.
//
// This package implements the complete spec → solid → artifacts pipeline
// used by every CLI command. By centralizing this logic, single builds,
// profile batches, and assembly sheets share one caching and export path.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Construct the keycap solid from a [spec.KeySpec]
//  2. Export: Mesh the solid (STL) and render previews (PNG, WebP)
//  3. Assemble: Place a key set on the board (STL assembly, PDF sheet)
//
// Artifacts are cached by spec hash and export options, so the geometry
// kernel only runs for keys whose artifacts are missing.
//
// # Usage
//
// Create a Runner and build a profile batch:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	p, _ := profile.Load("glk")
//	batch, err := runner.Batch(ctx, profile.Enumerate(p, false), pipeline.Options{
//	    Formats: []string{pipeline.FormatSTL},
//	    Workers: 4,
//	})
//	for _, k := range batch.Keys {
//	    if k.Err != nil {
//	        // this key failed; the others still built
//	    }
//	}
package pipeline

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/keyforge/pkg/cache"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/preview"
	"github.com/matzehuels/keyforge/pkg/support"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

// DefaultMeshCells is the marching-cubes resolution along the longest side.
const DefaultMeshCells = kernel.DefaultMeshCells

// DefaultWorkers is the number of keys built concurrently.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Format constants for output formats.
const (
	FormatSTL  = "stl"
	FormatPNG  = preview.FormatPNG
	FormatWebP = preview.FormatWebP
)

// ValidFormats is the set of supported per-key output formats.
var ValidFormats = map[string]bool{
	FormatSTL:  true,
	FormatPNG:  true,
	FormatWebP: true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	return "." + format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a build.
type Options struct {
	// Export options
	Formats   []string `json:"formats,omitempty"`
	MeshCells int      `json:"mesh_cells,omitempty"`

	// Preview options (PNG and WebP)
	PreviewSize int     `json:"preview_size,omitempty"`
	Yaw         float64 `json:"yaw,omitempty"`
	Pitch       float64 `json:"pitch,omitempty"`

	// Geometry options
	SupportLegs bool            `json:"support_legs,omitempty"`
	Supports    support.Options `json:"-"`

	// Batch options
	Workers int  `json:"workers,omitempty"`
	Refresh bool `json:"refresh,omitempty"` // rebuild even when cached

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// Progress, when set, is called by Batch after each key finishes with
	// the number of finished keys. Calls may come from several goroutines
	// but never concurrently.
	Progress func(done, total int) `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: stl, png, webp)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMeshCells checks the marching-cubes resolution.
func ValidateMeshCells(cells int) error {
	if cells < 16 || cells > 2000 {
		return fmt.Errorf("invalid mesh resolution: %d (must be between 16 and 2000)", cells)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSTL}
	}
	if o.MeshCells == 0 {
		o.MeshCells = DefaultMeshCells
	}
	if o.PreviewSize == 0 {
		o.PreviewSize = preview.DefaultSize
	}
	if o.Yaw == 0 && o.Pitch == 0 {
		o.Yaw, o.Pitch = preview.DefaultYaw, preview.DefaultPitch
	}
	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.SupportLegs && o.Supports.Lift == 0 {
		o.Supports = support.DefaultOptions()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateMeshCells(o.MeshCells); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// PreviewOptions returns the render options for preview formats.
func (o *Options) PreviewOptions() preview.Options {
	p := preview.DefaultOptions()
	p.Size = o.PreviewSize
	p.Yaw, p.Pitch = o.Yaw, o.Pitch
	return p
}

// MeshKeyOpts returns cache key options for a mesh.
func (o *Options) MeshKeyOpts() cache.MeshKeyOpts {
	return cache.MeshKeyOpts{
		Format:      FormatSTL,
		Cells:       o.MeshCells,
		SupportLegs: o.SupportLegs,
	}
}

// PreviewKeyOpts returns cache key options for a preview.
func (o *Options) PreviewKeyOpts(format string) cache.PreviewKeyOpts {
	return cache.PreviewKeyOpts{
		Format: format,
		Size:   o.PreviewSize,
		Yaw:    o.Yaw,
		Pitch:  o.Pitch,
	}
}

// =============================================================================
// Results
// =============================================================================

// KeyResult is the outcome of building one key.
type KeyResult struct {
	// Label names the key.
	Label string

	// SpecHash is the content hash of the key's spec.
	SpecHash string

	// Solid is the built keycap. It is empty when every artifact came from
	// the cache.
	Solid kernel.Solid

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool

	// Duration is the wall time spent on this key.
	Duration time.Duration

	// Err is set when the key failed. Other keys of a batch are unaffected.
	Err error
}
