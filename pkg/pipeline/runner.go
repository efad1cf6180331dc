package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/keyforge/pkg/cache"
	"github.com/matzehuels/keyforge/pkg/kernel"
	"github.com/matzehuels/keyforge/pkg/keycap"
	"github.com/matzehuels/keyforge/pkg/observability"
	"github.com/matzehuels/keyforge/pkg/spec"
	"github.com/matzehuels/keyforge/pkg/support"
)

// Runner encapsulates keycap builds with caching.
//
// The Runner holds no per-build state besides the support-leg bank, which
// is safe for concurrent use. Multiple goroutines can use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Bank   *support.Bank
}

// GeometryRevision scopes cache keys. Bump it whenever a change to the
// geometry packages alters the solids built from an unchanged spec.
const GeometryRevision = "g1"

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer scoped by GeometryRevision is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), GeometryRevision+":")
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Bank:   support.NewBank(),
	}
}

// Build produces the requested artifacts for one key.
//
// Artifacts already in the cache are reused; the solid is only built when at
// least one format is missing. A build or export failure is reported both in
// the returned KeyResult and as the error.
func (r *Runner) Build(ctx context.Context, label string, s spec.KeySpec, opts Options) (*KeyResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	res := &KeyResult{
		Label:     label,
		SpecHash:  s.Hash(),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
	}
	defer func() { res.Duration = time.Since(start) }()

	var missing []string
	for _, format := range opts.Formats {
		if data, ok := r.lookup(ctx, r.artifactKey(res.SpecHash, format, opts), format, opts.Refresh); ok {
			res.Artifacts[format] = data
			continue
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		res.CacheHit = true
		opts.Logger.Debug("cache hit", "key", label)
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res, err
	}

	solid, err := r.Solid(ctx, label, s, opts)
	if err != nil {
		res.Err = err
		return res, err
	}
	res.Solid = solid

	for _, format := range missing {
		data, err := r.export(ctx, label, solid, format, opts)
		if err != nil {
			res.Err = fmt.Errorf("export %s: %w", format, err)
			return res, res.Err
		}
		res.Artifacts[format] = data
		r.store(ctx, r.artifactKey(res.SpecHash, format, opts), format, data)
	}
	return res, nil
}

// Solid builds the keycap without consulting the cache.
func (r *Runner) Solid(ctx context.Context, label string, s spec.KeySpec, opts Options) (kernel.Solid, error) {
	r.applyLogger(&opts)
	hooks := observability.Build()
	hooks.OnBuildStart(ctx, label)
	start := time.Now()
	solid, err := keycap.Build(s, keycap.Options{
		Logger:      opts.Logger.With("key", label),
		SupportLegs: opts.SupportLegs,
		Supports:    opts.Supports,
		Bank:        r.Bank,
	})
	hooks.OnBuildComplete(ctx, label, time.Since(start), err)
	return solid, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) artifactKey(specHash, format string, opts Options) string {
	if format == FormatSTL {
		return r.Keyer.MeshKey(specHash, opts.MeshKeyOpts())
	}
	return r.Keyer.PreviewKey(specHash, opts.PreviewKeyOpts(format))
}

// lookup reads a cached artifact. Cache errors count as misses.
func (r *Runner) lookup(ctx context.Context, key, format string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "err", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType(format))
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType(format))
	return data, true
}

// store writes an artifact. A failed write only loses the cache entry.
func (r *Runner) store(ctx context.Context, key, format string, data []byte) {
	ttl := cache.PreviewTTL
	if format == FormatSTL {
		ttl = cache.MeshTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType(format), len(data))
}

func keyType(format string) string {
	if format == FormatSTL {
		return "mesh"
	}
	return "preview"
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
