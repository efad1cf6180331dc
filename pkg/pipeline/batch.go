package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/keyforge/pkg/observability"
	"github.com/matzehuels/keyforge/pkg/profile"
)

// BatchResult holds the outcome of a batch build in input order.
type BatchResult struct {
	Keys     []*KeyResult
	Duration time.Duration
}

// Failed returns the keys that did not build.
func (b *BatchResult) Failed() []*KeyResult {
	var out []*KeyResult
	for _, k := range b.Keys {
		if k.Err != nil {
			out = append(out, k)
		}
	}
	return out
}

// Hits returns the number of keys served entirely from the cache.
func (b *BatchResult) Hits() int {
	n := 0
	for _, k := range b.Keys {
		if k.CacheHit {
			n++
		}
	}
	return n
}

// Batch builds every variant with up to opts.Workers keys in flight.
//
// A failing key is recorded in its KeyResult and does not stop the others.
// Only cancellation of ctx aborts the batch; the partial result is returned
// together with ctx.Err().
func (r *Runner) Batch(ctx context.Context, variants []profile.Variant, opts Options) (*BatchResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	hooks := observability.Build()
	hooks.OnBatchStart(ctx, len(variants))

	out := &BatchResult{Keys: make([]*KeyResult, len(variants))}
	var mu sync.Mutex
	finished := 0
	report := func() {
		if opts.Progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		finished++
		opts.Progress(finished, len(variants))
	}

	g := new(errgroup.Group)
	g.SetLimit(opts.Workers)
	for i, v := range variants {
		label := v.Label.String()
		if err := ctx.Err(); err != nil {
			out.Keys[i] = &KeyResult{Label: label, SpecHash: v.Spec.Hash(), Err: err}
			continue
		}
		g.Go(func() error {
			res, err := r.Build(ctx, label, v.Spec, opts)
			if res == nil {
				res = &KeyResult{Label: label, Err: err}
			}
			out.Keys[i] = res
			report()
			return nil
		})
	}
	_ = g.Wait()
	out.Duration = time.Since(start)

	failed := len(out.Failed())
	hooks.OnBatchComplete(ctx, len(variants), failed, out.Duration)
	return out, ctx.Err()
}
