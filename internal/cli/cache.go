package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/cache"
	"github.com/matzehuels/keyforge/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheStatsCommand())

	return cmd
}

// openCache opens the configured cache backend.
func (c *CLI) openCache(cmd *cobra.Command) (cache.Cache, cache.Options, error) {
	cfg, err := c.loadConfig(nil)
	if err != nil {
		return nil, cache.Options{}, err
	}
	opts, err := cfg.CacheOptions()
	if err != nil {
		return nil, opts, err
	}
	store, err := cache.Open(cmd.Context(), opts)
	if err != nil {
		return nil, opts, errors.Wrap(errors.ErrCodeCache, err, "open %s cache", backendName(opts))
	}
	return store, opts, nil
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached meshes, previews, and layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, opts, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			out := newPrinter(cmd)

			clearer, ok := store.(cache.Clearer)
			if !ok {
				out.info("Cache is disabled")
				return nil
			}
			count := -1
			if reporter, ok := store.(cache.StatsReporter); ok {
				if stats, err := reporter.Stats(cmd.Context()); err == nil {
					count = stats.Entries
				}
			}
			if count == 0 {
				out.info("Cache is empty")
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "clear cache")
			}

			if count > 0 {
				out.success("Cleared %d cached entries", count)
			} else {
				out.success("Cleared cache")
			}
			out.detail("Backend: %s", cacheLocation(opts))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(nil)
			if err != nil {
				return err
			}
			opts, err := cfg.CacheOptions()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(opts))
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, opts, err := c.openCache(cmd)
			if err != nil {
				return err
			}
			defer store.Close()
			out := newPrinter(cmd)

			reporter, ok := store.(cache.StatsReporter)
			if !ok {
				out.info("Cache is disabled")
				return nil
			}
			stats, err := reporter.Stats(cmd.Context())
			if err != nil {
				return errors.Wrap(errors.ErrCodeCache, err, "read cache stats")
			}
			out.keyValue("Backend", backendName(opts))
			out.keyValue("Location", cacheLocation(opts))
			out.keyValue("Entries", StyleNumber.Render(fmt.Sprint(stats.Entries)))
			out.keyValue("Size", formatBytes(stats.Bytes))
			return nil
		},
	}
}

func backendName(opts cache.Options) string {
	if opts.Backend == "" {
		return cache.BackendFile
	}
	return opts.Backend
}

// cacheLocation describes where the backend keeps its entries.
func cacheLocation(opts cache.Options) string {
	switch backendName(opts) {
	case cache.BackendRedis:
		prefix := opts.Redis.Prefix
		if prefix == "" {
			prefix = cache.DefaultRedisPrefix
		}
		return fmt.Sprintf("redis://%s/%d (%s*)", opts.Redis.Addr, opts.Redis.DB, prefix)
	case cache.BackendNone:
		return "disabled"
	}
	return opts.Dir
}

// formatBytes renders a byte count with a binary unit.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
