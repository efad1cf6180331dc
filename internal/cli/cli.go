package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/buildinfo"
	"github.com/matzehuels/keyforge/pkg/cache"
	"github.com/matzehuels/keyforge/pkg/config"
	"github.com/matzehuels/keyforge/pkg/observability"
	"github.com/matzehuels/keyforge/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath overrides the XDG config file location (--config).
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Keyforge generates printable keycap models",
		Long:         `Keyforge builds parametric keycap solids for Choc and MX switches, exports them as STL meshes and previews, and lays out whole profile sets for printing.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/keyforge/config.toml)")

	// Register all subcommands
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and layers the command's flags over it.
func (c *CLI) loadConfig(flags *buildFlags) (config.Config, error) {
	path, err := c.resolveConfigPath()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return config.Resolve(cfg, flags.overrides())
}

func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.Path()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. An unreachable redis
// falls back to the file cache so builds still run.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, error) {
	observability.SetBuildHooks(observability.NewLogBuildHooks(c.Logger))

	opts, err := cfg.CacheOptions()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(ctx, opts)
	if err != nil && opts.Backend == cache.BackendRedis {
		c.Logger.Warn("redis unavailable, using file cache", "addr", opts.Redis.Addr, "err", err)
		opts.Backend = cache.BackendFile
		if opts.Dir, err = config.CacheDir(); err != nil {
			return nil, err
		}
		store, err = cache.Open(ctx, opts)
	}
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ensureDir creates the output directory if needed.
func ensureDir(dir string) error {
	return os.MkdirAll(filepath.Clean(dir), 0o755)
}
