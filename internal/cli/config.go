package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/config"
	"github.com/matzehuels/keyforge/pkg/errors"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
		Long: `Show or create the configuration file.

Without a subcommand, prints the effective configuration: built-in defaults
overridden by the config file. Command flags override both.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(nil)
			if err != nil {
				return err
			}
			return cfg.Encode(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	cmd.AddCommand(c.configInitCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand that writes the
// defaults to the config file.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "create config dir")
			}
			f, err := os.Create(path)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
			}
			defer f.Close()
			if err := config.Default().Encode(f); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
			}
			out := newPrinter(cmd)
			out.success("Wrote default config")
			out.file(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
