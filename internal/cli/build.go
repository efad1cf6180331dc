package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/pipeline"
	"github.com/matzehuels/keyforge/pkg/profile"
	"github.com/matzehuels/keyforge/pkg/spec"
)

// buildCommand creates the build command for single keys.
func (c *CLI) buildCommand() *cobra.Command {
	var specFiles []string

	cmd := &cobra.Command{
		Use:   "build [label...]",
		Short: "Build keycaps by label or from spec files",
		Long: `Build keycaps by label or from spec files.

A label names a profile variant, for example GLK_KL_R2_100x100_home. Use
'keyforge profile --list' to see every label of a profile. A spec file is a
TOML key spec; fields it leaves out keep their defaults.

Artifacts are cached by spec, so rebuilding an unchanged key is instant.`,
		Example: `  keyforge build GLK_KL_R2_100x100_home
  keyforge build --spec mykey.toml -f stl,png`,
		ValidArgsFunction: completeLabels,
	}
	flags := addBuildFlags(cmd, "stl")
	cmd.Flags().StringArrayVarP(&specFiles, "spec", "s", nil, "TOML key spec file (repeatable)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && len(specFiles) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "nothing to build: pass a label or --spec")
		}
		variants, err := pipeline.ResolveLabels(args)
		if err != nil {
			return err
		}
		for _, path := range specFiles {
			v, err := specVariant(path)
			if err != nil {
				return err
			}
			variants = append(variants, v)
		}
		return c.runBuild(cmd.Context(), variants, flags, "", "")
	}
	return cmd
}

// specVariant loads a spec file as a variant named after the file.
func specVariant(path string) (profile.Variant, error) {
	s, err := spec.Load(path)
	if err != nil {
		return profile.Variant{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if err := errors.ValidateLabelSegment("spec file name", name); err != nil {
		return profile.Variant{}, err
	}
	l := profile.NewLabel("FILE", s.Mount.Standard(), "R0", s.Size.Units, name)
	return profile.Variant{Label: l, Spec: s}, nil
}

// runBuild builds variants, writes their artifacts and a manifest, and
// reports each key. It fails when any key failed.
func (c *CLI) runBuild(ctx context.Context, variants []profile.Variant, flags *buildFlags, profileName, mount string) error {
	cfg, err := c.loadConfig(flags)
	if err != nil {
		return err
	}
	if err := ensureDir(cfg.OutputDir); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", cfg.OutputDir)
	}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.pipelineOptions(cfg)
	opts.Logger = loggerFromContext(ctx)

	out := newPrinter(flags.cmd)
	sw := newStopwatch(c.Logger)
	spinner := newSpinner(ctx, flags.cmd.ErrOrStderr(), fmt.Sprintf("Building %d key(s)...", len(variants)))
	opts.Progress = func(done, total int) {
		spinner.Setf("Building keys %d/%d...", done, total)
	}
	spinner.Start()
	batch, err := runner.Batch(ctx, variants, opts)
	spinner.Stop()
	if spinner.Cancelled() && batch != nil {
		out.failure("Interrupted after %d of %d keys", len(variants)-len(batch.Failed()), len(variants))
	}
	if err != nil {
		return err
	}
	failed := len(batch.Failed())
	sw.done("built keys", "keys", len(batch.Keys), "failed", failed, "cached", batch.Hits())

	manifest := pipeline.NewManifest(profileName, mount)
	for _, k := range batch.Keys {
		if k.Err != nil {
			out.failure("%s: %s", k.Label, errors.UserMessage(k.Err))
			manifest.Add(k, nil)
			continue
		}
		files, err := pipeline.WriteArtifacts(cfg.OutputDir, k)
		if err != nil {
			return err
		}
		manifest.Add(k, files)
		out.success("%s", k.Label)
		for _, f := range files {
			out.file(filepath.Join(cfg.OutputDir, f))
		}
	}
	path, err := pipeline.WriteManifest(cfg.OutputDir, manifest)
	if err != nil {
		return err
	}
	sw.lap("wrote artifacts", "dir", cfg.OutputDir)

	out.stats(len(batch.Keys), failed, batch.Hits())
	out.detail("Manifest: %s", path)
	if failed > 0 {
		return fmt.Errorf("%d of %d keys failed", failed, len(batch.Keys))
	}
	return nil
}
