package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/layout"
	"github.com/matzehuels/keyforge/pkg/pipeline"
	"github.com/matzehuels/keyforge/pkg/profile"
)

// layoutCommand creates the layout command for assembly sheets.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		profileName string
		mx          bool
		assembly    bool
		title       string
		margin      float64
	)
	sheet := layout.DefaultSheetOptions()

	cmd := &cobra.Command{
		Use:   "layout [label...]",
		Short: "Lay out a key set as a PDF sheet or an assembled STL",
		Long: `Lay out a key set as a PDF sheet or an assembled STL.

Keys are placed row by row from their labels: each row advances by the key
widths, and rows stack from R4 at the top to R1 at the bottom. Pass labels,
or --profile to lay out every key of a profile.

The PDF sheet is drawn at 1:1 scale for checking fit before printing.
--assembly also meshes all placed keycaps into one STL.`,
		Example: `  keyforge layout --profile glk
  keyforge layout GLK_KL_R1_100x100 GLK_KL_R1_125x100 --assembly`,
		ValidArgsFunction: completeLabels,
	}
	flags := addBuildFlags(cmd, "")
	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "lay out every key of this profile")
	cmd.Flags().BoolVar(&mx, "mx", false, "use the MX-mount variants of --profile")
	cmd.Flags().BoolVar(&assembly, "assembly", false, "also write the assembled STL")
	cmd.Flags().StringVar(&title, "title", "", "sheet title (default: profile or 'Keyforge layout')")
	cmd.Flags().Float64Var(&margin, "margin", sheet.Margin, "sheet margin in mm")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var variants []profile.Variant
		switch {
		case profileName != "":
			p, err := profile.Load(profileName)
			if err != nil {
				return err
			}
			variants = profile.Enumerate(p, mx)
			if title == "" {
				title = p.Name + " " + p.Description
			}
		case len(args) > 0:
			var err error
			if variants, err = pipeline.ResolveLabels(args); err != nil {
				return err
			}
		default:
			return errors.New(errors.ErrCodeInvalidInput, "nothing to lay out: pass labels or --profile")
		}
		if title == "" {
			title = "Keyforge layout"
		}
		sheet.Title = title
		sheet.Margin = margin

		formats := []string{pipeline.FormatSheetPDF}
		if assembly {
			formats = append(formats, pipeline.FormatAssemblySTL)
		}
		base := "layout"
		if profileName != "" {
			base = profileName
		}
		return c.runLayout(cmd.Context(), variants, formats, sheet, flags, base)
	}
	return cmd
}

// runLayout computes the layout outputs and writes them as <base>.pdf and
// <base>.stl.
func (c *CLI) runLayout(ctx context.Context, variants []profile.Variant, formats []string, sheet layout.SheetOptions, flags *buildFlags, base string) error {
	flags.forceFormats = []string{pipeline.FormatSTL}
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
	spinner := newSpinner(ctx, flags.cmd.ErrOrStderr(), fmt.Sprintf("Laying out %d keys...", len(variants)))
	spinner.Start()
	res, err := runner.Layout(ctx, variants, formats, sheet, opts)
	spinner.Stop()
	if err != nil {
		out.failure("Layout failed")
		return err
	}
	sw.done("laid out keys", "keys", len(res.Placements), "cached", res.CacheHit)

	out.success("Layout complete")
	for _, f := range formats {
		path := filepath.Join(cfg.OutputDir, base+pipeline.Extension(f))
		if err := os.WriteFile(path, res.Artifacts[f], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		out.file(path)
	}
	hits := 0
	if res.CacheHit {
		hits = len(variants)
	}
	out.stats(len(res.Placements), 0, hits)
	return nil
}
