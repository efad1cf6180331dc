package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/errors"
	"github.com/matzehuels/keyforge/pkg/pipeline"
)

// previewCommand creates the preview command that renders key images.
func (c *CLI) previewCommand() *cobra.Command {
	var specFiles []string

	cmd := &cobra.Command{
		Use:   "preview [label...]",
		Short: "Render shaded preview images of keycaps",
		Long: `Render shaded preview images of keycaps.

Keys are ray-marched directly from the solid, so no mesh is needed. Images
are PNG by default; use -f webp for smaller files. Previews are cached
separately from meshes.`,
		Example: `  keyforge preview GLK_KL_R1_625x100_space --size 512
  keyforge preview --spec mykey.toml --yaw 0 --pitch 90`,
		ValidArgsFunction: completeLabels,
	}
	flags := addBuildFlags(cmd, "png")
	flags.forceFormats = []string{pipeline.FormatPNG}
	flags.addViewFlags()
	cmd.Flags().StringArrayVarP(&specFiles, "spec", "s", nil, "TOML key spec file (repeatable)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && len(specFiles) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "nothing to preview: pass a label or --spec")
		}
		if cmd.Flags().Changed("format") {
			for _, f := range parseFormats(flags.formats) {
				if f == pipeline.FormatSTL {
					return errors.New(errors.ErrCodeInvalidFormat, "preview renders png or webp, use 'keyforge build' for stl")
				}
			}
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
