package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/keyforge/pkg/profile"
	"github.com/matzehuels/keyforge/pkg/spec"
)

// profileCommand creates the profile command that builds a whole key set.
func (c *CLI) profileCommand() *cobra.Command {
	var (
		mx   bool
		list bool
		pick bool
	)

	cmd := &cobra.Command{
		Use:   "profile [name]",
		Short: "Build every key of a sculpted profile",
		Long: `Build every key of a sculpted profile.

The profile defines rows R1 to R4 and the key variants of each row. Every
variant is built in parallel; a key that fails is reported and the others
still finish. A manifest.json listing each key and its files is written next
to the outputs.

Use --list to print the variants without building, or --pick to choose keys
interactively.`,
		Example: `  keyforge profile glk
  keyforge profile glk --mx -f stl,webp -o out/
  keyforge profile --pick`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeProfiles,
	}
	flags := addBuildFlags(cmd, "stl")
	cmd.Flags().BoolVar(&mx, "mx", false, "build the MX-mount variants")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "list the variants and exit")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose the keys to build interactively")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := c.loadConfig(flags)
		if err != nil {
			return err
		}
		name := cfg.Profile
		if len(args) == 1 {
			name = args[0]
		}
		p, err := profile.Load(name)
		if err != nil {
			return err
		}
		variants := profile.Enumerate(p, mx)

		out := newPrinter(cmd)
		mount := spec.Choc
		if mx {
			mount = spec.MX
		}
		if list {
			out.println(StyleTitle.Render(fmt.Sprintf("%s (%s)", p.Name, mount)))
			out.println(variantTable(variants))
			return nil
		}
		if pick {
			if variants, err = pickVariants(variants); err != nil {
				return err
			}
			if len(variants) == 0 {
				out.info("No keys selected")
				return nil
			}
		}

		out.info("Profile %s (%s): %d keys", StyleHighlight.Render(p.Name), mount, len(variants))
		if err := c.runBuild(cmd.Context(), variants, flags, p.Name, mount.String()); err != nil {
			return err
		}
		out.println("")
		next := "keyforge layout --profile " + name
		if mx {
			next += " --mx"
		}
		out.nextStep("Lay out", next)
		return nil
	}
	return cmd
}

// variantTable renders the variants with their distinguishing parameters.
func variantTable(variants []profile.Variant) string {
	rows := make([][]string, len(variants))
	for i, v := range variants {
		rows[i] = variantRow(v)
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(variantHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

var variantHeaders = []string{"Label", "Units", "Angle", "Height", "Scoop", "Mark"}

func variantRow(v profile.Variant) []string {
	s := v.Spec
	scoop := "dish"
	if s.Body.Convex {
		scoop = "convex"
	}
	mark := "—"
	if s.Mark.Shape != spec.MarkNone {
		mark = strings.ToLower(s.Mark.Shape.String())
		if s.Mark.Shape == spec.MarkDots {
			mark = fmt.Sprintf("%s ×%d", mark, s.Mark.Count)
		}
	}
	return []string{
		v.Label.String(),
		fmt.Sprintf("%gu", s.Size.Units.X),
		fmt.Sprintf("%g°", s.Body.Angle),
		fmt.Sprintf("%g", s.Body.Height),
		scoop,
		mark,
	}
}

// pickVariants runs the interactive picker and returns the chosen keys.
func pickVariants(variants []profile.Variant) ([]profile.Variant, error) {
	m, err := tea.NewProgram(NewKeyPickerModel(variants), tea.WithOutput(os.Stderr)).Run()
	if err != nil {
		return nil, fmt.Errorf("key picker: %w", err)
	}
	return m.(KeyPickerModel).Chosen(), nil
}
