package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")  // accents, counts
	colorGreen = lipgloss.Color("35")  // built, cached
	colorRed   = lipgloss.Color("167") // failed keys
	colorBlue  = lipgloss.Color("75")  // suggested commands
	colorWhite = lipgloss.Color("255") // paths, values
	colorGray  = lipgloss.Color("245") // labels
	colorDim   = lipgloss.Color("240") // separators, details
)

var (
	// StyleTitle for headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for profile and key names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for counts.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleLabel       = lipgloss.NewStyle().Foreground(colorGray).Width(12)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
	sepDot      = " · "
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled status lines. Commands print through the one bound
// to their output so tests can capture it with cmd.SetOut.
type printer struct {
	w io.Writer
}

func newPrinter(cmd *cobra.Command) *printer {
	return &printer{w: cmd.OutOrStdout()}
}

func (p *printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) icon(style lipgloss.Style, icon, format string, args ...any) {
	p.println(style.Render(icon) + " " + fmt.Sprintf(format, args...))
}

// success prints a built key or a completed action.
func (p *printer) success(format string, args ...any) {
	p.icon(styleIconSuccess, iconSuccess, format, args...)
}

// failure prints a failed key or action.
func (p *printer) failure(format string, args ...any) {
	p.icon(styleIconError, iconError, format, args...)
}

func (p *printer) info(format string, args ...any) {
	p.icon(styleIconInfo, iconInfo, format, args...)
}

// detail prints an indented, dimmed line.
func (p *printer) detail(format string, args ...any) {
	p.println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// file prints a written artifact path.
func (p *printer) file(path string) {
	p.println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p *printer) keyValue(key, value string) {
	p.println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// stats prints a one-line batch summary such as "26 keys · 2 failed · 24 cached".
func (p *printer) stats(keys, failed, cached int) {
	parts := []string{fmt.Sprintf("%d keys", keys)}
	if failed > 0 {
		parts = append(parts, styleIconError.Render(fmt.Sprintf("%d failed", failed)))
	}
	if cached > 0 {
		parts = append(parts, styleCached.Render(fmt.Sprintf("%d cached", cached)))
	} else {
		parts = append(parts, styleComputed.Render("fresh"))
	}
	p.println("  " + strings.Join(parts, StyleDim.Render(sepDot)))
}

// nextStep suggests the command to run after this one.
func (p *printer) nextStep(description, command string) {
	p.println(StyleDim.Render(description+":") + " " + styleCommand.Render(command))
}
