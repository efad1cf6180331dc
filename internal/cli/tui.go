package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/keyforge/pkg/profile"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// KeyPickerModel - Interactive key selection
// =============================================================================

// KeyPickerModel is the bubbletea model for choosing profile variants.
type KeyPickerModel struct {
	Variants  []profile.Variant
	Cursor    int
	Picked    map[int]bool
	Height    int
	Offset    int
	Confirmed bool
}

// NewKeyPickerModel creates a picker with nothing selected.
func NewKeyPickerModel(variants []profile.Variant) KeyPickerModel {
	return KeyPickerModel{
		Variants: variants,
		Picked:   make(map[int]bool),
		Height:   15,
	}
}

// Chosen returns the picked variants in profile order, or nil when the
// picker was quit without confirming.
func (m KeyPickerModel) Chosen() []profile.Variant {
	if !m.Confirmed {
		return nil
	}
	var out []profile.Variant
	for i, v := range m.Variants {
		if m.Picked[i] {
			out = append(out, v)
		}
	}
	return out
}

func (m KeyPickerModel) Init() tea.Cmd {
	return nil
}

func (m KeyPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Variants)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			m.Picked[m.Cursor] = !m.Picked[m.Cursor]
		case "a":
			all := len(m.pickedIndexes()) < len(m.Variants)
			for i := range m.Variants {
				m.Picked[i] = all
			}
		case "enter":
			if len(m.pickedIndexes()) == 0 {
				m.Picked[m.Cursor] = true
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m KeyPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Keys"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ build  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Variants))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.Picked[i] {
			check = "[x]"
		}
		rows = append(rows, append([]string{cursor + check}, variantRow(m.Variants[i])...))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(append([]string{""}, variantHeaders...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Picked[idx]:
				return lipgloss.NewStyle().Foreground(colorGreen)
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d selected", m.Cursor+1, len(m.Variants), len(m.pickedIndexes()))))

	return b.String()
}

func (m KeyPickerModel) pickedIndexes() []int {
	var out []int
	for i := range m.Variants {
		if m.Picked[i] {
			out = append(out, i)
		}
	}
	return out
}
