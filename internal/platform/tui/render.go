package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-brush/internal/brush"
	"github.com/vovakirdan/tui-brush/internal/config"
	"github.com/vovakirdan/tui-brush/internal/core"
)

// Styles maps core.Color roles to lipgloss styles.
type Styles struct {
	cells  map[core.Color]lipgloss.Style
	Status lipgloss.Style
	Muted  lipgloss.Style
	Notice lipgloss.Style
}

// NewStyles builds the cell styles from the configured colors. The selected
// box takes its colors from the brush options so front ends agree on them.
func NewStyles(cfg config.StyleConfig, box brush.Style) Styles {
	return Styles{
		cells: map[core.Color]lipgloss.Style{
			core.ColorDefault: lipgloss.NewStyle(),
			core.ColorChart:   lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.ChartFg)),
			core.ColorAxis:    lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.AxisFg)),
			core.ColorSelection: lipgloss.NewStyle().
				Foreground(lipgloss.Color(box.Foreground)).
				Background(lipgloss.Color(box.Background)),
			core.ColorSelectionEdge: lipgloss.NewStyle().
				Foreground(lipgloss.Color(box.Border)).
				Background(lipgloss.Color(box.Background)).
				Bold(true),
			core.ColorOverlay: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.OverlayBorder)),
			core.ColorStatus:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.OverlayBorder)).Bold(true),
	}
}

// SelectedBoxStyle derives the brush box style from the configured colors.
func SelectedBoxStyle(cfg config.StyleConfig) brush.Style {
	return brush.Style{
		Foreground: cfg.SelectionFg,
		Background: cfg.SelectionBg,
		Border:     cfg.SelectionFg,
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (st Styles) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := st.cells[startColor]
			if !ok {
				style = st.cells[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
