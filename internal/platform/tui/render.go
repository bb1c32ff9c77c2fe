package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/stickrun/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorRunner:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorObstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorGround:   lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorSoil:     lipgloss.NewStyle().Foreground(lipgloss.Color("58")),
	core.ColorGoal:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorBall:     lipgloss.NewStyle().Foreground(lipgloss.Color("190")),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWin:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorFail:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
