package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/orbhop/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorFloor:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorWall:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorPlayer:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorOrb:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorGhost:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorPlatform: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorButton:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorArrow:    lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorTeleport: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorHazard:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorJump:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorFaded:    lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorAccent:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[start]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
