package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-runner/internal/catalog"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRoad:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	core.ColorTraffic: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	core.ColorShield:  lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
	core.ColorFinish:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorCrash:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorStar:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
}

// themedStyles returns colorStyles with the level theme applied to the
// road and accent roles and the bus color applied to the player.
func themedStyles(theme catalog.Theme, playerColor string) map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(colorStyles))
	for c, s := range colorStyles {
		styles[c] = s
	}
	if theme.Lane != "" {
		styles[core.ColorRoad] = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Lane))
	}
	if theme.Accent != "" {
		styles[core.ColorAccent] = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent)).Bold(true)
	}
	if playerColor != "" {
		styles[core.ColorPlayer] = lipgloss.NewStyle().Foreground(lipgloss.Color(playerColor)).Bold(true)
	}
	return styles
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderWithStyles(s, colorStyles)
}

// RenderThemedScreen is RenderScreen with a level theme and bus color
// applied.
func RenderThemedScreen(s *core.Screen, theme catalog.Theme, playerColor string) string {
	return renderWithStyles(s, themedStyles(theme, playerColor))
}

func renderWithStyles(s *core.Screen, styles map[core.Color]lipgloss.Style) string {
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

			style, ok := styles[startColor]
			if !ok {
				style = styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
