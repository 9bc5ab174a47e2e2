package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gameroom/internal/core"
)

// colorStyles maps core.Color to lipgloss styles, indexed by color.
var colorStyles = []lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           fg("1"),
	core.ColorGreen:         fg("2"),
	core.ColorYellow:        fg("3"),
	core.ColorBlue:          fg("4"),
	core.ColorMagenta:       fg("5"),
	core.ColorCyan:          fg("6"),
	core.ColorWhite:         fg("7"),
	core.ColorBrightRed:     fg("9"),
	core.ColorBrightGreen:   fg("10"),
	core.ColorBrightYellow:  fg("11"),
	core.ColorBrightBlue:    fg("12"),
	core.ColorBrightMagenta: fg("13"),
	core.ColorBrightCyan:    fg("14"),
	core.ColorBrightWhite:   fg("15"),
	core.ColorOrange:        fg("208"),
	core.ColorGray:          fg("245"),
	core.ColorSand:          fg("180"),
	core.ColorSea:           fg("25"),
	core.ColorSky:           fg("117"),
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

func styleFor(c core.Color) lipgloss.Style {
	if int(c) < len(colorStyles) {
		return colorStyles[c]
	}
	return colorStyles[core.ColorDefault]
}

// Shared text styles for the host chrome.
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			col := s.GetCell(x, y).Color
			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != col {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(col).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
