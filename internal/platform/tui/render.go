package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/crossing/internal/core"
)

// ansiCodes maps each core.Color to an ANSI 256-color code.
// An empty code renders with the terminal's default foreground.
var ansiCodes = [core.NumColors]string{
	core.ColorRed:          "1",
	core.ColorGreen:        "2",
	core.ColorYellow:       "3",
	core.ColorBlue:         "4",
	core.ColorMagenta:      "5",
	core.ColorCyan:         "6",
	core.ColorWhite:        "7",
	core.ColorBrightRed:    "9",
	core.ColorBrightGreen:  "10",
	core.ColorBrightYellow: "11",
	core.ColorBrightBlue:   "12",
	core.ColorBrightWhite:  "15",
	core.ColorOrange:       "208",
	core.ColorGray:         "245",
	core.ColorDarkGray:     "238",
}

// palette holds one lipgloss style per color.
type palette [core.NumColors]lipgloss.Style

func newPalette() palette {
	var p palette
	for c, code := range ansiCodes {
		p[c] = lipgloss.NewStyle()
		if code != "" {
			p[c] = p[c].Foreground(lipgloss.Color(code))
		}
	}
	// Wrecks and ambulances must stand out from traffic.
	p[core.ColorOrange] = p[core.ColorOrange].Bold(true)
	p[core.ColorBrightRed] = p[core.ColorBrightRed].Bold(true)
	return p
}

var defaultPalette = newPalette()

func (p *palette) style(c core.Color) lipgloss.Style {
	if !c.Valid() {
		return p[core.ColorDefault]
	}
	return p[c]
}

// RenderScreen converts a Screen buffer to a styled string for display.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.render(s)
}

// render styles each row in runs of equal color to keep escape sequences
// to a minimum.
func (p *palette) render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		run.Reset()
		current := s.GetCell(0, y).Color
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				sb.WriteString(p.style(current).Render(run.String()))
				run.Reset()
				current = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			sb.WriteString(p.style(current).Render(run.String()))
		}
	}
	return sb.String()
}
