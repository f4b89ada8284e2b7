package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

// colorCodes holds the terminal color of each core.Color; "" is the terminal
// default. Ordered like the core constants.
var colorCodes = [...]string{
	core.ColorDefault:       "",
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPink:          "218",
	core.ColorBrown:         "130",
}

var palette = func() []lipgloss.Style {
	p := make([]lipgloss.Style, len(colorCodes))
	for c, code := range colorCodes {
		p[c] = lipgloss.NewStyle()
		if code != "" {
			p[c] = p[c].Foreground(lipgloss.Color(code))
		}
	}
	return p
}()

func colorStyle(c core.Color) lipgloss.Style {
	if int(c) < len(palette) {
		return palette[c]
	}
	return palette[core.ColorDefault]
}

// RenderScreen turns the cell buffer into terminal text, one styled
// span per run of same-colored cells.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	var out, run strings.Builder
	out.Grow(w*h*2 + h)

	for y := range h {
		if y > 0 {
			out.WriteByte('\n')
		}
		run.Reset()
		color := s.GetCell(0, y).Color
		for x := range w {
			cell := s.GetCell(x, y)
			if cell.Color != color {
				out.WriteString(colorStyle(color).Render(run.String()))
				run.Reset()
				color = cell.Color
			}
			run.WriteRune(cell.Rune)
		}
		if run.Len() > 0 {
			out.WriteString(colorStyle(color).Render(run.String()))
		}
	}
	return out.String()
}

// overlayRight right-aligns text on row y with a one-column margin.
// Nothing is drawn when it does not fit.
func overlayRight(s *core.Screen, y int, text string, c core.Color) {
	x := s.Width() - len([]rune(text)) - 1
	if x < 0 {
		return
	}
	s.DrawTextColored(x, y, text, c)
}
