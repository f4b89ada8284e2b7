package tui

import (
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/retro-arcade/internal/core"
)

func TestRenderScreenText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.DrawTextColored(2, 0, "cd", core.ColorRed)
	s.SetColored(5, 1, '*', core.Color(200))

	got := ansi.Strip(RenderScreen(s))
	if want := "abcd  \n     *"; got != want {
		t.Errorf("RenderScreen = %q, expected %q", got, want)
	}
}

func TestOverlayRight(t *testing.T) {
	s := core.NewScreen(10, 1)
	overlayRight(s, 0, "HI 9", core.ColorGray)
	if got := s.GetCell(8, 0).Rune; got != '9' {
		t.Errorf("last rune at column 8 = %q", got)
	}
	if got := s.GetCell(9, 0).Rune; got != ' ' {
		t.Errorf("margin column holds %q", got)
	}

	overlayRight(s, 0, "much too long", core.ColorGray)
	if got := s.GetCell(0, 0).Rune; got != ' ' {
		t.Errorf("overflowing text was drawn: %q", got)
	}
}
