package core

import (
	"fmt"
	"strings"
)

// HUDRows is the number of screen rows reserved above the arena.
const HUDRows = 1

// DrawHUD writes the status line and, outside of play, a centered
// banner describing what the player can do next.
func DrawHUD(dst *Screen, v View, showLives bool) {
	parts := []string{
		strings.ToUpper(v.Title),
		fmt.Sprintf("SCORE %06d", v.Score),
	}
	if showLives {
		parts = append(parts, "LIVES "+strings.Repeat("♥", v.Lives))
	}
	parts = append(parts, fmt.Sprintf("LEVEL %d", v.Level))
	dst.DrawTextColored(1, 0, strings.Join(parts, "   "), ColorBrightWhite)

	banner := ""
	switch v.Mode {
	case ModeStart:
		banner = " PRESS ENTER TO START "
	case ModeServing:
		banner = " PRESS ENTER TO SERVE "
	case ModePaused:
		banner = " PAUSED - P TO RESUME "
	case ModeGameOver:
		banner = fmt.Sprintf(" GAME OVER - SCORE %d - R TO PLAY AGAIN ", v.Score)
	}
	if banner == "" {
		return
	}
	y := dst.Height() / 2
	x := (dst.Width() - len([]rune(banner))) / 2
	dst.DrawTextColored(x, y, banner, ColorBrightYellow)
}
