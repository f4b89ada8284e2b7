package core

// Color is a foreground color for a screen cell, mapped to an ANSI
// 256-color code by the platform.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPink
	ColorBrown
)

// PieceColors is the palette shared by games that color by index
// (tetrominoes, ghosts, formation rows).
var PieceColors = []Color{
	ColorBrightCyan,
	ColorBrightYellow,
	ColorBrightMagenta,
	ColorBrightGreen,
	ColorBrightRed,
	ColorBrightBlue,
	ColorOrange,
}
