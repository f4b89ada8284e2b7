package core

import "math"

// cellAspect is the height/width ratio of a terminal cell.
const cellAspect = 2.0

// Viewport maps arena coordinates onto a framed region of a Screen,
// preserving the arena's aspect ratio as well as terminal cells allow.
type Viewport struct {
	dst        *Screen
	ox, oy     int
	cols, rows int
	sx, sy     float64
}

// NewViewport fits an arenaW x arenaH arena below the top HUD rows of dst.
func NewViewport(dst *Screen, arenaW, arenaH float64, top int) Viewport {
	availW := dst.Width() - 2
	availH := dst.Height() - top - 2
	if availW < 1 {
		availW = 1
	}
	if availH < 1 {
		availH = 1
	}

	cols := float64(availW)
	if byHeight := float64(availH) * cellAspect * arenaW / arenaH; byHeight < cols {
		cols = byHeight
	}
	rows := cols * arenaH / arenaW / cellAspect
	if rows > float64(availH) {
		rows = float64(availH)
	}

	v := Viewport{
		dst:  dst,
		cols: max(1, int(cols)),
		rows: max(1, int(rows)),
	}
	v.sx = arenaW / float64(v.cols)
	v.sy = arenaH / float64(v.rows)
	v.ox = (dst.Width()-v.cols)/2 - 1
	if v.ox < 0 {
		v.ox = 0
	}
	v.oy = top
	return v
}

// Cols returns the inner width in cells.
func (v Viewport) Cols() int { return v.cols }

// Rows returns the inner height in cells.
func (v Viewport) Rows() int { return v.rows }

// Cell converts an arena point to a screen cell.
func (v Viewport) Cell(x, y float64) (int, int) {
	cx := int(math.Floor(x / v.sx))
	cy := int(math.Floor(y / v.sy))
	return v.ox + 1 + cx, v.oy + 1 + cy
}

func (v Viewport) inside(cx, cy int) bool {
	return cx > v.ox && cx <= v.ox+v.cols && cy > v.oy && cy <= v.oy+v.rows
}

// Plot draws r at the cell containing the arena point p.
func (v Viewport) Plot(p Vec, r rune, c Color) {
	cx, cy := v.Cell(p.X, p.Y)
	if v.inside(cx, cy) {
		v.dst.SetColored(cx, cy, r, c)
	}
}

// FillBox fills every cell covered by b. Boxes smaller than a cell still
// cover the cell containing their center.
func (v Viewport) FillBox(b Box, r rune, c Color) {
	x0, y0 := v.Cell(b.X, b.Y)
	x1, y1 := v.Cell(b.Right()-1e-9, b.Bottom()-1e-9)
	if x1 < x0 || y1 < y0 {
		v.Plot(b.Center(), r, c)
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if v.inside(x, y) {
				v.dst.SetColored(x, y, r, c)
			}
		}
	}
}

// FillRow fills a full-width band of the arena between y and y+h.
func (v Viewport) FillRow(y, h float64, r rune, c Color) {
	v.FillBox(Box{X: 0, Y: y, W: v.sx * float64(v.cols), H: h}, r, c)
}

// Frame draws the border around the viewport.
func (v Viewport) Frame(c Color) {
	v.dst.DrawBox(NewRect(v.ox, v.oy, v.cols+2, v.rows+2), c)
}

// Text writes text inside the viewport, centered on row y (in cells from
// the top of the arena).
func (v Viewport) Text(row int, text string, c Color) {
	x := v.ox + 1 + (v.cols-len([]rune(text)))/2
	v.dst.DrawTextColored(x, v.oy+1+row, text, c)
}
