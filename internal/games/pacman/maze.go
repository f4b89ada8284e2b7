package pacman

import "github.com/vovakirdan/retro-arcade/internal/core"

// Cell is one maze tile.
type Cell uint8

const (
	Wall Cell = iota
	Dot
	Pellet
	Empty
)

// Maze dimensions.
const (
	Width  = 19
	Height = 21
)

var layout = [Height][Width]Cell{
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 2, 0, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 0, 2, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0},
	{3, 3, 3, 0, 1, 0, 3, 1, 1, 3, 1, 1, 3, 0, 1, 0, 3, 3, 3},
	{0, 0, 0, 0, 1, 0, 3, 0, 3, 3, 3, 0, 3, 0, 1, 0, 0, 0, 0},
	{3, 3, 3, 3, 1, 1, 3, 0, 3, 3, 3, 0, 3, 1, 1, 3, 3, 3, 3},
	{0, 0, 0, 0, 1, 0, 3, 0, 0, 0, 0, 0, 3, 0, 1, 0, 0, 0, 0},
	{3, 3, 3, 0, 1, 0, 3, 3, 3, 3, 3, 3, 3, 0, 1, 0, 3, 3, 3},
	{0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0},
	{0, 2, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 2, 0},
	{0, 0, 1, 0, 1, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 0, 1, 0, 0},
	{0, 1, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 1, 0},
	{0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0},
	{0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0},
	{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
}

// Board is the live copy of the maze with the remaining food.
type Board struct {
	cells [Height][Width]Cell
	food  int
}

// NewBoard returns a fully stocked board.
func NewBoard() *Board {
	b := &Board{cells: layout}
	for _, row := range b.cells {
		for _, c := range row {
			if c == Dot || c == Pellet {
				b.food++
			}
		}
	}
	return b
}

// At returns the cell at (x, y). Anything outside the maze reads as wall.
func (b *Board) At(x, y int) Cell {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return Wall
	}
	return b.cells[y][x]
}

// Open reports whether (x, y) can be entered.
func (b *Board) Open(x, y int) bool {
	return b.At(x, y) != Wall
}

// Eat clears the food at (x, y) and returns what was there.
func (b *Board) Eat(x, y int) Cell {
	c := b.At(x, y)
	if c != Dot && c != Pellet {
		return Empty
	}
	b.cells[y][x] = Empty
	b.food--
	return c
}

// Remaining returns the number of dots and pellets left.
func (b *Board) Remaining() int { return b.food }

// Step moves one cell from (x, y) in d. Leaving the maze sideways wraps
// through the tunnel; the result is only valid when ok is true.
func (b *Board) Step(x, y int, d core.Direction) (nx, ny int, ok bool) {
	dx, dy := d.Delta()
	nx, ny = x+dx, y+dy
	if ny >= 0 && ny < Height && (nx < 0 || nx >= Width) {
		nx = (nx + Width) % Width
	}
	return nx, ny, b.Open(nx, ny)
}
