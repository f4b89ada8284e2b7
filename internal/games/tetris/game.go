// Package tetris implements falling-block Tetris on a 10x20 board.
package tetris

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Shape is a piece matrix; non-zero cells are solid.
type Shape [][]int

// Pieces are the seven tetrominoes: I, O, T, S, Z, L, J.
var Pieces = []Shape{
	{{1, 1, 1, 1}},
	{{1, 1}, {1, 1}},
	{{0, 1, 0}, {1, 1, 1}},
	{{0, 1, 1}, {1, 1, 0}},
	{{1, 1, 0}, {0, 1, 1}},
	{{1, 0, 0}, {1, 1, 1}},
	{{0, 0, 1}, {1, 1, 1}},
}

// Rotate returns the shape turned clockwise.
func (s Shape) Rotate() Shape {
	rows, cols := len(s), len(s[0])
	out := make(Shape, cols)
	for c := 0; c < cols; c++ {
		out[c] = make([]int, rows)
		for r := 0; r < rows; r++ {
			out[c][r] = s[rows-1-r][c]
		}
	}
	return out
}

// Piece is the falling tetromino.
type Piece struct {
	Kind  int
	Shape Shape
	X, Y  int
}

// Game implements Tetris.
type Game struct {
	cfg config.TetrisConfig
	dm  *config.DifficultyManager

	board [][]int // 0 empty, otherwise piece kind + 1
	cur   Piece
	next  int

	lines     int
	fallEvery int
	fallTimer int
}

// New creates a Tetris game.
func New(cfg config.TetrisConfig) *Game {
	return &Game{
		cfg: cfg,
		dm:  config.NewDifficultyManager(cfg.Difficulty),
	}
}

func init() {
	registry.Register("tetris", "Tetris", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("tetris", opts.ConfigPath, config.DefaultTetrisConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

func (g *Game) ID() string          { return "tetris" }
func (g *Game) Title() string       { return "Tetris" }
func (g *Game) Params() core.Params { return core.Params{Lives: 1} }

// Setup empties the board and deals the first two pieces.
func (g *Game) Setup(ctx *core.Ctx) {
	g.board = make([][]int, g.cfg.Board.Height)
	for y := range g.board {
		g.board[y] = make([]int, g.cfg.Board.Width)
	}
	g.lines = 0
	g.fallTimer = 0
	g.fallEvery = ctx.Config().Ticks(g.dm.IntervalMs(g.cfg.Fall, 1))
	g.next = ctx.Rand().Intn(len(Pieces))
	g.spawn(ctx)
}

// spawn brings the next piece in at the top. A blocked spawn ends the game.
func (g *Game) spawn(ctx *core.Ctx) {
	g.cur = Piece{
		Kind:  g.next,
		Shape: Pieces[g.next],
		X:     g.cfg.Board.Width/2 - 1,
		Y:     0,
	}
	g.next = ctx.Rand().Intn(len(Pieces))
	if !g.fits(g.cur.Shape, g.cur.X, g.cur.Y) {
		ctx.LoseLife("topout")
	}
}

// fits reports whether shape at (px, py) stays inside the board and off
// settled blocks. Cells above the top row are allowed.
func (g *Game) fits(s Shape, px, py int) bool {
	for y, row := range s {
		for x, v := range row {
			if v == 0 {
				continue
			}
			bx, by := px+x, py+y
			if bx < 0 || bx >= g.cfg.Board.Width || by >= g.cfg.Board.Height {
				return false
			}
			if by >= 0 && g.board[by][bx] != 0 {
				return false
			}
		}
	}
	return true
}

// Update applies player moves and gravity.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	switch {
	case in.JustPressed(core.ActionLeft):
		g.shift(-1)
	case in.JustPressed(core.ActionRight):
		g.shift(1)
	}
	if in.JustPressed(core.ActionUp) || in.JustPressed(core.ActionFire) {
		if r := g.cur.Shape.Rotate(); g.fits(r, g.cur.X, g.cur.Y) {
			g.cur.Shape = r
		}
	}
	if in.JustPressed(core.ActionAlt) {
		for g.fits(g.cur.Shape, g.cur.X, g.cur.Y+1) {
			g.cur.Y++
		}
		g.lock(ctx)
		return
	}
	if in.JustPressed(core.ActionDown) && g.fits(g.cur.Shape, g.cur.X, g.cur.Y+1) {
		g.cur.Y++
	}

	g.fallTimer++
	if g.fallTimer < g.fallEvery {
		return
	}
	g.fallTimer = 0
	if g.fits(g.cur.Shape, g.cur.X, g.cur.Y+1) {
		g.cur.Y++
		return
	}
	g.lock(ctx)
}

func (g *Game) shift(dx int) {
	if g.fits(g.cur.Shape, g.cur.X+dx, g.cur.Y) {
		g.cur.X += dx
	}
}

// lock settles the current piece, clears lines and spawns the next one.
func (g *Game) lock(ctx *core.Ctx) {
	for y, row := range g.cur.Shape {
		for x, v := range row {
			if v != 0 && g.cur.Y+y >= 0 {
				g.board[g.cur.Y+y][g.cur.X+x] = g.cur.Kind + 1
			}
		}
	}
	g.fallTimer = 0

	if n := g.clearLines(); n > 0 {
		ctx.Award(n * g.cfg.LinePoints * ctx.Level())
		g.lines += n
		for ctx.Level() < g.lines/g.cfg.LinesPerLevel+1 {
			ctx.NextLevel()
		}
		g.fallEvery = ctx.Config().Ticks(g.dm.IntervalMs(g.cfg.Fall, ctx.Level()))
	}
	g.spawn(ctx)
}

// clearLines removes full rows and returns how many were removed.
func (g *Game) clearLines() int {
	kept := make([][]int, 0, len(g.board))
	for _, row := range g.board {
		full := true
		for _, v := range row {
			if v == 0 {
				full = false
				break
			}
		}
		if !full {
			kept = append(kept, row)
		}
	}
	cleared := len(g.board) - len(kept)
	for i := 0; i < cleared; i++ {
		kept = append([][]int{make([]int, g.cfg.Board.Width)}, kept...)
	}
	g.board = kept
	return cleared
}

// Render draws the well, the falling piece and the next-piece preview.
func (g *Game) Render(dst *core.Screen, v core.View) {
	w, h := g.cfg.Board.Width, g.cfg.Board.Height
	rows := min(h, dst.Height()-core.HUDRows-2)
	ox := (dst.Width()-w*2)/2 - 1
	oy := core.HUDRows
	top := h - rows // hide the top rows on short terminals

	dst.DrawBox(core.NewRect(ox, oy, w*2+2, rows+2), core.ColorGray)

	draw := func(x, y, kind int) {
		if y < top || y >= h {
			return
		}
		c := core.PieceColors[kind%len(core.PieceColors)]
		sx, sy := ox+1+x*2, oy+1+y-top
		dst.SetColored(sx, sy, '█', c)
		dst.SetColored(sx+1, sy, '█', c)
	}

	for y, row := range g.board {
		for x, v := range row {
			if v != 0 {
				draw(x, y, v-1)
			}
		}
	}
	for y, row := range g.cur.Shape {
		for x, v := range row {
			if v != 0 {
				draw(g.cur.X+x, g.cur.Y+y, g.cur.Kind)
			}
		}
	}

	px := ox + w*2 + 4
	dst.DrawText(px, oy+1, "NEXT")
	for y, row := range Pieces[g.next] {
		for x, v := range row {
			if v != 0 {
				c := core.PieceColors[g.next%len(core.PieceColors)]
				dst.SetColored(px+x*2, oy+3+y, '█', c)
				dst.SetColored(px+x*2+1, oy+3+y, '█', c)
			}
		}
	}
	dst.DrawText(px, oy+6, fmt.Sprintf("LINES %d", g.lines))
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	return fmt.Sprintf("piece=%d at (%d,%d) next=%d lines=%d fallEvery=%d",
		g.cur.Kind, g.cur.X, g.cur.Y, g.next, g.lines, g.fallEvery)
}
