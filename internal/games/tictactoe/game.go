// Package tictactoe implements a 3x3 Tic-Tac-Toe match, hot-seat or
// against a simple CPU.
package tictactoe

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Mark is the content of a board cell.
type Mark byte

const (
	Empty Mark = 0
	X     Mark = 'X'
	O     Mark = 'O'
)

// Board is a 3x3 grid in row-major order.
type Board [9]Mark

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// Winner returns the winning mark and its line, or Empty.
func (b Board) Winner() (Mark, [3]int) {
	for _, l := range lines {
		if m := b[l[0]]; m != Empty && m == b[l[1]] && m == b[l[2]] {
			return m, l
		}
	}
	return Empty, [3]int{}
}

// Full reports whether every cell is taken.
func (b Board) Full() bool {
	for _, m := range b {
		if m == Empty {
			return false
		}
	}
	return true
}

// Game implements Tic-Tac-Toe.
type Game struct {
	cfg config.TicTacToeConfig
	dm  *config.DifficultyManager

	board  Board
	turn   Mark
	cursor int

	xWins, oWins, draws int

	roundOver bool
	winLine   [3]int
	winner    Mark
}

// New creates a Tic-Tac-Toe game.
func New(cfg config.TicTacToeConfig) *Game {
	return &Game{
		cfg: cfg,
		dm:  config.NewDifficultyManager(cfg.Difficulty),
	}
}

func init() {
	registry.Register("tictactoe", "Tic-Tac-Toe", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("tictactoe", opts.ConfigPath, config.DefaultTicTacToeConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

func (g *Game) ID() string          { return "tictactoe" }
func (g *Game) Title() string       { return "Tic-Tac-Toe" }
func (g *Game) Params() core.Params { return core.Params{Lives: 1} }

// Setup clears the board and the session tallies.
func (g *Game) Setup(ctx *core.Ctx) {
	g.xWins, g.oWins, g.draws = 0, 0, 0
	g.newRound(ctx)
}

func (g *Game) newRound(*core.Ctx) {
	g.board = Board{}
	g.turn = X
	g.cursor = 4
	g.roundOver = false
	g.winner = Empty
}

// Update moves the cursor and places marks.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	if g.roundOver {
		return
	}

	row, col := g.cursor/3, g.cursor%3
	switch {
	case in.JustPressed(core.ActionUp):
		row--
	case in.JustPressed(core.ActionDown):
		row++
	case in.JustPressed(core.ActionLeft):
		col--
	case in.JustPressed(core.ActionRight):
		col++
	}
	g.cursor = core.Clamp(row, 0, 2)*3 + core.Clamp(col, 0, 2)

	if in.JustPressed(core.ActionFire) {
		g.Place(ctx, g.cursor)
	}
}

// Place puts the current player's mark on cell. Occupied cells and
// moves after the round ended are ignored.
func (g *Game) Place(ctx *core.Ctx, cell int) bool {
	if g.roundOver || cell < 0 || cell > 8 || g.board[cell] != Empty {
		return false
	}
	g.board[cell] = g.turn
	ctx.Emit(core.EventBlip, cell, string(g.turn))

	if g.settle(ctx) {
		return true
	}
	g.turn = other(g.turn)

	if g.cfg.CPU.Enabled && g.turn == O {
		g.board[g.cpuMove(ctx.Rand())] = O
		if !g.settle(ctx) {
			g.turn = X
		}
	}
	return true
}

// settle checks the board for a result and ends the round if there is one.
func (g *Game) settle(ctx *core.Ctx) bool {
	winner, line := g.board.Winner()
	switch {
	case winner != Empty:
		g.winner = winner
		g.winLine = line
		if winner == X {
			g.xWins++
			ctx.Award(g.cfg.WinPoints)
		} else {
			g.oWins++
		}
	case g.board.Full():
		g.draws++
		ctx.Emit(core.EventBlip, g.draws, "draw")
	default:
		return false
	}

	g.roundOver = true
	switch {
	case g.xWins >= g.cfg.RoundsToWin:
		ctx.Finish()
	case g.oWins >= g.cfg.RoundsToWin:
		ctx.LoseLife("o")
	default:
		ctx.After(ctx.SettleTicks(), g.newRound)
	}
	return true
}

// cpuMove picks a cell for O: win, block, center, then random. It
// occasionally skips straight to random, less often on harder tiers.
func (g *Game) cpuMove(rng core.Rand) int {
	free := make([]int, 0, 9)
	for i, m := range g.board {
		if m == Empty {
			free = append(free, i)
		}
	}

	if rng.Float64() >= g.cfg.CPU.MistakeChance/g.dm.Tier() {
		if c, ok := g.completing(O, free); ok {
			return c
		}
		if c, ok := g.completing(X, free); ok {
			return c
		}
		if g.board[4] == Empty {
			return 4
		}
	}
	return free[rng.Intn(len(free))]
}

// completing returns a free cell that gives m three in a row.
func (g *Game) completing(m Mark, free []int) (int, bool) {
	for _, c := range free {
		b := g.board
		b[c] = m
		if w, _ := b.Winner(); w == m {
			return c, true
		}
	}
	return 0, false
}

func other(m Mark) Mark {
	if m == X {
		return O
	}
	return X
}

// Render draws the board, the cursor and the session tallies.
func (g *Game) Render(dst *core.Screen, v core.View) {
	const cellW, cellH = 7, 3
	boardW, boardH := cellW*3+4, cellH*3+4
	ox := (dst.Width() - boardW) / 2
	oy := core.HUDRows + max(0, (dst.Height()-core.HUDRows-boardH-2)/2)

	dst.DrawBox(core.NewRect(ox, oy, boardW, boardH), core.ColorGray)
	for i := 1; i < 3; i++ {
		dst.DrawHLine(ox+1, oy+i*(cellH+1), boardW-2, '─', core.ColorGray)
		for y := oy + 1; y < oy+boardH-1; y++ {
			dst.SetColored(ox+i*(cellW+1), y, '│', core.ColorGray)
		}
	}

	for i, m := range g.board {
		cx := ox + 1 + (i%3)*(cellW+1)
		cy := oy + 1 + (i/3)*(cellH+1)
		color := core.ColorBrightCyan
		if m == O {
			color = core.ColorBrightMagenta
		}
		if g.roundOver && g.winner != Empty && (i == g.winLine[0] || i == g.winLine[1] || i == g.winLine[2]) {
			color = core.ColorBrightYellow
		}
		if m != Empty {
			dst.SetColored(cx+cellW/2, cy+cellH/2, rune(m), color)
		}
		if i == g.cursor && !g.roundOver {
			dst.SetColored(cx+1, cy+cellH/2, '[', core.ColorBrightWhite)
			dst.SetColored(cx+cellW-2, cy+cellH/2, ']', core.ColorBrightWhite)
		}
	}

	status := fmt.Sprintf("%c TO MOVE", g.turn)
	switch {
	case g.roundOver && g.winner != Empty:
		status = fmt.Sprintf("%c WINS THE ROUND", g.winner)
	case g.roundOver:
		status = "DRAW"
	}
	dst.DrawTextCentered(oy+boardH, status)
	dst.DrawTextCentered(oy+boardH+1, fmt.Sprintf("X %d   O %d   DRAWS %d", g.xWins, g.oWins, g.draws))
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	return fmt.Sprintf("board=%q turn=%c x=%d o=%d draws=%d", g.board[:], g.turn, g.xWins, g.oWins, g.draws)
}
