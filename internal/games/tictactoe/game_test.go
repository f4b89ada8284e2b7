package tictactoe

import (
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

func newGame(t *testing.T, cfg config.TicTacToeConfig, opts ...core.Option) (*Game, *core.Simulation) {
	t.Helper()
	g := New(cfg)
	sim := core.New(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, opts...)
	t.Cleanup(sim.Close)
	sim.Start()
	return g, sim
}

// play places marks on cells in order, one tick per move.
func play(g *Game, sim *core.Simulation, cells ...int) {
	for _, c := range cells {
		g.cursor = c
		in := core.NewInputFrame()
		in.Set(core.ActionFire)
		sim.Tick(in)
	}
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		winner Mark
	}{
		{"empty", "         ", Empty},
		{"top row", "XXXOO    ", X},
		{"column", "OX OX  X ", X},
		{"diagonal", "O X O X O", O},
		{"anti-diagonal", "XXO O O X", O},
		{"full draw", "XOXXOOOXX", Empty},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b Board
			for i, r := range tc.board {
				if r != ' ' {
					b[i] = Mark(r)
				}
			}
			if w, _ := b.Winner(); w != tc.winner {
				t.Errorf("Winner() = %q, expected %q", w, tc.winner)
			}
		})
	}
}

func TestXWinsRound(t *testing.T) {
	g, sim := newGame(t, config.DefaultTicTacToeConfig())

	play(g, sim, 0, 3, 1, 4, 2)

	if g.xWins != 1 || !g.roundOver {
		t.Fatalf("xWins = %d roundOver = %v, expected a finished round", g.xWins, g.roundOver)
	}
	if g.winLine != [3]int{0, 1, 2} {
		t.Errorf("win line = %v", g.winLine)
	}
	if sim.Progress().Score() != 100 {
		t.Errorf("score = %d, expected 100", sim.Progress().Score())
	}

	// Input is ignored while the round settles.
	play(g, sim, 8)
	if g.board[8] != Empty {
		t.Error("moves should be ignored after the round ends")
	}

	for i := 0; i < sim.Config().Ticks(1000); i++ {
		sim.Tick(core.NewInputFrame())
	}
	if g.roundOver || g.board != (Board{}) || g.turn != X {
		t.Error("a fresh board should follow the settle delay")
	}
	if g.xWins != 1 {
		t.Error("tallies must survive into the next round")
	}
}

func TestDraw(t *testing.T) {
	g, sim := newGame(t, config.DefaultTicTacToeConfig())

	// X O X / X O O / O X X
	play(g, sim, 0, 1, 2, 4, 3, 5, 7, 6, 8)

	if g.draws != 1 || g.xWins != 0 || g.oWins != 0 {
		t.Errorf("tallies x=%d o=%d draws=%d, expected one draw", g.xWins, g.oWins, g.draws)
	}
	if !g.roundOver {
		t.Error("a full board should end the round")
	}
}

func TestOccupiedCellIgnored(t *testing.T) {
	g, sim := newGame(t, config.DefaultTicTacToeConfig())

	play(g, sim, 4, 4)

	if g.board[4] != X || g.turn != O {
		t.Errorf("occupied cell should not change the board or turn: %v turn %c", g.board, g.turn)
	}
}

func TestMatchEnds(t *testing.T) {
	cfg := config.DefaultTicTacToeConfig()
	cfg.RoundsToWin = 1

	g, sim := newGame(t, cfg)
	play(g, sim, 0, 3, 1, 4, 2)
	if sim.Mode() != core.ModeGameOver || sim.Progress().Lives() != 1 {
		t.Errorf("X reaching the target should finish the match, mode %v", sim.Mode())
	}

	g, sim = newGame(t, cfg)
	play(g, sim, 0, 3, 1, 4, 8, 5)
	if sim.Mode() != core.ModeGameOver || sim.Progress().Lives() != 0 {
		t.Errorf("O reaching the target should lose the match, mode %v", sim.Mode())
	}
}

func TestCPUBlocksAndWins(t *testing.T) {
	cfg := config.DefaultTicTacToeConfig()
	cfg.CPU.Enabled = true
	cfg.CPU.MistakeChance = 0

	g, sim := newGame(t, cfg, core.WithRand(&core.SeqRand{Values: []float64{0.9}}))

	play(g, sim, 0)
	if g.board[4] != O {
		t.Fatalf("cpu should take the center, board %v", g.board)
	}

	play(g, sim, 1)
	if g.board[2] != O {
		t.Fatalf("cpu should block the top row, board %v", g.board)
	}

	// X blocks the anti-diagonal at 6; O then completes nothing and X
	// threatens the left column, which O must block at 3.
	play(g, sim, 6)
	if g.board[3] != O {
		t.Fatalf("cpu should block the left column, board %v", g.board)
	}

	// O now threatens 3-4-5; after X plays elsewhere the cpu wins.
	play(g, sim, 8)
	if g.oWins != 1 {
		t.Errorf("cpu should complete its row, board %v", g.board)
	}
}
