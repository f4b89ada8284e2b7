package tetris

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

func newGame(t *testing.T, opts ...core.Option) (*Game, *core.Simulation) {
	t.Helper()
	g := New(config.DefaultTetrisConfig())
	sim := core.New(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}, opts...)
	t.Cleanup(sim.Close)
	sim.Start()
	return g, sim
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name     string
		in       Shape
		expected Shape
	}{
		{"I", Pieces[0], Shape{{1}, {1}, {1}, {1}}},
		{"T", Pieces[2], Shape{{1, 0}, {1, 1}, {1, 0}}},
		{"L", Pieces[5], Shape{{1, 1}, {1, 0}, {1, 0}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Rotate(); !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Rotate() = %v, expected %v", got, tc.expected)
			}
		})
	}

	s := Pieces[3]
	if got := s.Rotate().Rotate().Rotate().Rotate(); !reflect.DeepEqual(got, s) {
		t.Error("four rotations should return the original shape")
	}
}

func TestSpawnPosition(t *testing.T) {
	g, _ := newGame(t)
	if g.cur.X != 4 || g.cur.Y != 0 {
		t.Errorf("spawn at (%d,%d), expected (4,0)", g.cur.X, g.cur.Y)
	}
}

func TestRotationRejectedAtWall(t *testing.T) {
	g, sim := newGame(t)
	g.cur = Piece{Kind: 0, Shape: Shape{{1}, {1}, {1}, {1}}, X: 9, Y: 5}

	sim.Tick(press(core.ActionFire))

	if !reflect.DeepEqual(g.cur.Shape, Shape{{1}, {1}, {1}, {1}}) {
		t.Error("rotation that leaves the board should be rejected")
	}
}

func TestLineClearScoring(t *testing.T) {
	g, sim := newGame(t)

	// Fill the bottom two rows except column 0, then drop a vertical I there.
	for y := 18; y < 20; y++ {
		for x := 1; x < 10; x++ {
			g.board[y][x] = 1
		}
	}
	g.board[17][5] = 3
	g.cur = Piece{Kind: 0, Shape: Shape{{1}, {1}, {1}, {1}}, X: 0, Y: 0}

	sim.Tick(press(core.ActionAlt))

	if g.lines != 2 {
		t.Fatalf("lines = %d, expected 2", g.lines)
	}
	if got := sim.Progress().Score(); got != 200 {
		t.Errorf("score = %d, expected 2*100*1", got)
	}
	// Rows above shift down: the stray block and the rest of the I.
	if g.board[19][5] != 3 {
		t.Errorf("block above the cleared lines should fall to the bottom row")
	}
	if g.board[18][0] != 1 || g.board[19][0] != 1 {
		t.Errorf("remaining I cells should settle, column 0 = %d,%d", g.board[18][0], g.board[19][0])
	}
}

func TestLevelFromLines(t *testing.T) {
	g, sim := newGame(t)
	g.lines = 9
	before := g.fallEvery

	g.board[19] = []int{0, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	g.cur = Piece{Kind: 1, Shape: Shape{{1}}, X: 0, Y: 0}
	sim.Tick(press(core.ActionAlt))

	if sim.Progress().Level() != 2 {
		t.Fatalf("level = %d, expected 2 after 10 lines", sim.Progress().Level())
	}
	if g.fallEvery >= before {
		t.Errorf("fall interval %d should shrink below %d", g.fallEvery, before)
	}
}

func TestGravityLocksPiece(t *testing.T) {
	g, sim := newGame(t)
	g.cur = Piece{Kind: 1, Shape: Pieces[1], X: 4, Y: 18}

	for i := 0; i < g.fallEvery; i++ {
		sim.Tick(core.NewInputFrame())
	}

	if g.board[19][4] != 2 || g.board[18][5] != 2 {
		t.Error("piece should lock in place when it cannot fall")
	}
	if g.cur.Y != 0 {
		t.Errorf("a new piece should spawn, y = %d", g.cur.Y)
	}
}

func TestTopOut(t *testing.T) {
	g, sim := newGame(t)
	// Column 9 stays open so no line clears.
	for y := 1; y < 20; y++ {
		for x := 0; x < 9; x++ {
			g.board[y][x] = 1
		}
	}
	g.board[0][5] = 1
	g.cur = Piece{Kind: 1, Shape: Shape{{1}}, X: 0, Y: 0}

	sim.Tick(press(core.ActionAlt))

	if sim.Mode() != core.ModeGameOver {
		t.Errorf("blocked spawn should end the game, mode %v", sim.Mode())
	}
}
