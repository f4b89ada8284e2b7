package pacman

import (
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

func newGame(t *testing.T, seed int64) (*Game, *core.Simulation) {
	t.Helper()
	g := New(config.DefaultPacmanConfig())
	sim := core.New(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	t.Cleanup(sim.Close)
	sim.Start()
	return g, sim
}

// park keeps every ghost in the house so it cannot interfere.
func park(g *Game) {
	for _, gh := range g.ghosts {
		gh.InHouse = true
		gh.Exit = 1 << 30
		gh.Pos = Point{9, 9}
	}
}

// stepPac runs one tick on which Pac-Man moves.
func stepPac(g *Game, sim *core.Simulation, in core.InputFrame) []core.Event {
	g.pacTimer = g.cfg.PacmanEvery - 1
	return sim.Tick(in)
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	if b.Remaining() == 0 {
		t.Fatal("board should start stocked")
	}
	if b.At(1, 2) != Pellet || b.At(0, 0) != Wall || b.At(-1, 9) != Wall {
		t.Error("unexpected cells in the stock maze")
	}
	if b.Eat(1, 2) != Pellet || b.At(1, 2) != Empty {
		t.Error("eating a pellet should empty the cell")
	}
	if b.Eat(1, 2) != Empty {
		t.Error("an empty cell has nothing to eat")
	}
}

func TestDirectionQueuedUntilLegal(t *testing.T) {
	g, sim := newGame(t, 1)
	park(g)
	g.pac, g.dir = Point{2, 1}, core.DirRight

	stepPac(g, sim, press(core.ActionDown))
	if g.pac != (Point{3, 1}) || g.want != core.DirDown {
		t.Fatalf("blocked turn should keep heading and queue: pac=%v want=%v", g.pac, g.want)
	}

	stepPac(g, sim, core.NewInputFrame())
	if g.pac != (Point{4, 1}) || g.want != core.DirDown {
		t.Fatalf("queued turn should survive empty frames: pac=%v want=%v", g.pac, g.want)
	}

	stepPac(g, sim, core.NewInputFrame())
	if g.pac != (Point{4, 2}) || g.dir != core.DirDown {
		t.Errorf("turn should commit when legal: pac=%v dir=%v", g.pac, g.dir)
	}
	if g.want != core.DirNone {
		t.Errorf("committed request should clear, want=%v", g.want)
	}
}

func TestTunnelWrap(t *testing.T) {
	tests := []struct {
		name     string
		from     Point
		dir      core.Direction
		expected Point
	}{
		{"left edge", Point{0, 9}, core.DirLeft, Point{18, 9}},
		{"right edge", Point{18, 9}, core.DirRight, Point{0, 9}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, sim := newGame(t, 1)
			park(g)
			g.pac, g.dir = tc.from, tc.dir

			stepPac(g, sim, core.NewInputFrame())

			if g.pac != tc.expected {
				t.Errorf("pac = %v, expected %v", g.pac, tc.expected)
			}
		})
	}
}

func TestWallStopsPacman(t *testing.T) {
	g, sim := newGame(t, 1)
	park(g)
	g.pac, g.dir = Point{1, 1}, core.DirUp

	stepPac(g, sim, core.NewInputFrame())

	if g.pac != (Point{1, 1}) {
		t.Errorf("pac moved into a wall: %v", g.pac)
	}
}

func TestEatingDotsAndPellets(t *testing.T) {
	g, sim := newGame(t, 1)
	park(g)
	before := g.board.Remaining()

	g.pac, g.dir = Point{2, 1}, core.DirRight
	stepPac(g, sim, core.NewInputFrame())
	if sim.Progress().Score() != 10 || g.board.Remaining() != before-1 {
		t.Fatalf("dot: score %d remaining %d", sim.Progress().Score(), g.board.Remaining())
	}

	g.pac, g.dir = Point{1, 3}, core.DirUp
	events := stepPac(g, sim, core.NewInputFrame())
	if sim.Progress().Score() != 60 {
		t.Errorf("pellet: score %d, expected 60", sim.Progress().Score())
	}
	for _, gh := range g.ghosts {
		if gh.Mode != Frightened || gh.Fright != g.cfg.FrightenedTicks {
			t.Errorf("%s should be frightened, mode %v fright %d", gh.Name, gh.Mode, gh.Fright)
		}
	}
	found := false
	for _, e := range events {
		found = found || e.Kind == core.EventPowerUp
	}
	if !found {
		t.Error("pellet should emit a power-up event")
	}
}

func TestContact(t *testing.T) {
	tests := []struct {
		name      string
		mode      GhostMode
		score     int
		lives     int
		ghostMode GhostMode
	}{
		{"frightened ghost is eaten", Frightened, 210, 3, Eaten},
		{"eaten ghost is harmless", Eaten, 10, 3, Eaten},
		{"hunting ghost costs a life", Scatter, 10, 2, Scatter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, sim := newGame(t, 1)
			park(g)
			gh := g.ghosts[0]
			gh.InHouse = false
			gh.Pos = Point{3, 1}
			gh.Mode = tc.mode
			gh.Fright = 100
			g.pac, g.dir = Point{2, 1}, core.DirRight

			stepPac(g, sim, core.NewInputFrame())

			if sim.Progress().Score() != tc.score || sim.Progress().Lives() != tc.lives {
				t.Errorf("score %d lives %d, expected %d and %d",
					sim.Progress().Score(), sim.Progress().Lives(), tc.score, tc.lives)
			}
			if g.ghosts[0].Mode != tc.ghostMode {
				t.Errorf("ghost mode %v, expected %v", g.ghosts[0].Mode, tc.ghostMode)
			}
		})
	}
}

func TestLifeLossResetsPositions(t *testing.T) {
	g, sim := newGame(t, 1)
	park(g)
	gh := g.ghosts[1]
	gh.InHouse = false
	gh.Pos = Point{3, 1}
	g.pac, g.dir = Point{2, 1}, core.DirRight

	stepPac(g, sim, core.NewInputFrame())

	if g.pac != start || g.dir != core.DirLeft {
		t.Errorf("pac should return to start, got %v %v", g.pac, g.dir)
	}
	for _, gh := range g.ghosts {
		if gh.Pos != gh.Home || !gh.InHouse {
			t.Errorf("%s should be home, at %v", gh.Name, gh.Pos)
		}
	}
}

func TestSteerNeverReverses(t *testing.T) {
	g, _ := newGame(t, 1)
	gh := &Ghost{Pos: Point{4, 3}, Dir: core.DirRight}

	// The target sits right behind the ghost, but turning back is not allowed.
	if d := g.steer(gh, Point{1, 3}); d != core.DirDown {
		t.Errorf("steer = %v, expected down (tie with up broken by order)", d)
	}
	if d := g.steer(gh, Point{17, 1}); d != core.DirRight {
		t.Errorf("steer = %v, expected right", d)
	}

	// Walled in ahead, only the reverse is left.
	g.board.cells[1][3] = Wall
	gh = &Ghost{Pos: Point{2, 1}, Dir: core.DirRight}
	if d := g.steer(gh, Point{17, 1}); d != core.DirLeft {
		t.Errorf("dead end steer = %v, expected reverse", d)
	}
}

func TestModeSwitchReverses(t *testing.T) {
	g, sim := newGame(t, 1)
	gh := g.ghosts[0]
	gh.InHouse = false
	gh.Pos, gh.Dir = Point{4, 3}, core.DirRight
	gh.wait = 0
	g.modeTimer = 1

	sim.Tick(core.NewInputFrame())

	if g.mode != Chase || g.modeTimer != g.cfg.ChaseTicks {
		t.Fatalf("mode %v timer %d, expected chase for %d", g.mode, g.modeTimer, g.cfg.ChaseTicks)
	}
	if gh.Mode != Chase || gh.Dir != core.DirLeft {
		t.Errorf("ghost should switch to chase and reverse, got %v %v", gh.Mode, gh.Dir)
	}
}

func TestGhostLeavesHouse(t *testing.T) {
	g, sim := newGame(t, 1)
	blinky := g.ghosts[0]

	for i := 0; i < g.ghostEvery; i++ {
		sim.Tick(core.NewInputFrame())
	}

	if blinky.InHouse || blinky.Pos.Y != houseExitRow {
		t.Errorf("blinky should leave at once, in=%v pos=%v", blinky.InHouse, blinky.Pos)
	}
	if !g.ghosts[3].InHouse {
		t.Error("clyde should still wait in the house")
	}
}

func TestBoardClearAdvancesLevel(t *testing.T) {
	g, sim := newGame(t, 1)
	park(g)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if x != 3 || y != 1 {
				g.board.Eat(x, y)
			}
		}
	}
	g.pac, g.dir = Point{2, 1}, core.DirRight

	stepPac(g, sim, core.NewInputFrame())
	if sim.Progress().Level() != 2 || !g.clearing {
		t.Fatalf("level %d clearing %v, expected level 2 while settling", sim.Progress().Level(), g.clearing)
	}

	for i := 0; i < sim.Config().Ticks(1000); i++ {
		sim.Tick(core.NewInputFrame())
	}
	if g.clearing || g.board.Remaining() != NewBoard().Remaining() {
		t.Errorf("a fresh board should be dealt, remaining %d", g.board.Remaining())
	}
	if g.pac != start {
		t.Errorf("pac should restart, got %v", g.pac)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() string {
		g, sim := newGame(t, 42)
		moves := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}
		for i := 0; i < 2000 && sim.Mode() == core.ModePlaying; i++ {
			in := core.NewInputFrame()
			if i%90 == 0 {
				in.Set(moves[(i/90)%len(moves)])
			}
			sim.Tick(in)
		}
		return g.DebugState()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed diverged:\n%s\n%s", a, b)
	}
}

func TestRender(t *testing.T) {
	g, sim := newGame(t, 1)
	screen := core.NewScreen(80, 24)
	sim.Render(screen)

	ox := (80-Width*2)/2 - 1
	if screen.Get(ox+1, core.HUDRows+1) != '█' {
		t.Error("top-left maze wall should be drawn")
	}
	if screen.Get(ox+1+g.pac.X*2, core.HUDRows+1+g.pac.Y) == ' ' {
		t.Error("pac-man should be drawn")
	}
}
