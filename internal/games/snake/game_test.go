package snake

import (
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

func newGame(t *testing.T, seed int64, opts ...core.Option) (*Game, *core.Simulation) {
	t.Helper()
	g := New(config.DefaultSnakeConfig())
	sim := core.New(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}, opts...)
	t.Cleanup(sim.Close)
	sim.Start()
	return g, sim
}

// stepOnce makes the next tick a movement tick.
func stepOnce(g *Game, sim *core.Simulation, in core.InputFrame) {
	g.moveTicker = g.moveEveryTicks - 1
	sim.Tick(in)
}

func TestInitialState(t *testing.T) {
	g, _ := newGame(t, 1)

	if len(g.snake) != 1 || g.snake[0] != (Point{X: 10, Y: 10}) {
		t.Fatalf("snake = %v, expected a single cell at (10,10)", g.snake)
	}
	if g.direction != core.DirRight {
		t.Errorf("initial direction = %v, expected right", g.direction)
	}
	if g.moveEveryTicks != 9 {
		t.Errorf("moveEveryTicks = %d, expected 9 (150ms at 60 tps)", g.moveEveryTicks)
	}
}

func TestEatFoodGrowsAndScores(t *testing.T) {
	g, sim := newGame(t, 1)
	g.food = Point{X: 11, Y: 10}

	stepOnce(g, sim, core.NewInputFrame())

	if len(g.snake) != 2 {
		t.Fatalf("snake length = %d, expected 2", len(g.snake))
	}
	if g.snake[0] != (Point{X: 11, Y: 10}) {
		t.Errorf("head = %v, expected (11,10)", g.snake[0])
	}
	if got := sim.Progress().Score(); got != 10 {
		t.Errorf("score = %d, expected 10", got)
	}
	if g.isSnakeAt(g.food) {
		t.Errorf("new food %v spawned on the snake", g.food)
	}
}

func TestFoodSpawnValidity(t *testing.T) {
	g, _ := newGame(t, 999)
	rng := core.NewRand(5)

	g.snake = nil
	for x := 0; x < 20; x++ {
		g.snake = append(g.snake, Point{X: x, Y: 3}, Point{X: x, Y: 4})
	}

	for i := 0; i < 200; i++ {
		if !g.spawnFood(rng) {
			t.Fatal("board has free cells, spawn should succeed")
		}
		if g.isSnakeAt(g.food) {
			t.Fatalf("food spawned on snake at %v", g.food)
		}
		if g.food.X < 0 || g.food.X >= 20 || g.food.Y < 0 || g.food.Y >= 20 {
			t.Fatalf("food spawned out of bounds at %v", g.food)
		}
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g, sim := newGame(t, 42)

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	sim.Tick(in)
	if g.nextDir != core.DirRight {
		t.Errorf("reversal should be rejected, nextDir = %v", g.nextDir)
	}

	in.Clear()
	in.Set(core.ActionDown)
	sim.Tick(in)
	if g.nextDir != core.DirDown {
		t.Errorf("nextDir = %v, expected down", g.nextDir)
	}
}

func TestCollisions(t *testing.T) {
	tests := []struct {
		name     string
		snake    []Point
		dir      core.Direction
		gameOver bool
	}{
		{
			name:     "wall",
			snake:    []Point{{X: 19, Y: 10}},
			dir:      core.DirRight,
			gameOver: true,
		},
		{
			name:     "self",
			snake:    []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 6, Y: 4}},
			dir:      core.DirRight,
			gameOver: true,
		},
		{
			name:     "chasing the tail",
			snake:    []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}},
			dir:      core.DirRight,
			gameOver: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, sim := newGame(t, 7)
			g.snake = tc.snake
			g.direction, g.nextDir = tc.dir, tc.dir
			g.food = Point{X: 0, Y: 0}

			stepOnce(g, sim, core.NewInputFrame())

			if over := sim.Mode() == core.ModeGameOver; over != tc.gameOver {
				t.Errorf("game over = %v, expected %v", over, tc.gameOver)
			}
		})
	}
}

func TestLevelUpSpeedsUp(t *testing.T) {
	g, sim := newGame(t, 3)
	before := g.moveEveryTicks
	g.foodEaten = 4
	g.food = Point{X: 11, Y: 10}

	stepOnce(g, sim, core.NewInputFrame())

	if sim.Progress().Level() != 2 {
		t.Fatalf("level = %d, expected 2", sim.Progress().Level())
	}
	if g.moveEveryTicks >= before {
		t.Errorf("moveEveryTicks = %d, expected less than %d", g.moveEveryTicks, before)
	}
}

func TestDeterminism(t *testing.T) {
	g1, sim1 := newGame(t, 12345)
	g2, sim2 := newGame(t, 12345)

	input := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		input.Clear()
		switch i {
		case 20:
			input.Set(core.ActionDown)
		case 60:
			input.Set(core.ActionLeft)
		case 100:
			input.Set(core.ActionUp)
		}
		sim1.Tick(input)
		sim2.Tick(input)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshots diverged:\n%+v\n%+v", g1.Snapshot(), g2.Snapshot())
	}
	if sim1.View() != sim2.View() {
		t.Errorf("views diverged: %+v vs %+v", sim1.View(), sim2.View())
	}
}

func TestRenderDrawsSnake(t *testing.T) {
	g, sim := newGame(t, 1)
	screen := core.NewScreen(80, 24)
	sim.Render(screen)

	found := false
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.Get(x, y) == '█' {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("snake head not rendered, snake at %v", g.snake)
	}
}
