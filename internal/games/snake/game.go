package snake

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Point represents a grid cell.
type Point struct {
	X, Y int
}

// Game implements the Snake game.
type Game struct {
	cfg config.SnakeConfig
	dm  *config.DifficultyManager

	// Snake state
	snake     []Point // Head at index 0
	direction core.Direction
	nextDir   core.Direction // Buffered direction for next move
	food      Point

	moveEveryTicks int
	moveTicker     int // Counts ticks until next move
	foodEaten      int
}

// New creates a Snake game from a configuration.
func New(cfg config.SnakeConfig) *Game {
	return &Game{
		cfg: cfg,
		dm:  config.NewDifficultyManager(cfg.Difficulty),
	}
}

func init() {
	registry.Register("snake", "Snake", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("snake", opts.ConfigPath, config.DefaultSnakeConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "snake" }

// Title returns the display name.
func (g *Game) Title() string { return "Snake" }

// Params returns a single-life session.
func (g *Game) Params() core.Params { return core.Params{Lives: 1} }

// Setup places a one-cell snake heading right and spawns the first food.
func (g *Game) Setup(ctx *core.Ctx) {
	g.snake = []Point{{X: g.cfg.Start.X, Y: g.cfg.Start.Y}}
	g.direction = core.DirRight
	g.nextDir = core.DirRight
	g.moveTicker = 0
	g.foodEaten = 0
	g.updateSpeed(ctx, 1)
	g.spawnFood(ctx.Rand())
}

func (g *Game) updateSpeed(ctx *core.Ctx, level int) {
	g.moveEveryTicks = ctx.Config().Ticks(g.dm.IntervalMs(g.cfg.Move, level))
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood(rng core.Rand) bool {
	var emptyCells []Point
	for y := 0; y < g.cfg.Grid.Height; y++ {
		for x := 0; x < g.cfg.Grid.Width; x++ {
			p := Point{X: x, Y: y}
			if !g.isSnakeAt(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}

	if len(emptyCells) == 0 {
		g.food = Point{X: -1, Y: -1}
		return false
	}

	g.food = emptyCells[rng.Intn(len(emptyCells))]
	return true
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// Update buffers direction requests and moves on the move interval.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	// Prevent instant reversal
	if d := in.Direction; d != core.DirNone && d != g.direction.Opposite() {
		g.nextDir = d
	}

	g.moveTicker++
	if g.moveTicker < g.moveEveryTicks {
		return
	}
	g.moveTicker = 0
	g.moveSnake(ctx)
}

// moveSnake moves the snake one cell in the buffered direction.
func (g *Game) moveSnake(ctx *core.Ctx) {
	g.direction = g.nextDir

	head := g.snake[0]
	dx, dy := g.direction.Delta()
	newHead := Point{X: head.X + dx, Y: head.Y + dy}

	if newHead.X < 0 || newHead.X >= g.cfg.Grid.Width ||
		newHead.Y < 0 || newHead.Y >= g.cfg.Grid.Height {
		ctx.LoseLife("wall")
		return
	}

	eating := newHead == g.food

	// The tail moves away this step unless the snake grows.
	checkLen := len(g.snake)
	if !eating {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == newHead {
			ctx.LoseLife("self")
			return
		}
	}

	g.snake = append([]Point{newHead}, g.snake...)
	if !eating {
		g.snake = g.snake[:len(g.snake)-1]
		return
	}

	ctx.Award(g.cfg.FoodPoints)
	g.foodEaten++
	if g.cfg.FoodsPerLevel > 0 && g.foodEaten%g.cfg.FoodsPerLevel == 0 {
		ctx.NextLevel()
		g.updateSpeed(ctx, ctx.Level())
	}
	if !g.spawnFood(ctx.Rand()) {
		// The snake fills the board.
		ctx.Finish()
	}
}

// Render draws the grid, snake and food.
func (g *Game) Render(dst *core.Screen, v core.View) {
	vp := core.NewViewport(dst, float64(g.cfg.Grid.Width), float64(g.cfg.Grid.Height), core.HUDRows)
	vp.Frame(core.ColorGray)

	if g.food.X >= 0 {
		vp.FillBox(cellBox(g.food), '●', core.ColorBrightRed)
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		if i == 0 {
			vp.FillBox(cellBox(g.snake[i]), '█', core.ColorBrightGreen)
		} else {
			vp.FillBox(cellBox(g.snake[i]), '▓', core.ColorGreen)
		}
	}
}

func cellBox(p Point) core.Box {
	return core.Box{X: float64(p.X), Y: float64(p.Y), W: 1, H: 1}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	return fmt.Sprintf("%+v", g.Snapshot())
}
