// Package frogger implements Frogger: hop across a road of cars and a
// river of logs and diving turtles.
package frogger

import (
	"fmt"
	"math"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Obstacle variants.
const (
	Car    = "car"
	Log    = "log"
	Turtle = "turtle"
)

// Game implements Frogger.
type Game struct {
	cfg config.FroggerConfig
	dm  *config.DifficultyManager

	frog      core.Vec
	obstacles *core.Store

	stepEvery int
	stepTimer int
}

// New creates a Frogger game.
func New(cfg config.FroggerConfig) *Game {
	return &Game{
		cfg:       cfg,
		dm:        config.NewDifficultyManager(cfg.Difficulty),
		obstacles: core.NewStore(),
	}
}

func init() {
	registry.Register("frogger", "Frogger", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("frogger", opts.ConfigPath, config.DefaultFroggerConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

func (g *Game) ID() string          { return "frogger" }
func (g *Game) Title() string       { return "Frogger" }
func (g *Game) Params() core.Params { return core.Params{Lives: g.cfg.Lives} }

// Setup lays out the lanes and puts the frog at the bottom.
func (g *Game) Setup(ctx *core.Ctx) {
	g.stepEvery = ctx.Config().Ticks(g.cfg.StepMs)
	g.stepTimer = 0
	g.resetFrog()
	g.buildLanes(ctx.Rand(), 1)
}

func (g *Game) resetFrog() {
	g.frog = core.Vec{X: g.cfg.Frog.StartX, Y: g.cfg.Frog.StartY}
}

func (g *Game) buildLanes(rng core.Rand, level int) {
	g.obstacles.Clear()
	road, water := g.cfg.Road, g.cfg.Water

	for lane := 0; lane < road.Lanes; lane++ {
		y := road.Top + float64(lane)*g.cfg.LaneHeight
		offset := 0.0
		if lane%2 == 1 {
			offset = road.OddOffset
		}
		for i := 0; i < road.CarsPerLane; i++ {
			g.obstacles.Add(&core.Entity{
				Pos:  core.Vec{X: float64(i)*road.Spacing + offset, Y: y},
				Size: core.Vec{X: road.Car.Width, Y: road.Car.Height},
				Data: &core.ObstacleData{Variant: Car},
			})
		}
	}

	for lane := 0; lane < water.Lanes; lane++ {
		y := water.Top + float64(lane)*g.cfg.LaneHeight
		if lane%2 == 0 {
			for i := 0; i < 2; i++ {
				g.obstacles.Add(&core.Entity{
					Pos:  core.Vec{X: float64(i)*200 + 50, Y: y},
					Size: core.Vec{X: water.LogWidth, Y: water.ItemHeight},
					Data: &core.ObstacleData{Variant: Log},
				})
			}
			continue
		}
		for i := 0; i < 3; i++ {
			g.obstacles.Add(&core.Entity{
				Pos:  core.Vec{X: float64(i)*120 + 30, Y: y},
				Size: core.Vec{X: water.TurtleWidth, Y: water.ItemHeight},
				Data: &core.ObstacleData{Variant: Turtle, Timer: rng.Float64() * 200},
			})
		}
	}

	g.setSpeeds(level)
}

// setSpeeds applies the level's lane speeds. Even lanes run right.
func (g *Game) setSpeeds(level int) {
	road := g.dm.Speed(g.cfg.Road.Speed, level, g.cfg.Road.PerLevel)
	water := g.dm.Speed(g.cfg.Water.Speed, level, g.cfg.Water.PerLevel)

	for _, e := range g.obstacles.All() {
		var speed, top float64
		if e.Obstacle().Variant == Car {
			speed, top = road, g.cfg.Road.Top
		} else {
			speed, top = water, g.cfg.Water.Top
		}
		if int(math.Round((e.Pos.Y-top)/g.cfg.LaneHeight))%2 == 1 {
			speed = -speed
		}
		e.Vel = core.Vec{X: speed}
	}
}

// Submerged reports whether a turtle is under water and cannot carry.
func Submerged(e *core.Entity) bool {
	o := e.Obstacle()
	return o != nil && o.Variant == Turtle && int(math.Floor(o.Timer/120))%3 == 2
}

// Update hops the frog on key presses and advances the lanes on the
// step interval.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	g.hop(ctx, in)
	if ctx.Over() {
		return
	}

	g.stepTimer++
	if g.stepTimer < g.stepEvery {
		return
	}
	g.stepTimer = 0

	g.moveObstacles()
	g.resolve(ctx)
}

func (g *Game) hop(ctx *core.Ctx, in core.InputFrame) {
	x, y := g.frog.X, g.frog.Y
	maxX := g.cfg.Arena.Width - g.cfg.Frog.Size
	maxY := g.cfg.Arena.Height - g.cfg.Frog.Size
	switch {
	case in.JustPressed(core.ActionUp):
		y = math.Max(0, y-g.cfg.Frog.HopY)
	case in.JustPressed(core.ActionDown):
		y = math.Min(maxY, y+g.cfg.Frog.HopY)
	case in.JustPressed(core.ActionLeft):
		x = math.Max(0, x-g.cfg.Frog.HopX)
	case in.JustPressed(core.ActionRight):
		x = math.Min(maxX, x+g.cfg.Frog.HopX)
	default:
		return
	}
	ctx.Emit(core.EventBlip, 0, "hop")

	if y <= g.cfg.Zones.Goal {
		ctx.Award(g.cfg.GoalPoints * ctx.Level())
		ctx.NextLevel()
		g.resetFrog()
		g.setSpeeds(ctx.Level())
		return
	}
	g.frog = core.Vec{X: x, Y: y}
}

func (g *Game) moveObstacles() {
	w := g.cfg.Arena.Width
	for _, e := range g.obstacles.All() {
		s := e.Vel.X
		switch {
		case s > 0:
			e.Pos.X = math.Mod(e.Pos.X+s, w+e.Size.X)
		case e.Pos.X+s < -e.Size.X:
			e.Pos.X = w
		default:
			e.Pos.X += s
		}
		if o := e.Obstacle(); o.Variant == Turtle {
			o.Timer++
		}
	}
}

// resolve checks the frog against its zone. On the river a log, then a
// surfaced turtle, carries the frog; only without support does it drown.
func (g *Game) resolve(ctx *core.Ctx) {
	z := g.cfg.Zones
	body := g.frogBox()

	switch {
	case g.frog.Y >= z.RoadTop && g.frog.Y < z.RoadBottom:
		for _, e := range g.obstacles.Of(core.KindObstacle) {
			if e.Obstacle().Variant == Car && body.Overlaps(e.Bounds()) {
				g.die(ctx, "car")
				return
			}
		}
	case g.frog.Y >= z.WaterTop && g.frog.Y < z.WaterBottom:
		if support := g.support(body); support != nil {
			maxX := g.cfg.Arena.Width - g.cfg.Frog.Size
			g.frog.X = core.ClampF(g.frog.X+support.Vel.X, 0, maxX)
			return
		}
		g.die(ctx, "water")
	}
}

// support returns the log or surfaced turtle under body, logs first.
func (g *Game) support(body core.Box) *core.Entity {
	var turtle *core.Entity
	for _, e := range g.obstacles.Of(core.KindObstacle) {
		o := e.Obstacle()
		if o.Variant == Car || !body.Overlaps(e.Bounds()) {
			continue
		}
		if o.Variant == Log {
			return e
		}
		if turtle == nil && !Submerged(e) {
			turtle = e
		}
	}
	return turtle
}

func (g *Game) die(ctx *core.Ctx, cause string) {
	if ctx.LoseLife(cause) {
		g.resetFrog()
	}
}

func (g *Game) frogBox() core.Box {
	return core.Box{X: g.frog.X, Y: g.frog.Y, W: g.cfg.Frog.Size, H: g.cfg.Frog.Size}
}

// Render draws the zones, lanes and frog.
func (g *Game) Render(dst *core.Screen, v core.View) {
	z := g.cfg.Zones
	vp := core.NewViewport(dst, g.cfg.Arena.Width, g.cfg.Arena.Height, core.HUDRows)
	vp.Frame(core.ColorGray)

	vp.FillRow(0, z.WaterTop, '░', core.ColorGreen)
	vp.FillRow(z.WaterTop, z.WaterBottom-z.WaterTop, '~', core.ColorBlue)
	vp.FillRow(z.WaterBottom, z.RoadTop-z.WaterBottom, '░', core.ColorGreen)
	vp.FillRow(z.RoadBottom, g.cfg.Arena.Height-z.RoadBottom, '░', core.ColorGreen)

	for _, e := range g.obstacles.All() {
		switch {
		case e.Obstacle().Variant == Car:
			vp.FillBox(e.Bounds(), '█', core.ColorBrightRed)
		case e.Obstacle().Variant == Log:
			vp.FillBox(e.Bounds(), '▬', core.ColorBrown)
		case Submerged(e):
			vp.FillBox(e.Bounds(), '~', core.ColorCyan)
		default:
			vp.FillBox(e.Bounds(), 'o', core.ColorBrightGreen)
		}
	}
	vp.FillBox(g.frogBox(), '@', core.ColorBrightYellow)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	return fmt.Sprintf("frog=(%.0f,%.0f) obstacles=%d", g.frog.X, g.frog.Y, g.obstacles.Len())
}
