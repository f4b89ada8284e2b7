// Package crossy implements Crossy Road: hop a chicken across a road
// and a river laid out on a 3D plane, shown top-down.
package crossy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Obstacle variants.
const (
	Car = "car"
	Log = "log"
)

var (
	carSize = core.Vec{X: 2, Y: 0.6, Z: 1}
	logSize = core.Vec{X: 3, Y: 0.8, Z: 0.8}
)

// Game implements Crossy Road.
type Game struct {
	cfg config.CrossyConfig
	dm  *config.DifficultyManager

	player    *core.Entity
	heading   core.Direction
	jumping   bool
	jump      float64 // jump progress in [0, 1)
	obstacles *core.Store
}

// New creates a Crossy Road game.
func New(cfg config.CrossyConfig) *Game {
	return &Game{
		cfg:       cfg,
		dm:        config.NewDifficultyManager(cfg.Difficulty),
		obstacles: core.NewStore(),
	}
}

func init() {
	registry.Register("crossy", "Crossy Road", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("crossy", opts.ConfigPath, config.DefaultCrossyConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

func (g *Game) ID() string          { return "crossy" }
func (g *Game) Title() string       { return "Crossy Road" }
func (g *Game) Params() core.Params { return core.Params{Lives: g.cfg.Lives} }

// Setup puts the player at the near edge and fills the lanes.
func (g *Game) Setup(ctx *core.Ctx) {
	g.player = &core.Entity{Size: core.Vec{X: 0.8, Y: 1, Z: 0.8}, Data: &core.PlayerData{}}
	g.resetPlayer()
	g.fillLanes(ctx.Rand(), 1)
}

func (g *Game) resetPlayer() {
	g.player.Pos = core.Vec{Z: -g.cfg.Bound}
	g.heading = core.DirUp
	g.jumping = false
	g.jump = 0
}

// fillLanes places cars and logs. Even lanes run toward +x.
func (g *Game) fillLanes(rng core.Rand, level int) {
	g.obstacles.Clear()
	road, water := g.cfg.Road, g.cfg.Water

	for i, z := range road.Lanes {
		dir := laneDir(i)
		base := road.MinSpeed + rng.Float64()*road.SpeedRange
		speed := dir * g.dm.Speed(base, level, road.PerLevel)
		n := 2 + rng.Intn(2)
		for j := 0; j < n; j++ {
			g.obstacles.Add(&core.Entity{
				Pos:  core.Vec{X: (float64(j)*8 + rng.Float64()*4) * dir, Z: z},
				Vel:  core.Vec{X: speed},
				Size: carSize,
				Data: &core.ObstacleData{Variant: Car},
			})
		}
	}

	for i, z := range water.Lanes {
		dir := laneDir(i)
		speed := dir * (water.MinSpeed + rng.Float64()*water.SpeedRange)
		for j := 0; j < 2; j++ {
			g.obstacles.Add(&core.Entity{
				Pos:  core.Vec{X: (float64(j)*10 + rng.Float64()*3) * dir, Z: z},
				Vel:  core.Vec{X: speed},
				Size: logSize,
				Data: &core.ObstacleData{Variant: Log},
			})
		}
	}
}

func laneDir(i int) float64 {
	if i%2 == 0 {
		return 1
	}
	return -1
}

// Update hops on key presses, animates the jump, drifts the lanes and
// resolves the player's lane.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	if !g.jumping {
		g.hop(ctx, in)
		if ctx.Over() {
			return
		}
	}

	if g.jumping {
		g.jump += g.cfg.JumpStep
		if g.jump >= 1 {
			g.jumping, g.jump = false, 0
		}
	}
	g.player.Pos.Y = math.Sin(g.jump*math.Pi) * g.cfg.JumpHeight

	for _, e := range g.obstacles.All() {
		e.Pos.X += e.Vel.X
		switch {
		case e.Vel.X > 0 && e.Pos.X > g.cfg.WrapAt:
			e.Pos.X = -g.cfg.WrapAt
		case e.Vel.X < 0 && e.Pos.X < -g.cfg.WrapAt:
			e.Pos.X = g.cfg.WrapAt
		}
	}

	g.resolve(ctx)
}

func (g *Game) hop(ctx *core.Ctx, in core.InputFrame) {
	b, step := g.cfg.Bound, g.cfg.Hop
	p := g.player.Pos
	switch {
	case in.JustPressed(core.ActionUp):
		p.Z = math.Min(b, p.Z+step)
		g.heading = core.DirUp
	case in.JustPressed(core.ActionDown):
		p.Z = math.Max(-b, p.Z-step)
		g.heading = core.DirDown
	case in.JustPressed(core.ActionLeft):
		p.X = math.Max(-b, p.X-step)
		g.heading = core.DirLeft
	case in.JustPressed(core.ActionRight):
		p.X = math.Min(b, p.X+step)
		g.heading = core.DirRight
	default:
		return
	}
	ctx.Emit(core.EventBlip, 0, "hop")

	if p.Z >= b {
		ctx.Award(g.cfg.GoalPoints * ctx.Level())
		ctx.NextLevel()
		g.resetPlayer()
		g.fillLanes(ctx.Rand(), ctx.Level())
		return
	}
	g.player.Pos = p
	g.jumping, g.jump = true, 0
}

func onLane(z float64, lanes []float64) bool {
	for _, l := range lanes {
		if math.Abs(z-l) < 1e-9 {
			return true
		}
	}
	return false
}

// resolve applies the player's lane. A log under the player carries it
// and is checked before drowning.
func (g *Game) resolve(ctx *core.Ctx) {
	p := &g.player.Pos

	switch {
	case onLane(p.Z, g.cfg.Road.Lanes):
		for _, e := range g.obstacles.All() {
			if e.Obstacle().Variant != Car {
				continue
			}
			if math.Abs(e.Pos.X-p.X) < g.cfg.Road.HitX && math.Abs(e.Pos.Z-p.Z) < g.cfg.Road.HitZ {
				g.die(ctx, "car")
				return
			}
		}
	case onLane(p.Z, g.cfg.Water.Lanes):
		for _, e := range g.obstacles.All() {
			if e.Obstacle().Variant != Log {
				continue
			}
			if math.Abs(e.Pos.X-p.X) < g.cfg.Water.SupportX && math.Abs(e.Pos.Z-p.Z) < 1 {
				p.X = core.ClampF(p.X+e.Vel.X, -g.cfg.Bound, g.cfg.Bound)
				return
			}
		}
		g.die(ctx, "water")
	}
}

func (g *Game) die(ctx *core.Ctx, cause string) {
	if ctx.LoseLife(cause) {
		g.resetPlayer()
	}
}

// Render draws the world from above with +z toward the top of the screen.
func (g *Game) Render(dst *core.Screen, v core.View) {
	b := g.cfg.Bound
	size := 2*b + 2
	vp := core.NewViewport(dst, size, size, core.HUDRows)
	vp.Frame(core.ColorGray)

	// row converts a world z to the top of its 2-unit band.
	row := func(z float64) float64 { return b - z }
	box := func(pos, sz core.Vec) core.Box {
		return core.Box{X: pos.X - sz.X/2 + b + 1, Y: row(pos.Z) + 1 - sz.Z/2, W: sz.X, H: sz.Z}
	}

	for _, z := range []float64{-b, 0, b} {
		c := core.ColorGreen
		if z == b {
			c = core.ColorYellow
		}
		vp.FillRow(row(z), 2, '░', c)
	}
	for _, z := range g.cfg.Road.Lanes {
		vp.FillRow(row(z), 2, '·', core.ColorGray)
	}
	for _, z := range g.cfg.Water.Lanes {
		vp.FillRow(row(z), 2, '~', core.ColorBlue)
	}

	for _, e := range g.obstacles.All() {
		if e.Obstacle().Variant == Car {
			vp.FillBox(box(e.Pos, e.Size), '█', core.ColorBrightRed)
		} else {
			vp.FillBox(box(e.Pos, e.Size), '=', core.ColorBrown)
		}
	}

	glyph := '@'
	if g.jumping {
		glyph = '^'
	}
	vp.Plot(box(g.player.Pos, g.player.Size).Center(), glyph, core.ColorBrightGreen)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	p := g.player.Pos
	return fmt.Sprintf("player=(%.2f,%.2f,%.2f) heading=%s jumping=%v obstacles=%d",
		p.X, p.Y, p.Z, g.heading, g.jumping, g.obstacles.Len())
}
