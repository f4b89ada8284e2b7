// Package joust implements Joust: flap between ledges and stomp the
// riders from above.
package joust

import (
	"fmt"
	"math"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Platform is the obstacle variant for ledges.
const Platform = "platform"

// Enemy AI timing, in ticks.
const (
	firstThink  = 180
	thinkSpread = 180
	nextThink   = 120
	nextSpread  = 240
)

// Game implements Joust.
type Game struct {
	cfg config.JoustConfig
	dm  *config.DifficultyManager

	store    *core.Store
	player   *core.Entity
	facing   int
	cooldown int
	ledger   core.HitLedger
	clearing bool
}

// New creates a Joust game.
func New(cfg config.JoustConfig) *Game {
	return &Game{
		cfg:   cfg,
		dm:    config.NewDifficultyManager(cfg.Difficulty),
		store: core.NewStore(),
	}
}

func init() {
	registry.Register("joust", "Joust", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("joust", opts.ConfigPath, config.DefaultJoustConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

func (g *Game) ID() string          { return "joust" }
func (g *Game) Title() string       { return "Joust" }
func (g *Game) Params() core.Params { return core.Params{Lives: g.cfg.Lives} }

// Setup builds the ledges, the player and the first riders.
func (g *Game) Setup(ctx *core.Ctx) {
	g.store.Clear()
	g.clearing = false
	for _, p := range g.cfg.Platforms {
		g.store.Add(&core.Entity{
			Pos:  core.Vec{X: p.X, Y: p.Y},
			Size: core.Vec{X: p.Width, Y: p.Height},
			Data: &core.ObstacleData{Variant: Platform},
		})
	}
	g.player = g.store.Add(&core.Entity{
		Size: core.Vec{X: g.cfg.Player.Width, Y: g.cfg.Player.Height},
		Data: &core.PlayerData{},
	})
	g.resetPlayer()
	g.spawnEnemies(ctx)
}

func (g *Game) resetPlayer() {
	g.player.Pos = core.Vec{X: g.cfg.Player.StartX, Y: g.cfg.Player.StartY}
	g.player.Vel = core.Vec{}
	g.facing = 1
	g.cooldown = 0
}

func (g *Game) spawnEnemies(ctx *core.Ctx) {
	g.clearing = false
	e := g.cfg.Enemy
	for i := 0; i < e.Count; i++ {
		g.store.Add(&core.Entity{
			Pos:  core.Vec{X: e.StartX + float64(i)*e.SpacingX, Y: e.StartY},
			Size: core.Vec{X: e.Width, Y: e.Height},
			Data: &core.EnemyData{
				Type:    "rider",
				Health:  1,
				AITimer: firstThink + int(ctx.Rand().Float64()*thinkSpread),
				Points:  g.cfg.StompPoints,
			},
		})
	}
}

// Update runs player physics, rider AI and then jousts.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	g.ledger.Begin()
	g.movePlayer(in)
	for _, e := range g.store.Of(core.KindEnemy) {
		g.moveEnemy(ctx.Rand(), e)
	}
	if g.joust(ctx) || ctx.Over() {
		return
	}

	if !g.clearing && g.store.Count(core.KindEnemy) == 0 {
		g.clearing = true
		ctx.NextLevel()
		ctx.Award(g.cfg.WaveBonus)
		ctx.After(ctx.SettleTicks(), g.spawnEnemies)
	}
}

func (g *Game) movePlayer(in core.InputFrame) {
	p, pc := g.player, g.cfg.Player
	switch {
	case in.Has(core.ActionLeft):
		p.Vel.X = math.Max(-pc.Speed, p.Vel.X-pc.Accel)
		g.facing = -1
	case in.Has(core.ActionRight):
		p.Vel.X = math.Min(pc.Speed, p.Vel.X+pc.Accel)
		g.facing = 1
	default:
		p.Vel.X *= pc.Friction
	}

	if (in.Has(core.ActionUp) || in.Has(core.ActionFire)) && g.cooldown <= 0 {
		p.Vel.Y = g.cfg.Flap.Power
		g.cooldown = g.cfg.Flap.Cooldown
	}
	if g.cooldown > 0 {
		g.cooldown--
	}

	p.Vel.Y += g.cfg.Gravity
	p.Advance()
	p.Vel.Y = math.Min(p.Vel.Y, pc.MaxFall)

	g.land(p)
	g.bound(p)
}

// land puts a falling body on top of the first ledge it crosses.
func (g *Game) land(e *core.Entity) bool {
	for _, pl := range g.store.Of(core.KindObstacle) {
		if core.LandsOn(e.Bounds(), e.Vel.Y, pl.Bounds()) {
			e.Pos.Y = pl.Pos.Y - e.Size.Y
			e.Vel.Y = 0
			return true
		}
	}
	return false
}

// bound keeps a body inside the arena. It reports the side wall that
// stopped it (-1 left, 1 right, 0 none) and whether it hit the floor.
func (g *Game) bound(e *core.Entity) (wall int, floor bool) {
	w, h := g.cfg.Arena.Width, g.cfg.Arena.Height
	if e.Pos.X < 0 {
		e.Pos.X, wall = 0, -1
	}
	if e.Pos.X > w-e.Size.X {
		e.Pos.X, wall = w-e.Size.X, 1
	}
	if e.Pos.Y < 0 {
		e.Pos.Y, e.Vel.Y = 0, 0
	}
	if e.Pos.Y > h-e.Size.Y {
		e.Pos.Y, e.Vel.Y, floor = h-e.Size.Y, 0, true
	}
	return wall, floor
}

func (g *Game) moveEnemy(rng core.Rand, e *core.Entity) {
	en, ec := e.Enemy(), g.cfg.Enemy
	en.AITimer--
	if en.AITimer <= 0 {
		if e.Vel.Y > 3 && rng.Float64() < 0.2 {
			e.Vel.Y = g.cfg.Flap.Power * 0.5
		}
		if rng.Float64() < 0.15 {
			dir := 1.0
			if rng.Float64() < 0.5 {
				dir = -1
			}
			e.Vel.X += dir * 0.3
		}
		en.AITimer = nextThink + int(rng.Float64()*nextSpread)
	}

	e.Vel.Y += g.cfg.Gravity
	e.Advance()
	e.Vel.X *= 0.95

	maxVX := ec.MaxVX * g.dm.Tier()
	e.Vel.X = core.ClampF(e.Vel.X, -maxVX, maxVX)
	e.Vel.Y = core.ClampF(e.Vel.Y, -ec.MaxVY, ec.MaxVY)

	if g.land(e) {
		e.Vel.X *= 0.8
	}
	wall, floor := g.bound(e)
	switch wall {
	case -1:
		e.Vel.X = 0.3
	case 1:
		e.Vel.X = -0.3
	}
	if floor {
		e.Vel.X *= 0.5
	}
}

// joust resolves player-rider contact. The player wins from above while
// not rising; every rider is judged against the player as it was before
// any stomp this tick. It reports whether the player lost a life.
func (g *Game) joust(ctx *core.Ctx) bool {
	p := g.player
	body := p.Bounds()
	falling := p.Vel.Y >= 0
	stomped := false

	for _, e := range g.store.Of(core.KindEnemy) {
		if !body.Overlaps(e.Bounds()) {
			continue
		}
		if falling && body.Bottom() <= e.Center().Y {
			g.store.Remove(e.ID)
			ctx.Award(e.Enemy().Points)
			stomped = true
			continue
		}
		if g.ledger.Strike(p.ID) {
			if ctx.LoseLife("rider") {
				g.resetPlayer()
			}
			return true
		}
	}
	if stomped {
		p.Vel.Y = g.cfg.Player.Bounce
	}
	return false
}

// Render draws ledges, riders and the player.
func (g *Game) Render(dst *core.Screen, v core.View) {
	vp := core.NewViewport(dst, g.cfg.Arena.Width, g.cfg.Arena.Height, core.HUDRows)
	vp.Frame(core.ColorGray)

	for _, e := range g.store.All() {
		switch e.Kind() {
		case core.KindObstacle:
			vp.FillBox(e.Bounds(), '▀', core.ColorBrown)
		case core.KindEnemy:
			vp.FillBox(e.Bounds(), 'V', core.ColorBrightRed)
		}
	}
	glyph := '>'
	if g.facing < 0 {
		glyph = '<'
	}
	vp.FillBox(g.player.Bounds(), glyph, core.ColorBrightYellow)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	p := g.player
	return fmt.Sprintf("player=(%.2f,%.2f) v=(%.2f,%.2f) riders=%d",
		p.Pos.X, p.Pos.Y, p.Vel.X, p.Vel.Y, g.store.Count(core.KindEnemy))
}
