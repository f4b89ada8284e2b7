// Package galaga implements Galaga: a swaying formation of bosses,
// butterflies and bees that dive at the player's ship.
package galaga

import (
	"fmt"
	"math"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Enemy types.
const (
	Boss      = "boss"
	Butterfly = "butterfly"
	Bee       = "bee"
)

type enemyType struct {
	name      string
	size      core.Vec
	fireDelay float64 // upper bound of the first shot timer
	color     core.Color
}

// rows lists the formation's enemy type per row, top to bottom.
var rows = []enemyType{
	{Boss, core.Vec{X: 25, Y: 20}, 120, core.ColorOrange},
	{Boss, core.Vec{X: 25, Y: 20}, 120, core.ColorOrange},
	{Butterfly, core.Vec{X: 22, Y: 18}, 180, core.ColorPink},
	{Butterfly, core.Vec{X: 22, Y: 18}, 180, core.ColorPink},
	{Bee, core.Vec{X: 20, Y: 15}, 240, core.ColorBrightYellow},
	{Bee, core.Vec{X: 20, Y: 15}, 240, core.ColorBrightYellow},
}

type phase uint8

const (
	inFormation phase = iota
	diving
	leaving
	returning
)

// flight tracks where an enemy belongs and what it is doing.
type flight struct {
	slot  core.Vec
	phase phase
	index int
}

// Game implements Galaga.
type Game struct {
	cfg config.GalagaConfig
	dm  *config.DifficultyManager

	store   *core.Store
	player  *core.Entity
	flights map[int]*flight
	ledger  core.HitLedger

	wave      int
	steps     int
	clearing  bool
	stepEvery int
	stepTimer int
}

// New creates a Galaga game.
func New(cfg config.GalagaConfig) *Game {
	return &Game{
		cfg:   cfg,
		dm:    config.NewDifficultyManager(cfg.Difficulty),
		store: core.NewStore(),
	}
}

func init() {
	registry.Register("galaga", "Galaga", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("galaga", opts.ConfigPath, config.DefaultGalagaConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

func (g *Game) ID() string          { return "galaga" }
func (g *Game) Title() string       { return "Galaga" }
func (g *Game) Params() core.Params { return core.Params{Lives: g.cfg.Lives} }

// Setup places the ship and the first formation.
func (g *Game) Setup(ctx *core.Ctx) {
	g.store.Clear()
	g.stepEvery = ctx.Config().Ticks(g.cfg.StepMs)
	g.stepTimer = 0
	g.steps = 0
	g.wave = 1
	g.clearing = false

	p := g.cfg.Player
	g.player = g.store.Add(&core.Entity{
		Pos:  core.Vec{X: (g.cfg.Arena.Width - p.Width) / 2, Y: p.Y},
		Size: core.Vec{X: p.Width, Y: p.Height},
		Data: &core.PlayerData{},
	})
	g.formation(ctx)
}

// formation lines up a fresh wave.
func (g *Game) formation(ctx *core.Ctx) {
	g.clearing = false
	g.flights = make(map[int]*flight)
	f := g.cfg.Formation
	rng := ctx.Rand()

	for row := 0; row < f.Rows; row++ {
		t := rows[min(row, len(rows)-1)]
		for col := 0; col < f.Cols; col++ {
			slot := core.Vec{X: f.StartX + float64(col)*f.SpacingX, Y: f.StartY + float64(row)*f.SpacingY}
			e := g.store.Add(&core.Entity{
				Pos:  slot,
				Size: t.size,
				Data: &core.EnemyData{
					Type:    t.name,
					Health:  1,
					AITimer: int(rng.Float64() * t.fireDelay),
					Points:  g.points(t.name),
				},
			})
			g.flights[e.ID] = &flight{slot: slot}
		}
	}
}

func (g *Game) points(kind string) int {
	switch kind {
	case Boss:
		return g.cfg.Points.Boss
	case Butterfly:
		return g.cfg.Points.Butterfly
	}
	return g.cfg.Points.Bee
}

// Update moves the ship every tick and the rest of the field on the
// step interval.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	maxX := g.cfg.Arena.Width - g.player.Size.X
	if in.Has(core.ActionLeft) {
		g.player.Pos.X = math.Max(0, g.player.Pos.X-g.cfg.Player.Speed)
	}
	if in.Has(core.ActionRight) {
		g.player.Pos.X = math.Min(maxX, g.player.Pos.X+g.cfg.Player.Speed)
	}
	if in.JustPressed(core.ActionFire) {
		g.fire(ctx)
	}

	g.stepTimer++
	if g.stepTimer < g.stepEvery {
		return
	}
	g.stepTimer = 0
	g.step(ctx)
}

func (g *Game) fire(ctx *core.Ctx) {
	b := g.cfg.Bullet
	g.store.Add(&core.Entity{
		Pos:  core.Vec{X: g.player.Pos.X + g.player.Size.X/2 - b.Width/2, Y: g.player.Pos.Y},
		Vel:  core.Vec{Y: -b.Speed},
		Size: core.Vec{X: b.Width, Y: b.Height},
		Data: &core.ProjectileData{Speed: b.Speed, Owner: core.OwnerPlayer},
	})
	ctx.Emit(core.EventShoot, 0, "player")
}

func (g *Game) step(ctx *core.Ctx) {
	g.steps++
	g.ledger.Begin()
	if pd := g.player.Data.(*core.PlayerData); pd.Invulnerable > 0 {
		pd.Invulnerable--
	}

	h := g.cfg.Arena.Height
	for _, e := range g.store.Of(core.KindProjectile) {
		e.Advance()
	}
	g.store.RemoveIf(func(e *core.Entity) bool {
		return e.Kind() == core.KindProjectile && (e.Pos.Y < -e.Size.Y || e.Pos.Y > h)
	})

	sway := math.Sin(float64(g.steps)*g.cfg.StepMs*0.002) * g.cfg.Formation.Sway
	for _, e := range g.store.Of(core.KindEnemy) {
		g.fly(ctx, e, sway)
	}

	g.playerShots(ctx)
	if g.hazards(ctx) {
		return
	}

	if !g.clearing && g.store.Count(core.KindEnemy) == 0 {
		g.clearing = true
		g.wave++
		ctx.Emit(core.EventBlip, g.wave, "wave")
		if (g.wave-1)%g.cfg.WavesPerLevel == 0 {
			ctx.NextLevel()
		}
		ctx.After(ctx.SettleTicks(), g.formation)
	}
}

// fly advances one enemy along its formation slot or dive path and lets
// it shoot.
func (g *Game) fly(ctx *core.Ctx, e *core.Entity, sway float64) {
	rng := ctx.Rand()
	f := g.flights[e.ID]
	d := g.cfg.Dive

	switch f.phase {
	case inFormation:
		e.Pos = core.Vec{X: f.slot.X + sway, Y: f.slot.Y}
		if rng.Float64() < d.ChancePerLevel*float64(ctx.Level())*g.dm.Tier() {
			f.phase, f.index = diving, 0
		}
	case diving:
		if f.index < d.Steps {
			p := float64(f.index) / float64(d.Steps)
			e.Pos.X = f.slot.X + math.Sin(p*math.Pi*4)*d.Amplitude
			e.Pos.Y = f.slot.Y + p*d.Depth
			f.index++
		} else {
			f.phase = leaving
		}
	case leaving:
		e.Pos.Y += d.ReturnSpeed
		if e.Pos.Y > g.cfg.Arena.Height {
			e.Pos = core.Vec{X: f.slot.X, Y: -50}
			f.phase = returning
		}
	case returning:
		e.Pos.Y += d.ReturnSpeed
		if e.Pos.Y >= f.slot.Y {
			e.Pos.Y = f.slot.Y
			f.phase = inFormation
		}
	}

	en := e.Enemy()
	en.AITimer--
	if en.AITimer <= 0 && rng.Float64() < g.cfg.Fire.Chance {
		b := g.cfg.EnemyBullet
		g.store.Add(&core.Entity{
			Pos:  core.Vec{X: e.Pos.X + e.Size.X/2, Y: e.Pos.Y + e.Size.Y},
			Vel:  core.Vec{Y: b.Speed},
			Size: core.Vec{X: b.Width, Y: b.Height},
			Data: &core.ProjectileData{Speed: b.Speed, Owner: core.OwnerEnemy},
		})
		fd := g.cfg.Fire
		en.AITimer = int(fd.MinDelay + rng.Float64()*(fd.MaxDelay-fd.MinDelay))
	}
}

// playerShots removes each enemy hit by a player bullet, with the bullet.
func (g *Game) playerShots(ctx *core.Ctx) {
	for _, b := range g.store.Of(core.KindProjectile) {
		if b.Projectile().Owner != core.OwnerPlayer {
			continue
		}
		hit := core.FirstOverlap(b.Bounds(), g.store.Of(core.KindEnemy))
		if hit == nil {
			continue
		}
		g.store.Remove(b.ID)
		g.store.Remove(hit.ID)
		delete(g.flights, hit.ID)
		ctx.Award(hit.Enemy().Points)
		ctx.Emit(core.EventBlip, hit.Enemy().Points, hit.Enemy().Type)
	}
}

// hazards applies enemy bullets and diving enemies to the ship. Only the
// first hazard in a step costs a life. It reports whether the ship died.
func (g *Game) hazards(ctx *core.Ctx) bool {
	body := g.player.Bounds()
	pd := g.player.Data.(*core.PlayerData)
	hit, cause := false, ""

	for _, b := range g.store.Of(core.KindProjectile) {
		if b.Projectile().Owner != core.OwnerEnemy || !body.Overlaps(b.Bounds()) {
			continue
		}
		g.store.Remove(b.ID)
		if pd.Invulnerable == 0 && g.ledger.Strike(g.player.ID) {
			hit, cause = true, "bullet"
		}
	}
	for _, e := range g.store.Of(core.KindEnemy) {
		if g.flights[e.ID].phase == inFormation || !body.Overlaps(e.Bounds()) {
			continue
		}
		g.store.Remove(e.ID)
		delete(g.flights, e.ID)
		if pd.Invulnerable == 0 && g.ledger.Strike(g.player.ID) {
			hit, cause = true, "ram"
		}
	}
	if !hit {
		return false
	}

	if ctx.LoseLife(cause) {
		g.store.RemoveIf(func(e *core.Entity) bool {
			p := e.Projectile()
			return p != nil && p.Owner == core.OwnerEnemy
		})
		pd.Invulnerable = g.stepsFor(1000)
	}
	return true
}

func (g *Game) stepsFor(ms float64) int {
	return max(1, int(math.Round(ms/g.cfg.StepMs)))
}

// Render draws the ship, formation and shots.
func (g *Game) Render(dst *core.Screen, v core.View) {
	vp := core.NewViewport(dst, g.cfg.Arena.Width, g.cfg.Arena.Height, core.HUDRows)
	vp.Frame(core.ColorGray)

	for i := 0; i < 30; i++ {
		x := float64((i * 37) % int(g.cfg.Arena.Width))
		y := math.Mod(float64(i*53)+float64(v.Tick), g.cfg.Arena.Height)
		vp.Plot(core.Vec{X: x, Y: y}, '.', core.ColorGray)
	}

	for _, e := range g.store.All() {
		switch e.Kind() {
		case core.KindEnemy:
			c := core.ColorBrightYellow
			for _, t := range rows {
				if t.name == e.Enemy().Type {
					c = t.color
					break
				}
			}
			vp.FillBox(e.Bounds(), 'W', c)
		case core.KindProjectile:
			if e.Projectile().Owner == core.OwnerPlayer {
				vp.FillBox(e.Bounds(), '|', core.ColorBrightCyan)
			} else {
				vp.FillBox(e.Bounds(), '*', core.ColorBrightRed)
			}
		}
	}

	if pd := g.player.Data.(*core.PlayerData); pd.Invulnerable == 0 || v.Tick%8 < 4 {
		vp.FillBox(g.player.Bounds(), 'A', core.ColorBrightWhite)
	}
	vp.Text(vp.Rows()-1, fmt.Sprintf("WAVE %d", g.wave), core.ColorGray)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	divers := 0
	for _, f := range g.flights {
		if f.phase != inFormation {
			divers++
		}
	}
	return fmt.Sprintf("ship=%.0f wave=%d enemies=%d divers=%d shots=%d",
		g.player.Pos.X, g.wave, g.store.Count(core.KindEnemy), divers, g.store.Count(core.KindProjectile))
}
