// Package spacedefender implements Space Defender: a ship at the bottom
// of the screen shoots down waves of falling invaders.
package spacedefender

import (
	"fmt"
	"math"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Enemy types.
const (
	Basic = "basic"
	Fast  = "fast"
)

// Game implements Space Defender.
type Game struct {
	cfg config.SpaceDefenderConfig
	dm  *config.DifficultyManager

	store  *core.Store
	player *core.Entity
	ledger core.HitLedger

	time        int // ticks since start, drives the fire cadence
	bulletSpeed float64
	enemySpeed  float64
	quota       int
	spawned     int
	spawnTimer  int
	rapid       int // remaining rapid-fire ticks
}

// New creates a Space Defender game.
func New(cfg config.SpaceDefenderConfig) *Game {
	return &Game{
		cfg:   cfg,
		dm:    config.NewDifficultyManager(cfg.Difficulty),
		store: core.NewStore(),
	}
}

func init() {
	registry.Register("spacedefender", "Space Defender", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("spacedefender", opts.ConfigPath, config.DefaultSpaceDefenderConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

func (g *Game) ID() string          { return "spacedefender" }
func (g *Game) Title() string       { return "Space Defender" }
func (g *Game) Params() core.Params { return core.Params{Lives: g.cfg.Lives} }

// Setup centers the ship and arms the first wave.
func (g *Game) Setup(ctx *core.Ctx) {
	g.store.Clear()
	g.time, g.spawnTimer, g.spawned, g.rapid = 0, 0, 0, 0
	g.bulletSpeed = g.cfg.Bullet.Speed
	g.enemySpeed = g.cfg.Wave.BaseSpeed
	g.quota = g.cfg.Wave.Quota

	p, a := g.cfg.Player, g.cfg.Arena
	g.player = g.store.Add(&core.Entity{
		Pos:  core.Vec{X: a.Width/2 - p.Width/2, Y: a.Height - p.Height - 10},
		Size: core.Vec{X: p.Width, Y: p.Height},
		Data: &core.PlayerData{},
	})
}

// Update runs one frame: ship, shots, spawning, movement, collisions,
// pickups, particles and finally the wave check.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	g.time++
	g.ledger.Begin()

	g.moveShip(ctx, in)
	g.moveShots()
	g.spawn(ctx)

	if g.moveEnemies(ctx) {
		return
	}
	g.shots(ctx)
	if g.crashes(ctx) {
		return
	}
	g.pickups(ctx)
	g.particles()

	if g.spawned >= g.quota && g.store.Count(core.KindEnemy) == 0 {
		g.nextWave(ctx)
	}
}

func (g *Game) moveShip(ctx *core.Ctx, in core.InputFrame) {
	p := g.player
	if in.Has(core.ActionLeft) {
		p.Pos.X = math.Max(0, p.Pos.X-g.cfg.Player.Speed)
	}
	if in.Has(core.ActionRight) {
		p.Pos.X = math.Min(g.cfg.Arena.Width-p.Size.X, p.Pos.X+g.cfg.Player.Speed)
	}

	every := g.cfg.Fire.Every
	if g.rapid > 0 {
		every = g.cfg.Fire.RapidEvery
	}
	if !in.Has(core.ActionFire) || g.time%max(1, every) != 0 {
		return
	}
	b := g.cfg.Bullet
	g.store.Add(&core.Entity{
		Pos:  core.Vec{X: p.Pos.X + p.Size.X/2 - b.Width/2, Y: p.Pos.Y},
		Vel:  core.Vec{Y: -g.bulletSpeed},
		Size: core.Vec{X: b.Width, Y: b.Height},
		Data: &core.ProjectileData{Speed: g.bulletSpeed, Owner: core.OwnerPlayer},
	})
	ctx.Emit(core.EventShoot, 0, "player")
}

func (g *Game) moveShots() {
	for _, e := range g.store.Of(core.KindProjectile) {
		e.Advance()
	}
	g.store.RemoveIf(func(e *core.Entity) bool {
		return e.Kind() == core.KindProjectile && e.Pos.Y < -e.Size.Y
	})
}

// spawnInterval shortens by a fixed amount per wave.
func (g *Game) spawnInterval(wave int) int {
	w := g.cfg.Wave
	return max(1, w.SpawnInterval-wave*w.IntervalPerWave)
}

func (g *Game) spawn(ctx *core.Ctx) {
	if g.spawned >= g.quota {
		return
	}
	g.spawnTimer++
	if g.spawnTimer < g.spawnInterval(ctx.Level()) {
		return
	}
	g.spawnTimer = 0
	g.spawned++

	rng, ec := ctx.Rand(), g.cfg.Enemy
	speed := (g.enemySpeed + rng.Float64()*ec.SpeedRange) * g.dm.Tier()
	kind, size, points := Basic, ec.Size, ec.BasicPoints
	if rng.Float64() >= 1-ec.FastChance {
		kind, size, points = Fast, ec.FastSize, ec.FastPoints
		speed *= ec.FastMultiplier
	}
	health := 1
	if rng.Float64() >= 1-ec.ToughChance {
		health = 2
	}

	g.store.Add(&core.Entity{
		Pos:  core.Vec{X: rng.Float64() * (g.cfg.Arena.Width - size.Width), Y: -size.Height},
		Vel:  core.Vec{Y: speed},
		Size: core.Vec{X: size.Width, Y: size.Height},
		Data: &core.EnemyData{Type: kind, Health: health, Points: points},
	})
}

// moveEnemies drops every invader. One that falls past the bottom costs
// a life. It reports whether the game ended.
func (g *Game) moveEnemies(ctx *core.Ctx) bool {
	for _, e := range g.store.Of(core.KindEnemy) {
		e.Advance()
		if e.Pos.Y <= g.cfg.Arena.Height {
			continue
		}
		g.store.Remove(e.ID)
		if g.ledger.Strike(e.ID) && !ctx.LoseLife("escaped") {
			return true
		}
	}
	return false
}

// shots applies player bullets. A bullet is spent on the first invader
// it touches; the invader dies when its health runs out.
func (g *Game) shots(ctx *core.Ctx) {
	for _, b := range g.store.Of(core.KindProjectile) {
		hit := core.FirstOverlap(b.Bounds(), g.store.Of(core.KindEnemy))
		if hit == nil {
			continue
		}
		en := hit.Enemy()
		g.burst(ctx.Rand(), hit.Center(), g.cfg.Particles.OnHit)
		en.Health--
		g.store.Remove(b.ID)
		if en.Health > 0 {
			continue
		}

		g.store.Remove(hit.ID)
		ctx.Award(en.Points)
		ctx.Emit(core.EventBlip, en.Points, en.Type)
		if ctx.Rand().Float64() < g.cfg.Pickup.DropChance {
			g.drop(ctx.Rand(), hit.Center())
		}
	}
}

// crashes removes every invader touching the ship. The ship loses at
// most one life a tick however many of them it meets.
func (g *Game) crashes(ctx *core.Ctx) bool {
	body := g.player.Bounds()
	for _, e := range g.store.Of(core.KindEnemy) {
		if !body.Overlaps(e.Bounds()) {
			continue
		}
		g.store.Remove(e.ID)
		g.burst(ctx.Rand(), g.player.Center(), g.cfg.Particles.OnCrash)
		if g.ledger.Strike(g.player.ID) && !ctx.LoseLife("crash") {
			return true
		}
	}
	return false
}

// burst throws n cosmetic particles out of a point.
func (g *Game) burst(rng core.Rand, at core.Vec, n int) {
	pc := g.cfg.Particles
	for i := 0; i < n; i++ {
		g.store.Add(&core.Entity{
			Pos:  core.Vec{X: at.X, Y: at.Y},
			Vel:  core.Vec{X: core.Jitter(rng, pc.Spread/2), Y: core.Jitter(rng, pc.Spread/2)},
			Size: core.Vec{X: 2, Y: 2},
			Data: &core.ParticleData{Life: pc.Life},
		})
	}
}

func (g *Game) particles() {
	for _, e := range g.store.Of(core.KindParticle) {
		e.Advance()
		e.Vel.Y += g.cfg.Particles.Gravity
		e.Data.(*core.ParticleData).Life--
	}
	g.store.RemoveIf(func(e *core.Entity) bool {
		p, ok := e.Data.(*core.ParticleData)
		return ok && p.Life <= 0
	})
}

// nextWave raises the quota and invader speed and pays the wave bonus.
// Resetting the spawn count makes the completion fire once.
func (g *Game) nextWave(ctx *core.Ctx) {
	ctx.NextLevel()
	wave, w := ctx.Level(), g.cfg.Wave
	g.quota = int(math.Floor(float64(w.Quota) + float64(wave)*w.QuotaPerWave))
	g.spawned = 0
	if g.dm.IsEnabled() {
		g.enemySpeed = math.Min(w.MaxSpeed, w.BaseSpeed+float64(wave)*w.SpeedPerWave)
	}
	ctx.Award(wave * w.BonusPerWave)
}

// Render draws the ship, invaders, shots, pickups and particles.
func (g *Game) Render(dst *core.Screen, v core.View) {
	vp := core.NewViewport(dst, g.cfg.Arena.Width, g.cfg.Arena.Height, core.HUDRows)
	vp.Frame(core.ColorGray)

	for i := 0; i < 40; i++ {
		x := float64((i * 97) % int(g.cfg.Arena.Width))
		y := math.Mod(float64(i*61)+float64(v.Tick)*0.5, g.cfg.Arena.Height)
		vp.Plot(core.Vec{X: x, Y: y}, '.', core.ColorGray)
	}

	for _, e := range g.store.All() {
		switch e.Kind() {
		case core.KindEnemy:
			en := e.Enemy()
			c := core.ColorBrightRed
			if en.Type == Fast {
				c = core.ColorOrange
			}
			glyph := 'V'
			if en.Health > 1 {
				glyph = 'W'
			}
			vp.FillBox(e.Bounds(), glyph, c)
		case core.KindProjectile:
			vp.FillBox(e.Bounds(), '|', core.ColorBrightYellow)
		case core.KindPickup:
			eff := effectOf(e.Pickup().Effect)
			vp.Plot(e.Center(), eff.glyph, eff.color)
		case core.KindParticle:
			vp.Plot(e.Pos, '*', core.ColorYellow)
		}
	}

	vp.FillBox(g.player.Bounds(), 'A', core.ColorBrightCyan)
	if g.rapid > 0 {
		vp.Text(vp.Rows()-1, fmt.Sprintf("RAPID %d", g.rapid), core.ColorGray)
	}
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	return fmt.Sprintf("ship=%.0f enemies=%d shots=%d pickups=%d spawned=%d/%d speed=%.2f rapid=%d",
		g.player.Pos.X, g.store.Count(core.KindEnemy), g.store.Count(core.KindProjectile),
		g.store.Count(core.KindPickup), g.spawned, g.quota, g.enemySpeed, g.rapid)
}
