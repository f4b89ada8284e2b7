package spacedefender

import (
	"github.com/vovakirdan/retro-arcade/internal/core"
)

// Pickup effects.
const (
	RapidFire = "rapidfire"
	Shield    = "shield"
	Multishot = "multishot"
)

var effects = []string{RapidFire, Shield, Multishot}

type effectStyle struct {
	glyph rune
	color core.Color
}

func effectOf(name string) effectStyle {
	switch name {
	case RapidFire:
		return effectStyle{'R', core.ColorBrightYellow}
	case Shield:
		return effectStyle{'S', core.ColorBrightGreen}
	case Multishot:
		return effectStyle{'M', core.ColorMagenta}
	}
	return effectStyle{'?', core.ColorWhite}
}

// drop releases a random pickup centered on at.
func (g *Game) drop(rng core.Rand, at core.Vec) {
	pc := g.cfg.Pickup
	g.store.Add(&core.Entity{
		Pos:  core.Vec{X: at.X - pc.Size/2, Y: at.Y - pc.Size/2},
		Vel:  core.Vec{Y: pc.Speed},
		Size: core.Vec{X: pc.Size, Y: pc.Size},
		Data: &core.PickupData{Life: pc.Life, Effect: effects[rng.Intn(len(effects))]},
	})
}

// pickups moves falling pickups, expires old ones and applies the ones
// the ship catches. Rapid fire wears off here too.
func (g *Game) pickups(ctx *core.Ctx) {
	body := g.player.Bounds()
	for _, e := range g.store.Of(core.KindPickup) {
		pd := e.Pickup()
		e.Advance()
		pd.Life--
		switch {
		case e.Pos.Y > g.cfg.Arena.Height || pd.Life <= 0:
			g.store.Remove(e.ID)
		case body.Overlaps(e.Bounds()):
			g.store.Remove(e.ID)
			ctx.Award(g.cfg.Pickup.Points)
			ctx.Emit(core.EventPowerUp, 0, pd.Effect)
			g.apply(ctx, pd.Effect)
		}
	}

	if g.rapid > 0 {
		g.rapid--
	}
}

func (g *Game) apply(ctx *core.Ctx, effect string) {
	pc := g.cfg.Pickup
	switch effect {
	case RapidFire:
		g.rapid = pc.RapidFireTicks
	case Shield:
		ctx.GainLife(pc.MaxLives)
	case Multishot:
		g.bulletSpeed += pc.MultishotBoost
	}
}
