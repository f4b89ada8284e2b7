package joust

import (
	"math"
	"testing"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
)

func newGame(t *testing.T, opts ...core.Option) (*Game, *core.Simulation) {
	t.Helper()
	g := New(config.DefaultJoustConfig())
	sim := core.New(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 5}, opts...)
	t.Cleanup(sim.Close)
	sim.Start()
	return g, sim
}

// idle riders never think during a short test.
func idle() core.Option {
	return core.WithRand(&core.SeqRand{Values: []float64{0.99}})
}

// riders keeps the first n riders, parks all but the first at the far
// right and returns the first.
func riders(g *Game, n int) *core.Entity {
	all := g.store.Of(core.KindEnemy)
	for i, e := range all {
		switch {
		case i >= n:
			g.store.Remove(e.ID)
		case i > 0:
			e.Pos = core.Vec{X: 520, Y: 320}
		}
	}
	return all[0]
}

func TestJoust(t *testing.T) {
	tests := []struct {
		name    string
		playerY float64
		playerV float64
		score   int
		lives   int
	}{
		{"stomp from above", 75, 2, 100, 3},
		{"level contact", 100, 0, 0, 2},
		{"rising from above loses", 75, -2, 0, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, sim := newGame(t, idle())
			rider := riders(g, 2)
			rider.Pos, rider.Vel = core.Vec{X: 300, Y: 100}, core.Vec{}
			g.player.Pos = core.Vec{X: 300, Y: tc.playerY}
			g.player.Vel = core.Vec{Y: tc.playerV}

			sim.Tick(core.NewInputFrame())

			if sim.Progress().Score() != tc.score || sim.Progress().Lives() != tc.lives {
				t.Fatalf("score %d lives %d, expected %d and %d",
					sim.Progress().Score(), sim.Progress().Lives(), tc.score, tc.lives)
			}
			if tc.score > 0 {
				if g.store.Get(rider.ID) != nil {
					t.Error("stomped rider should be removed")
				}
				if g.player.Vel.Y != g.cfg.Player.Bounce {
					t.Errorf("player vy = %v, expected bounce %v", g.player.Vel.Y, g.cfg.Player.Bounce)
				}
			} else if g.player.Pos != (core.Vec{X: 100, Y: 200}) {
				t.Errorf("player should reset, got %+v", g.player.Pos)
			}
		})
	}
}

func TestStompsEveryRiderBelow(t *testing.T) {
	g, sim := newGame(t, idle())
	first := riders(g, 3)
	second := g.store.Of(core.KindEnemy)[1]
	first.Pos, first.Vel = core.Vec{X: 300, Y: 100}, core.Vec{}
	second.Pos, second.Vel = core.Vec{X: 305, Y: 100}, core.Vec{}
	g.player.Pos = core.Vec{X: 302, Y: 75}
	g.player.Vel = core.Vec{Y: 2}

	sim.Tick(core.NewInputFrame())

	if sim.Progress().Score() != 200 || sim.Progress().Lives() != 3 {
		t.Fatalf("score %d lives %d, expected 200 and 3", sim.Progress().Score(), sim.Progress().Lives())
	}
	if g.store.Get(first.ID) != nil || g.store.Get(second.ID) != nil {
		t.Error("both riders should be stomped")
	}
	if g.player.Vel.Y != g.cfg.Player.Bounce {
		t.Errorf("player vy = %v, expected bounce %v", g.player.Vel.Y, g.cfg.Player.Bounce)
	}
}

func TestLandsOnPlatform(t *testing.T) {
	g, sim := newGame(t, idle())
	riders(g, 1).Pos = core.Vec{X: 520, Y: 320}
	g.player.Pos = core.Vec{X: 50, Y: 318}
	g.player.Vel = core.Vec{Y: 2}

	sim.Tick(core.NewInputFrame())

	if g.player.Pos.Y != 320 || g.player.Vel.Y != 0 {
		t.Errorf("player should rest on the ledge, y=%v vy=%v", g.player.Pos.Y, g.player.Vel.Y)
	}
}

func TestFlapCooldown(t *testing.T) {
	g, sim := newGame(t, idle())
	in := core.NewInputFrame()
	in.Actions[core.ActionUp] = true

	sim.Tick(in)
	first := g.player.Vel.Y
	if math.Abs(first-(g.cfg.Flap.Power+g.cfg.Gravity)) > 1e-9 {
		t.Fatalf("vy after flap = %v", first)
	}
	sim.Tick(in)
	if math.Abs(g.player.Vel.Y-(first+g.cfg.Gravity)) > 1e-9 {
		t.Errorf("second flap inside the cooldown should not apply, vy = %v", g.player.Vel.Y)
	}
}

func TestPlayerClampedToArena(t *testing.T) {
	g, sim := newGame(t, idle())
	riders(g, 1).Pos = core.Vec{X: 520, Y: 320}
	in := core.NewInputFrame()
	in.Actions[core.ActionLeft] = true

	for i := 0; i < 200; i++ {
		sim.Tick(in)
	}
	if g.player.Pos.X != 0 {
		t.Errorf("player x = %v, expected clamped at 0", g.player.Pos.X)
	}
}

func TestWaveCleared(t *testing.T) {
	g, sim := newGame(t, idle())
	rider := riders(g, 1)
	rider.Pos, rider.Vel = core.Vec{X: 300, Y: 100}, core.Vec{}
	g.player.Pos = core.Vec{X: 300, Y: 75}
	g.player.Vel = core.Vec{Y: 2}

	sim.Tick(core.NewInputFrame())

	if sim.Progress().Level() != 2 || sim.Progress().Score() != 600 {
		t.Fatalf("level %d score %d, expected 2 and 600", sim.Progress().Level(), sim.Progress().Score())
	}
	for i := 0; i < sim.Config().Ticks(1000); i++ {
		sim.Tick(core.NewInputFrame())
	}
	if n := g.store.Count(core.KindEnemy); n != g.cfg.Enemy.Count {
		t.Errorf("riders = %d, expected a fresh wave of %d", n, g.cfg.Enemy.Count)
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	g, sim := newGame(t, idle())
	rider := riders(g, 1)
	for i := 0; i < 3; i++ {
		rider.Pos, rider.Vel = core.Vec{X: 300, Y: 100}, core.Vec{}
		g.player.Pos, g.player.Vel = core.Vec{X: 300, Y: 100}, core.Vec{}
		sim.Tick(core.NewInputFrame())
	}
	if sim.Mode() != core.ModeGameOver {
		t.Errorf("mode = %v, expected game over", sim.Mode())
	}
}

func TestDeterminism(t *testing.T) {
	run := func() string {
		g, sim := newGame(t)
		for i := 0; i < 2000 && sim.Mode() == core.ModePlaying; i++ {
			in := core.NewInputFrame()
			if i%30 < 5 {
				in.Actions[core.ActionUp] = true
			}
			if i%400 < 200 {
				in.Actions[core.ActionRight] = true
			}
			sim.Tick(in)
		}
		return g.DebugState()
	}
	if a, b := run(), run(); a != b {
		t.Errorf("same seed diverged:\n%s\n%s", a, b)
	}
}
