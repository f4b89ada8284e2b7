// Package pong implements a classic Pong game with CPU opponent.
// The player controls the left paddle, CPU controls the right paddle.
package pong

import (
	"fmt"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '┊'
)

// Game implements the Pong game logic.
type Game struct {
	cfg config.PongConfig
	dm  *config.DifficultyManager

	// Paddles (top edge)
	paddle1Y float64 // Player (left)
	paddle2Y float64 // CPU (right)

	// Ball
	ball     core.Vec
	ballVel  core.Vec
	launched bool // false while the ball waits at center for a serve

	// Points in the current match
	score1 int
	score2 int

	cpuAim float64 // CPU's offset from the ball, re-rolled per rally
}

// New creates a new Pong game instance.
func New(cfg config.PongConfig) *Game {
	return &Game{
		cfg: cfg,
		dm:  config.NewDifficultyManager(cfg.Difficulty),
	}
}

func init() {
	registry.Register("pong", "Pong", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("pong", opts.ConfigPath, config.DefaultPongConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Params makes every point wait for a serve.
func (g *Game) Params() core.Params {
	return core.Params{Lives: 1, Serve: true}
}

// Setup centers paddles and ball and clears the match score.
func (g *Game) Setup(ctx *core.Ctx) {
	centerY := g.cfg.Arena.Height/2 - g.cfg.Paddle.Height/2
	g.paddle1Y = centerY
	g.paddle2Y = centerY
	g.score1 = 0
	g.score2 = 0
	g.resetBall()
}

// resetBall puts the ball at center with zero velocity pending a serve.
func (g *Game) resetBall() {
	g.ball = core.Vec{X: g.cfg.Arena.Width / 2, Y: g.cfg.Arena.Height / 2}
	g.ballVel = core.Vec{}
	g.launched = false
}

// launch gives the ball its serve velocity.
func (g *Game) launch(rng core.Rand) {
	speed := g.dm.Speed(g.cfg.Ball.ServeSpeed, 0, 0)
	if rng.Float64() < 0.5 {
		speed = -speed
	}
	g.ballVel = core.Vec{
		X: speed,
		Y: (rng.Float64() - 0.5) * g.cfg.Ball.ServeSpread,
	}
	g.launched = true
	g.rollAim(rng)
}

func (g *Game) rollAim(rng core.Rand) {
	spread := (1 - g.cfg.CPU.Accuracy) * g.cfg.Paddle.Height / 2
	g.cpuAim = core.Jitter(rng, spread)
}

// Update advances the game by one tick.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	if !g.launched {
		g.launch(ctx.Rand())
	}

	g.movePlayer(in)
	g.moveCPU()
	g.moveBall(ctx)
}

func (g *Game) movePlayer(in core.InputFrame) {
	maxY := g.cfg.Arena.Height - g.cfg.Paddle.Height
	if in.Has(core.ActionUp) {
		g.paddle1Y -= g.cfg.Paddle.Speed
	}
	if in.Has(core.ActionDown) {
		g.paddle1Y += g.cfg.Paddle.Speed
	}
	g.paddle1Y = core.ClampF(g.paddle1Y, 0, maxY)
}

// moveCPU tracks the ball at a capped speed with a per-rally aim error.
func (g *Game) moveCPU() {
	half := g.cfg.Paddle.Height / 2
	speed := g.cfg.CPU.Speed * g.dm.Tier()
	center := core.Seek(g.paddle2Y+half, g.ball.Y+g.cpuAim, speed, g.cfg.CPU.DeadZone)
	g.paddle2Y = core.ClampF(center-half, 0, g.cfg.Arena.Height-g.cfg.Paddle.Height)
}

func (g *Game) moveBall(ctx *core.Ctx) {
	r := g.cfg.Ball.Radius
	w, h := g.cfg.Arena.Width, g.cfg.Arena.Height
	pw, ph := g.cfg.Paddle.Width, g.cfg.Paddle.Height

	g.ball = g.ball.Add(g.ballVel)

	// Top/bottom walls
	if g.ball.Y-r < 0 || g.ball.Y+r > h {
		g.ballVel.Y = -g.ballVel.Y
		g.ball.Y = core.ClampF(g.ball.Y, r, h-r)
		ctx.Emit(core.EventBlip, 0, "wall")
	}

	// Player paddle
	if g.ball.X-r < pw && g.ballVel.X < 0 && g.ball.Y >= g.paddle1Y && g.ball.Y <= g.paddle1Y+ph {
		g.ballVel.X = -g.ballVel.X
		g.ballVel.Y = g.spin(g.paddle1Y)
		g.ball.X = pw + r
		ctx.Emit(core.EventBlip, 0, "paddle")
	}

	// CPU paddle
	if g.ball.X+r > w-pw && g.ballVel.X > 0 && g.ball.Y >= g.paddle2Y && g.ball.Y <= g.paddle2Y+ph {
		g.ballVel.X = -g.ballVel.X
		g.ballVel.Y = g.spin(g.paddle2Y)
		g.ball.X = w - pw - r
		g.rollAim(ctx.Rand())
		ctx.Emit(core.EventBlip, 0, "paddle")
	}

	switch {
	case g.ball.X > w:
		g.score1++
		ctx.Award(1)
		if g.score1 >= g.cfg.WinScore {
			ctx.Finish()
			return
		}
		g.resetBall()
		ctx.Serve()
	case g.ball.X < 0:
		g.score2++
		ctx.Emit(core.EventBlip, g.score2, "cpu")
		if g.score2 >= g.cfg.WinScore {
			ctx.LoseLife("cpu")
			return
		}
		g.resetBall()
		ctx.Serve()
	}
}

// spin maps the hit position on a paddle to a vertical speed.
func (g *Game) spin(paddleY float64) float64 {
	half := g.cfg.Paddle.Height / 2
	hitPos := (g.ball.Y - (paddleY + half)) / half
	return hitPos * g.cfg.Ball.Spin
}

// Render draws the court, paddles, ball and match score.
func (g *Game) Render(dst *core.Screen, v core.View) {
	w, h := g.cfg.Arena.Width, g.cfg.Arena.Height
	vp := core.NewViewport(dst, w, h, core.HUDRows)
	vp.Frame(core.ColorGray)

	for y := 0.0; y < h; y += h / float64(vp.Rows()) * 2 {
		vp.Plot(core.Vec{X: w / 2, Y: y}, NetChar, core.ColorGray)
	}
	vp.Text(0, fmt.Sprintf("%d   %d", g.score1, g.score2), core.ColorBrightWhite)

	pw, ph := g.cfg.Paddle.Width, g.cfg.Paddle.Height
	vp.FillBox(core.Box{X: 0, Y: g.paddle1Y, W: pw, H: ph}, PaddleChar, core.ColorBrightCyan)
	vp.FillBox(core.Box{X: w - pw, Y: g.paddle2Y, W: pw, H: ph}, PaddleChar, core.ColorBrightRed)
	vp.Plot(g.ball, BallChar, core.ColorBrightWhite)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	return fmt.Sprintf("%+v", g.Snapshot())
}
