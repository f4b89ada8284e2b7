package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

func normal() DifficultyConfig {
	return DifficultyConfig{Enabled: true, InitialLevel: 0.3}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	var c SnakeConfig
	c.Grid.Width, c.Grid.Height = 20, 20
	c.Start.X, c.Start.Y = 10, 10
	c.Move = IntervalConfig{BaseMs: 150, StepMs: 10, MinMs: 60}
	c.FoodPoints = 10
	c.FoodsPerLevel = 5
	c.Difficulty = normal()
	return c
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	var c PongConfig
	c.Arena = Size{Width: 600, Height: 400}
	c.Paddle.Width, c.Paddle.Height, c.Paddle.Speed = 12, 75, 6
	c.Ball.Radius = 8
	c.Ball.ServeSpeed = 5
	c.Ball.ServeSpread = 6
	c.Ball.Spin = 6
	c.CPU.Speed = 4
	c.CPU.DeadZone = 5
	c.CPU.Accuracy = 1
	c.WinScore = 5
	c.Difficulty = normal()
	return c
}

// DefaultTicTacToeConfig returns the default Tic-Tac-Toe configuration.
func DefaultTicTacToeConfig() TicTacToeConfig {
	var c TicTacToeConfig
	c.CPU.Enabled = false
	c.CPU.MistakeChance = 0.25
	c.RoundsToWin = 3
	c.WinPoints = 100
	c.Difficulty = normal()
	return c
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	var c TetrisConfig
	c.Board.Width, c.Board.Height = 10, 20
	c.Fall = IntervalConfig{BaseMs: 1000, StepMs: 100, MinMs: 100}
	c.LinePoints = 100
	c.LinesPerLevel = 10
	c.Difficulty = normal()
	return c
}

// DefaultFroggerConfig returns the default Frogger configuration.
func DefaultFroggerConfig() FroggerConfig {
	var c FroggerConfig
	c.Arena = Size{Width: 400, Height: 500}
	c.StepMs = 50
	c.Frog.Size = 20
	c.Frog.StartX, c.Frog.StartY = 200, 480
	c.Frog.HopX, c.Frog.HopY = 20, 40
	c.LaneHeight = 40
	c.Road.LaneConfig = LaneConfig{Lanes: 5, Top: 200, Speed: 1.5, PerLevel: 0.2}
	c.Road.CarsPerLane = 3
	c.Road.Car = Size{Width: 40, Height: 20}
	c.Road.Spacing = 150
	c.Road.OddOffset = 200
	c.Water.LaneConfig = LaneConfig{Lanes: 3, Top: 40, Speed: 1, PerLevel: 0.1}
	c.Water.LogWidth = 80
	c.Water.TurtleWidth = 60
	c.Water.ItemHeight = 20
	c.Water.SubmergeTicks = 120
	c.Zones.WaterTop, c.Zones.WaterBottom = 40, 160
	c.Zones.RoadTop, c.Zones.RoadBottom = 200, 400
	c.Zones.Goal = 20
	c.GoalPoints = 100
	c.Lives = 3
	c.Difficulty = normal()
	return c
}

// DefaultPacmanConfig returns the default Pac-Man configuration.
func DefaultPacmanConfig() PacmanConfig {
	var c PacmanConfig
	c.PacmanEvery = 4
	c.GhostEvery = 5
	c.ScatterTicks = 420
	c.ChaseTicks = 1200
	c.FrightenedTicks = 300
	c.ExitTimers = []int{0, 60, 120, 180}
	c.ContactRadius = 0.35
	c.Points.Dot, c.Points.Pellet, c.Points.Ghost = 10, 50, 200
	c.Lives = 3
	c.Difficulty = normal()
	return c
}

// DefaultGalagaConfig returns the default Galaga configuration.
func DefaultGalagaConfig() GalagaConfig {
	var c GalagaConfig
	c.Arena = Size{Width: 400, Height: 500}
	c.StepMs = 33
	c.Player.Width, c.Player.Height = 30, 20
	c.Player.Y = 450
	c.Player.Speed = 5
	c.Bullet = ShotConfig{Width: 4, Height: 8, Speed: 8}
	c.EnemyBullet = ShotConfig{Width: 3, Height: 6, Speed: 3}
	c.Formation.Cols, c.Formation.Rows = 8, 6
	c.Formation.StartX, c.Formation.StartY = 50, 50
	c.Formation.SpacingX, c.Formation.SpacingY = 35, 30
	c.Formation.Sway = 10
	c.Points.Boss, c.Points.Butterfly, c.Points.Bee = 150, 80, 50
	c.Dive.ChancePerLevel = 0.001
	c.Dive.Steps = 60
	c.Dive.Amplitude = 100
	c.Dive.Depth = 300
	c.Dive.ReturnSpeed = 4
	c.Fire.Chance = 0.02
	c.Fire.MinDelay, c.Fire.MaxDelay = 120, 360
	c.WavesPerLevel = 3
	c.Lives = 3
	c.Difficulty = normal()
	return c
}

// DefaultJoustConfig returns the default Joust configuration.
func DefaultJoustConfig() JoustConfig {
	var c JoustConfig
	c.Arena = Size{Width: 600, Height: 400}
	c.Gravity = 0.15
	c.Flap.Power = -3.5
	c.Flap.Cooldown = 15
	c.Player.Width, c.Player.Height = 40, 30
	c.Player.StartX, c.Player.StartY = 100, 200
	c.Player.Speed = 1.2
	c.Player.Accel = 0.1
	c.Player.Friction = 0.92
	c.Player.MaxFall = 10
	c.Player.Bounce = -1.5
	c.Enemy.Count = 3
	c.Enemy.Width, c.Enemy.Height = 35, 25
	c.Enemy.StartX, c.Enemy.SpacingX, c.Enemy.StartY = 350, 80, 250
	c.Enemy.MaxVX, c.Enemy.MaxVY = 1, 4
	c.Platforms = []Rect{
		{X: 0, Y: 350, Width: 150, Height: 20},
		{X: 200, Y: 350, Width: 200, Height: 20},
		{X: 450, Y: 350, Width: 150, Height: 20},
		{X: 100, Y: 250, Width: 120, Height: 20},
		{X: 380, Y: 250, Width: 120, Height: 20},
		{X: 250, Y: 150, Width: 100, Height: 20},
	}
	c.StompPoints = 100
	c.WaveBonus = 500
	c.Lives = 3
	c.Difficulty = normal()
	return c
}

// DefaultCrossyConfig returns the default Crossy Road configuration.
func DefaultCrossyConfig() CrossyConfig {
	var c CrossyConfig
	c.Bound = 20
	c.WrapAt = 25
	c.Hop = 2
	c.JumpStep = 0.05
	c.JumpHeight = 1.5
	c.Road.Lanes = []float64{-18, -16, -14, -12, -10}
	c.Road.MinSpeed, c.Road.SpeedRange = 0.02, 0.03
	c.Road.PerLevel = 0.2
	c.Road.HitX, c.Road.HitZ = 1.5, 1
	c.Water.Lanes = []float64{2, 4, 6, 8, 10}
	c.Water.MinSpeed, c.Water.SpeedRange = 0.01, 0.02
	c.Water.SupportX = 2
	c.GoalPoints = 100
	c.Lives = 3
	c.Difficulty = normal()
	return c
}

// DefaultSpaceDefenderConfig returns the default Space Defender configuration.
func DefaultSpaceDefenderConfig() SpaceDefenderConfig {
	var c SpaceDefenderConfig
	c.Arena = Size{Width: 800, Height: 600}
	c.Player.Width, c.Player.Height, c.Player.Speed = 40, 30, 5
	c.Bullet = ShotConfig{Width: 4, Height: 10, Speed: 8}
	c.Fire.Every, c.Fire.RapidEvery = 15, 5
	c.Enemy.Size = Size{Width: 30, Height: 20}
	c.Enemy.FastSize = Size{Width: 25, Height: 15}
	c.Enemy.SpeedRange = 2
	c.Enemy.FastChance = 0.2
	c.Enemy.FastMultiplier = 1.5
	c.Enemy.ToughChance = 0.1
	c.Enemy.BasicPoints, c.Enemy.FastPoints = 10, 20
	c.Wave.Quota = 5
	c.Wave.QuotaPerWave = 1.5
	c.Wave.SpawnInterval = 60
	c.Wave.IntervalPerWave = 2
	c.Wave.BaseSpeed = 2
	c.Wave.SpeedPerWave = 0.3
	c.Wave.MaxSpeed = 5
	c.Wave.BonusPerWave = 100
	c.Pickup.Size = 20
	c.Pickup.Speed = 3
	c.Pickup.Life = 300
	c.Pickup.DropChance = 0.15
	c.Pickup.Points = 50
	c.Pickup.RapidFireTicks = 300
	c.Pickup.MaxLives = 5
	c.Pickup.MultishotBoost = 2
	c.Particles.OnHit, c.Particles.OnCrash = 6, 8
	c.Particles.Life = 30
	c.Particles.Spread = 6
	c.Particles.Gravity = 0.1
	c.Lives = 3
	c.Difficulty = normal()
	return c
}
