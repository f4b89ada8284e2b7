package pong

// Snapshot contains the complete state of a Pong game.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	BallX    int
	BallY    int
	BallVX   int // Velocity scaled by 1000 (for precision)
	BallVY   int // Velocity scaled by 1000
	Paddle1Y int
	Paddle2Y int
	Score1   int
	Score2   int
	Serving  bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		BallX:    int(g.ball.X),
		BallY:    int(g.ball.Y),
		BallVX:   int(g.ballVel.X * 1000),
		BallVY:   int(g.ballVel.Y * 1000),
		Paddle1Y: int(g.paddle1Y),
		Paddle2Y: int(g.paddle2Y),
		Score1:   g.score1,
		Score2:   g.score2,
		Serving:  !g.launched,
	}
}
