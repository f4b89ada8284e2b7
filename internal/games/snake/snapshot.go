package snake

import "github.com/vovakirdan/retro-arcade/internal/core"

// Snapshot is a comparable summary of the board, used to check that two
// runs with the same seed and input stay identical.
type Snapshot struct {
	Head, Tail Point
	Food       Point
	Length     int
	Heading    core.Direction
	Queued     core.Direction
	Eaten      int
	Step       int // ticks per move
	Phase      int // ticks since the last move
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Food:    g.food,
		Length:  len(g.snake),
		Heading: g.direction,
		Queued:  g.nextDir,
		Eaten:   g.foodEaten,
		Step:    g.moveEveryTicks,
		Phase:   g.moveTicker,
	}
	if n := len(g.snake); n > 0 {
		s.Head, s.Tail = g.snake[0], g.snake[n-1]
	}
	return s
}
