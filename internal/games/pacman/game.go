// Package pacman implements Pac-Man on the classic 19x21 maze with four
// ghosts alternating between scatter and chase.
package pacman

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/registry"
)

// Point is a maze cell.
type Point struct {
	X, Y int
}

func (p Point) vec() core.Vec { return core.Vec{X: float64(p.X), Y: float64(p.Y)} }

// GhostMode is a ghost's current behavior.
type GhostMode uint8

const (
	Scatter GhostMode = iota
	Chase
	Frightened
	Eaten
)

func (m GhostMode) String() string {
	switch m {
	case Scatter:
		return "scatter"
	case Chase:
		return "chase"
	case Frightened:
		return "frightened"
	case Eaten:
		return "eaten"
	}
	return "unknown"
}

// Ghost is one of the four pursuers.
type Ghost struct {
	Name    string
	Pos     Point
	Dir     core.Direction
	Mode    GhostMode
	Home    Point
	Corner  Point
	InHouse bool
	Exit    int // ghost steps left before leaving the house
	Fright  int // ticks of fright left

	wait int
}

type ghostSpec struct {
	name   string
	home   Point
	corner Point
}

var ghostSpecs = []ghostSpec{
	{"blinky", Point{9, 9}, Point{17, 1}},
	{"pinky", Point{8, 9}, Point{1, 1}},
	{"inky", Point{10, 9}, Point{17, 19}},
	{"clyde", Point{9, 8}, Point{1, 19}},
}

// houseExitRow is the corridor row ghosts step out to.
const houseExitRow = 7

var start = Point{8, 15}

// steerOrder breaks distance ties.
var steerOrder = []core.Direction{core.DirRight, core.DirDown, core.DirLeft, core.DirUp}

// Game implements Pac-Man.
type Game struct {
	cfg config.PacmanConfig
	dm  *config.DifficultyManager

	board  *Board
	pac    Point
	dir    core.Direction
	want   core.Direction
	ghosts []*Ghost

	mode      GhostMode // global scatter/chase phase
	modeTimer int

	pacTimer   int
	ghostEvery int
	eatenEvery int
	clearing   bool
}

// New creates a Pac-Man game.
func New(cfg config.PacmanConfig) *Game {
	return &Game{
		cfg: cfg,
		dm:  config.NewDifficultyManager(cfg.Difficulty),
	}
}

func init() {
	registry.Register("pacman", "Pac-Man", func(opts registry.Options) (core.Rules, error) {
		cfg, err := config.Load("pacman", opts.ConfigPath, config.DefaultPacmanConfig())
		if err != nil {
			return nil, err
		}
		if err := config.ApplyPreset(&cfg.Difficulty, opts.Preset); err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

func (g *Game) ID() string          { return "pacman" }
func (g *Game) Title() string       { return "Pac-Man" }
func (g *Game) Params() core.Params { return core.Params{Lives: g.cfg.Lives} }

// Setup stocks the maze and puts everyone at home.
func (g *Game) Setup(ctx *core.Ctx) {
	g.ghostEvery = max(1, int(math.Round(float64(g.cfg.GhostEvery)/g.dm.Tier())))
	g.eatenEvery = max(1, g.ghostEvery*2/3)
	g.clearing = false
	g.newBoard(ctx)
}

func (g *Game) newBoard(*core.Ctx) {
	g.board = NewBoard()
	g.clearing = false
	g.resetActors()
}

func (g *Game) resetActors() {
	g.pac = start
	g.dir = core.DirLeft
	g.want = core.DirNone
	g.pacTimer = 0
	g.mode = Scatter
	g.modeTimer = g.cfg.ScatterTicks

	g.ghosts = g.ghosts[:0]
	for i, s := range ghostSpecs {
		exit := 0
		if i < len(g.cfg.ExitTimers) {
			exit = g.cfg.ExitTimers[i]
		}
		g.ghosts = append(g.ghosts, &Ghost{
			Name:    s.name,
			Pos:     s.home,
			Dir:     core.DirLeft,
			Mode:    Scatter,
			Home:    s.home,
			Corner:  s.corner,
			InHouse: true,
			Exit:    exit,
		})
	}
}

// Update moves Pac-Man and the ghosts and resolves contact.
func (g *Game) Update(ctx *core.Ctx, in core.InputFrame) {
	if g.clearing {
		return
	}
	if in.Direction != core.DirNone {
		g.want = in.Direction
	}

	g.tickModes()

	g.pacTimer++
	if g.pacTimer >= g.cfg.PacmanEvery {
		g.pacTimer = 0
		g.movePac(ctx)
		if g.contact(ctx) || ctx.Over() {
			return
		}
		if g.board.Remaining() == 0 {
			g.clearing = true
			ctx.NextLevel()
			ctx.After(ctx.SettleTicks(), g.newBoard)
			return
		}
	}

	for _, gh := range g.ghosts {
		gh.wait++
		every := g.ghostEvery
		if gh.Mode == Eaten {
			every = g.eatenEvery
		}
		if gh.wait < every {
			continue
		}
		gh.wait = 0
		g.moveGhost(ctx.Rand(), gh)
	}
	g.contact(ctx)
}

// tickModes advances the scatter/chase phase and fright timers.
func (g *Game) tickModes() {
	for _, gh := range g.ghosts {
		if gh.Mode != Frightened {
			continue
		}
		if gh.Fright--; gh.Fright <= 0 {
			gh.Mode = g.mode
		}
	}

	g.modeTimer--
	if g.modeTimer > 0 {
		return
	}
	if g.mode == Scatter {
		g.mode, g.modeTimer = Chase, g.cfg.ChaseTicks
	} else {
		g.mode, g.modeTimer = Scatter, g.cfg.ScatterTicks
	}
	for _, gh := range g.ghosts {
		if gh.Mode == Scatter || gh.Mode == Chase {
			gh.Mode = g.mode
			gh.Dir = gh.Dir.Opposite()
		}
	}
}

// movePac adopts the queued direction once it is legal, then steps.
func (g *Game) movePac(ctx *core.Ctx) {
	if g.want != core.DirNone {
		if _, _, ok := g.board.Step(g.pac.X, g.pac.Y, g.want); ok {
			g.dir = g.want
			g.want = core.DirNone
		}
	}
	x, y, ok := g.board.Step(g.pac.X, g.pac.Y, g.dir)
	if !ok {
		return
	}
	g.pac = Point{x, y}

	switch g.board.Eat(x, y) {
	case Dot:
		ctx.Award(g.cfg.Points.Dot)
	case Pellet:
		ctx.Award(g.cfg.Points.Pellet)
		ctx.Emit(core.EventPowerUp, g.cfg.FrightenedTicks, "pellet")
		for _, gh := range g.ghosts {
			if gh.Mode == Eaten {
				continue
			}
			gh.Mode = Frightened
			gh.Fright = g.cfg.FrightenedTicks
			gh.Dir = gh.Dir.Opposite()
		}
	}
}

func (g *Game) moveGhost(rng core.Rand, gh *Ghost) {
	if gh.InHouse {
		if gh.Exit > 0 {
			gh.Exit--
			return
		}
		gh.InHouse = false
		gh.Pos.Y = houseExitRow
		return
	}

	switch gh.Mode {
	case Frightened:
		gh.Dir = g.wander(rng, gh)
	case Eaten:
		if gh.Pos == gh.Home {
			gh.Mode = g.mode
			gh.InHouse = true
			gh.Exit = 0
			return
		}
		gh.Dir = g.steer(gh, gh.Home)
	case Chase:
		gh.Dir = g.steer(gh, g.pac)
	default:
		gh.Dir = g.steer(gh, gh.Corner)
	}

	if x, y, ok := g.board.Step(gh.Pos.X, gh.Pos.Y, gh.Dir); ok {
		gh.Pos = Point{x, y}
	}
}

// steer picks the legal non-reversing direction whose next cell is
// closest to target. A dead end forces the reverse.
func (g *Game) steer(gh *Ghost, target Point) core.Direction {
	best, bestDist := core.DirNone, math.Inf(1)
	for _, d := range steerOrder {
		if d == gh.Dir.Opposite() {
			continue
		}
		x, y, ok := g.board.Step(gh.Pos.X, gh.Pos.Y, d)
		if !ok {
			continue
		}
		if dist := (Point{x, y}).vec().Dist(target.vec()); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	if best == core.DirNone {
		return gh.Dir.Opposite()
	}
	return best
}

// wander picks a random legal non-reversing direction.
func (g *Game) wander(rng core.Rand, gh *Ghost) core.Direction {
	var options []core.Direction
	for _, d := range steerOrder {
		if d == gh.Dir.Opposite() {
			continue
		}
		if _, _, ok := g.board.Step(gh.Pos.X, gh.Pos.Y, d); ok {
			options = append(options, d)
		}
	}
	if len(options) == 0 {
		return gh.Dir.Opposite()
	}
	return options[rng.Intn(len(options))]
}

// contact resolves Pac-Man touching ghosts and reports whether a life
// was lost.
func (g *Game) contact(ctx *core.Ctx) bool {
	r := g.cfg.ContactRadius
	for _, gh := range g.ghosts {
		if !core.CirclesOverlap(g.pac.vec(), gh.Pos.vec(), r, r) {
			continue
		}
		switch gh.Mode {
		case Eaten:
		case Frightened:
			ctx.Award(g.cfg.Points.Ghost)
			gh.Mode = Eaten
			gh.Fright = 0
		default:
			if ctx.LoseLife(gh.Name) {
				g.resetActors()
			}
			return true
		}
	}
	return false
}

// Render draws the maze two columns per cell.
func (g *Game) Render(dst *core.Screen, v core.View) {
	ox := (dst.Width()-Width*2)/2 - 1
	oy := core.HUDRows
	dst.DrawBox(core.NewRect(ox, oy, Width*2+2, Height+2), core.ColorBlue)

	cell := func(p Point, s string, c core.Color) {
		dst.DrawTextColored(ox+1+p.X*2, oy+1+p.Y, s, c)
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			switch g.board.At(x, y) {
			case Wall:
				cell(Point{x, y}, "██", core.ColorBlue)
			case Dot:
				cell(Point{x, y}, "· ", core.ColorWhite)
			case Pellet:
				cell(Point{x, y}, "● ", core.ColorBrightWhite)
			}
		}
	}

	colors := map[string]core.Color{
		"blinky": core.ColorBrightRed,
		"pinky":  core.ColorPink,
		"inky":   core.ColorBrightCyan,
		"clyde":  core.ColorOrange,
	}
	for _, gh := range g.ghosts {
		switch gh.Mode {
		case Frightened:
			cell(gh.Pos, "ᗣ", core.ColorBlue)
		case Eaten:
			cell(gh.Pos, "°°", core.ColorWhite)
		default:
			cell(gh.Pos, "ᗣ", colors[gh.Name])
		}
	}

	mouth := map[core.Direction]string{
		core.DirRight: "ᗧ", core.DirLeft: "ᗤ", core.DirUp: "ᗢ", core.DirDown: "ᗜ",
	}[g.dir]
	if v.Tick%16 < 8 {
		mouth = "●"
	}
	cell(g.pac, mouth, core.ColorBrightYellow)
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pac=(%d,%d) dir=%s food=%d mode=%s", g.pac.X, g.pac.Y, g.dir, g.board.Remaining(), g.mode)
	for _, gh := range g.ghosts {
		fmt.Fprintf(&b, " %s=(%d,%d)/%s", gh.Name, gh.Pos.X, gh.Pos.Y, gh.Mode)
	}
	return b.String()
}
