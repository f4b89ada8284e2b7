package core

// Params describes the fixed shape of a game's session.
type Params struct {
	Lives int  // starting lives, at least 1
	Serve bool // Start enters serving and waits for Serve
}

// Rules is the per-game logic driven by a Simulation.
//
// Setup builds the canonical initial entity state and is called on
// construction and on every Reset. Update advances one tick and is only
// called while the simulation is playing. Render draws the current state
// and must not mutate it.
type Rules interface {
	ID() string
	Title() string
	Params() Params
	Setup(ctx *Ctx)
	Update(ctx *Ctx, in InputFrame)
	Render(dst *Screen, v View)
}

type continuation struct {
	due uint64
	gen uint64
	fn  func(*Ctx)
}

// Simulation owns one game's rules, progression and mode, and gates the
// update stage on the mode. It is not safe for concurrent use; callers
// serialize ticks and commands on one goroutine or behind one lock.
type Simulation struct {
	rules   Rules
	cfg     RuntimeConfig
	params  Params
	mode    Mode
	prog    *Progress
	newRand func() Rand
	rng     Rand
	hooks   *Hooks
	logger  Logger

	tick    uint64
	gen     uint64
	pending []continuation
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRand injects a fixed random source. It is kept across resets.
func WithRand(r Rand) Option {
	return func(s *Simulation) {
		s.newRand = func() Rand { return r }
	}
}

// WithLogger sets the logger used to report hook panics.
func WithLogger(l Logger) Option {
	return func(s *Simulation) {
		s.logger = l
	}
}

// New creates a simulation in the start mode.
func New(rules Rules, cfg RuntimeConfig, opts ...Option) *Simulation {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	params := rules.Params()
	if params.Lives < 1 {
		params.Lives = 1
	}

	s := &Simulation{
		rules:  rules,
		cfg:    cfg,
		params: params,
		prog:   NewProgress(params.Lives),
	}
	seed := cfg.Seed
	s.newRand = func() Rand { return NewRand(seed) }
	for _, opt := range opts {
		opt(s)
	}
	s.hooks = NewHooks(s.logger)
	s.reinit()
	return s
}

func (s *Simulation) reinit() {
	s.gen++
	s.pending = nil
	s.tick = 0
	s.prog.Reset()
	s.rng = s.newRand()
	s.rules.Setup(s.newCtx())
	s.mode = ModeStart
}

// Rules returns the game driven by this simulation.
func (s *Simulation) Rules() Rules { return s.rules }

// ID returns the game ID.
func (s *Simulation) ID() string { return s.rules.ID() }

// Config returns the runtime configuration.
func (s *Simulation) Config() RuntimeConfig { return s.cfg }

// Mode returns the current mode.
func (s *Simulation) Mode() Mode { return s.mode }

// Generation changes on every reset.
func (s *Simulation) Generation() uint64 { return s.gen }

// Progress returns a copy of the score, lives and level. Changes go
// through Ctx during a tick.
func (s *Simulation) Progress() Standing { return s.prog.Standing() }

// Start leaves the start mode.
func (s *Simulation) Start() bool {
	if s.mode != ModeStart {
		return false
	}
	if s.params.Serve {
		s.mode = ModeServing
	} else {
		s.mode = ModePlaying
	}
	return true
}

// Serve launches play from the serving mode.
func (s *Simulation) Serve() bool {
	if s.mode != ModeServing {
		return false
	}
	s.mode = ModePlaying
	return true
}

// Pause suspends a playing simulation.
func (s *Simulation) Pause() bool {
	if s.mode != ModePlaying {
		return false
	}
	s.mode = ModePaused
	return true
}

// Resume continues a paused simulation.
func (s *Simulation) Resume() bool {
	if s.mode != ModePaused {
		return false
	}
	s.mode = ModePlaying
	return true
}

// TogglePause pauses when playing and resumes when paused.
func (s *Simulation) TogglePause() bool {
	if s.mode == ModePaused {
		return s.Resume()
	}
	return s.Pause()
}

// Reset reinitializes progression and entities from any mode and returns
// to start. Pending continuations from before the reset never run.
func (s *Simulation) Reset() {
	s.reinit()
}

// Tick runs one update while playing and returns the events it produced.
// In any other mode it does nothing.
func (s *Simulation) Tick(in InputFrame) []Event {
	if s.mode != ModePlaying {
		return nil
	}
	s.tick++
	ctx := s.newCtx()

	s.runDue(ctx)
	if !ctx.over {
		s.rules.Update(ctx, in)
	}

	switch {
	case ctx.over:
		s.mode = ModeGameOver
		s.pending = nil
		ctx.emit(EventGameOver, s.prog.Score(), "")
	case ctx.serve:
		s.mode = ModeServing
	}

	s.hooks.Publish(ctx.events...)
	return ctx.events
}

func (s *Simulation) runDue(ctx *Ctx) {
	if len(s.pending) == 0 {
		return
	}
	due := s.pending
	s.pending = nil
	for _, c := range due {
		if c.gen != s.gen {
			continue
		}
		if c.due > s.tick || ctx.over {
			s.pending = append(s.pending, c)
			continue
		}
		c.fn(ctx)
	}
}

// Pending returns the number of scheduled continuations.
func (s *Simulation) Pending() int { return len(s.pending) }

// Subscribe registers a fire-and-forget event hook.
func (s *Simulation) Subscribe(fn func(Event)) (unsubscribe func()) {
	return s.hooks.Subscribe(fn)
}

// Close stops all hook goroutines.
func (s *Simulation) Close() {
	s.hooks.Close()
}

// View returns the read-only header for renderers.
func (s *Simulation) View() View {
	return View{
		Game:  s.rules.ID(),
		Title: s.rules.Title(),
		Mode:  s.mode,
		Score: s.prog.Score(),
		Lives: s.prog.Lives(),
		Level: s.prog.Level(),
		Tick:  s.tick,
	}
}

// Render clears dst and draws the game, the HUD and the mode overlay.
func (s *Simulation) Render(dst *Screen) {
	dst.Clear()
	v := s.View()
	s.rules.Render(dst, v)
	DrawHUD(dst, v, s.params.Lives > 1)
}

func (s *Simulation) newCtx() *Ctx {
	return &Ctx{sim: s}
}

// Ctx is the update stage's handle on its simulation for one tick.
type Ctx struct {
	sim    *Simulation
	events []Event
	over   bool
	serve  bool
}

// Rand returns the simulation's random source.
func (c *Ctx) Rand() Rand { return c.sim.rng }

// Config returns the runtime configuration.
func (c *Ctx) Config() RuntimeConfig { return c.sim.cfg }

// Tick returns the number of playing ticks since the last reset.
func (c *Ctx) Tick() uint64 { return c.sim.tick }

// Score returns the current score.
func (c *Ctx) Score() int { return c.sim.prog.Score() }

// Lives returns the remaining lives.
func (c *Ctx) Lives() int { return c.sim.prog.Lives() }

// Level returns the current level or wave.
func (c *Ctx) Level() int { return c.sim.prog.Level() }

// Over reports whether the game ended during this tick. Rules must stop
// mutating state once it is true.
func (c *Ctx) Over() bool { return c.over }

// Award adds points and emits a scored event.
func (c *Ctx) Award(points int) {
	if c.over || points <= 0 {
		return
	}
	c.sim.prog.Award(points)
	c.emit(EventScored, points, "")
}

// LoseLife removes a life, emits a hit event and reports whether any
// lives remain. Losing the last life ends the game in this tick.
func (c *Ctx) LoseLife(cause string) bool {
	if c.over {
		return false
	}
	left := c.sim.prog.LoseLife()
	c.emit(EventHit, left, cause)
	if c.sim.prog.Depleted() {
		c.over = true
		return false
	}
	return true
}

// GainLife adds a life up to cap.
func (c *Ctx) GainLife(cap int) {
	if c.over {
		return
	}
	c.sim.prog.GainLife(cap)
}

// NextLevel advances the level and emits a level-up event.
func (c *Ctx) NextLevel() {
	if c.over {
		return
	}
	c.sim.prog.NextLevel()
	c.emit(EventLevelUp, c.sim.prog.Level(), "")
}

// Finish ends the game without losing a life.
func (c *Ctx) Finish() {
	c.over = true
}

// Serve returns the simulation to serving at the end of this tick.
func (c *Ctx) Serve() {
	if c.sim.params.Serve {
		c.serve = true
	}
}

// After schedules fn to run at the start of the playing tick that comes
// ticks from now. It is dropped if the simulation resets or ends first.
func (c *Ctx) After(ticks int, fn func(*Ctx)) {
	if ticks < 1 {
		ticks = 1
	}
	c.sim.pending = append(c.sim.pending, continuation{
		due: c.sim.tick + uint64(ticks),
		gen: c.sim.gen,
		fn:  fn,
	})
}

// SettleTicks returns the settling delay between a completed level and
// the next one, about one second.
func (c *Ctx) SettleTicks() int {
	return c.sim.cfg.Ticks(1000)
}

// Emit publishes a custom event.
func (c *Ctx) Emit(kind EventKind, value int, detail string) {
	c.emit(kind, value, detail)
}

func (c *Ctx) emit(kind EventKind, value int, detail string) {
	c.events = append(c.events, Event{
		Game:   c.sim.rules.ID(),
		Kind:   kind,
		Tick:   c.sim.tick,
		Value:  value,
		Detail: detail,
	})
}
