package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionFire           // Space - shoot, flap, rotate, place
	ActionAlt            // X - secondary action (hard drop)
	ActionConfirm        // Enter - start, serve
	ActionBack           // B, Escape - back to menu
	ActionRestart        // R - reset the game
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionAlt:
		return "Alt"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Direction is a grid heading.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirRight
	DirDown
	DirLeft
)

// Delta returns the unit grid step for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	}
	return 0, 0
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirRight:
		return DirLeft
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	}
	return DirNone
}

// String returns the lower-case name of the direction.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	}
	return "none"
}

// DirectionOf maps a movement action to its heading.
func DirectionOf(a Action) Direction {
	switch a {
	case ActionUp:
		return DirUp
	case ActionRight:
		return DirRight
	case ActionDown:
		return DirDown
	case ActionLeft:
		return DirLeft
	}
	return DirNone
}

// InputFrame is the input snapshot consumed by one simulation tick.
type InputFrame struct {
	// Actions holds every action held during the tick, including presses
	// that were released before the snapshot was taken.
	Actions map[Action]bool
	// Pressed holds actions pressed since the previous snapshot.
	Pressed map[Action]bool
	// Direction is the one-shot requested heading, DirNone if none.
	Direction Direction
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Pressed: make(map[Action]bool),
	}
}

// Set marks an action as held and freshly pressed for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.Pressed[a] = true
	if d := DirectionOf(a); d != DirNone {
		f.Direction = d
	}
}

// Has returns true if the action is held this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// JustPressed returns true if the action went down since the previous frame.
func (f InputFrame) JustPressed(a Action) bool {
	return f.Pressed[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Pressed)
	f.Direction = DirNone
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	for k, v := range f.Pressed {
		c.Pressed[k] = v
	}
	c.Direction = f.Direction
	return c
}
