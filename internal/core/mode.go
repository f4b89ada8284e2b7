package core

// Mode is the simulation's state-machine state.
type Mode uint8

const (
	ModeStart Mode = iota
	ModeServing
	ModePlaying
	ModePaused
	ModeGameOver
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeStart:
		return "start"
	case ModeServing:
		return "serving"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "gameOver"
	}
	return "unknown"
}

// MarshalText serializes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
