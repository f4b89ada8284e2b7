package core

// HitLedger records which actors already took a destructive outcome in
// the current tick, so overlapping hazards cannot double-penalize.
type HitLedger struct {
	struck map[int]bool
}

// Begin clears the ledger at the start of a tick.
func (l *HitLedger) Begin() {
	if l.struck == nil {
		l.struck = make(map[int]bool)
		return
	}
	clear(l.struck)
}

// Strike marks id as hit and returns true the first time in a tick.
func (l *HitLedger) Strike(id int) bool {
	if l.struck == nil {
		l.struck = make(map[int]bool)
	}
	if l.struck[id] {
		return false
	}
	l.struck[id] = true
	return true
}

// Struck reports whether id was already hit this tick.
func (l *HitLedger) Struck(id int) bool {
	return l.struck[id]
}

// FirstOverlap returns the first entity in targets (in order) whose bounds
// overlap actor, or nil.
func FirstOverlap(actor Box, targets []*Entity) *Entity {
	for _, t := range targets {
		if actor.Overlaps(t.Bounds()) {
			return t
		}
	}
	return nil
}

// LandsOn reports whether a falling body lands on top of a platform this
// tick: it must be moving down, overlap horizontally, and cross the
// platform's top edge.
func LandsOn(body Box, vy float64, platform Box) bool {
	return vy > 0 &&
		body.X < platform.Right() &&
		body.Right() > platform.X &&
		body.Bottom() >= platform.Y &&
		body.Y < platform.Y
}
