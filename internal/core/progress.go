package core

// Progress tracks score, lives and level for one play session.
//
// Score only grows through Award; lives only shrink through LoseLife; the
// crossing to zero lives is recorded exactly once so the state machine can
// react to it in the same tick.
type Progress struct {
	score        int
	lives        int
	level        int
	initialLives int
	depleted     bool
}

// NewProgress creates a controller with the given starting lives.
func NewProgress(lives int) *Progress {
	p := &Progress{initialLives: lives}
	p.Reset()
	return p
}

// Reset restores score 0, the starting lives and level 1.
func (p *Progress) Reset() {
	p.score = 0
	p.lives = p.initialLives
	p.level = 1
	p.depleted = false
}

// Score returns the current score.
func (p *Progress) Score() int { return p.score }

// Lives returns the remaining lives.
func (p *Progress) Lives() int { return p.lives }

// Level returns the current level or wave, starting at 1.
func (p *Progress) Level() int { return p.level }

// Award adds points. Non-positive awards are ignored.
func (p *Progress) Award(points int) {
	if points > 0 {
		p.score += points
	}
}

// LoseLife removes one life and returns the lives left.
func (p *Progress) LoseLife() int {
	if p.lives <= 0 {
		return 0
	}
	p.lives--
	if p.lives == 0 {
		p.depleted = true
	}
	return p.lives
}

// GainLife adds a life up to cap.
func (p *Progress) GainLife(cap int) {
	if p.lives < cap {
		p.lives++
	}
}

// NextLevel advances the level by one.
func (p *Progress) NextLevel() {
	p.level++
}

// Depleted reports whether lives have crossed from positive to zero.
func (p *Progress) Depleted() bool {
	return p.depleted
}

// Standing is a copy of a Progress at one moment.
type Standing struct {
	score, lives, level int
}

func (s Standing) Score() int { return s.score }
func (s Standing) Lives() int { return s.lives }
func (s Standing) Level() int { return s.level }

// Standing returns the current score, lives and level by value.
func (p *Progress) Standing() Standing {
	return Standing{score: p.score, lives: p.lives, level: p.level}
}
