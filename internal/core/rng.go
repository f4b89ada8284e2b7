package core

import "math/rand"

// Rand is the random source used by spawn logic and AI jitter.
// *rand.Rand satisfies it; tests substitute a scripted sequence.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// NewRand returns a seeded pseudo-random source.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// SeqRand replays a fixed list of floats in [0,1), cycling when exhausted.
// Intn derives its result from the next float.
type SeqRand struct {
	Values []float64
	i      int
}

// Float64 returns the next scripted value.
func (s *SeqRand) Float64() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.i%len(s.Values)]
	s.i++
	return v
}

// Intn returns int(next*n), clamped to [0, n).
func (s *SeqRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return Clamp(int(s.Float64()*float64(n)), 0, n-1)
}
