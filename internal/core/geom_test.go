package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{"overlapping", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, true},
		{"separate horizontal", Box{0, 0, 10, 10}, Box{15, 0, 10, 10}, false},
		{"separate vertical", Box{0, 0, 10, 10}, Box{0, 15, 10, 10}, false},
		{"touching right edge", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, false},
		{"touching bottom edge", Box{0, 0, 10, 10}, Box{0, 10, 10, 10}, false},
		{"contained", Box{0, 0, 20, 20}, Box{5, 5, 5, 5}, true},
		{"sub-unit overlap", Box{0, 0, 10, 10}, Box{9.5, 9.5, 10, 10}, true},
		{"zero width", Box{5, 0, 0, 10}, Box{0, 0, 10, 10}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestOverlapSymmetry(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 5000; i++ {
		a := Box{X: r.Float64() * 100, Y: r.Float64() * 100, W: r.Float64() * 30, H: r.Float64() * 30}
		b := Box{X: r.Float64() * 100, Y: r.Float64() * 100, W: r.Float64() * 30, H: r.Float64() * 30}
		if a.Overlaps(b) != b.Overlaps(a) {
			t.Fatalf("asymmetric overlap for %+v and %+v", a, b)
		}

		pa := Vec{X: r.Float64() * 10, Y: r.Float64() * 10}
		pb := Vec{X: r.Float64() * 10, Y: r.Float64() * 10}
		ra, rb := r.Float64()*3, r.Float64()*3
		if CirclesOverlap(pa, pb, ra, rb) != CirclesOverlap(pb, pa, rb, ra) {
			t.Fatalf("asymmetric circle check for %+v/%v and %+v/%v", pa, ra, pb, rb)
		}
	}
}

func TestCirclesOverlap(t *testing.T) {
	a := Vec{X: 0, Y: 0}
	if !CirclesOverlap(a, Vec{X: 0.69}, 0.35, 0.35) {
		t.Error("distance 0.69 should overlap radii summing to 0.7")
	}
	if CirclesOverlap(a, Vec{X: 0.7}, 0.35, 0.35) {
		t.Error("distance equal to the radius sum should not overlap")
	}
	if !CirclesOverlap(Vec{X: 1, Z: 1}, Vec{X: 1, Z: 1.5}, 0.5, 0.5) {
		t.Error("depth axis should count toward distance")
	}
}

func TestRectIntersects(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	if !a.Intersects(NewRect(9, 9, 10, 10)) {
		t.Error("single cell overlap should intersect")
	}
	if a.Intersects(NewRect(10, 0, 10, 10)) {
		t.Error("adjacent rects should not intersect")
	}
	if !a.Contains(0, 0) || a.Contains(10, 10) {
		t.Error("Contains should include the top-left and exclude the bottom-right")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, min, max, expected float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 9},
		{10, 0, 10, 0},
		{26, -25, 25, -24},
		{-26, -25, 25, 24},
	}
	for _, tc := range tests {
		if got := Wrap(tc.v, tc.min, tc.max); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Wrap(%v, %v, %v) = %v, expected %v", tc.v, tc.min, tc.max, got, tc.expected)
		}
	}

	if WrapInt(-1, 19) != 18 || WrapInt(19, 19) != 0 {
		t.Error("WrapInt should re-enter from the opposite edge")
	}
}

func TestSeek(t *testing.T) {
	tests := []struct {
		name                              string
		cur, target, step, dead, expected float64
	}{
		{"step toward larger", 0, 10, 4, 0, 4},
		{"step toward smaller", 10, 0, 4, 0, 6},
		{"does not overshoot", 0, 2, 4, 0, 2},
		{"inside dead zone", 100, 104, 4, 5, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Seek(tc.cur, tc.target, tc.step, tc.dead); got != tc.expected {
				t.Errorf("Seek() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestJitterBounded(t *testing.T) {
	r := NewRand(3)
	for i := 0; i < 1000; i++ {
		j := Jitter(r, 12)
		if j < -12 || j >= 12 {
			t.Fatalf("Jitter out of range: %v", j)
		}
	}
	if Jitter(r, 0) != 0 {
		t.Error("zero spread should not jitter")
	}

	seq := &SeqRand{Values: []float64{0, 0.5}}
	if got := Jitter(seq, 10); got != -10 {
		t.Errorf("Jitter at 0 = %v, expected -10", got)
	}
	if got := Jitter(seq, 10); got != 0 {
		t.Errorf("Jitter at 0.5 = %v, expected 0", got)
	}
}

func TestLandsOn(t *testing.T) {
	platform := Box{X: 100, Y: 250, W: 120, H: 20}

	tests := []struct {
		name     string
		body     Box
		vy       float64
		expected bool
	}{
		{"falling through top edge", Box{X: 120, Y: 225, W: 40, H: 30}, 2, true},
		{"rising through top edge", Box{X: 120, Y: 225, W: 40, H: 30}, -2, false},
		{"above platform", Box{X: 120, Y: 200, W: 40, H: 30}, 2, false},
		{"beside platform", Box{X: 230, Y: 225, W: 40, H: 30}, 2, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := LandsOn(tc.body, tc.vy, platform); got != tc.expected {
				t.Errorf("LandsOn() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
	if ClampF(380.5, 0, 380) != 380 {
		t.Error("ClampF should clamp to max")
	}
}
