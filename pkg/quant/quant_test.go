package quant

import "testing"

func TestStepFloor(t *testing.T) {
	for _, q := range []int{1, 5, 50, 85, 100} {
		table := New(q)
		for u := 0; u < 8; u++ {
			for v := 0; v < 8; v++ {
				if s := table.Step(u, v); s < 1 || s > 255 {
					t.Fatalf("quality %d: step(%d,%d)=%d out of [1,255]", q, u, v, s)
				}
			}
		}
	}
}

func TestStrengthFloor(t *testing.T) {
	// At quality 100 the base table's smallest entries scale well below
	// the 25.0 floor, so Strength must clamp up to it.
	table := New(100)
	if s := table.Strength(0, 1); s < StrengthFloor {
		t.Fatalf("strength %v below floor %v", s, StrengthFloor)
	}
}

func TestQualityClamped(t *testing.T) {
	low := New(-5)
	high := New(500)
	if low != New(1) {
		t.Fatalf("quality below range not clamped to 1")
	}
	if high != New(100) {
		t.Fatalf("quality above range not clamped to 100")
	}
}

func TestKnownTableValues(t *testing.T) {
	// Quality 50 uses scale=100, so the scaled table equals the base table.
	table := New(50)
	if got := table.Step(0, 0); got != 16 {
		t.Fatalf("quality 50 step(0,0) = %d, want 16", got)
	}
	if got := table.Step(0, 1); got != 11 {
		t.Fatalf("quality 50 step(0,1) = %d, want 11", got)
	}
}
