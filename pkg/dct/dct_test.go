package dct

import (
	"math"
	"math/rand"
	"testing"
)

func TestRoundTripConstantBlock(t *testing.T) {
	var b Block
	for y := range b {
		for x := range b[y] {
			b[y][x] = 100.0
		}
	}

	coeffs := Forward(b)
	got := Inverse(coeffs)

	for y := range b {
		for x := range b[y] {
			if math.Abs(got[y][x]-b[y][x]) > 1e-6 {
				t.Fatalf("round trip mismatch at (%d,%d): got %v want %v", y, x, got[y][x], b[y][x])
			}
		}
	}
}

func TestRoundTripRandomBlocks(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		var b Block
		for y := range b {
			for x := range b[y] {
				// keep values away from the clamp boundary so the
				// comparison below isn't affected by Inverse's clamp.
				b[y][x] = 10 + rng.Float64()*235
			}
		}

		got := Inverse(Forward(b))
		for y := range b {
			for x := range b[y] {
				if math.Abs(got[y][x]-b[y][x]) > 1e-6 {
					t.Fatalf("trial %d: mismatch at (%d,%d): got %v want %v", trial, y, x, got[y][x], b[y][x])
				}
			}
		}
	}
}

func TestForwardDCZero(t *testing.T) {
	var b Block
	for y := range b {
		for x := range b[y] {
			b[y][x] = 128.0
		}
	}
	coeffs := Forward(b)
	if math.Abs(coeffs[0][0]) > 1e-9 {
		t.Fatalf("expected zero DC for a flat mid-gray block, got %v", coeffs[0][0])
	}
}
