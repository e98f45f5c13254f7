// Package quant derives JPEG-style luminance quantization tables and the
// per-coefficient embedding strength the bit channel uses.
package quant

// StrengthFloor is the minimum modulation amplitude regardless of the
// scaled quantization step at high quality, low-step positions.
const StrengthFloor = 25.0

// strengthAlpha scales the quantization step into an embedding strength.
const strengthAlpha = 1.0

// baseLuminance is the standard JPEG Annex K luminance quantization table.
var baseLuminance = [8][8]int{
	{16, 11, 10, 16, 24, 40, 51, 61},
	{12, 12, 14, 19, 26, 58, 60, 55},
	{14, 13, 16, 24, 40, 57, 69, 56},
	{14, 17, 22, 29, 51, 87, 80, 62},
	{18, 22, 37, 56, 68, 109, 103, 77},
	{24, 35, 55, 64, 81, 104, 113, 92},
	{49, 64, 78, 87, 103, 121, 120, 101},
	{72, 92, 95, 98, 112, 100, 103, 99},
}

// Table is an 8x8 scaled quantization table for one quality level.
type Table struct {
	steps [8][8]int
}

// New builds the scaled quantization table for quality in [1,100],
// clamping out-of-range input to the nearest bound.
func New(quality int) Table {
	if quality < 1 {
		quality = 1
	} else if quality > 100 {
		quality = 100
	}

	var scale int
	if quality < 50 {
		scale = 5000 / quality
	} else {
		scale = 200 - 2*quality
	}

	var t Table
	for u := 0; u < 8; u++ {
		for v := 0; v < 8; v++ {
			val := (baseLuminance[u][v]*scale + 50) / 100
			if val < 1 {
				val = 1
			} else if val > 255 {
				val = 255
			}
			t.steps[u][v] = val
		}
	}
	return t
}

// Step returns the scaled quantization step at coefficient (u,v).
func (t Table) Step(u, v int) int {
	return t.steps[u][v]
}

// Strength returns the embedding amplitude for coefficient (u,v):
// max(step*alpha, StrengthFloor).
func (t Table) Strength(u, v int) float64 {
	s := float64(t.steps[u][v]) * strengthAlpha
	if s < StrengthFloor {
		return StrengthFloor
	}
	return s
}
