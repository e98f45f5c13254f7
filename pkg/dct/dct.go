// Package dct implements the separable 8x8 type-II Discrete Cosine
// Transform used by the JPEG luminance pipeline.
package dct

import "math"

const blockSize = 8

// cosineTable[k][n] = cos((2n+1)*k*pi/16), precomputed once.
var cosineTable [blockSize][blockSize]float64

func init() {
	for k := 0; k < blockSize; k++ {
		for n := 0; n < blockSize; n++ {
			cosineTable[k][n] = math.Cos(float64(2*n+1) * float64(k) * math.Pi / 16.0)
		}
	}
}

func normFactor(k int) float64 {
	if k == 0 {
		return 1.0 / math.Sqrt2
	}
	return 1.0
}

// Block is an 8x8 block of real-valued samples or coefficients, row-major.
type Block [blockSize][blockSize]float64

func dct1D(in [blockSize]float64) [blockSize]float64 {
	var out [blockSize]float64
	for k := 0; k < blockSize; k++ {
		sum := 0.0
		for n := 0; n < blockSize; n++ {
			sum += in[n] * cosineTable[k][n]
		}
		out[k] = 0.5 * normFactor(k) * sum
	}
	return out
}

func idct1D(in [blockSize]float64) [blockSize]float64 {
	var out [blockSize]float64
	for n := 0; n < blockSize; n++ {
		sum := 0.0
		for k := 0; k < blockSize; k++ {
			sum += normFactor(k) * in[k] * cosineTable[k][n]
		}
		out[n] = 0.5 * sum
	}
	return out
}

// Forward applies the 2-D type-II DCT to a level-shifted spatial block.
// Input samples are expected in [0,255]; the -128 level shift is applied
// internally before the transform.
func Forward(spatial Block) Block {
	var shifted Block
	for y := 0; y < blockSize; y++ {
		for x := 0; x < blockSize; x++ {
			shifted[y][x] = spatial[y][x] - 128.0
		}
	}

	// rows first
	var rows Block
	for y := 0; y < blockSize; y++ {
		rows[y] = dct1D(shifted[y])
	}

	// then columns
	var out Block
	for x := 0; x < blockSize; x++ {
		var col [blockSize]float64
		for y := 0; y < blockSize; y++ {
			col[y] = rows[y][x]
		}
		col = dct1D(col)
		for y := 0; y < blockSize; y++ {
			out[y][x] = col[y]
		}
	}
	return out
}

// Inverse applies the 2-D inverse type-II DCT and undoes the level shift,
// clamping the result to [0,255].
func Inverse(coeffs Block) Block {
	// columns first
	var cols Block
	for x := 0; x < blockSize; x++ {
		var col [blockSize]float64
		for y := 0; y < blockSize; y++ {
			col[y] = coeffs[y][x]
		}
		col = idct1D(col)
		for y := 0; y < blockSize; y++ {
			cols[y][x] = col[y]
		}
	}

	var out Block
	for y := 0; y < blockSize; y++ {
		row := idct1D(cols[y])
		for x := 0; x < blockSize; x++ {
			v := row[x] + 128.0
			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}
			out[y][x] = v
		}
	}
	return out
}
