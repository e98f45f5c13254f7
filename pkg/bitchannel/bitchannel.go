// Package bitchannel modulates and demodulates single bits into DCT
// coefficients using quantization-aware index modulation (QIM): the
// coefficient is snapped to the nearest multiple of a step s whose index
// parity (even/odd) carries the bit.
package bitchannel

import "math"

// Position identifies one DCT coefficient by (row, column).
type Position struct {
	U, V int
}

// Positions is the ordered, frozen list of coefficient positions used to
// carry channel bits. Changing this list breaks wire compatibility with
// anything encoded under the previous order.
var Positions = [8]Position{
	{4, 1}, {1, 4}, {3, 2}, {2, 3},
	{5, 0}, {0, 5}, {3, 4}, {4, 3},
}

func signedParity(m int64) int {
	p := m % 2
	if p < 0 {
		p += 2
	}
	return int(p)
}

// Modulate embeds bit into value by moving it to the nearest multiple of s
// whose quantization index has the matching parity: even index carries 0,
// odd index carries 1. When value already snaps to an index of the wrong
// parity, it is nudged by one step in whichever direction keeps it closest
// to the original value.
func Modulate(value float64, bit int, s float64) float64 {
	idxF := value / s
	idx := int64(math.Round(idxF))
	if signedParity(idx) != bit {
		if idxF-float64(idx) >= 0 {
			idx++
		} else {
			idx--
		}
	}
	return float64(idx) * s
}

// Demodulate recovers the bit carried by value under step s: the parity of
// the nearest quantization index, even for 0, odd for 1.
func Demodulate(value float64, s float64) int {
	idx := int64(math.Round(value / s))
	return signedParity(idx)
}
