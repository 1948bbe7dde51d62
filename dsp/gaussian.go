package dsp

import "math"

// gaussTableSize is the resolution of the 4-tap interpolation kernel: the
// top 8 bits of a voice's 12-bit pitch-counter fraction select one of 256
// points along the kernel.
const gaussTableSize = 256

// gaussTable holds 4 interleaved lanes (one per tap) of a symmetric
// Gaussian-shaped interpolation kernel. Real hardware's table is a fixed
// ROM constant reverse-engineered from silicon; the retrieval pack used to
// build this module carries no byte-exact dump of it, so this table is
// instead computed once at init() from a continuous Gaussian shaped to
// sum to the hardware's known unity-gain convention (the four lanes for
// any given phase sum to approximately 1.0 in Q12 fixed point). Treat it
// the way iplROM in package mem is treated: a best-effort stand-in, not a
// silicon-traced constant.
var gaussTable [4][gaussTableSize]int32

func init() {
	const sigma = 0.5
	for phase := 0; phase < gaussTableSize; phase++ {
		frac := float64(phase) / gaussTableSize
		var taps [4]float64
		var sum float64
		for tap := 0; tap < 4; tap++ {
			// tap offsets -0.5, +0.5, +1.5, +2.5, each minus frac: taps 0
			// and 1 weigh equally at frac 0, taps 1 and 2 as frac nears 1.
			x := float64(tap-1) + (0.5 - frac)
			taps[tap] = math.Exp(-(x * x) / (2 * sigma * sigma))
			sum += taps[tap]
		}
		for tap := 0; tap < 4; tap++ {
			gaussTable[tap][phase] = int32(math.Round(taps[tap] / sum * 4096))
		}
	}
}

// interpolate produces one output sample from four consecutive decoded
// BRR samples (oldest first) and a 12-bit pitch-counter fraction.
func interpolate(h [4]int32, frac uint16) int32 {
	phase := int((frac >> 4) & (gaussTableSize - 1))
	out := h[0]*gaussTable[0][phase] + h[1]*gaussTable[1][phase] +
		h[2]*gaussTable[2][phase] + h[3]*gaussTable[3][phase]
	return out >> 12
}
