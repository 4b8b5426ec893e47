package ptype

import "math"

// EncodeFxp maps a real value onto a signed fixed-point integer with fracBits
// fractional bits, rounding to nearest. The result is the two's-complement
// integer later reduced into the ring.
func EncodeFxp(v float64, fracBits int) int64 {
	return int64(math.Round(v * float64(uint64(1)<<fracBits)))
}

// DecodeFxp is the inverse of EncodeFxp up to the codec's declared precision
// of 2^-fracBits.
func DecodeFxp(raw int64, fracBits int) float64 {
	return float64(raw) / float64(uint64(1)<<fracBits)
}
