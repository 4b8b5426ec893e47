package ring

// Field identifies the integer ring 2^k used as the arithmetic domain.
// The zero value is Unknown.
type Field int

const (
	Unknown Field = iota
	FM32          // Z_2^32
	FM64          // Z_2^64
	FM128         // Z_2^128
)

// String returns a short human-readable name for the field.
func (f Field) String() string {
	switch f {
	case FM32:
		return "FM32"
	case FM64:
		return "FM64"
	case FM128:
		return "FM128"
	default:
		return "Unknown"
	}
}

// Valid reports whether f is one of the supported rings.
func (f Field) Valid() bool {
	return f == FM32 || f == FM64 || f == FM128
}

// Bits returns the ring width k in bits.
func (f Field) Bits() int {
	switch f {
	case FM32:
		return 32
	case FM64:
		return 64
	case FM128:
		return 128
	default:
		return 0
	}
}

// Bytes returns the ring width in bytes.
func (f Field) Bytes() int { return f.Bits() / 8 }

// limbs returns the number of 64-bit limbs backing one element.
func (f Field) limbs() int {
	if f == FM128 {
		return 2
	}
	return 1
}

// loMask returns the mask applied to the low limb of an element.
func (f Field) loMask() uint64 {
	if f == FM32 {
		return 1<<32 - 1
	}
	return ^uint64(0)
}

// EncodeInt reduces a signed integer into the ring as two's complement.
func (f Field) EncodeInt(v int64) (lo, hi uint64) {
	lo = uint64(v) & f.loMask()
	if f == FM128 && v < 0 {
		hi = ^uint64(0)
	}
	return lo, hi
}

// DecodeInt interprets a ring element as a signed integer by sign-extending
// from the ring width. Values outside the int64 range wrap.
func (f Field) DecodeInt(lo, hi uint64) int64 {
	switch f {
	case FM32:
		return int64(int32(uint32(lo)))
	default:
		return int64(lo)
	}
}

// EncodeUint reduces an unsigned integer into the ring.
func (f Field) EncodeUint(v uint64) (lo, hi uint64) {
	return v & f.loMask(), 0
}

// DecodeUint interprets a ring element as an unsigned integer, truncating to
// 64 bits for FM128.
func (f Field) DecodeUint(lo, hi uint64) uint64 {
	return lo
}
