package ptype

// Type tags the logical element kind of a plaintext value.
// The zero value is Unknown.
type Type int

const (
	Unknown Type = iota
	I1           // boolean
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	F32
	F64
)

// String returns a short human-readable name for the type tag.
func (t Type) String() string {
	switch t {
	case I1:
		return "I1"
	case I8:
		return "I8"
	case U8:
		return "U8"
	case I16:
		return "I16"
	case U16:
		return "U16"
	case I32:
		return "I32"
	case U32:
		return "U32"
	case I64:
		return "I64"
	case U64:
		return "U64"
	case F32:
		return "F32"
	case F64:
		return "F64"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the defined type tags.
func (t Type) Valid() bool {
	return t > Unknown && t <= F64
}

// IsInt reports whether t is an integer kind (including boolean).
func (t Type) IsInt() bool {
	switch t {
	case I1, I8, U8, I16, U16, I32, U32, I64, U64:
		return true
	default:
		return false
	}
}

// IsFixedPoint reports whether t is a real kind that requires the fixed-point
// codec when encoded into a ring.
func (t Type) IsFixedPoint() bool {
	return t == F32 || t == F64
}

// IsSigned reports whether values of t sign-extend when widened.
func (t Type) IsSigned() bool {
	switch t {
	case I8, I16, I32, I64, F32, F64:
		return true
	default:
		return false
	}
}

// Bits returns the storage width of one element in bits.
func (t Type) Bits() int {
	switch t {
	case I1:
		return 1
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	default:
		return 0
	}
}
