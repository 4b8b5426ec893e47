package mpcio

// Visibility classifies how much of a value each party may learn. It is
// assigned at creation and immutable for the life of a value.
type Visibility int

const (
	// VisUnknown is the zero value.
	VisUnknown Visibility = iota

	// VisPublic values are held in identical plaintext by every party.
	VisPublic

	// VisSecret values are split into world-size shares; reconstruction
	// requires the protocol's quorum.
	VisSecret

	// VisPrivate values are known in full by exactly one owning party and
	// representable as shares without cross-party communication.
	VisPrivate
)

// String returns a short human-readable name for the visibility.
func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisSecret:
		return "secret"
	case VisPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Valid reports whether v is one of the defined visibilities.
func (v Visibility) Valid() bool {
	return v == VisPublic || v == VisSecret || v == VisPrivate
}
