package mpcio

import "errors"

var (
	// ErrConfiguration marks fatal construction-time failures: a protocol
	// whose party-count constraint conflicts with the world size, an invalid
	// field, or otherwise unusable session parameters.
	ErrConfiguration = errors.New("mpcio: invalid configuration")

	// ErrUnsupportedVisibility is returned when a visibility cannot be
	// produced through the requested entry point, e.g. asking IoClient for
	// private shares directly.
	ErrUnsupportedVisibility = errors.New("mpcio: unsupported visibility")

	// ErrShapeMismatch marks disagreement between share shapes, type tags, or
	// an output buffer and the reconstructed plaintext.
	ErrShapeMismatch = errors.New("mpcio: shape mismatch")

	// ErrIncompleteShareSet is returned when fewer than world-size shares are
	// passed to reconstruction.
	ErrIncompleteShareSet = errors.New("mpcio: incomplete share set")

	// ErrTypeMismatch marks shares that disagree on their plaintext type tag
	// or an output buffer of the wrong element kind.
	ErrTypeMismatch = errors.New("mpcio: plaintext type mismatch")

	// ErrDuplicateVariable fails a sync round in which the same name was
	// registered more than once across the group. The round fails for every
	// participant; there is no partial commit.
	ErrDuplicateVariable = errors.New("mpcio: duplicate variable in sync round")

	// ErrUnknownVariable is returned by DeviceGetVar for names no sync round
	// has registered.
	ErrUnknownVariable = errors.New("mpcio: unknown variable")
)
