package mpcio

import (
	"fmt"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/protocol"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
)

// RuntimeConfig is the immutable per-session configuration. It is created
// once before any IoClient or ColocatedIo and shared by value across the
// components of one session.
type RuntimeConfig struct {
	// Protocol selects the secret-sharing strategy.
	Protocol protocol.Kind

	// Field selects the ring width arithmetic is performed over.
	Field ring.Field

	// FxpFractionBits overrides the fixed-point codec's fractional bit count.
	// Zero selects the per-field default.
	FxpFractionBits int

	// EnableColocatedOptimization downgrades SECRET registrations to PRIVATE
	// during sync when the owner can sample every party's share locally,
	// skipping the share exchange.
	EnableColocatedOptimization bool
}

// defaultFxpBits returns the default fixed-point fraction bits per field,
// sized so products of typical values stay clear of the ring width.
func defaultFxpBits(f ring.Field) int {
	switch f {
	case ring.FM32:
		return 8
	case ring.FM128:
		return 26
	default:
		return 18
	}
}

// Validate checks the configuration independent of any world size.
func (c RuntimeConfig) Validate() error {
	if !c.Protocol.Valid() {
		return fmt.Errorf("%w: protocol %d", ErrConfiguration, c.Protocol)
	}
	if !c.Field.Valid() {
		return fmt.Errorf("%w: field %d", ErrConfiguration, c.Field)
	}
	if c.FxpFractionBits < 0 || c.FxpFractionBits >= c.Field.Bits() {
		return fmt.Errorf("%w: fxp fraction bits %d out of range for %v",
			ErrConfiguration, c.FxpFractionBits, c.Field)
	}
	return nil
}

// fxpBits returns the effective fixed-point fraction bit count.
func (c RuntimeConfig) fxpBits() int {
	if c.FxpFractionBits > 0 {
		return c.FxpFractionBits
	}
	return defaultFxpBits(c.Field)
}
