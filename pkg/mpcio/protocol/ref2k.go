package protocol

import (
	"fmt"
	"io"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
)

// ref2k is the two-party reference strategy: x is split as (r, x-r) mod 2^k.
// It exists as the simplest correct baseline for the additive reconstruction
// rule.
type ref2k struct{}

func (ref2k) Kind() Kind { return Ref2K }

func (ref2k) CheckWorldSize(worldSize int) error {
	if worldSize != 2 {
		return fmt.Errorf("%w: %v requires exactly 2 parties, got %d", ErrWorldSize, Ref2K, worldSize)
	}
	return nil
}

func (ref2k) Share(secret *ring.Tensor, worldSize int, entropy io.Reader) ([]Chunks, error) {
	r := ring.NewTensor(secret.Field(), secret.Shape())
	if err := r.FillRandom(entropy); err != nil {
		return nil, err
	}
	rest := secret.Clone()
	if err := rest.SubAssign(r); err != nil {
		return nil, err
	}
	return []Chunks{{r}, {rest}}, nil
}

func (ref2k) Reconstruct(chunks []Chunks, out *ring.Tensor) error {
	return additiveReconstruct(chunks, 2, out)
}
