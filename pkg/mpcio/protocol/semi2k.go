package protocol

import (
	"fmt"
	"io"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
)

// semi2k is semi-honest additive sharing over Z_2^k for any n >= 2 parties:
// n-1 uniform chunks plus a balance chunk making the sum equal the secret.
type semi2k struct{}

func (semi2k) Kind() Kind { return Semi2K }

func (semi2k) CheckWorldSize(worldSize int) error {
	if worldSize < 2 {
		return fmt.Errorf("%w: %v requires at least 2 parties, got %d", ErrWorldSize, Semi2K, worldSize)
	}
	return nil
}

func (semi2k) Share(secret *ring.Tensor, worldSize int, entropy io.Reader) ([]Chunks, error) {
	out := make([]Chunks, worldSize)
	balance := secret.Clone()
	for i := 0; i < worldSize-1; i++ {
		r := ring.NewTensor(secret.Field(), secret.Shape())
		if err := r.FillRandom(entropy); err != nil {
			return nil, err
		}
		if err := balance.SubAssign(r); err != nil {
			return nil, err
		}
		out[i] = Chunks{r}
	}
	out[worldSize-1] = Chunks{balance}
	return out, nil
}

func (semi2k) Reconstruct(chunks []Chunks, out *ring.Tensor) error {
	return additiveReconstruct(chunks, len(chunks), out)
}

// additiveReconstruct sums chunk 0 of every party modulo 2^k into out.
func additiveReconstruct(chunks []Chunks, want int, out *ring.Tensor) error {
	if err := checkChunkCount(chunks, want); err != nil {
		return err
	}
	acc := chunks[0][0].Clone()
	for _, c := range chunks[1:] {
		if err := acc.AddAssign(c[0]); err != nil {
			return fmt.Errorf("%w: %v", ErrInconsistent, err)
		}
	}
	return out.CopyFrom(acc)
}
