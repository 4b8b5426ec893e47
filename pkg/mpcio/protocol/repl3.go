package protocol

import (
	"fmt"
	"io"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
)

// repl3 is three-party replicated additive sharing: the secret is split into
// sub-shares x0+x1+x2 = x mod 2^k and party i holds the pair (x_i, x_{i+1}).
// Holding two of three sub-shares is what later lets the evaluator tolerate
// one corrupted party; this layer only needs the layout.
type repl3 struct{}

func (repl3) Kind() Kind { return Repl3 }

func (repl3) CheckWorldSize(worldSize int) error {
	if worldSize != 3 {
		return fmt.Errorf("%w: %v requires exactly 3 parties, got %d", ErrWorldSize, Repl3, worldSize)
	}
	return nil
}

func (repl3) Share(secret *ring.Tensor, worldSize int, entropy io.Reader) ([]Chunks, error) {
	sub := make([]*ring.Tensor, 3)
	balance := secret.Clone()
	for i := 0; i < 2; i++ {
		r := ring.NewTensor(secret.Field(), secret.Shape())
		if err := r.FillRandom(entropy); err != nil {
			return nil, err
		}
		if err := balance.SubAssign(r); err != nil {
			return nil, err
		}
		sub[i] = r
	}
	sub[2] = balance

	out := make([]Chunks, 3)
	for i := range out {
		out[i] = Chunks{sub[i].Clone(), sub[(i+1)%3].Clone()}
	}
	return out, nil
}

func (repl3) Reconstruct(chunks []Chunks, out *ring.Tensor) error {
	if err := checkChunkCount(chunks, 3); err != nil {
		return err
	}
	for i, c := range chunks {
		if len(c) != 2 || c[1] == nil {
			return fmt.Errorf("%w: party %d holds %d chunks, want 2", ErrIncompleteSet, i, len(c))
		}
	}
	// Replication invariant: party i's second chunk equals party (i+1)'s
	// first.
	for i := range chunks {
		if !chunks[i][1].Equal(chunks[(i+1)%3][0]) {
			return fmt.Errorf("%w: replicas of sub-share %d disagree", ErrInconsistent, (i+1)%3)
		}
	}
	acc := chunks[0][0].Clone()
	for _, c := range chunks[1:] {
		if err := acc.AddAssign(c[0]); err != nil {
			return fmt.Errorf("%w: %v", ErrInconsistent, err)
		}
	}
	return out.CopyFrom(acc)
}
