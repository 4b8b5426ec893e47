package protocol

import (
	"errors"
	"fmt"
	"io"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
)

var (
	ErrUnknownKind   = errors.New("protocol: unknown kind")
	ErrWorldSize     = errors.New("protocol: world size unsupported")
	ErrIncompleteSet = errors.New("protocol: incomplete share chunk set")
	ErrInconsistent  = errors.New("protocol: inconsistent share chunks")
)

// Kind selects a secret-sharing strategy.
// The zero value is Unknown.
type Kind int

const (
	Unknown Kind = iota
	Ref2K
	Semi2K
	Repl3
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Ref2K:
		return "REF2K"
	case Semi2K:
		return "SEMI2K"
	case Repl3:
		return "REPL3"
	default:
		return "Unknown"
	}
}

// Valid reports whether k names a registered strategy.
func (k Kind) Valid() bool {
	return k == Ref2K || k == Semi2K || k == Repl3
}

// Chunks holds the ring tensors one party receives for one shared value.
// Additive strategies hand out a single tensor; replicated strategies hand
// out one tensor per replica slot.
type Chunks []*ring.Tensor

// Strategy is the uniform split/reconstruct contract the I/O layer dispatches
// against. Implementations are stateless and safe for concurrent use.
type Strategy interface {
	Kind() Kind

	// CheckWorldSize validates the party-count constraint. It is called once
	// at client construction, never at share time.
	CheckWorldSize(worldSize int) error

	// Share splits secret into worldSize chunk sets, consuming randomness
	// from entropy. The secret tensor is not modified.
	Share(secret *ring.Tensor, worldSize int, entropy io.Reader) ([]Chunks, error)

	// Reconstruct recovers the secret from a complete, mutually consistent
	// chunk set into out, which must match the shares' field and shape.
	Reconstruct(chunks []Chunks, out *ring.Tensor) error
}

// ForKind returns the strategy registered for k.
func ForKind(k Kind) (Strategy, error) {
	switch k {
	case Ref2K:
		return ref2k{}, nil
	case Semi2K:
		return semi2k{}, nil
	case Repl3:
		return repl3{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
}

// Kinds lists the registered strategy kinds.
func Kinds() []Kind {
	return []Kind{Ref2K, Semi2K, Repl3}
}

func checkChunkCount(chunks []Chunks, want int) error {
	if len(chunks) != want {
		return fmt.Errorf("%w: got %d chunk sets, want %d", ErrIncompleteSet, len(chunks), want)
	}
	for i, c := range chunks {
		if len(c) == 0 || c[0] == nil {
			return fmt.Errorf("%w: party %d chunk missing", ErrIncompleteSet, i)
		}
	}
	return nil
}
