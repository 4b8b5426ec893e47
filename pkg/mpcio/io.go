package mpcio

import (
	"crypto/rand"
	"fmt"
	"io"
	"slices"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/protocol"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ptype"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/tensor"
)

// Share is one party's fragment of a shared value: the party's ring chunks
// annotated with the plaintext type tag they reconstruct to and the
// visibility they were created under.
type Share struct {
	pt     ptype.Type
	vis    Visibility
	chunks protocol.Chunks
}

// PtType returns the plaintext type tag the share reconstructs to.
func (s *Share) PtType() ptype.Type { return s.pt }

// Visibility returns the visibility the share was created under.
func (s *Share) Visibility() Visibility { return s.vis }

// Field returns the ring the share's chunks live in.
func (s *Share) Field() ring.Field { return s.chunks[0].Field() }

// Shape returns the logical plaintext shape.
func (s *Share) Shape() []int { return s.chunks[0].Shape() }

// NumChunks returns the number of ring tensors this party holds.
func (s *Share) NumChunks() int { return len(s.chunks) }

// Chunk returns the i-th ring tensor of the share.
func (s *Share) Chunk(i int) *ring.Tensor { return s.chunks[i] }

// IoClient turns whole plaintext tensors into per-party share vectors and
// back. It is stateless aside from the world size and configuration fixed at
// construction and is safe for concurrent use.
type IoClient struct {
	worldSize int
	conf      RuntimeConfig
	strategy  protocol.Strategy
	entropy   io.Reader
}

// NewIoClient constructs a client for a group of worldSize parties. The
// configured protocol's party-count constraint is enforced here, not at share
// time. Randomness is drawn from crypto/rand.
func NewIoClient(worldSize int, conf RuntimeConfig) (*IoClient, error) {
	return NewIoClientWithEntropy(worldSize, conf, rand.Reader)
}

// NewIoClientWithEntropy is NewIoClient with an explicit entropy source, for
// deployments that inject an agreed pseudo-random stream and for
// deterministic tests.
func NewIoClientWithEntropy(worldSize int, conf RuntimeConfig, entropy io.Reader) (*IoClient, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if worldSize < 2 {
		return nil, fmt.Errorf("%w: world size %d, need at least 2", ErrConfiguration, worldSize)
	}
	if entropy == nil {
		return nil, fmt.Errorf("%w: entropy source must not be nil", ErrConfiguration)
	}
	strategy, err := protocol.ForKind(conf.Protocol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := strategy.CheckWorldSize(worldSize); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return &IoClient{
		worldSize: worldSize,
		conf:      conf,
		strategy:  strategy,
		entropy:   entropy,
	}, nil
}

// WorldSize returns the party count the client was constructed for.
func (c *IoClient) WorldSize() int { return c.worldSize }

// MakeShares encodes the plaintext into ring elements and splits it into one
// share per party.
//
// PUBLIC visibility replicates the encoded plaintext to every slot and
// consumes no randomness. SECRET uses the configured strategy's splitting
// rule. PRIVATE is a ColocatedIo-only optimization and is rejected here.
func (c *IoClient) MakeShares(pt tensor.Buffer, vis Visibility) ([]*Share, error) {
	switch vis {
	case VisPublic, VisSecret:
	default:
		return nil, fmt.Errorf("%w: cannot make %v shares through IoClient", ErrUnsupportedVisibility, vis)
	}
	encoded, tag, err := c.encode(pt)
	if err != nil {
		return nil, err
	}

	shares := make([]*Share, c.worldSize)
	if vis == VisPublic {
		for i := range shares {
			shares[i] = &Share{pt: tag, vis: vis, chunks: protocol.Chunks{encoded.Clone()}}
		}
		return shares, nil
	}

	chunks, err := c.strategy.Share(encoded, c.worldSize, c.entropy)
	if err != nil {
		return nil, err
	}
	for i := range shares {
		shares[i] = &Share{pt: tag, vis: vis, chunks: chunks[i]}
	}
	return shares, nil
}

// CombineShares reconstructs the plaintext from a complete share set into
// out, whose shape and element kind must match the shares' annotations.
func (c *IoClient) CombineShares(shares []*Share, out tensor.Buffer) error {
	tag, err := c.PtType(shares)
	if err != nil {
		return err
	}
	if len(shares) != c.worldSize {
		return fmt.Errorf("%w: got %d shares, want %d", ErrIncompleteShareSet, len(shares), c.worldSize)
	}
	shape := shares[0].Shape()
	vis := shares[0].Visibility()
	for i, s := range shares {
		if !slices.Equal(s.Shape(), shape) {
			return fmt.Errorf("%w: share %d has shape %v, want %v", ErrShapeMismatch, i, s.Shape(), shape)
		}
		if s.Visibility() != vis {
			return fmt.Errorf("%w: share %d is %v, want %v", ErrShapeMismatch, i, s.Visibility(), vis)
		}
	}
	if !slices.Equal(out.Shape(), shape) {
		return fmt.Errorf("%w: output shape %v, shares have %v", ErrShapeMismatch, out.Shape(), shape)
	}

	recovered := ring.NewTensor(c.conf.Field, shape)
	switch vis {
	case VisPublic:
		if err := recovered.CopyFrom(shares[0].Chunk(0)); err != nil {
			return fmt.Errorf("%w: %v", ErrShapeMismatch, err)
		}
	case VisSecret:
		chunkSets := make([]protocol.Chunks, len(shares))
		for i, s := range shares {
			chunkSets[i] = s.chunks
		}
		if err := c.strategy.Reconstruct(chunkSets, recovered); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: cannot combine %v shares through IoClient", ErrUnsupportedVisibility, vis)
	}

	return c.decode(recovered, tag, out)
}

// PtType reads the plaintext type tag carried by a share set without
// reconstruction.
func (c *IoClient) PtType(shares []*Share) (ptype.Type, error) {
	if len(shares) == 0 {
		return ptype.Unknown, fmt.Errorf("%w: empty share set", ErrIncompleteShareSet)
	}
	tag := shares[0].PtType()
	for i, s := range shares {
		if s == nil || s.NumChunks() == 0 {
			return ptype.Unknown, fmt.Errorf("%w: share %d missing", ErrIncompleteShareSet, i)
		}
		if s.PtType() != tag {
			return ptype.Unknown, fmt.Errorf("%w: share %d tagged %v, share 0 tagged %v",
				ErrTypeMismatch, i, s.PtType(), tag)
		}
	}
	return tag, nil
}

// encode classifies the buffer's element kind and maps every element into the
// configured ring, applying the fixed-point codec to non-integral kinds.
func (c *IoClient) encode(pt tensor.Buffer) (*ring.Tensor, ptype.Type, error) {
	tag := pt.Kind()
	if !tag.Valid() {
		return nil, ptype.Unknown, fmt.Errorf("%w: buffer has no recognizable element kind", ErrTypeMismatch)
	}
	field := c.conf.Field
	out := ring.NewTensor(field, pt.Shape())
	n := pt.Numel()
	switch {
	case tag.IsFixedPoint():
		frac := c.conf.fxpBits()
		for i := 0; i < n; i++ {
			lo, hi := field.EncodeInt(ptype.EncodeFxp(pt.Float(i), frac))
			out.Set(i, lo, hi)
		}
	case tag.IsSigned():
		for i := 0; i < n; i++ {
			lo, hi := field.EncodeInt(pt.Int(i))
			out.Set(i, lo, hi)
		}
	default:
		for i := 0; i < n; i++ {
			lo, hi := field.EncodeUint(uint64(pt.Int(i)))
			out.Set(i, lo, hi)
		}
	}
	return out, tag, nil
}

// decode writes recovered ring elements back into a host buffer of the
// matching kind.
func (c *IoClient) decode(recovered *ring.Tensor, tag ptype.Type, out tensor.Buffer) error {
	if out.Kind() != tag {
		return fmt.Errorf("%w: output buffer holds %v, shares reconstruct to %v",
			ErrTypeMismatch, out.Kind(), tag)
	}
	field := c.conf.Field
	n := out.Numel()
	switch {
	case tag.IsFixedPoint():
		frac := c.conf.fxpBits()
		for i := 0; i < n; i++ {
			out.SetFloat(i, ptype.DecodeFxp(field.DecodeInt(recovered.Get(i)), frac))
		}
	case tag.IsSigned():
		for i := 0; i < n; i++ {
			out.SetInt(i, field.DecodeInt(recovered.Get(i)))
		}
	default:
		for i := 0; i < n; i++ {
			out.SetInt(i, int64(field.DecodeUint(recovered.Get(i))))
		}
	}
	return nil
}
