package ring

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"slices"
)

var (
	ErrFieldMismatch = errors.New("ring: field mismatch")
	ErrShapeMismatch = errors.New("ring: shape mismatch")
)

// Tensor is a dense array of ring elements with a fixed shape. Elements are
// stored as little-endian 64-bit limbs, one limb for FM32/FM64 and two for
// FM128.
type Tensor struct {
	field Field
	shape []int
	data  []uint64
}

// NewTensor allocates a zero tensor over f with the given shape.
func NewTensor(f Field, shape []int) *Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Tensor{
		field: f,
		shape: slices.Clone(shape),
		data:  make([]uint64, n*f.limbs()),
	}
}

// Field returns the ring the tensor's elements live in.
func (t *Tensor) Field() Field { return t.field }

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() []int { return slices.Clone(t.shape) }

// Numel returns the number of elements.
func (t *Tensor) Numel() int { return len(t.data) / t.field.limbs() }

// Get returns element i as (lo, hi) limbs. hi is zero for 32/64-bit rings.
func (t *Tensor) Get(i int) (lo, hi uint64) {
	if t.field == FM128 {
		return t.data[2*i], t.data[2*i+1]
	}
	return t.data[i], 0
}

// Set stores element i, reducing into the ring.
func (t *Tensor) Set(i int, lo, hi uint64) {
	if t.field == FM128 {
		t.data[2*i] = lo
		t.data[2*i+1] = hi
		return
	}
	t.data[i] = lo & t.field.loMask()
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		field: t.field,
		shape: slices.Clone(t.shape),
		data:  slices.Clone(t.data),
	}
}

func (t *Tensor) compatible(o *Tensor) error {
	if t.field != o.field {
		return fmt.Errorf("%w: %v vs %v", ErrFieldMismatch, t.field, o.field)
	}
	if !slices.Equal(t.shape, o.shape) {
		return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, t.shape, o.shape)
	}
	return nil
}

// CopyFrom overwrites t's contents with o's. Field and shape must match.
func (t *Tensor) CopyFrom(o *Tensor) error {
	if err := t.compatible(o); err != nil {
		return err
	}
	copy(t.data, o.data)
	return nil
}

// AddAssign sets t = t + o element-wise modulo 2^k.
func (t *Tensor) AddAssign(o *Tensor) error {
	if err := t.compatible(o); err != nil {
		return err
	}
	if t.field == FM128 {
		for i := 0; i < len(t.data); i += 2 {
			var carry uint64
			t.data[i], carry = bits.Add64(t.data[i], o.data[i], 0)
			t.data[i+1], _ = bits.Add64(t.data[i+1], o.data[i+1], carry)
		}
		return nil
	}
	mask := t.field.loMask()
	for i := range t.data {
		t.data[i] = (t.data[i] + o.data[i]) & mask
	}
	return nil
}

// SubAssign sets t = t - o element-wise modulo 2^k.
func (t *Tensor) SubAssign(o *Tensor) error {
	if err := t.compatible(o); err != nil {
		return err
	}
	if t.field == FM128 {
		for i := 0; i < len(t.data); i += 2 {
			var borrow uint64
			t.data[i], borrow = bits.Sub64(t.data[i], o.data[i], 0)
			t.data[i+1], _ = bits.Sub64(t.data[i+1], o.data[i+1], borrow)
		}
		return nil
	}
	mask := t.field.loMask()
	for i := range t.data {
		t.data[i] = (t.data[i] - o.data[i]) & mask
	}
	return nil
}

// NegAssign sets t = -t element-wise modulo 2^k.
func (t *Tensor) NegAssign() {
	if t.field == FM128 {
		for i := 0; i < len(t.data); i += 2 {
			var borrow uint64
			t.data[i], borrow = bits.Sub64(0, t.data[i], 0)
			t.data[i+1], _ = bits.Sub64(0, t.data[i+1], borrow)
		}
		return
	}
	mask := t.field.loMask()
	for i := range t.data {
		t.data[i] = (-t.data[i]) & mask
	}
}

// Equal reports whether t and o have identical field, shape and contents.
func (t *Tensor) Equal(o *Tensor) bool {
	return t.field == o.field && slices.Equal(t.shape, o.shape) && slices.Equal(t.data, o.data)
}

// FillRandom overwrites every element with uniform ring elements read from r.
func (t *Tensor) FillRandom(r io.Reader) error {
	buf := make([]byte, 8)
	mask := t.field.loMask()
	for i := range t.data {
		if _, err := io.ReadFull(r, buf); err != nil {
			return fmt.Errorf("ring: fill random: %w", err)
		}
		// loMask is all-ones for FM64/FM128, so masking every limb is a no-op
		// outside FM32.
		t.data[i] = binary.LittleEndian.Uint64(buf) & mask
	}
	return nil
}

// Bytes serializes the element data as little-endian limbs. The field and
// shape travel separately in sync metadata.
func (t *Tensor) Bytes() []byte {
	out := make([]byte, 8*len(t.data))
	for i, w := range t.data {
		binary.LittleEndian.PutUint64(out[8*i:], w)
	}
	return out
}

// TensorFromBytes rebuilds a tensor from Bytes output.
func TensorFromBytes(f Field, shape []int, data []byte) (*Tensor, error) {
	t := NewTensor(f, shape)
	if len(data) != 8*len(t.data) {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrShapeMismatch, len(data), 8*len(t.data))
	}
	for i := range t.data {
		t.data[i] = binary.LittleEndian.Uint64(data[8*i:])
	}
	return t, nil
}
