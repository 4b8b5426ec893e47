package tensor

import (
	"fmt"
	"slices"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ptype"
)

// Buffer is the capability the I/O layer requires from a plaintext container:
// shape, element kind, and typed element access in row-major order.
//
// Int carries the element's two's-complement bit pattern widened to 64 bits;
// for unsigned kinds the pattern is zero-extended. Float accessors are only
// meaningful for fixed-point kinds and Int accessors only for integer kinds;
// implementations may panic on a kind mismatch, mirroring out-of-range slice
// access.
type Buffer interface {
	Kind() ptype.Type
	Shape() []int
	Numel() int
	Int(i int) int64
	SetInt(i int, v int64)
	Float(i int) float64
	SetFloat(i int, v float64)
}

// Element enumerates the Go scalar types Dense can hold.
type Element interface {
	bool | int8 | uint8 | int16 | uint16 | int32 | uint32 |
		int64 | uint64 | float32 | float64
}

// Dense is a row-major in-memory Buffer backed by a Go slice.
type Dense[T Element] struct {
	shape []int
	data  []T
}

// New allocates a zero-valued dense tensor with the given shape.
func New[T Element](shape ...int) *Dense[T] {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Dense[T]{shape: slices.Clone(shape), data: make([]T, n)}
}

// FromSlice wraps values as a dense tensor. The product of shape must equal
// len(values); an empty shape means a 1-D tensor of len(values).
func FromSlice[T Element](values []T, shape ...int) *Dense[T] {
	if len(shape) == 0 {
		shape = []int{len(values)}
	}
	n := 1
	for _, d := range shape {
		n *= d
	}
	if n != len(values) {
		panic(fmt.Sprintf("tensor: shape %v does not match %d values", shape, len(values)))
	}
	return &Dense[T]{shape: slices.Clone(shape), data: values}
}

// Kind returns the plaintext type tag for T.
func (d *Dense[T]) Kind() ptype.Type {
	var z T
	switch any(z).(type) {
	case bool:
		return ptype.I1
	case int8:
		return ptype.I8
	case uint8:
		return ptype.U8
	case int16:
		return ptype.I16
	case uint16:
		return ptype.U16
	case int32:
		return ptype.I32
	case uint32:
		return ptype.U32
	case int64:
		return ptype.I64
	case uint64:
		return ptype.U64
	case float32:
		return ptype.F32
	case float64:
		return ptype.F64
	default:
		return ptype.Unknown
	}
}

// Shape returns a copy of the tensor's shape.
func (d *Dense[T]) Shape() []int { return slices.Clone(d.shape) }

// Numel returns the number of elements.
func (d *Dense[T]) Numel() int { return len(d.data) }

// At returns element i.
func (d *Dense[T]) At(i int) T { return d.data[i] }

// Data returns the backing slice.
func (d *Dense[T]) Data() []T { return d.data }

func (d *Dense[T]) Int(i int) int64 {
	switch v := any(d.data[i]).(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case int8:
		return int64(v)
	case uint8:
		return int64(v)
	case int16:
		return int64(v)
	case uint16:
		return int64(v)
	case int32:
		return int64(v)
	case uint32:
		return int64(v)
	case int64:
		return v
	case uint64:
		return int64(v)
	default:
		panic(fmt.Sprintf("tensor: Int on %v element", d.Kind()))
	}
}

func (d *Dense[T]) SetInt(i int, v int64) {
	switch any(d.data[i]).(type) {
	case bool:
		d.data[i] = any(v != 0).(T)
	case int8:
		d.data[i] = any(int8(v)).(T)
	case uint8:
		d.data[i] = any(uint8(v)).(T)
	case int16:
		d.data[i] = any(int16(v)).(T)
	case uint16:
		d.data[i] = any(uint16(v)).(T)
	case int32:
		d.data[i] = any(int32(v)).(T)
	case uint32:
		d.data[i] = any(uint32(v)).(T)
	case int64:
		d.data[i] = any(v).(T)
	case uint64:
		d.data[i] = any(uint64(v)).(T)
	default:
		panic(fmt.Sprintf("tensor: SetInt on %v element", d.Kind()))
	}
}

func (d *Dense[T]) Float(i int) float64 {
	switch v := any(d.data[i]).(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	default:
		panic(fmt.Sprintf("tensor: Float on %v element", d.Kind()))
	}
}

func (d *Dense[T]) SetFloat(i int, v float64) {
	switch any(d.data[i]).(type) {
	case float32:
		d.data[i] = any(float32(v)).(T)
	case float64:
		d.data[i] = any(v).(T)
	default:
		panic(fmt.Sprintf("tensor: SetFloat on %v element", d.Kind()))
	}
}

var _ Buffer = (*Dense[int32])(nil)
