package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ptype"
)

func TestKindInference(t *testing.T) {
	assert.Equal(t, ptype.I1, New[bool](1).Kind())
	assert.Equal(t, ptype.I8, New[int8](1).Kind())
	assert.Equal(t, ptype.U16, New[uint16](1).Kind())
	assert.Equal(t, ptype.I32, New[int32](1).Kind())
	assert.Equal(t, ptype.U64, New[uint64](1).Kind())
	assert.Equal(t, ptype.F32, New[float32](1).Kind())
	assert.Equal(t, ptype.F64, New[float64](1).Kind())
}

func TestFromSlice(t *testing.T) {
	d := FromSlice([]int32{1, -2, 3, 0}, 1, 4)
	assert.Equal(t, []int{1, 4}, d.Shape())
	assert.Equal(t, 4, d.Numel())
	assert.Equal(t, int64(-2), d.Int(1))

	flat := FromSlice([]float32{1.5, -2.5})
	assert.Equal(t, []int{2}, flat.Shape())

	assert.Panics(t, func() { FromSlice([]int32{1, 2, 3}, 2, 2) })
}

func TestIntAccessors(t *testing.T) {
	d := New[int32](2, 2)
	d.SetInt(3, -7)
	assert.Equal(t, int64(-7), d.Int(3))
	assert.Equal(t, int32(-7), d.At(3))

	u := New[uint64](1)
	u.SetInt(0, -1) // bit pattern round-trips through int64
	assert.Equal(t, uint64(0xffffffffffffffff), u.At(0))
	assert.Equal(t, int64(-1), u.Int(0))

	b := New[bool](2)
	b.SetInt(0, 1)
	require.True(t, b.At(0))
	assert.Equal(t, int64(1), b.Int(0))
	assert.Equal(t, int64(0), b.Int(1))
}

func TestFloatAccessors(t *testing.T) {
	f := New[float32](3)
	f.SetFloat(1, -2.5)
	assert.Equal(t, -2.5, f.Float(1))

	assert.Panics(t, func() { f.Int(0) })
	assert.Panics(t, func() { New[int32](1).Float(0) })
}
