package mpcio

import (
	"fmt"
	"slices"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/protocol"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ptype"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
)

// Value is the named, group-visible counterpart of a plaintext, produced by a
// sync round and looked up by name thereafter.
//
// What a party holds depends on visibility: a public value carries the full
// encoded plaintext on every party; a secret value carries this party's share
// chunks; a private value carries the encoded plaintext on the owner and
// nothing elsewhere.
type Value struct {
	name   string
	pt     ptype.Type
	vis    Visibility
	field  ring.Field
	shape  []int
	owner  RoleID
	chunks protocol.Chunks
}

// Name returns the name the value was registered under.
func (v *Value) Name() string { return v.name }

// PtType returns the plaintext type tag.
func (v *Value) PtType() ptype.Type { return v.pt }

// Visibility returns the value's visibility.
func (v *Value) Visibility() Visibility { return v.vis }

// Field returns the ring the value is encoded over.
func (v *Value) Field() ring.Field { return v.field }

// Shape returns a copy of the logical plaintext shape.
func (v *Value) Shape() []int { return slices.Clone(v.shape) }

// IsPublic reports whether every party holds the plaintext.
func (v *Value) IsPublic() bool { return v.vis == VisPublic }

// IsSecret reports whether the value is split under the group protocol.
func (v *Value) IsSecret() bool { return v.vis == VisSecret }

// IsPrivate reports whether exactly one party knows the value in full.
func (v *Value) IsPrivate() bool { return v.vis == VisPrivate }

// IsInt reports whether the plaintext element kind is integral.
func (v *Value) IsInt() bool { return v.pt.IsInt() }

// IsFxp reports whether the plaintext element kind is fixed-point encoded.
func (v *Value) IsFxp() bool { return v.pt.IsFixedPoint() }

// Owner returns the owning party's rank. It is only defined for private
// values.
func (v *Value) Owner() (RoleID, bool) {
	if v.vis != VisPrivate {
		return 0, false
	}
	return v.owner, true
}

// NumChunks returns the number of ring tensors this party holds for the
// value. Zero for private values held elsewhere.
func (v *Value) NumChunks() int { return len(v.chunks) }

// Chunk returns the i-th locally held ring tensor.
func (v *Value) Chunk(i int) *ring.Tensor { return v.chunks[i] }

// String summarizes the value without exposing its contents.
func (v *Value) String() string {
	return fmt.Sprintf("Value(%s: %v %v %v%v)", v.name, v.vis, v.pt, v.field, v.shape)
}
