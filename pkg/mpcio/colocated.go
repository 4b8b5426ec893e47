package mpcio

import (
	"context"
	"fmt"
	"slices"

	"github.com/hsiuhsiu/mpcio-go/internal/wire"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/logging"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/protocol"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ptype"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/tensor"
)

type hostVar struct {
	buf tensor.Buffer
	vis Visibility
}

// ColocatedIo lets one party register host-owned plaintext under a name and,
// through a blocking group Sync round, obtain a device table every party
// populates identically. One instance per party; not safe for concurrent use
// by multiple goroutines of the same party.
type ColocatedIo struct {
	sess    *Session
	client  *IoClient
	pending map[string]hostVar
	vars    map[string]*Value
}

// NewColocatedIo binds a coordinator to a live session. The configured
// protocol's party-count constraint is enforced here.
func NewColocatedIo(sess *Session) (*ColocatedIo, error) {
	if sess == nil {
		return nil, fmt.Errorf("%w: session must not be nil", ErrConfiguration)
	}
	client, err := NewIoClient(sess.worldSize, sess.conf)
	if err != nil {
		return nil, err
	}
	return &ColocatedIo{
		sess:    sess,
		client:  client,
		pending: make(map[string]hostVar),
		vars:    make(map[string]*Value),
	}, nil
}

// HostSetVar stages (name, plaintext, visibility) under this party's pending
// set for the next sync round. No network traffic occurs; peers cannot see
// the variable before Sync.
func (c *ColocatedIo) HostSetVar(name string, pt tensor.Buffer, vis Visibility) error {
	if name == "" {
		return fmt.Errorf("%w: variable name must not be empty", ErrConfiguration)
	}
	if vis != VisPublic && vis != VisSecret {
		return fmt.Errorf("%w: cannot stage a %v variable", ErrUnsupportedVisibility, vis)
	}
	if !pt.Kind().Valid() {
		return fmt.Errorf("%w: buffer has no recognizable element kind", ErrTypeMismatch)
	}
	if _, ok := c.pending[name]; ok {
		return fmt.Errorf("%w: %q already staged in this round", ErrDuplicateVariable, name)
	}
	c.pending[name] = hostVar{buf: pt, vis: vis}
	c.sess.logger.Debug(context.Background(), "staged host variable",
		"name", name, "visibility", vis.String(), logging.Redacted("plaintext"))
	return nil
}

// DeviceHasVar reports whether a previous sync round registered name. Local
// lookup, no communication.
func (c *ColocatedIo) DeviceHasVar(name string) bool {
	_, ok := c.vars[name]
	return ok
}

// DeviceGetVar returns the device value registered under name.
func (c *ColocatedIo) DeviceGetVar(name string) (*Value, error) {
	v, ok := c.vars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return v, nil
}

// Sync runs one coordinated round with every peer: metadata for all pending
// variables is exchanged all-to-all, the resolved set is validated for
// group-wide name uniqueness, device values are constructed, and pending
// registrations are cleared.
//
// Sync blocks until every party has contributed; every party must call it.
// On error nothing is committed and the device table is unchanged. Transport
// failures propagate verbatim.
func (c *ColocatedIo) Sync(ctx context.Context) error {
	merged, err := c.exchangeMetadata(ctx)
	if err != nil {
		return err
	}
	staged, err := c.buildValues(ctx, merged)
	if err != nil {
		return err
	}
	for name, v := range staged {
		c.vars[name] = v
	}
	c.pending = make(map[string]hostVar)
	c.sess.logger.Debug(ctx, "sync round committed", "variables", len(staged))
	return nil
}

// effectiveVisibility applies the colocated optimization: a SECRET
// registration downgrades to PRIVATE when the owner may sample every party's
// share locally. Every party derives this identically from the shared
// configuration.
func (c *ColocatedIo) effectiveVisibility(vis Visibility) Visibility {
	if vis == VisSecret && c.sess.conf.EnableColocatedOptimization {
		return VisPrivate
	}
	return vis
}

// exchangeMetadata performs the all-to-all announcement of (name, owner,
// visibility, type, shape) and merges the group's pending sets, failing on
// any cross-party duplicate. Plaintext never travels here.
func (c *ColocatedIo) exchangeMetadata(ctx context.Context) (map[string]wire.VarMeta, error) {
	names := make([]string, 0, len(c.pending))
	for name := range c.pending {
		names = append(names, name)
	}
	slices.Sort(names)

	local := make([]wire.VarMeta, 0, len(names))
	for _, name := range names {
		hv := c.pending[name]
		local = append(local, wire.VarMeta{
			Name:       name,
			Owner:      uint32(c.sess.rank),
			Visibility: int(hv.vis),
			PtType:     int(hv.buf.Kind()),
			Field:      int(c.sess.conf.Field),
			Shape:      hv.buf.Shape(),
		})
	}

	msg, err := wire.Marshal(&wire.Announce{Vars: local})
	if err != nil {
		return nil, err
	}
	peers := c.sess.Peers()
	for _, peer := range peers {
		if err := c.sess.transport.Send(ctx, peer, msg); err != nil {
			return nil, err
		}
	}
	batches, err := c.sess.transport.ReceiveAll(ctx, peers)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]wire.VarMeta, len(local))
	for _, meta := range local {
		merged[meta.Name] = meta
	}
	for _, peer := range peers {
		ann, err := wire.Unmarshal[wire.Announce](batches[peer])
		if err != nil {
			return nil, err
		}
		for _, meta := range ann.Vars {
			if err := c.checkMeta(meta, peer); err != nil {
				return nil, err
			}
			if prev, ok := merged[meta.Name]; ok {
				return nil, fmt.Errorf("%w: %q registered by ranks %d and %d",
					ErrDuplicateVariable, meta.Name, prev.Owner, meta.Owner)
			}
			merged[meta.Name] = meta
		}
	}
	return merged, nil
}

// checkMeta validates one announced entry. Disagreement here is a protocol
// violation that must fail the round for everyone.
func (c *ColocatedIo) checkMeta(meta wire.VarMeta, from RoleID) error {
	if meta.Name == "" {
		return fmt.Errorf("%w: rank %d announced an unnamed variable", ErrConfiguration, from)
	}
	if RoleID(meta.Owner) != from {
		return fmt.Errorf("%w: rank %d announced a variable owned by %d", ErrConfiguration, from, meta.Owner)
	}
	if vis := Visibility(meta.Visibility); vis != VisPublic && vis != VisSecret {
		return fmt.Errorf("%w: %q announced as %v", ErrUnsupportedVisibility, meta.Name, vis)
	}
	if !ptype.Type(meta.PtType).Valid() {
		return fmt.Errorf("%w: %q announced with type %d", ErrTypeMismatch, meta.Name, meta.PtType)
	}
	if ring.Field(meta.Field) != c.sess.conf.Field {
		return fmt.Errorf("%w: %q announced over field %d, session uses %v",
			ErrConfiguration, meta.Name, meta.Field, c.sess.conf.Field)
	}
	for _, d := range meta.Shape {
		if d < 0 {
			return fmt.Errorf("%w: %q announced with shape %v", ErrShapeMismatch, meta.Name, meta.Shape)
		}
	}
	return nil
}

// buildValues constructs the round's device values in deterministic name
// order: owners split and distribute, receivers collect, and colocated
// private values never touch the wire.
func (c *ColocatedIo) buildValues(ctx context.Context, merged map[string]wire.VarMeta) (map[string]*Value, error) {
	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	slices.Sort(names)

	staged := make(map[string]*Value, len(names))
	outgoing := make(map[RoleID][]wire.ShareItem)
	expected := make(map[RoleID][]string)

	for _, name := range names {
		meta := merged[name]
		owner := RoleID(meta.Owner)
		eff := c.effectiveVisibility(Visibility(meta.Visibility))
		if owner == c.sess.rank {
			if err := c.stageOwned(name, meta, eff, staged, outgoing); err != nil {
				return nil, err
			}
			continue
		}
		switch eff {
		case VisPrivate:
			staged[name] = &Value{
				name:  name,
				pt:    ptype.Type(meta.PtType),
				vis:   VisPrivate,
				field: c.sess.conf.Field,
				shape: slices.Clone(meta.Shape),
				owner: owner,
			}
		default:
			expected[owner] = append(expected[owner], name)
		}
	}

	for _, peer := range c.sess.Peers() {
		items := outgoing[peer]
		if len(items) == 0 {
			continue
		}
		msg, err := wire.Marshal(&wire.Payload{Items: items})
		if err != nil {
			return nil, err
		}
		if err := c.sess.transport.Send(ctx, peer, msg); err != nil {
			return nil, err
		}
	}

	senders := make([]RoleID, 0, len(expected))
	for sender := range expected {
		senders = append(senders, sender)
	}
	slices.Sort(senders)
	if len(senders) == 0 {
		return staged, nil
	}
	batches, err := c.sess.transport.ReceiveAll(ctx, senders)
	if err != nil {
		return nil, err
	}
	for _, sender := range senders {
		if err := c.stageReceived(sender, batches[sender], expected[sender], merged, staged); err != nil {
			return nil, err
		}
	}
	return staged, nil
}

// stageOwned encodes one locally registered variable and queues whatever its
// effective visibility requires: public replicas or secret chunks for every
// peer, or nothing at all for a colocated private value.
func (c *ColocatedIo) stageOwned(name string, meta wire.VarMeta, eff Visibility,
	staged map[string]*Value, outgoing map[RoleID][]wire.ShareItem) error {
	hv, ok := c.pending[name]
	if !ok {
		return fmt.Errorf("%w: %q resolved to this rank but is not pending", ErrConfiguration, name)
	}
	tag := ptype.Type(meta.PtType)
	value := &Value{
		name:  name,
		pt:    tag,
		vis:   eff,
		field: c.sess.conf.Field,
		shape: slices.Clone(meta.Shape),
	}

	switch eff {
	case VisPublic:
		encoded, _, err := c.client.encode(hv.buf)
		if err != nil {
			return err
		}
		replica := wire.ShareItem{Name: name, Chunks: [][]byte{encoded.Bytes()}}
		for _, peer := range c.sess.Peers() {
			outgoing[peer] = append(outgoing[peer], replica)
		}
		value.chunks = protocol.Chunks{encoded}

	case VisSecret:
		shares, err := c.client.MakeShares(hv.buf, VisSecret)
		if err != nil {
			return err
		}
		for _, peer := range c.sess.Peers() {
			share := shares[peer]
			item := wire.ShareItem{Name: name, Chunks: make([][]byte, share.NumChunks())}
			for j := 0; j < share.NumChunks(); j++ {
				item.Chunks[j] = share.Chunk(j).Bytes()
			}
			outgoing[peer] = append(outgoing[peer], item)
		}
		value.chunks = shares[c.sess.rank].chunks

	case VisPrivate:
		encoded, _, err := c.client.encode(hv.buf)
		if err != nil {
			return err
		}
		value.owner = c.sess.rank
		value.chunks = protocol.Chunks{encoded}
	}

	staged[name] = value
	return nil
}

// stageReceived decodes one owner's payload into staged device values,
// enforcing agreement with the announced metadata.
func (c *ColocatedIo) stageReceived(sender RoleID, payload []byte, names []string,
	merged map[string]wire.VarMeta, staged map[string]*Value) error {
	msg, err := wire.Unmarshal[wire.Payload](payload)
	if err != nil {
		return err
	}
	items := make(map[string]wire.ShareItem, len(msg.Items))
	for _, item := range msg.Items {
		items[item.Name] = item
	}
	if len(msg.Items) != len(names) {
		return fmt.Errorf("%w: rank %d sent %d items, announced %d",
			ErrConfiguration, sender, len(msg.Items), len(names))
	}
	for _, name := range names {
		item, ok := items[name]
		if !ok {
			return fmt.Errorf("%w: rank %d sent no chunks for %q", ErrIncompleteShareSet, sender, name)
		}
		meta := merged[name]
		if len(item.Chunks) == 0 {
			return fmt.Errorf("%w: empty chunk set for %q", ErrIncompleteShareSet, name)
		}
		chunks := make(protocol.Chunks, len(item.Chunks))
		for j, raw := range item.Chunks {
			t, err := ring.TensorFromBytes(c.sess.conf.Field, meta.Shape, raw)
			if err != nil {
				return fmt.Errorf("%w: %q chunk %d: %v", ErrShapeMismatch, name, j, err)
			}
			chunks[j] = t
		}
		staged[name] = &Value{
			name:   name,
			pt:     ptype.Type(meta.PtType),
			vis:    c.effectiveVisibility(Visibility(meta.Visibility)),
			field:  c.sess.conf.Field,
			shape:  slices.Clone(meta.Shape),
			owner:  sender,
			chunks: chunks,
		}
	}
	return nil
}
