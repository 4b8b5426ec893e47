package mocknet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio"
)

// queueDepth bounds in-flight messages per ordered party pair. Sync rounds
// exchange a handful of messages per pair, so the bound only matters for
// runaway senders.
const queueDepth = 1024

type linkKey struct {
	from mpcio.RoleID
	to   mpcio.RoleID
}

// Net is an in-memory fabric connecting a fixed set of parties. Safe for
// concurrent use.
type Net struct {
	world int

	mu    sync.Mutex
	links map[linkKey]chan []byte
}

// New creates a fabric for worldSize parties with ranks 0..worldSize-1.
func New(worldSize int) *Net {
	return &Net{world: worldSize, links: make(map[linkKey]chan []byte)}
}

// WorldSize returns the number of parties the fabric connects.
func (n *Net) WorldSize() int { return n.world }

func (n *Net) link(key linkKey) chan []byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := n.links[key]
	if ch == nil {
		ch = make(chan []byte, queueDepth)
		n.links[key] = ch
	}
	return ch
}

// Endpoint returns the Transport bound to rank self. Ranks outside the world
// yield an endpoint whose operations fail.
func (n *Net) Endpoint(self mpcio.RoleID) *Endpoint {
	return &Endpoint{net: n, self: self}
}

// Endpoint is one party's view of the fabric.
type Endpoint struct {
	net  *Net
	self mpcio.RoleID
}

func (e *Endpoint) check(other mpcio.RoleID, direction string) error {
	if int(e.self) >= e.net.world {
		return fmt.Errorf("mocknet: endpoint rank %d outside world of %d", e.self, e.net.world)
	}
	if other == e.self {
		return errors.New("mocknet: " + direction + " self")
	}
	if int(other) >= e.net.world {
		return fmt.Errorf("mocknet: unknown peer %d", other)
	}
	return nil
}

// Send delivers msg to the peer's inbound queue for this ordered pair.
// Delivery is FIFO per pair. The payload is copied.
func (e *Endpoint) Send(ctx context.Context, to mpcio.RoleID, msg []byte) error {
	if err := e.check(to, "send to"); err != nil {
		return err
	}
	ch := e.net.link(linkKey{from: e.self, to: to})
	payload := slices.Clone(msg)
	select {
	case ch <- payload:
		return nil
	default:
	}
	select {
	case ch <- payload:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Receive blocks for the next message from the given peer.
func (e *Endpoint) Receive(ctx context.Context, from mpcio.RoleID) ([]byte, error) {
	if err := e.check(from, "receive from"); err != nil {
		return nil, err
	}
	ch := e.net.link(linkKey{from: from, to: e.self})
	// A message that already arrived is delivered even if ctx was canceled
	// concurrently; cancellation only interrupts waiting.
	select {
	case msg := <-ch:
		return msg, nil
	default:
	}
	select {
	case msg := <-ch:
		return msg, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ReceiveAll collects one message from each listed peer, returning exactly
// one entry per requested role.
func (e *Endpoint) ReceiveAll(ctx context.Context, from []mpcio.RoleID) (map[mpcio.RoleID][]byte, error) {
	roles := slices.Clone(from)
	slices.Sort(roles)
	roles = slices.Compact(roles)
	if len(roles) != len(from) {
		return nil, errors.New("mocknet: duplicate role")
	}
	out := make(map[mpcio.RoleID][]byte, len(roles))
	for _, role := range roles {
		msg, err := e.Receive(ctx, role)
		if err != nil {
			return nil, err
		}
		out[role] = msg
	}
	return out, nil
}

var _ mpcio.Transport = (*Endpoint)(nil)
