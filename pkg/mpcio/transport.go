package mpcio

import "context"

// RoleID identifies a party's rank within a computation group. Values start
// at 0 and increase monotonically.
type RoleID uint32

// Transport captures the point-to-point messaging contract a session runs
// over. The link between every pair of parties is assumed established before
// a session is constructed.
//
// Concurrency: implementations MUST be safe for concurrent use by multiple
// goroutines.
//
// Semantics: messages between an ordered pair of parties are delivered
// reliably and in order. ReceiveAll must return exactly one entry per
// requested role; a missing entry is treated as an error by the caller.
// Failures propagate verbatim; retry policy belongs to the transport
// implementation, never to this layer.
type Transport interface {
	Send(ctx context.Context, to RoleID, msg []byte) error
	Receive(ctx context.Context, from RoleID) ([]byte, error)
	ReceiveAll(ctx context.Context, from []RoleID) (map[RoleID][]byte, error)
}
