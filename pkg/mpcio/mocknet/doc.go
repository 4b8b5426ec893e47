// Package mocknet provides an in-memory Transport implementation for tests
// and examples.
//
// Mocknet implements the mpcio.Transport interface over buffered channels,
// giving reliable, ordered delivery between every ordered pair of parties
// without real network communication. The same ColocatedIo logic runs
// unmodified against mocknet and against a production link.
//
// # Usage
//
//	net := mocknet.New(3)
//	ep0 := net.Endpoint(0)
//	ep1 := net.Endpoint(1)
//	ep2 := net.Endpoint(2)
//
// Each endpoint is handed to one party's Session; parties then run their
// protocol logic concurrently, one goroutine per rank. See the simulate
// package for the canonical harness.
package mocknet
