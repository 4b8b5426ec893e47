package mpcio

import "runtime"

// ZeroizeBytes overwrites the provided slice with zeros and prevents compiler
// dead store elimination using runtime.KeepAlive.
//
// This follows the pattern discussed in golang/go#33325. It cannot guarantee
// complete memory sanitization under Go's garbage collector, but it is the
// ecosystem's current practice for transient secrets such as share seeds and
// wire buffers that carried chunk material.
func ZeroizeBytes(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	// Prevent dead store elimination per golang/go#33325
	runtime.KeepAlive(buf)
}
