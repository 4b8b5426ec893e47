// Package simulate runs multi-party protocol logic in-process: one goroutine
// per rank over a mocknet fabric, with sessions wired identically to a
// production deployment. Tests drive the same ColocatedIo code paths real
// parties do.
package simulate
