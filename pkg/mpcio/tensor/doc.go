// Package tensor defines the narrow plaintext-container contract the I/O
// layer reads host values through, plus a simple dense implementation.
//
// The core never depends on a concrete array library; it only needs shape,
// element kind and typed element access. Dense is sufficient for hosts that
// keep plaintext in Go slices and for tests; applications backed by another
// array representation implement Buffer over it directly.
package tensor
