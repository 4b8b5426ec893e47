// Package mpcio is the secret-sharing boundary layer of an MPC engine: it
// encodes host-side plaintext tensors into per-party shares under a selected
// protocol and ring width, reconstructs plaintext from complete share sets,
// and coordinates the distributed variable-sync step that gives a computation
// group a consistent secret-shared view of named values.
//
// # Components
//
//   - IoClient: stateless single-shot share construction and reconstruction
//   - ColocatedIo: per-party session coordinator for staged variables and the
//     blocking group Sync round
//   - Transport: the point-to-point messaging contract a session runs over
//
// Protocol strategies, ring arithmetic, plaintext typing and the test fabric
// live in the subpackages protocol, ring, ptype, tensor, prg, mocknet and
// simulate.
package mpcio
