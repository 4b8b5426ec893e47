// Package prg provides the randomness capabilities protocol strategies call
// into: a deterministic pseudo-random expander over a seed, and pairwise seed
// agreement so two parties can derive identical randomness without exchanging
// it.
//
// Seed agreement performs an X25519 exchange and feeds the shared point
// through HKDF, so either side of a pair derives the same seed from its own
// private key and the peer's public key. Expansion uses SHAKE-128, giving an
// unbounded keyed stream suitable for filling ring tensors.
package prg
