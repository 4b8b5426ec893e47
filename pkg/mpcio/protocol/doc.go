// Package protocol implements the interchangeable secret-sharing strategies
// the I/O layer dispatches to.
//
// Every strategy answers the same contract: a party-count constraint checked
// at session construction, a splitting rule that turns one ring tensor into
// per-party share chunks, and a reconstruction rule that recovers the tensor
// from a complete chunk set. Strategies never talk to the network; randomness
// comes from an injected entropy source so callers can substitute an agreed
// pairwise stream where the deployment requires it.
//
// # Strategies
//
//   - Ref2K: two-party reference sharing, x split as (r, x-r) mod 2^k
//   - Semi2K: n-party additive sharing, n-1 random chunks plus a balance
//   - Repl3: three-party replicated sharing, party i holds (x_i, x_{i+1})
package protocol
