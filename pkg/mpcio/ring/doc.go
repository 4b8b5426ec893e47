// Package ring implements the modular integer domains a protocol run operates
// over and a shape-carrying tensor of ring elements.
//
// A Field names one of the supported 2^k rings (k = 32, 64, 128). A Tensor
// stores one ring element per logical plaintext element as little-endian
// 64-bit limbs and supports the in-place modular arithmetic share construction
// needs: addition, subtraction, negation and random fill. All operations
// reduce modulo 2^k implicitly by masking to the field width.
package ring
