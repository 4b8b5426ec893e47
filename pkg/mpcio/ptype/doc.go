// Package ptype defines the plaintext element type tags carried by shares and
// device values, together with the fixed-point codec used to map real numbers
// onto ring elements.
//
// A Type identifies the logical element kind of a host-side plaintext (signed
// or unsigned integer of some width, IEEE float, boolean) independent of the
// ring width the value is later encoded into. Float kinds are encoded with the
// fixed-point codec before any ring arithmetic takes place.
package ptype
