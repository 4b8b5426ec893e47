package prg

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// SeedSize is the byte length of seeds accepted by New and produced by
// PairwiseSeed.
const SeedSize = 32

// New returns a deterministic reader expanding seed with SHAKE-128. Two
// readers over the same seed produce identical streams.
func New(seed []byte) io.Reader {
	shake := sha3.NewShake128()
	shake.Write(seed)
	return shake
}

// NewSeed samples a fresh random seed from the operating system.
func NewSeed() ([]byte, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("prg: sample seed: %w", err)
	}
	return seed, nil
}

// PublicKey is an X25519 public key used for seed agreement.
type PublicKey [32]byte

// PrivateKey is an X25519 private key used for seed agreement.
type PrivateKey [32]byte

// GenerateKeyPair creates a fresh X25519 key pair.
func GenerateKeyPair() (PublicKey, PrivateKey, error) {
	var priv PrivateKey
	var pub PublicKey
	if _, err := rand.Read(priv[:]); err != nil {
		return pub, priv, fmt.Errorf("prg: generate key pair: %w", err)
	}
	p, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return pub, priv, err
	}
	copy(pub[:], p)
	return pub, priv, nil
}

// PairwiseSeed derives a shared seed from our private key and the peer's
// public key. Both directions of a pair derive the same seed for the same
// info string.
func PairwiseSeed(priv PrivateKey, peer PublicKey, info []byte) ([]byte, error) {
	point, err := curve25519.X25519(priv[:], peer[:])
	if err != nil {
		return nil, fmt.Errorf("prg: key agreement: %w", err)
	}
	kdf := hkdf.New(sha256.New, point, nil, info)
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(kdf, seed); err != nil {
		return nil, fmt.Errorf("prg: derive seed: %w", err)
	}
	return seed, nil
}
