// Package fe1 implements the FE1 format-preserving encryption scheme: a
// Feistel network over arbitrary integer moduli with an HMAC-SHA256 round
// function.
//
// Given a composite modulus n, a key and a tweak, FE1 is a bijection on the
// integers [0, n): every plaintext maps to a unique ciphertext in the same
// range, and decryption inverts encryption exactly. This makes it suitable
// for encrypting values that must stay inside a fixed numeric domain, such
// as account numbers, record identifiers or database keys, without
// expanding them.
//
// The package includes both a standalone implementation and Tink-compatible
// primitives (see tink.go). While Tink doesn't natively support FPE, the
// tinkfpe package provides a Tink-compatible interface that follows Tink's
// design patterns and integrates with Tink's key management system. The
// core itself performs no key management: callers supply raw key bytes.
//
// Example usage:
//
//	modulus := new(big.Int)
//	modulus.SetString("9999999999999999", 10)
//
//	key := []byte{0x10, 0x20, 0x10, 0x20, 0x10, 0x20, 0x10, 0x20}
//	tweak := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
//
//	ciphertext, err := fe1.Encrypt(modulus, big.NewInt(4444333322221111), key, tweak)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	plaintext, err := fe1.Decrypt(modulus, ciphertext, key, tweak)
//	if err != nil {
//		log.Fatal(err)
//	}
//	// plaintext is 4444333322221111 again; ciphertext stayed in [0, modulus).
//
// FE1 is deterministic: the same (modulus, plaintext, key, tweak) always
// produces the same ciphertext. Use distinct tweaks to obtain unrelated
// permutations under one key.
package fe1

import (
	"math/big"

	"github.com/vdparikh/fe1/subtle"
)

// MaxModulusBytes is the widest supported modulus in unsigned big-endian
// bytes. Moduli of 2^128 and above are rejected as invalid arguments.
const MaxModulusBytes = subtle.MaxModulusBytes

// Operations fail with exactly two error kinds, aliased here from the
// subtle package so callers can match with errors.Is without importing it.
var (
	// ErrInvalidArgument reports inputs violating the documented contract:
	// nil arguments, an empty key or tweak, a value outside [0, modulus),
	// or a modulus below 2 or wider than MaxModulusBytes.
	ErrInvalidArgument = subtle.ErrInvalidArgument

	// ErrFPE reports well-formed inputs the algorithm cannot process: a
	// prime modulus, which has no nontrivial Feistel factorization.
	ErrFPE = subtle.ErrFPE
)

// Encrypt encrypts plaintext under the given key and tweak, returning a
// ciphertext in [0, modulus). The modulus must be composite, between 2 and
// 2^128 exclusive; the plaintext must lie in [0, modulus); key and tweak
// must be nonempty.
func Encrypt(modulus, plaintext *big.Int, key, tweak []byte) (*big.Int, error) {
	return subtle.Encrypt(modulus, plaintext, key, tweak)
}

// Decrypt is the inverse of Encrypt for the same modulus, key and tweak.
func Decrypt(modulus, ciphertext *big.Int, key, tweak []byte) (*big.Int, error) {
	return subtle.Decrypt(modulus, ciphertext, key, tweak)
}

// FE1 binds a key and tweak for repeated use over any number of moduli.
// Instances are immutable and safe for concurrent use.
type FE1 struct {
	raw *subtle.FE1
}

// NewFE1 creates an FE1 instance with the given key and tweak. The key must
// be at least 1 byte; the tweak is validated on each call.
func NewFE1(key, tweak []byte) (*FE1, error) {
	raw, err := subtle.NewFE1(key, tweak)
	if err != nil {
		return nil, err
	}
	return &FE1{raw: raw}, nil
}

// Encrypt encrypts plaintext in [0, modulus) with this instance's key and
// tweak.
func (f *FE1) Encrypt(modulus, plaintext *big.Int) (*big.Int, error) {
	return f.raw.Encrypt(modulus, plaintext)
}

// Decrypt recovers the plaintext for a ciphertext produced by Encrypt.
func (f *FE1) Decrypt(modulus, ciphertext *big.Int) (*big.Int, error) {
	return f.raw.Decrypt(modulus, ciphertext)
}

// Verify that FE1 implements FPE.
var _ FPE = (*FE1)(nil)
