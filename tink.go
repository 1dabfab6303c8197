// This file defines the FPE interface for Tink integration.
// For the Tink key-management integration itself, see the tinkfpe package.

package fe1

import "math/big"

// FPE is a Tink-compatible interface for format-preserving encryption over
// integer moduli. This follows Tink's primitive pattern, similar to
// tink.DeterministicAEAD. FPE is deterministic: the same modulus, value,
// key and tweak always produce the same result.
type FPE interface {
	// Encrypt maps plaintext in [0, modulus) to a unique ciphertext in the
	// same range.
	Encrypt(modulus, plaintext *big.Int) (*big.Int, error)

	// Decrypt is the inverse of Encrypt for the same modulus.
	Decrypt(modulus, ciphertext *big.Int) (*big.Int, error)
}
