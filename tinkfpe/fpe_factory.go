// Package tinkfpe provides Tink integration for FE1 format-preserving
// encryption. This file contains the factory function for creating FPE
// primitives from Tink keyset handles.
package tinkfpe

import (
	"fmt"
	"math/big"

	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/vdparikh/fe1"
	"github.com/vdparikh/fe1/subtle"
)

// New creates a new FPE primitive from a Tink keyset handle.
// This is the main entry point for users following Tink's pattern.
//
// Example:
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//	if err != nil {
//	    return err
//	}
//	primitive, err := tinkfpe.New(handle, []byte("tweak"))
//	if err != nil {
//	    return err
//	}
//	ciphertext, err := primitive.Encrypt(modulus, plaintext)
func New(handle *keyset.Handle, tweak []byte) (fe1.FPE, error) {
	if handle == nil {
		return nil, fmt.Errorf("keyset handle cannot be nil")
	}

	// Resolve the primary key through Tink's Primitives API, which also
	// verifies every key in the set parses under the registered manager.
	primitives, err := handle.Primitives()
	if err != nil {
		return nil, fmt.Errorf("failed to get primitives from handle: %w", err)
	}

	primary := primitives.Primary
	if primary == nil {
		return nil, fmt.Errorf("no primary key found in keyset")
	}

	keyID := primary.KeyID
	if keyID == 0 {
		return nil, fmt.Errorf("invalid key ID in primary entry")
	}

	// Extract the keyset using insecurecleartextkeyset (for unencrypted
	// keysets, such as those created by NewKeysetHandleFromKey).
	ks := insecurecleartextkeyset.KeysetMaterial(handle)

	var keyBytes []byte
	for _, key := range ks.Key {
		if key.KeyId != keyID {
			continue
		}
		keyData := key.KeyData
		if keyData == nil {
			continue
		}

		// ENCRYPTED = 1; key material held by a KMS is not resolvable here.
		if keyData.GetKeyMaterialType() == 1 {
			return nil, fmt.Errorf("encrypted keys via KMS are not supported - use symmetric keys")
		}

		// SYMMETRIC = 2
		if keyData.GetKeyMaterialType() == 2 {
			keyBytes = keyData.Value
			break
		}
	}

	if keyBytes == nil {
		return nil, fmt.Errorf("key with ID %d not found or unsupported key type", keyID)
	}

	raw, err := subtle.NewFE1(keyBytes, tweak)
	if err != nil {
		return nil, fmt.Errorf("failed to create FE1 instance: %w", err)
	}

	return &fpeImpl{raw: raw}, nil
}

// fpeImpl implements the fe1.FPE interface using the subtle.FE1
// implementation.
type fpeImpl struct {
	raw *subtle.FE1
}

// Encrypt maps plaintext in [0, modulus) to a unique ciphertext in the same
// range using the keyset's primary key.
func (f *fpeImpl) Encrypt(modulus, plaintext *big.Int) (*big.Int, error) {
	return f.raw.Encrypt(modulus, plaintext)
}

// Decrypt is the inverse of Encrypt for the same modulus.
func (f *fpeImpl) Decrypt(modulus, ciphertext *big.Int) (*big.Int, error) {
	return f.raw.Decrypt(modulus, ciphertext)
}

// Verify that fpeImpl implements fe1.FPE
var _ fe1.FPE = (*fpeImpl)(nil)
