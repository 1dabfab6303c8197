// Package tinkfpe provides Tink integration for FE1 format-preserving
// encryption. This file contains the KeyManager implementation that
// registers FE1 with Tink's registry.
package tinkfpe

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/google/tink/go/core/registry"
	"github.com/google/tink/go/insecurecleartextkeyset"
	"github.com/google/tink/go/keyset"
	"github.com/google/tink/go/proto/tink_go_proto"
	"github.com/vdparikh/fe1/subtle"
	"google.golang.org/protobuf/proto"
)

const (
	// FPEKeyTypeURL is the type URL for FE1 keys in Tink's registry.
	FPEKeyTypeURL = "type.googleapis.com/google.crypto.tink.FpeFe1Key"

	// minKeySize is the smallest key the key manager will accept. FE1 keys
	// feed HMAC-SHA256, which takes any nonempty key, but generated keys
	// should carry a real security margin.
	minKeySize = 16
)

// KeyManager implements registry.KeyManager for FE1 keys.
// This allows FE1 to be registered with Tink's registry and used with
// keyset handles.
type KeyManager struct {
	typeURL string
}

// NewKeyManager creates a new FE1 key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		typeURL: FPEKeyTypeURL,
	}
}

// Primitive creates an FE1 primitive from the given serialized key.
// The returned instance carries no tweak. The factory in fpe_factory.go
// does not use this instance: it builds its own from the keyset's key bytes
// and the caller's tweak.
func (km *KeyManager) Primitive(serializedKey []byte) (interface{}, error) {
	if len(serializedKey) < minKeySize {
		return nil, fmt.Errorf("key too short: %d bytes (minimum %d)", len(serializedKey), minKeySize)
	}

	fe1, err := subtle.NewFE1(serializedKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create FE1: %w", err)
	}
	return fe1, nil
}

// DoesSupport returns true if this KeyManager supports the given key type URL.
func (km *KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == km.typeURL
}

// TypeURL returns the type URL of the keys managed by this KeyManager.
func (km *KeyManager) TypeURL() string {
	return km.typeURL
}

// NewKey is not supported for FE1 keys and always returns an error; keys
// are generated by NewKeyData.
func (km *KeyManager) NewKey(serializedKeyTemplate []byte) (proto.Message, error) {
	return nil, fmt.Errorf("NewKey not supported for FE1 keys - use NewKeyData instead")
}

// NewKeyData creates a new KeyData from the given key template.
func (km *KeyManager) NewKeyData(serializedKeyTemplate []byte) (*tink_go_proto.KeyData, error) {
	// The template value carries the key size as a single byte.
	keySize := 32
	if len(serializedKeyTemplate) > 0 {
		keySize = int(serializedKeyTemplate[0])
		if keySize != 16 && keySize != 32 && keySize != 64 {
			return nil, fmt.Errorf("invalid key size in template: %d bytes (must be 16, 32, or 64)", keySize)
		}
	}

	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate random key: %w", err)
	}

	// SYMMETRIC = 2
	return &tink_go_proto.KeyData{
		TypeUrl:         km.typeURL,
		Value:           key,
		KeyMaterialType: 2,
	}, nil
}

// Verify that KeyManager implements registry.KeyManager
var _ registry.KeyManager = (*KeyManager)(nil)

// KeyTemplate creates a key template for FE1 keys.
// This allows users to generate keys with a single line:
//
//	handle, err := keyset.NewHandle(tinkfpe.KeyTemplate())
//
// The template generates 32-byte HMAC-SHA256 keys by default. For other
// sizes, use KeyTemplate16() or KeyTemplate64().
func KeyTemplate() *tink_go_proto.KeyTemplate {
	return KeyTemplate32()
}

// KeyTemplate16 creates a key template for FE1 with 16-byte keys.
func KeyTemplate16() *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          FPEKeyTypeURL,
		Value:            []byte{16},
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// KeyTemplate32 creates a key template for FE1 with 32-byte keys, matching
// the HMAC-SHA256 output width. This is the recommended template.
func KeyTemplate32() *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          FPEKeyTypeURL,
		Value:            []byte{32},
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// KeyTemplate64 creates a key template for FE1 with 64-byte keys, matching
// the SHA-256 block size.
func KeyTemplate64() *tink_go_proto.KeyTemplate {
	return &tink_go_proto.KeyTemplate{
		TypeUrl:          FPEKeyTypeURL,
		Value:            []byte{64},
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}
}

// NewKeysetHandleFromKey creates a keyset handle from a raw key (e.g. from
// an HSM). This is useful when you have a key from a custom HSM or key
// management system that isn't a standard Tink KMS client.
//
// The key must be at least 16 bytes.
//
// Example:
//
//	hsmKey := []byte{...} // 32-byte key from your HSM
//	handle, err := tinkfpe.NewKeysetHandleFromKey(hsmKey)
//	if err != nil {
//		log.Fatal(err)
//	}
//	primitive, err := tinkfpe.New(handle, []byte("tweak"))
//
// Note: This creates an unencrypted keyset. In production, consider
// encrypting the keyset before storing it using keyset.Write() with an AEAD.
func NewKeysetHandleFromKey(key []byte) (*keyset.Handle, error) {
	if len(key) < minKeySize {
		return nil, fmt.Errorf("key too short: %d bytes (minimum %d)", len(key), minKeySize)
	}

	keyIDBytes := make([]byte, 4)
	if _, err := rand.Read(keyIDBytes); err != nil {
		return nil, fmt.Errorf("failed to generate key ID: %w", err)
	}
	keyID := binary.BigEndian.Uint32(keyIDBytes)

	keyData := &tink_go_proto.KeyData{
		TypeUrl:         FPEKeyTypeURL,
		Value:           key,
		KeyMaterialType: 2, // SYMMETRIC
	}

	keysetKey := &tink_go_proto.Keyset_Key{
		KeyData:          keyData,
		KeyId:            keyID,
		Status:           tink_go_proto.KeyStatusType_ENABLED,
		OutputPrefixType: tink_go_proto.OutputPrefixType_RAW,
	}

	ks := &tink_go_proto.Keyset{
		PrimaryKeyId: keyID,
		Key:          []*tink_go_proto.Keyset_Key{keysetKey},
	}

	buf := &keyset.MemReaderWriter{Keyset: ks}
	return insecurecleartextkeyset.Read(buf)
}
