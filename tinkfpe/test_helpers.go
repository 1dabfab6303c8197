package tinkfpe

import (
	"sync"

	"github.com/google/tink/go/core/registry"
)

var (
	keyManagerOnce       sync.Once
	registeredKeyManager *KeyManager
)

// ensureKeyManagerRegistered ensures the KeyManager is registered with
// Tink's registry. This function is safe to call multiple times - it will
// only register once.
func ensureKeyManagerRegistered() *KeyManager {
	keyManagerOnce.Do(func() {
		keyManager := NewKeyManager()
		// Registration fails if the type URL is already taken; the manager
		// is stateless, so an existing registration serves equally well.
		_ = registry.RegisterKeyManager(keyManager)
		registeredKeyManager = keyManager
	})
	return registeredKeyManager
}

// getOrRegisterKeyManager gets the KeyManager, registering it if necessary.
func getOrRegisterKeyManager() (*KeyManager, error) {
	keyManager := NewKeyManager()

	// If the type URL resolves, the KeyManager is already registered.
	_, err := registry.GetKeyManager(FPEKeyTypeURL)
	if err == nil {
		return keyManager, nil
	}

	if err := registry.RegisterKeyManager(keyManager); err != nil {
		return nil, err
	}

	return keyManager, nil
}
