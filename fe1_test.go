package fe1

import (
	"errors"
	"math/big"
	"testing"
)

var (
	testKey   = []byte{0x20, 0x01, 0x30, 0x50, 0x60, 0x70}
	testTweak = []byte{0x00, 0x01, 0x02, 0x03, 0x04}
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	modulus := new(big.Int)
	modulus.SetString("9999999999999999", 10)
	plaintext := new(big.Int)
	plaintext.SetString("4444333322221111", 10)

	key := []byte{0x10, 0x20, 0x10, 0x20, 0x10, 0x20, 0x10, 0x20}
	tweak := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}

	ciphertext, err := Encrypt(modulus, plaintext, key, tweak)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if ciphertext.Sign() < 0 || ciphertext.Cmp(modulus) >= 0 {
		t.Fatalf("ciphertext %s outside [0, %s)", ciphertext, modulus)
	}

	decrypted, err := Decrypt(modulus, ciphertext, key, tweak)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if decrypted.Cmp(plaintext) != 0 {
		t.Errorf("round trip failed: %s -> %s -> %s", plaintext, ciphertext, decrypted)
	}
	t.Logf("encrypted %s to %s and decrypted to %s", plaintext, ciphertext, decrypted)
}

func TestSmallestDomain(t *testing.T) {
	// n=4 is the smallest supported modulus; all four values must map to
	// four distinct ciphertexts.
	n := big.NewInt(4)
	seen := make(map[int64]bool, 4)
	for x := int64(0); x < 4; x++ {
		y, err := Encrypt(n, big.NewInt(x), testKey, testTweak)
		if err != nil {
			t.Fatalf("Encrypt(4, %d) failed: %v", x, err)
		}
		back, err := Decrypt(n, y, testKey, testTweak)
		if err != nil {
			t.Fatalf("Decrypt(4, %s) failed: %v", y, err)
		}
		if back.Int64() != x {
			t.Errorf("round trip failed: %d -> %s -> %s", x, y, back)
		}
		seen[y.Int64()] = true
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct ciphertexts, got %d", len(seen))
	}
}

func TestErrorKindsExposed(t *testing.T) {
	if _, err := Encrypt(big.NewInt(32), big.NewInt(0), nil, testTweak); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty key: got %v, want ErrInvalidArgument", err)
	}
	if _, err := Encrypt(big.NewInt(10007), big.NewInt(0), testKey, testTweak); !errors.Is(err, ErrFPE) {
		t.Errorf("prime modulus: got %v, want ErrFPE", err)
	}
	if _, err := Decrypt(nil, big.NewInt(0), testKey, testTweak); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil modulus: got %v, want ErrInvalidArgument", err)
	}
}

func TestInstanceAPI(t *testing.T) {
	f, err := NewFE1(testKey, testTweak)
	if err != nil {
		t.Fatalf("NewFE1 failed: %v", err)
	}

	// The instance is usable through the FPE primitive interface.
	var primitive FPE = f

	n := big.NewInt(10000)
	for _, x := range []int64{0, 1, 9999} {
		y, err := primitive.Encrypt(n, big.NewInt(x))
		if err != nil {
			t.Fatalf("Encrypt(%d) failed: %v", x, err)
		}
		back, err := primitive.Decrypt(n, y)
		if err != nil {
			t.Fatalf("Decrypt(%s) failed: %v", y, err)
		}
		if back.Int64() != x {
			t.Errorf("round trip failed: %d -> %s -> %s", x, y, back)
		}
	}
}

func TestNewFE1EmptyKey(t *testing.T) {
	if _, err := NewFE1(nil, testTweak); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewFE1(nil key) = %v, want ErrInvalidArgument", err)
	}
}
