package subtle

import (
	"crypto/hmac"
	"crypto/sha256"
	"math"
	"math/big"
)

const (
	// MaxModulusBytes caps the unsigned big-endian width of the modulus at
	// 16 bytes (128 bits). FE1 has no intrinsic ceiling; the cap bounds
	// factorization cost and the PRF domain and is kept for compatibility
	// with other FE1 implementations.
	MaxModulusBytes = 16

	// numRounds is the Feistel round count of the original FE1 design.
	numRounds = 3

	// maxTweakLen keeps the tweak length encodable in its 4-byte prefix.
	maxTweakLen = math.MaxUint32
)

// FE1 performs format-preserving encryption over an integer modulus using a
// raw HMAC-SHA256 key. For a composite modulus n, Encrypt is a bijection on
// the integers [0, n) and Decrypt inverts it exactly.
//
// Thread safety: both methods are safe for concurrent use by multiple
// goroutines, as they do not modify the FE1 instance state.
type FE1 struct {
	key   []byte
	tweak []byte
}

// NewFE1 creates a new FE1 instance with the given raw key and tweak.
// The key must be at least 1 byte. The tweak is a public, non-secret value
// that diversifies the permutation without changing the key; it is
// validated on each Encrypt or Decrypt call, which require it nonempty.
func NewFE1(key, tweak []byte) (*FE1, error) {
	if len(key) == 0 {
		return nil, invalidArgf("key must be at least 1 byte")
	}
	return &FE1{
		key:   append([]byte(nil), key...),
		tweak: append([]byte(nil), tweak...),
	}, nil
}

// Encrypt maps plaintext in [0, modulus) to the ciphertext for this
// instance's key and tweak.
func (f *FE1) Encrypt(modulus, plaintext *big.Int) (*big.Int, error) {
	return Encrypt(modulus, plaintext, f.key, f.tweak)
}

// Decrypt recovers the plaintext for a ciphertext produced by Encrypt with
// the same modulus, key and tweak.
func (f *FE1) Decrypt(modulus, ciphertext *big.Int) (*big.Int, error) {
	return Decrypt(modulus, ciphertext, f.key, f.tweak)
}

// Encrypt runs the forward FE1 Feistel network. The modulus must be
// composite, at least 2 and at most MaxModulusBytes wide; the plaintext
// must lie in [0, modulus); key and tweak must be nonempty. The ciphertext
// lies in [0, modulus) and is unique per plaintext.
//
// Each call is self-contained and deterministic: the same (modulus,
// plaintext, key, tweak) always yields the same ciphertext.
func Encrypt(modulus, plaintext *big.Int, key, tweak []byte) (*big.Int, error) {
	if err := validate(modulus, plaintext, key, tweak); err != nil {
		return nil, err
	}
	a, b, err := Factor(modulus)
	if err != nil {
		return nil, err
	}
	prf := newRoundFunc(modulus, a, key, tweak)

	// Each round splits x into base-b digits (L, R), mixes L with the PRF
	// of R modulo a, and reassembles as a base-a pair. R stays below b and
	// the mixed half stays below a, so x never leaves [0, modulus).
	x := new(big.Int).Set(plaintext)
	L := new(big.Int)
	R := new(big.Int)
	for i := 0; i < numRounds; i++ {
		L.QuoRem(x, b, R)
		w := prf.eval(uint32(i), R)
		w.Add(w, L)
		w.Mod(w, a)
		x.Mul(a, R)
		x.Add(x, w)
	}
	return x, nil
}

// Decrypt runs the Feistel network in reverse, rounds descending and the
// round output subtracted instead of added. The contract mirrors Encrypt.
func Decrypt(modulus, ciphertext *big.Int, key, tweak []byte) (*big.Int, error) {
	if err := validate(modulus, ciphertext, key, tweak); err != nil {
		return nil, err
	}
	a, b, err := Factor(modulus)
	if err != nil {
		return nil, err
	}
	prf := newRoundFunc(modulus, a, key, tweak)

	y := new(big.Int).Set(ciphertext)
	R := new(big.Int)
	W := new(big.Int)
	for i := numRounds - 1; i >= 0; i-- {
		R.QuoRem(y, a, W)
		w := prf.eval(uint32(i), R)
		W.Sub(W, w)
		W.Mod(W, a)
		y.Mul(b, W)
		y.Add(y, R)
	}
	return y, nil
}

// validate enforces the argument contract shared by Encrypt and Decrypt.
// Caller mistakes fail with ErrInvalidArgument before any cryptographic
// work; only primality of the modulus surfaces later, as ErrFPE.
func validate(modulus, x *big.Int, key, tweak []byte) error {
	if modulus == nil {
		return invalidArgf("modulus must not be nil")
	}
	if x == nil {
		return invalidArgf("value must not be nil")
	}
	if len(key) == 0 {
		return invalidArgf("key must be at least 1 byte")
	}
	if len(tweak) == 0 {
		return invalidArgf("tweak must be at least 1 byte")
	}
	if uint64(len(tweak)) > maxTweakLen {
		return invalidArgf("tweak exceeds %d bytes", uint64(maxTweakLen))
	}
	if x.Sign() < 0 || x.Cmp(modulus) >= 0 {
		return invalidArgf("value %s is outside [0, %s)", x, modulus)
	}
	if modulus.Cmp(bigTwo) < 0 {
		return invalidArgf("modulus must be at least 2")
	}
	if n := len(modulus.Bytes()); n > MaxModulusBytes {
		return invalidArgf("modulus needs %d bytes, the maximum is %d", n, MaxModulusBytes)
	}
	return nil
}

// roundFunc is the per-round pseudo-random function of the Feistel network.
// Its MAC key is derived from the user key over a canonical header binding
// the modulus and tweak, so changing either produces an unrelated
// permutation under the same user key.
type roundFunc struct {
	macKey []byte
	a      *big.Int
}

// newRoundFunc derives the per-call MAC key
//
//	K = HMAC-SHA256(key, len4(nBytes) || nBytes || len4(tweak) || tweak)
//
// where nBytes is the minimal unsigned big-endian encoding of the modulus
// and len4 is a 4-byte unsigned big-endian length prefix.
func newRoundFunc(modulus, a *big.Int, key, tweak []byte) *roundFunc {
	header := make([]byte, 0, 8+MaxModulusBytes+len(tweak))
	header = appendLengthPrefixed(header, modulus.Bytes())
	header = appendLengthPrefixed(header, tweak)

	mac := hmac.New(sha256.New, key)
	mac.Write(header)
	return &roundFunc{macKey: mac.Sum(nil), a: a}
}

// eval computes the round value
//
//	F(round, r) = OS2IP(HMAC-SHA256(K, enc32(round) || len4(rBytes) || rBytes)) mod a
//
// The length prefix is emitted even when r is zero and encodes to no bytes.
// The reduction modulus is always a, the larger factor, in every round; the
// 32-byte MAC output is wide compared to a, so the modular bias is
// negligible.
func (rf *roundFunc) eval(round uint32, r *big.Int) *big.Int {
	msg := make([]byte, 0, 8+MaxModulusBytes)
	msg = appendUint32(msg, round)
	msg = appendLengthPrefixed(msg, r.Bytes())

	mac := hmac.New(sha256.New, rf.macKey)
	mac.Write(msg)
	v := os2ip(mac.Sum(nil))
	return v.Mod(v, rf.a)
}
