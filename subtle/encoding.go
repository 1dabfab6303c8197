// Package subtle provides the low-level FE1 primitives that work with raw
// keys. It should not be used directly by most users; instead use the
// high-level APIs in the parent package.
package subtle

import (
	"encoding/binary"
	"math/big"
)

// appendUint32 appends v as 4 bytes, unsigned big-endian.
func appendUint32(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

// appendLengthPrefixed appends a 4-byte big-endian length followed by the
// payload itself. The prefix is emitted even for an empty payload; the
// framing is what keeps the MAC input domain-separated, so it must never be
// dropped or shortened.
func appendLengthPrefixed(dst, payload []byte) []byte {
	dst = appendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}

// os2ip interprets b as an unsigned big-endian integer. An empty byte
// string denotes zero.
func os2ip(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
