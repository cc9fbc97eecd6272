package ibe

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"

	"github.com/ideal-lab5/timelock/pkg/engine"
)

// HashLength is the width of the V and W ciphertext components and of
// every internal digest
const HashLength = 32

// ErrInvalidLength is returned when an XOR input is shorter than the
// requested output width
var ErrInvalidLength = errors.New("ibe: input shorter than output width")

// Sha256 computes the SHA-256 digest of b
func Sha256(b []byte) []byte {
	digest := sha256.Sum256(b)
	return digest[:]
}

// H2 maps a pairing target-field element to a 32-byte mask: the
// SHA-256 digest of its canonical serialization
func H2(g engine.GT) []byte {
	return Sha256(g.Marshal())
}

// H3 maps (sigma, message) to a scalar: sha256(sigma || message)
// interpreted big-endian modulo the field order
func H3(e engine.EngineBLS, sigma, message []byte) engine.Scalar {
	input := make([]byte, 0, len(sigma)+len(message))
	input = append(input, sigma...)
	input = append(input, message...)
	return e.ScalarFromDigest(Sha256(input))
}

// H4 maps sigma to a mask of the same length: sha256(sigma) truncated.
// len(a) must not exceed HashLength.
func H4(a []byte) []byte {
	o := Sha256(a)
	return o[:len(a)]
}

// XOR computes the byte-wise XOR of the first HashLength bytes of a and
// b, eight bytes at a time. Both inputs must be at least HashLength
// bytes.
func XOR(a, b []byte) ([HashLength]byte, error) {
	var result [HashLength]byte
	if len(a) < HashLength || len(b) < HashLength {
		return result, ErrInvalidLength
	}

	const chunks = HashLength / 8
	for i := 0; i < chunks; i++ {
		start := i * 8
		av := binary.LittleEndian.Uint64(a[start : start+8])
		bv := binary.LittleEndian.Uint64(b[start : start+8])
		binary.LittleEndian.PutUint64(result[start:start+8], av^bv)
	}
	return result, nil
}
