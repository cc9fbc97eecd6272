package tlock

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ideal-lab5/timelock/pkg/encryption"
	"github.com/ideal-lab5/timelock/pkg/engine"
	"github.com/ideal-lab5/timelock/pkg/ibe"
)

// ErrSerialization is returned for malformed ciphertext bytes. It is
// distinct from ErrDecryptionFailed because framing errors occur before
// any cryptographic check and leak no secret-dependent information.
var ErrSerialization = errors.New("tlock: malformed ciphertext encoding")

// maxSuiteLen bounds the cipher-suite label; anything longer is a
// framing error, not a suite this build could ever dispatch on
const maxSuiteLen = 64

// Ciphertext wire layout:
//
//	header.U         : compressed public-key group point
//	header.V         : 32 bytes
//	header.W         : 32 bytes
//	body.nonce       : 12 bytes
//	body.body_len    : u64 little-endian
//	body.body        : body_len bytes
//	body.tag         : 16 bytes
//	cipher_suite_len : u64 little-endian
//	cipher_suite     : cipher_suite_len bytes

// FixedOverhead returns the serialized size beyond the payload for the
// given engine and cipher-suite label length
func FixedOverhead(e engine.EngineBLS, suiteLen int) int {
	return e.PublicKeySize() + 2*ibe.HashLength +
		encryption.NonceSize + 8 + encryption.TagSize + 8 + suiteLen
}

// Serialize encodes the ciphertext in its canonical compressed form
func (c *Ciphertext) Serialize(e engine.EngineBLS) ([]byte, error) {
	if c == nil || c.Header == nil || c.Header.U == nil || c.Body == nil {
		return nil, ErrSerialization
	}
	if len(c.Body.Nonce) != encryption.NonceSize || len(c.Body.Tag) != encryption.TagSize {
		return nil, ErrSerialization
	}

	u := c.Header.U.Marshal()
	if len(u) != e.PublicKeySize() {
		return nil, fmt.Errorf("%w: unexpected point size %d", ErrSerialization, len(u))
	}

	out := make([]byte, 0, FixedOverhead(e, len(c.CipherSuite))+len(c.Body.Body))
	out = append(out, u...)
	out = append(out, c.Header.V[:]...)
	out = append(out, c.Header.W[:]...)
	out = append(out, c.Body.Nonce...)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(c.Body.Body)))
	out = append(out, c.Body.Body...)
	out = append(out, c.Body.Tag...)
	out = binary.LittleEndian.AppendUint64(out, uint64(len(c.CipherSuite)))
	out = append(out, c.CipherSuite...)
	return out, nil
}

// Deserialize decodes a ciphertext, validating every length field
// before allocating
func Deserialize(e engine.EngineBLS, data []byte) (*Ciphertext, error) {
	pkSize := e.PublicKeySize()
	minSize := FixedOverhead(e, 0)
	if len(data) < minSize {
		return nil, fmt.Errorf("%w: %d bytes is below the %d-byte minimum", ErrSerialization, len(data), minSize)
	}

	offset := 0
	next := func(n int) []byte {
		chunk := data[offset : offset+n]
		offset += n
		return chunk
	}

	u, err := e.UnmarshalPublicKey(next(pkSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	header := &ibe.Ciphertext{U: u}
	copy(header.V[:], next(ibe.HashLength))
	copy(header.W[:], next(ibe.HashLength))

	nonce := append([]byte(nil), next(encryption.NonceSize)...)

	bodyLen := binary.LittleEndian.Uint64(next(8))
	// The remaining bytes must hold body, tag, and the suite length
	// prefix; check before allocating bodyLen bytes.
	remaining := uint64(len(data) - offset)
	if bodyLen > remaining-uint64(encryption.TagSize)-8 {
		return nil, fmt.Errorf("%w: body length %d exceeds input", ErrSerialization, bodyLen)
	}
	body := append([]byte(nil), next(int(bodyLen))...)
	tag := append([]byte(nil), next(encryption.TagSize)...)

	suiteLen := binary.LittleEndian.Uint64(next(8))
	if suiteLen > maxSuiteLen || suiteLen != uint64(len(data)-offset) {
		return nil, fmt.Errorf("%w: cipher suite length %d is inconsistent", ErrSerialization, suiteLen)
	}
	suite := append([]byte(nil), next(int(suiteLen))...)

	return &Ciphertext{
		Header:      header,
		Body:        &encryption.Output{Nonce: nonce, Body: body, Tag: tag},
		CipherSuite: suite,
	}, nil
}
