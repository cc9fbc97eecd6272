package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
)

const (
	// KeySize is the AES-256 key size in bytes
	KeySize = 32
	// NonceSize is the AES-GCM nonce size (fixed at 12 bytes)
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag size
	TagSize = 16
)

var (
	// ErrEncryptionFailed is returned when nonce sampling or the
	// underlying cipher setup fails
	ErrEncryptionFailed = errors.New("encryption: seal failed")
	// ErrDecryptionFailed is returned on authentication-tag mismatch
	ErrDecryptionFailed = errors.New("encryption: open failed")
)

// Output is the result of an authenticated seal: a fresh nonce, the
// ciphertext body, and the authentication tag
type Output struct {
	Nonce []byte
	Body  []byte
	Tag   []byte
}

// BlockCipher provides authenticated symmetric seal/open with
// single-use keys. Callers must never reuse a (key, nonce) pair; the
// timelock composition guarantees this by freshly sampling the key per
// encryption.
type BlockCipher interface {
	Seal(key [KeySize]byte, plaintext []byte, rng io.Reader) (*Output, error)
	Open(key [KeySize]byte, out *Output) ([]byte, error)
}

// AESGCM is the AES-GCM-256 block cipher provider
type AESGCM struct{}

// NewAESGCM creates a new AES-GCM-256 provider
func NewAESGCM() *AESGCM {
	return &AESGCM{}
}

// Seal encrypts plaintext under key with a random 12-byte nonce drawn
// from rng. Associated data is empty.
func (a *AESGCM) Seal(key [KeySize]byte, plaintext []byte, rng io.Reader) (*Output, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rng, nonce); err != nil {
		return nil, fmt.Errorf("%w: failed to sample nonce: %v", ErrEncryptionFailed, err)
	}

	sealed := gcm.Seal(nil, nonce, plaintext, nil)

	// gcm appends the tag to the ciphertext; split it off
	tagStart := len(sealed) - TagSize
	return &Output{
		Nonce: nonce,
		Body:  sealed[:tagStart],
		Tag:   sealed[tagStart:],
	}, nil
}

// Open verifies the authentication tag and decrypts the body. Tag
// mismatch and malformed components report ErrDecryptionFailed.
func (a *AESGCM) Open(key [KeySize]byte, out *Output) ([]byte, error) {
	if out == nil || len(out.Nonce) != NonceSize || len(out.Tag) != TagSize {
		return nil, ErrDecryptionFailed
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	sealed := make([]byte, 0, len(out.Body)+TagSize)
	sealed = append(sealed, out.Body...)
	sealed = append(sealed, out.Tag...)

	// A non-nil destination keeps an empty plaintext as []byte{} rather
	// than nil
	plaintext, err := gcm.Open(make([]byte, 0, len(out.Body)), out.Nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

func newGCM(key [KeySize]byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(block, NonceSize)
}
