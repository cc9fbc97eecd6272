package tlock

import (
	"errors"
	"fmt"
	"io"

	"github.com/ideal-lab5/timelock/pkg/config"
	"github.com/ideal-lab5/timelock/pkg/encryption"
	"github.com/ideal-lab5/timelock/pkg/engine"
	"github.com/ideal-lab5/timelock/pkg/ibe"
	"github.com/ideal-lab5/timelock/pkg/util"
)

// ErrDecryptionFailed is the unified decryption error. The IBE header
// check and the AEAD tag check both collapse into it so callers cannot
// use the distinction as an oracle.
var ErrDecryptionFailed = errors.New("tlock: decryption failed")

// DefaultCipherSuite labels the AES-GCM-256 / BF-IBE binding
var DefaultCipherSuite = []byte(config.CipherSuiteAESGCM256)

// Ciphertext is the hybrid timelock envelope: an IBE header
// encapsulating the 32-byte session key, the AEAD-sealed payload, and
// the cipher-suite label that binds the two.
type Ciphertext struct {
	Header      *ibe.Ciphertext
	Body        *encryption.Output
	CipherSuite []byte
}

// Tle encrypts message to the given identity under the beacon public
// key pPub. A fresh 32-byte session key is sampled from rng, sealed
// over the payload with the block cipher, and IBE-encapsulated to the
// identity; nobody can recover it before the beacon signs the identity.
func Tle(
	e engine.EngineBLS,
	cipher encryption.BlockCipher,
	pPub engine.PublicKey,
	message []byte,
	id ibe.Identity,
	rng io.Reader,
) (*Ciphertext, error) {
	var sessionKey [encryption.KeySize]byte
	if _, err := io.ReadFull(rng, sessionKey[:]); err != nil {
		return nil, fmt.Errorf("failed to sample session key: %w", err)
	}
	return TleWithSessionKey(e, cipher, pPub, sessionKey, message, id, rng)
}

// TleWithSessionKey is Tle with a caller-supplied session key. The key
// is both the AEAD key and the IBE-encapsulated plaintext, so callers
// MUST supply a freshly generated random 32 bytes per encryption and
// never reuse one; prefer Tle, which samples it internally. The local
// copy is zeroized on every exit path.
func TleWithSessionKey(
	e engine.EngineBLS,
	cipher encryption.BlockCipher,
	pPub engine.PublicKey,
	sessionKey [encryption.KeySize]byte,
	message []byte,
	id ibe.Identity,
	rng io.Reader,
) (*Ciphertext, error) {
	defer util.Zeroize(sessionKey[:])

	if pPub == nil || pPub.IsInfinity() {
		return nil, fmt.Errorf("invalid public key: zero/infinity point")
	}

	// Seal the payload under the session key
	body, err := cipher.Seal(sessionKey, message, rng)
	if err != nil {
		return nil, err
	}

	// Encapsulate the session key to the identity
	header, err := id.Encrypt(e, sessionKey, pPub, rng)
	if err != nil {
		return nil, err
	}

	return &Ciphertext{
		Header:      header,
		Body:        body,
		CipherSuite: DefaultCipherSuite,
	}, nil
}

// Tld decrypts a timelock ciphertext with the beacon signature for the
// identity it was encrypted to. A malformed header and an AEAD
// mismatch are deliberately indistinguishable.
func Tld(
	e engine.EngineBLS,
	cipher encryption.BlockCipher,
	ct *Ciphertext,
	signature engine.Signature,
) ([]byte, error) {
	if ct == nil || ct.Header == nil || ct.Body == nil {
		return nil, ErrDecryptionFailed
	}

	secret := ibe.NewSecret(signature)
	sessionKey, err := secret.Decrypt(e, ct.Header)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	defer util.Zeroize(sessionKey[:])

	plaintext, err := cipher.Open(sessionKey, ct.Body)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// DecryptWithKey opens the AEAD body directly with a known session
// key, bypassing the IBE header. It exists for early opening by the
// party that performed the encryption.
func DecryptWithKey(
	cipher encryption.BlockCipher,
	ct *Ciphertext,
	sessionKey [encryption.KeySize]byte,
) ([]byte, error) {
	defer util.Zeroize(sessionKey[:])

	if ct == nil || ct.Body == nil {
		return nil, ErrDecryptionFailed
	}
	plaintext, err := cipher.Open(sessionKey, ct.Body)
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
