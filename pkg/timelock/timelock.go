// Package timelock is the stable surface consumed by foreign wrappers.
// It speaks hex-encoded curve points, flat result codes, and opaque
// ciphertext byte strings; the cryptographic core lives in pkg/ibe,
// pkg/tlock and pkg/engine.
package timelock

import (
	"crypto/rand"
	"io"
	"math"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ideal-lab5/timelock/pkg/config"
	"github.com/ideal-lab5/timelock/pkg/drand"
	"github.com/ideal-lab5/timelock/pkg/encryption"
	"github.com/ideal-lab5/timelock/pkg/engine"
	"github.com/ideal-lab5/timelock/pkg/ibe"
	"github.com/ideal-lab5/timelock/pkg/logger"
	"github.com/ideal-lab5/timelock/pkg/tlock"
	"github.com/ideal-lab5/timelock/pkg/util"
)

// CiphertextOverhead is the upper-bound serialized overhead beyond the
// message length for the QuickNet engine
const CiphertextOverhead = 220

type options struct {
	curve  config.CurveType
	logger *zap.Logger
	rng    io.Reader
}

// Option adjusts boundary behavior
type Option func(*options)

// WithCurve selects the pairing engine; the default is QuickNet
// BLS12-381
func WithCurve(curve config.CurveType) Option {
	return func(o *options) { o.curve = curve }
}

// WithLogger attaches a logger; failures are logged at debug level
// without secret material
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRand overrides the random source. Production callers keep the
// default OS source; tests pass a deterministic reader.
func WithRand(rng io.Reader) Option {
	return func(o *options) { o.rng = rng }
}

func buildOptions(opts []Option) *options {
	o := &options{
		curve: config.CurveTypeQuickNetBLS12381,
		rng:   rand.Reader,
	}
	for _, opt := range opts {
		opt(o)
	}
	// Create logger if not provided
	if o.logger == nil {
		o.logger, _ = logger.NewLogger(&logger.LoggerConfig{Debug: false})
	}
	return o
}

func newEngine(curve config.CurveType) (engine.EngineBLS, error) {
	switch curve {
	case config.CurveTypeQuickNetBLS12381:
		return engine.NewQuickNet(), nil
	default:
		return nil, newError(CodeInvalidInput, "unsupported curve", pkgerrors.Errorf("curve %q", curve))
	}
}

// DeriveDrandIdentity derives the identity digest for a beacon round
func DeriveDrandIdentity(round uint64) [32]byte {
	return drand.RoundDigest(round)
}

// Encrypt timelock-encrypts message to the identity digest (32 bytes)
// under the beacon public key (hex-encoded compressed point in the
// public-key group). The 32-byte session key is sampled internally.
// Returns the serialized ciphertext.
func Encrypt(message []byte, identityDigest []byte, publicKeyHex string, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)

	var sessionKey [encryption.KeySize]byte
	if _, err := io.ReadFull(o.rng, sessionKey[:]); err != nil {
		return nil, newError(CodeEncryptionFail, "failed to sample session key", err)
	}
	return encrypt(o, message, identityDigest, publicKeyHex, sessionKey)
}

// EncryptWithSessionKey is Encrypt with a caller-supplied 32-byte
// session key, retained for wrapper compatibility and deterministic
// tests. The key is used once as both the AEAD key and the IBE
// plaintext; callers MUST supply fresh random bytes per call and never
// reuse them. The caller's buffer is zeroized before returning, on
// success and on every error path past validation.
func EncryptWithSessionKey(
	message []byte,
	identityDigest []byte,
	publicKeyHex string,
	sessionKey []byte,
	opts ...Option,
) ([]byte, error) {
	// Validate before any secret is copied into a local buffer
	if err := util.ValidateSecretKey(sessionKey); err != nil {
		return nil, newError(CodeInvalidInput, "invalid session key", err)
	}

	var key [encryption.KeySize]byte
	copy(key[:], sessionKey)
	util.Zeroize(sessionKey)

	return encrypt(buildOptions(opts), message, identityDigest, publicKeyHex, key)
}

func encrypt(
	o *options,
	message []byte,
	identityDigest []byte,
	publicKeyHex string,
	sessionKey [encryption.KeySize]byte,
) ([]byte, error) {
	defer util.Zeroize(sessionKey[:])

	if err := util.ValidateIdentityDigest(identityDigest); err != nil {
		return nil, newError(CodeInvalidInput, "invalid identity digest", err)
	}

	eng, err := newEngine(o.curve)
	if err != nil {
		return nil, err
	}

	publicKeyBytes, err := decodeHex(publicKeyHex)
	if err != nil {
		o.logger.Debug("encrypt rejected public key hex", zap.Error(err))
		return nil, newError(CodeInvalidPubKey, "invalid public key hex", err)
	}

	pPub, err := eng.UnmarshalPublicKey(publicKeyBytes)
	if err != nil {
		o.logger.Debug("encrypt rejected public key point", zap.Error(err))
		return nil, newError(CodeInvalidPubKey, "failed to deserialize public key", err)
	}

	identity := ibe.NewIdentity([]byte(""), identityDigest)

	ct, err := tlock.TleWithSessionKey(eng, encryption.NewAESGCM(), pPub, sessionKey, message, identity, o.rng)
	if err != nil {
		o.logger.Debug("timelock encryption failed", zap.Error(err))
		return nil, newError(CodeEncryptionFail, "timelock encryption failed", err)
	}

	serialized, err := ct.Serialize(eng)
	if err != nil {
		return nil, newError(CodeSerialization, "failed to serialize ciphertext", err)
	}
	return serialized, nil
}

// Decrypt opens a serialized timelock ciphertext with a beacon
// signature (hex-encoded compressed point in the signature group).
func Decrypt(ciphertext []byte, signatureHex string, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)

	eng, err := newEngine(o.curve)
	if err != nil {
		return nil, err
	}

	signatureBytes, err := decodeHex(signatureHex)
	if err != nil {
		o.logger.Debug("decrypt rejected signature hex", zap.Error(err))
		return nil, newError(CodeInvalidSig, "invalid signature hex", err)
	}

	signature, err := eng.UnmarshalSignature(signatureBytes)
	if err != nil {
		o.logger.Debug("decrypt rejected signature point", zap.Error(err))
		return nil, newError(CodeInvalidSig, "failed to deserialize signature", err)
	}

	ct, err := tlock.Deserialize(eng, ciphertext)
	if err != nil {
		o.logger.Debug("decrypt rejected ciphertext encoding", zap.Error(err))
		return nil, newError(CodeSerialization, "failed to deserialize ciphertext", err)
	}

	if err := config.ValidateCipherSuite(config.CipherSuite(ct.CipherSuite)); err != nil {
		return nil, newError(CodeSerialization, "unsupported cipher suite", err)
	}

	plaintext, err := tlock.Tld(eng, encryption.NewAESGCM(), ct, signature)
	if err != nil {
		// Signature may be for the wrong round, the round may be in
		// the future, or the ciphertext may be corrupted; the causes
		// are deliberately indistinguishable.
		o.logger.Debug("timelock decryption failed")
		return nil, newError(CodeDecryptionFail, "timelock decryption failed", err)
	}
	return plaintext, nil
}

// EstimateCiphertextSize returns an upper bound for the serialized
// ciphertext size of a message, erroring on overflow
func EstimateCiphertextSize(messageLen int) (int, error) {
	if messageLen < 0 {
		return 0, newError(CodeInvalidInput, "negative message length", nil)
	}
	if messageLen > math.MaxInt-CiphertextOverhead {
		return 0, newError(CodeInvalidInput, "message length overflows size estimate", nil)
	}
	return messageLen + CiphertextOverhead, nil
}

// decodeHex accepts hex with or without a 0x prefix
func decodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "hex decode")
	}
	return b, nil
}
