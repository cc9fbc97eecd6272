package ibe

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/sha3"

	"github.com/ideal-lab5/timelock/pkg/engine"
	"github.com/ideal-lab5/timelock/pkg/util"
)

// ErrDecryptionFailed is the single error surfaced by decryption. Any
// masking, re-derivation, or U == rP equality failure collapses into it
// so callers cannot distinguish causes.
var ErrDecryptionFailed = errors.New("ibe: decryption failed")

// Message is an identity payload bound to a context. The canonical
// bytes hashed to the signature curve are ctx || id; the short digest
// tag is kept for cheap map keys and comparisons.
type Message struct {
	digest [HashLength]byte
	data   []byte // ctx || id
}

// NewMessage builds a message from a context and an identity payload
func NewMessage(ctx, id []byte) Message {
	shake := sha3.NewShake128()
	shake.Write(ctx)

	var idLen [8]byte
	binary.LittleEndian.PutUint64(idLen[:], uint64(len(id)))
	shake.Write(idLen[:])
	shake.Write(id)

	var m Message
	shake.Read(m.digest[:])
	m.data = make([]byte, 0, len(ctx)+len(id))
	m.data = append(m.data, ctx...)
	m.data = append(m.data, id...)
	return m
}

// Equal compares two messages by digest tag
func (m Message) Equal(other Message) bool {
	return m.digest == other.digest
}

// HashToSignatureCurve maps the canonical bytes to the signature group
func (m Message) HashToSignatureCurve(e engine.EngineBLS) engine.Signature {
	return e.HashToSignatureCurve(m.data)
}

// Identity is the party a message is encrypted to. It is immutable
// once constructed and freely copyable. An identity may aggregate
// several messages, in which case its public key is the sum of their
// hash-to-curve images.
type Identity struct {
	messages []Message
}

// NewIdentity constructs a single-message identity
func NewIdentity(ctx, id []byte) Identity {
	return Identity{messages: []Message{NewMessage(ctx, id)}}
}

// NewAggregateIdentity constructs an identity whose public key is the
// sum of the hash-to-curve images of the given payloads under one
// context
func NewAggregateIdentity(ctx []byte, ids ...[]byte) Identity {
	messages := make([]Message, 0, len(ids))
	for _, id := range ids {
		messages = append(messages, NewMessage(ctx, id))
	}
	return Identity{messages: messages}
}

// Public derives the identity public key Q_id in the signature group
func (id Identity) Public(e engine.EngineBLS) (engine.Signature, error) {
	if len(id.messages) == 0 {
		return nil, fmt.Errorf("identity holds no messages")
	}
	q := id.messages[0].HashToSignatureCurve(e)
	for _, m := range id.messages[1:] {
		q = e.AddSignatures(q, m.HashToSignatureCurve(e))
	}
	return q, nil
}

// Extract computes the identity secret msk * Q_id. For a BLS threshold
// beacon this equals the beacon's signature on the identity, so the
// core never needs to hold msk itself; Extract exists for tests and
// beacon emulation.
func (id Identity) Extract(e engine.EngineBLS, msk engine.Scalar) (Secret, error) {
	q, err := id.Public(e)
	if err != nil {
		return Secret{}, err
	}
	return Secret{point: e.MulSignature(q, msk)}, nil
}

// Ciphertext is a BF-IBE FullIdent ciphertext
type Ciphertext struct {
	// U = rP
	U engine.PublicKey
	// V = sigma (+) H2(g_id^r)
	V [HashLength]byte
	// W = message (+) H4(sigma)
	W [HashLength]byte
}

// Encrypt computes the BF-IBE FullIdent ciphertext of a 32-byte message
// under this identity and the beacon public key p_pub:
//
//	C = <U, V, W> = <rP, sigma (+) H2(g_id), message (+) H4(sigma)>
//
// where sigma is sampled from rng and r = H3(sigma, message). Because r
// binds both sigma and the message, the receiver re-derives it and
// checks U == rP, which authenticates the ciphertext against
// malleation (the Fujisaki-Okamoto transform).
func (id Identity) Encrypt(
	e engine.EngineBLS,
	message [HashLength]byte,
	pPub engine.PublicKey,
	rng io.Reader,
) (*Ciphertext, error) {
	qID, err := id.Public(e)
	if err != nil {
		return nil, err
	}

	// sigma <- {0,1}^32
	sigma := make([]byte, HashLength)
	if _, err := io.ReadFull(rng, sigma); err != nil {
		return nil, fmt.Errorf("failed to sample sigma: %w", err)
	}
	defer util.Zeroize(sigma)

	// r = H3(sigma, message)
	r := H3(e, sigma, message[:])
	defer r.Zeroize()

	// U = rP
	u := e.MulPublicKey(e.PublicKeyGenerator(), r)

	// g_id = e(r * p_pub, Q_id)
	gID, err := e.Pairing(e.MulPublicKey(pPub, r), qID)
	if err != nil {
		return nil, err
	}

	// V = sigma (+) H2(g_id)
	v, err := XOR(sigma, H2(gID))
	if err != nil {
		return nil, err
	}

	// W = message (+) H4(sigma)
	w, err := XOR(message[:], H4(sigma))
	if err != nil {
		return nil, err
	}

	return &Ciphertext{U: u, V: v, W: w}, nil
}

// Secret is the output of the IBE extract algorithm: a signature-group
// point d_id = msk * Q_id. For a drand round identity it is the
// beacon's round signature.
type Secret struct {
	point engine.Signature
}

// NewSecret wraps a signature-group point as an IBE secret
func NewSecret(sig engine.Signature) Secret {
	return Secret{point: sig}
}

// Point returns the underlying signature-group point
func (s Secret) Point() engine.Signature {
	return s.point
}

// Decrypt recovers the 32-byte message from a FullIdent ciphertext.
// Every failure path reports ErrDecryptionFailed.
func (s Secret) Decrypt(e engine.EngineBLS, ct *Ciphertext) ([HashLength]byte, error) {
	var zero [HashLength]byte
	if s.point == nil || ct == nil || ct.U == nil {
		return zero, ErrDecryptionFailed
	}

	// sigma = V (+) H2(e(U, d_id))
	gID, err := e.Pairing(ct.U, s.point)
	if err != nil {
		return zero, ErrDecryptionFailed
	}
	sigma, err := XOR(ct.V[:], H2(gID))
	if err != nil {
		return zero, ErrDecryptionFailed
	}
	defer util.Zeroize(sigma[:])

	// m = W (+) H4(sigma)
	m, err := XOR(ct.W[:], H4(sigma[:]))
	if err != nil {
		return zero, ErrDecryptionFailed
	}

	// check: U == rP for r = H3(sigma, m)
	r := H3(e, sigma[:], m[:])
	defer r.Zeroize()
	uCheck := e.MulPublicKey(e.PublicKeyGenerator(), r)
	if !uCheck.Equal(ct.U) {
		util.Zeroize(m[:])
		return zero, ErrDecryptionFailed
	}

	return m, nil
}
