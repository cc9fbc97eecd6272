package testutil

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ideal-lab5/timelock/pkg/bls"
	"github.com/ideal-lab5/timelock/pkg/drand"
	"github.com/ideal-lab5/timelock/pkg/engine"
	"github.com/ideal-lab5/timelock/pkg/ibe"
)

// TestBeacon emulates a threshold beacon for tests: it holds a master
// secret and signs round identities the way QuickNet does, so the
// signature for a round is exactly the IBE extract output for that
// round's identity.
type TestBeacon struct {
	key    *bls.PrivateKey
	engine engine.EngineBLS
}

// NewTestBeacon derives a deterministic beacon from a seed
func NewTestBeacon(seed []byte) (*TestBeacon, error) {
	padded := make([]byte, 32)
	copy(padded, seed)
	key, err := bls.GeneratePrivateKeyFromSeed(padded)
	if err != nil {
		return nil, err
	}
	return &TestBeacon{key: key, engine: engine.NewQuickNet()}, nil
}

// PublicKey returns the beacon's long-term public key p_pub
func (b *TestBeacon) PublicKey() engine.PublicKey {
	pPub, err := b.engine.UnmarshalPublicKey(b.key.GetPublicKeyG2().Marshal())
	if err != nil {
		panic(fmt.Sprintf("testutil: beacon public key round-trip failed: %v", err))
	}
	return pPub
}

// PublicKeyHex returns the hex-encoded compressed public key
func (b *TestBeacon) PublicKeyHex() string {
	return fmt.Sprintf("%x", b.key.GetPublicKeyG2().Marshal())
}

// SignRound produces the beacon signature for a round, i.e. the IBE
// secret for the round identity
func (b *TestBeacon) SignRound(round uint64) engine.Signature {
	digest := drand.RoundDigest(round)
	sig := b.key.SignG1(digest[:])
	point, err := b.engine.UnmarshalSignature(sig.Marshal())
	if err != nil {
		panic(fmt.Sprintf("testutil: beacon signature round-trip failed: %v", err))
	}
	return point
}

// SignRoundHex returns the hex-encoded compressed round signature
func (b *TestBeacon) SignRoundHex(round uint64) string {
	digest := drand.RoundDigest(round)
	return fmt.Sprintf("%x", b.key.SignG1(digest[:]).Marshal())
}

// ExtractFor returns the IBE secret for an arbitrary identity
func (b *TestBeacon) ExtractFor(id ibe.Identity) (ibe.Secret, error) {
	scalarBytes := b.key.GetScalar().Bytes()
	return id.Extract(b.engine, b.engine.ScalarFromDigest(scalarBytes[:]))
}

// DeterministicRand is a seeded io.Reader producing a reproducible
// byte stream for deterministic encryption tests. Never use it outside
// tests.
type DeterministicRand struct {
	state   [32]byte
	counter uint64
	buf     []byte
}

// NewDeterministicRand seeds a reproducible random stream
func NewDeterministicRand(seed []byte) *DeterministicRand {
	r := &DeterministicRand{}
	r.state = sha256.Sum256(seed)
	return r
}

func (r *DeterministicRand) Read(p []byte) (int, error) {
	for len(r.buf) < len(p) {
		var block [40]byte
		copy(block[:32], r.state[:])
		binary.LittleEndian.PutUint64(block[32:], r.counter)
		r.counter++
		digest := sha256.Sum256(block[:])
		r.buf = append(r.buf, digest[:]...)
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

var _ io.Reader = (*DeterministicRand)(nil)
