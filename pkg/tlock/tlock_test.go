package tlock_test

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ideal-lab5/timelock/pkg/drand"
	"github.com/ideal-lab5/timelock/pkg/encryption"
	"github.com/ideal-lab5/timelock/pkg/engine"
	"github.com/ideal-lab5/timelock/pkg/testutil"
	"github.com/ideal-lab5/timelock/pkg/tlock"
)

func newTestBeacon(t *testing.T) *testutil.TestBeacon {
	t.Helper()
	beacon, err := testutil.NewTestBeacon([]byte("tlock test beacon"))
	require.NoError(t, err)
	return beacon
}

func Test_TleTld_RoundTrip(t *testing.T) {
	e := engine.NewQuickNet()
	cipher := encryption.NewAESGCM()
	beacon := newTestBeacon(t)

	tests := []struct {
		name    string
		message []byte
	}{
		{name: "short message", message: []byte("Hello, Timelock")},
		{name: "empty message", message: []byte{}},
		{name: "large message", message: bytes.Repeat([]byte{0xAB}, 10_000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const round = 1000
			ct, err := tlock.Tle(e, cipher, beacon.PublicKey(), tt.message, drand.RoundIdentity(round), rand.Reader)
			require.NoError(t, err)
			require.Equal(t, tlock.DefaultCipherSuite, ct.CipherSuite)

			plaintext, err := tlock.Tld(e, cipher, ct, beacon.SignRound(round))
			require.NoError(t, err)
			require.Equal(t, tt.message, plaintext)
		})
	}
}

func Test_Tld_FailsWithWrongRoundSignature(t *testing.T) {
	e := engine.NewQuickNet()
	cipher := encryption.NewAESGCM()
	beacon := newTestBeacon(t)

	ct, err := tlock.Tle(e, cipher, beacon.PublicKey(), []byte("for round 1000"), drand.RoundIdentity(1000), rand.Reader)
	require.NoError(t, err)

	// A valid signature for a different round is not the IBE secret
	// for this ciphertext's identity
	_, err = tlock.Tld(e, cipher, ct, beacon.SignRound(999))
	require.ErrorIs(t, err, tlock.ErrDecryptionFailed)
}

func Test_Tld_FailsWithForeignBeaconSignature(t *testing.T) {
	e := engine.NewQuickNet()
	cipher := encryption.NewAESGCM()
	beacon := newTestBeacon(t)

	other, err := testutil.NewTestBeacon([]byte("some other beacon"))
	require.NoError(t, err)

	ct, err := tlock.Tle(e, cipher, beacon.PublicKey(), []byte("payload"), drand.RoundIdentity(42), rand.Reader)
	require.NoError(t, err)

	_, err = tlock.Tld(e, cipher, ct, other.SignRound(42))
	require.ErrorIs(t, err, tlock.ErrDecryptionFailed)
}

func Test_Tld_FailsOnTamperedBody(t *testing.T) {
	e := engine.NewQuickNet()
	cipher := encryption.NewAESGCM()
	beacon := newTestBeacon(t)

	const round = 7
	ct, err := tlock.Tle(e, cipher, beacon.PublicKey(), []byte("sealed payload"), drand.RoundIdentity(round), rand.Reader)
	require.NoError(t, err)

	t.Run("body corruption", func(t *testing.T) {
		mutated := *ct
		mutated.Body = &encryption.Output{
			Nonce: ct.Body.Nonce,
			Body:  append([]byte(nil), ct.Body.Body...),
			Tag:   ct.Body.Tag,
		}
		mutated.Body.Body[len(mutated.Body.Body)-1] ^= 0x01
		_, err := tlock.Tld(e, cipher, &mutated, beacon.SignRound(round))
		require.ErrorIs(t, err, tlock.ErrDecryptionFailed)
	})

	t.Run("header corruption", func(t *testing.T) {
		mutated := *ct
		header := *ct.Header
		header.V[0] ^= 0x01
		mutated.Header = &header
		_, err := tlock.Tld(e, cipher, &mutated, beacon.SignRound(round))
		require.ErrorIs(t, err, tlock.ErrDecryptionFailed)
	})

	t.Run("nil pieces", func(t *testing.T) {
		_, err := tlock.Tld(e, cipher, nil, beacon.SignRound(round))
		require.ErrorIs(t, err, tlock.ErrDecryptionFailed)
		_, err = tlock.Tld(e, cipher, &tlock.Ciphertext{}, beacon.SignRound(round))
		require.ErrorIs(t, err, tlock.ErrDecryptionFailed)
	})
}

func Test_TleWithSessionKey_Deterministic(t *testing.T) {
	e := engine.NewQuickNet()
	cipher := encryption.NewAESGCM()
	beacon := newTestBeacon(t)

	var sessionKey [encryption.KeySize]byte
	for i := range sessionKey {
		sessionKey[i] = 2
	}

	// Same key, same rng stream, same message: identical ciphertexts
	a, err := tlock.TleWithSessionKey(e, cipher, beacon.PublicKey(), sessionKey,
		[]byte("payload"), drand.RoundIdentity(1), testutil.NewDeterministicRand([]byte("rng")))
	require.NoError(t, err)
	b, err := tlock.TleWithSessionKey(e, cipher, beacon.PublicKey(), sessionKey,
		[]byte("payload"), drand.RoundIdentity(1), testutil.NewDeterministicRand([]byte("rng")))
	require.NoError(t, err)

	aBytes, err := a.Serialize(e)
	require.NoError(t, err)
	bBytes, err := b.Serialize(e)
	require.NoError(t, err)
	require.Equal(t, aBytes, bBytes)
}

func Test_Tle_RejectsInfinityPublicKey(t *testing.T) {
	e := engine.NewQuickNet()
	cipher := encryption.NewAESGCM()

	zero, err := e.RandomScalar(testutil.NewDeterministicRand([]byte("zero")))
	require.NoError(t, err)
	zero.Zeroize()
	infinity := e.MulPublicKey(e.PublicKeyGenerator(), zero)
	require.True(t, infinity.IsInfinity())

	_, err = tlock.Tle(e, cipher, infinity, []byte("payload"), drand.RoundIdentity(1), rand.Reader)
	require.Error(t, err)
}

func Test_DecryptWithKey_BypassesHeader(t *testing.T) {
	e := engine.NewQuickNet()
	cipher := encryption.NewAESGCM()
	beacon := newTestBeacon(t)

	var sessionKey [encryption.KeySize]byte
	copy(sessionKey[:], bytes.Repeat([]byte{0x5A}, encryption.KeySize))

	ct, err := tlock.TleWithSessionKey(e, cipher, beacon.PublicKey(), sessionKey,
		[]byte("early opening"), drand.RoundIdentity(123456), rand.Reader)
	require.NoError(t, err)

	// The encryptor still knows the session key and can open the body
	// before the beacon reaches the round
	plaintext, err := tlock.DecryptWithKey(cipher, ct, sessionKey)
	require.NoError(t, err)
	require.Equal(t, []byte("early opening"), plaintext)

	var wrongKey [encryption.KeySize]byte
	_, err = tlock.DecryptWithKey(cipher, ct, wrongKey)
	require.ErrorIs(t, err, tlock.ErrDecryptionFailed)
}
