package tlock_test

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ideal-lab5/timelock/pkg/drand"
	"github.com/ideal-lab5/timelock/pkg/encryption"
	"github.com/ideal-lab5/timelock/pkg/engine"
	"github.com/ideal-lab5/timelock/pkg/testutil"
	"github.com/ideal-lab5/timelock/pkg/tlock"
)

// FuzzDeserialize checks that arbitrary input never panics the decoder
// and that decoding either fails cleanly or re-encodes to the same
// bytes.
func FuzzDeserialize(f *testing.F) {
	e := engine.NewQuickNet()

	beacon, err := testutil.NewTestBeacon([]byte("fuzz beacon"))
	if err != nil {
		f.Fatal(err)
	}
	ct, err := tlock.Tle(e, encryption.NewAESGCM(), beacon.PublicKey(), []byte("seed corpus"), drand.RoundIdentity(1), rand.Reader)
	if err != nil {
		f.Fatal(err)
	}
	valid, err := ct.Serialize(e)
	if err != nil {
		f.Fatal(err)
	}

	f.Add(valid)
	f.Add([]byte{})
	f.Add(make([]byte, 220))
	f.Add(valid[:len(valid)-1])

	f.Fuzz(func(t *testing.T, data []byte) {
		decoded, err := tlock.Deserialize(e, data)
		if err != nil {
			require.ErrorIs(t, err, tlock.ErrSerialization)
			return
		}

		reencoded, err := decoded.Serialize(e)
		require.NoError(t, err)
		require.Equal(t, data, reencoded)
	})
}
