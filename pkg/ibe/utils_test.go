package ibe

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ideal-lab5/timelock/pkg/engine"
)

func Test_Sha256(t *testing.T) {
	expected, err := hex.DecodeString("9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08")
	require.NoError(t, err)
	require.Equal(t, expected, Sha256([]byte("test")))
}

func Test_H3_Deterministic(t *testing.T) {
	e := engine.NewQuickNet()

	sigma := bytes.Repeat([]byte{0x01}, 32)
	message := bytes.Repeat([]byte{0x02}, 32)

	a := H3(e, sigma, message)
	b := H3(e, sigma, message)
	require.Equal(t, a.Bytes(), b.Bytes())

	// A different message must produce a different scalar
	other := H3(e, sigma, bytes.Repeat([]byte{0x03}, 32))
	require.NotEqual(t, a.Bytes(), other.Bytes())
}

func Test_H3_SplitPointIrrelevant(t *testing.T) {
	// H3 hashes the concatenation, so moving bytes across the
	// sigma/message boundary with the same total input changes nothing
	e := engine.NewQuickNet()
	a := H3(e, []byte("abc"), []byte("def"))
	b := H3(e, []byte("abcd"), []byte("ef"))
	require.Equal(t, a.Bytes(), b.Bytes())
}

func Test_H4_TruncatesToInputLength(t *testing.T) {
	sigma := bytes.Repeat([]byte{0xAB}, 32)
	mask := H4(sigma)
	require.Len(t, mask, 32)
	require.Equal(t, Sha256(sigma), mask)

	short := []byte{1, 2, 3, 4}
	require.Len(t, H4(short), 4)
	require.Equal(t, Sha256(short)[:4], H4(short))
}

func Test_XOR(t *testing.T) {
	tests := []struct {
		name string
		a    []byte
		b    []byte
		ok   bool
	}{
		{
			name: "exact width",
			a:    bytes.Repeat([]byte{0xFF}, 32),
			b:    bytes.Repeat([]byte{0x0F}, 32),
			ok:   true,
		},
		{
			name: "longer inputs use the first 32 bytes",
			a:    bytes.Repeat([]byte{0xAA}, 64),
			b:    bytes.Repeat([]byte{0x55}, 48),
			ok:   true,
		},
		{
			name: "short left input",
			a:    bytes.Repeat([]byte{0xFF}, 31),
			b:    bytes.Repeat([]byte{0x0F}, 32),
			ok:   false,
		},
		{
			name: "short right input",
			a:    bytes.Repeat([]byte{0xFF}, 32),
			b:    nil,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := XOR(tt.a, tt.b)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidLength)
				return
			}
			require.NoError(t, err)
			// The chunked implementation must match plain byte XOR
			for i := 0; i < HashLength; i++ {
				require.Equal(t, tt.a[i]^tt.b[i], result[i])
			}
		})
	}
}

func Test_XOR_Involution(t *testing.T) {
	a := Sha256([]byte("left"))
	b := Sha256([]byte("right"))

	masked, err := XOR(a, b)
	require.NoError(t, err)
	unmasked, err := XOR(masked[:], b)
	require.NoError(t, err)
	require.Equal(t, a, unmasked[:])
}
