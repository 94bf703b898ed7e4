package chainhash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDoubleHashKnownVector(t *testing.T) {
	// HASH256("") -- double SHA256 of the empty string.
	got := DoubleHashB(nil)
	require.Equal(t, "5df6e0e2761359d30a8275058e299fcc0381534545f55cf43e41983f5d4c9456", hex.EncodeToString(got))
}

func TestHash160KnownVector(t *testing.T) {
	// HASH160 of the SEC-compressed generator-point public key used widely
	// as a test vector across the Bitcoin ecosystem.
	pub, err := hex.DecodeString("0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798")
	require.NoError(t, err)
	got := Hash160(pub)
	require.Equal(t, "751e76e8199196d454941c45d1b3a323f1433bd6", hex.EncodeToString(got))
}

func TestHashStringRoundTrip(t *testing.T) {
	id := "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
	h, err := NewHashFromStr(id)
	require.NoError(t, err)
	require.Equal(t, id, h.String())
}

func TestHashSetBytesLengthCheck(t *testing.T) {
	var h Hash
	require.Error(t, h.SetBytes([]byte{1, 2, 3}))
	require.NoError(t, h.SetBytes(make([]byte, HashSize)))
}
