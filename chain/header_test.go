package chain

import (
	"encoding/hex"
	"math/big"
	"strings"
	"testing"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
	"github.com/stretchr/testify/require"
)

func genesisHeader(t *testing.T) *Header {
	t.Helper()
	merkleRoot, err := chainhash.NewHashFromStr("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b")
	require.NoError(t, err)

	return &Header{
		Version:       1,
		PreviousBlock: chainhash.Hash{},
		MerkleRoot:    *merkleRoot,
		Timestamp:     1231006505,
		Bits:          0x1d00ffff,
		Nonce:         2083236893,
	}
}

func TestGenesisHeaderSerialization(t *testing.T) {
	h := genesisHeader(t)
	got := strings.ToUpper(hex.EncodeToString(h.Serialize()))
	want := "0100000000000000000000000000000000000000000000000000000000000000000000003BA3EDFD7A7B12B27AC72C3E67768F617FC81BC3888A51323A9FB8AA4B1E5E4A29AB5F49FFFF001D1DAC2B7C"
	require.Equal(t, want, got)
	require.Len(t, h.Serialize(), HeaderSize)

	require.Equal(t, "000000000019D6689C085AE165831E934FF763AE46A2A6C172B3F1B60A8CE26F", h.ID())
}

func TestHeaderDeserializeRoundTrip(t *testing.T) {
	h := genesisHeader(t)
	buf := h.Serialize()

	got, err := DeserializeHeader(buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestDeserializeHeaderRejectsShortBuffer(t *testing.T) {
	_, err := DeserializeHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)
}

func TestGenesisProofOfWork(t *testing.T) {
	h := genesisHeader(t)
	target := BitsToTarget(h.Bits)
	require.True(t, CheckProofOfWork(h, target))
}

func TestBitsToTargetKnownValue(t *testing.T) {
	target := BitsToTarget(0x1d00ffff)
	want := new(big.Int)
	want.SetString("00000000ffff0000000000000000000000000000000000000000000000000000", 16)
	require.Equal(t, 0, target.Cmp(want))
	require.InDelta(t, 1.0, Difficulty(target), 4e-16)
}

func TestTargetToBitsRoundTrip(t *testing.T) {
	for _, bits := range []uint32{0x1d00ffff, 0x1b0404cb, 0x1d00d86a} {
		target := BitsToTarget(bits)
		require.Equal(t, bits, TargetToBits(target))
	}
}

func TestAdjustTargetKnownHeaderPair(t *testing.T) {
	firstBuf, err := hex.DecodeString("00000020fdf740b0e49cf75bb3d5168fb3586f7613dcc5cd89675b0100000000000000002e37b144c0baced07eb7e7b64da916cd3121f2427005551aeb0ec6a6402ac7d7f0e4235954d801187f5da9f5")
	require.NoError(t, err)
	lastBuf, err := hex.DecodeString("000000201ecd89664fd205a37566e694269ed76e425803003628ab010000000000000000bfcade29d080d9aae8fd461254b041805ae442749f2a40100440fc0e3d5868e55019345954d80118a1721b2e")
	require.NoError(t, err)

	first, err := DeserializeHeader(firstBuf)
	require.NoError(t, err)
	last, err := DeserializeHeader(lastBuf)
	require.NoError(t, err)

	newTarget := AdjustTarget(first, last)
	require.Equal(t, "19EAFC50672894AB6CD8EFB11D33F5617839A5BC7DEA00C", strings.ToUpper(newTarget.Text(16)))
}
