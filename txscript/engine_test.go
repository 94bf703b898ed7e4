// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestCheckSigKnownVector reproduces a known-good P2PK evaluation: a
// signature script pushing a DER signature followed by a pubkey script
// of `<pubkey> OP_CHECKSIG`, run against a fixed sighash integer.
func TestCheckSigKnownVector(t *testing.T) {
	z, ok := new(big.Int).SetString("7C076FF316692A3D7EB3C3BB0F8B1488CF72E1AFCD929E29307032997A838A3D", 16)
	require.True(t, ok)

	pubKey := mustHex(t, "04887387e452b8eacc4acfde10d9aaf7f6d9a0f975aabb10d006e4da568744d06c61de6d95231cd89026e286df3b6ae4a894a3378e393e93a0f45b666329a0ae34")
	sig := mustHex(t, "3045022000eff69ef2b1bd93a66ed5219add4fb51e11a840f404876325a1e8ffe0529a2c022100c7207fee197d27c618aea621406f6bf5ef6fca38681d82b2f06fddbdce6feab601")

	pubKeyScript, err := PayToPubKeyScript(pubKey)
	require.NoError(t, err)

	sigScript, err := Serialize([]Token{elementToken(sig)})
	require.NoError(t, err)

	combined := append(append([]byte(nil), sigScript...), pubKeyScript...)

	e, err := NewEngine(combined, z)
	require.NoError(t, err)
	require.NoError(t, e.Evaluate())
	require.True(t, e.IsValid())
}

// TestCheckSigRejectsWrongHash verifies that tampering with the
// sighash integer the signature was made over causes OP_CHECKSIG to
// fail, leaving an empty truthy-less stack result.
func TestCheckSigRejectsWrongHash(t *testing.T) {
	z := big.NewInt(1)
	pubKey := mustHex(t, "04887387e452b8eacc4acfde10d9aaf7f6d9a0f975aabb10d006e4da568744d06c61de6d95231cd89026e286df3b6ae4a894a3378e393e93a0f45b666329a0ae34")
	sig := mustHex(t, "3045022000eff69ef2b1bd93a66ed5219add4fb51e11a840f404876325a1e8ffe0529a2c022100c7207fee197d27c618aea621406f6bf5ef6fca38681d82b2f06fddbdce6feab601")

	pubKeyScript, err := PayToPubKeyScript(pubKey)
	require.NoError(t, err)
	sigScript, err := Serialize([]Token{elementToken(sig)})
	require.NoError(t, err)

	combined := append(append([]byte(nil), sigScript...), pubKeyScript...)

	e, err := NewEngine(combined, z)
	require.NoError(t, err)
	require.NoError(t, e.Evaluate())
	require.False(t, e.IsValid())
}

// TestPayToPubKeyHashEvaluation builds a full P2PKH scriptSig/scriptPubKey
// pair around the same signature/pubkey vector and checks the DUP
// HASH160 ... EQUALVERIFY CHECKSIG sequence validates.
func TestPayToPubKeyHashEvaluation(t *testing.T) {
	z, ok := new(big.Int).SetString("7C076FF316692A3D7EB3C3BB0F8B1488CF72E1AFCD929E29307032997A838A3D", 16)
	require.True(t, ok)

	pubKey := mustHex(t, "04887387e452b8eacc4acfde10d9aaf7f6d9a0f975aabb10d006e4da568744d06c61de6d95231cd89026e286df3b6ae4a894a3378e393e93a0f45b666329a0ae34")
	sig := mustHex(t, "3045022000eff69ef2b1bd93a66ed5219add4fb51e11a840f404876325a1e8ffe0529a2c022100c7207fee197d27c618aea621406f6bf5ef6fca38681d82b2f06fddbdce6feab601")

	pkHash := chainhash.Hash160(pubKey)

	pubKeyScript, err := PayToPubKeyHashScript(pkHash)
	require.NoError(t, err)
	require.Equal(t, PubKeyHashTy, ClassifyScript(pubKeyScript))

	sigScript, err := Serialize([]Token{elementToken(sig), elementToken(pubKey)})
	require.NoError(t, err)

	combined := append(append([]byte(nil), sigScript...), pubKeyScript...)

	e, err := NewEngine(combined, z)
	require.NoError(t, err)
	require.NoError(t, e.Evaluate())
	require.True(t, e.IsValid())
}

func TestScriptNumRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 127, -127, 128, -128, 255, -255, 256, -256, 32767, -32767} {
		require.Equal(t, n, scriptNumDecode(scriptNumEncode(n)), "round-trip of %d", n)
	}
}

func TestTokenizeRejectsPushData4(t *testing.T) {
	_, err := Tokenize([]byte{OP_PUSHDATA4, 0x01, 0x00, 0x00, 0x00, 0xaa})
	require.Error(t, err)
}

func TestTokenizeSerializeRoundTrip(t *testing.T) {
	script, err := PayToPubKeyHashScript(make([]byte, 20))
	require.NoError(t, err)

	tokens, err := Tokenize(script)
	require.NoError(t, err)

	out, err := Serialize(tokens)
	require.NoError(t, err)
	require.Equal(t, script, out)
}

func TestClassifyScriptVariants(t *testing.T) {
	pkHash := make([]byte, 20)
	p2pkh, err := PayToPubKeyHashScript(pkHash)
	require.NoError(t, err)
	require.Equal(t, PubKeyHashTy, ClassifyScript(p2pkh))

	nullData, err := NullDataScript([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, NullDataTy, ClassifyScript(nullData))

	require.Equal(t, UnknownTy, ClassifyScript([]byte{OP_NOP}))
}

func TestMultiSigScriptClassification(t *testing.T) {
	k1 := make([]byte, 33)
	k2 := make([]byte, 33)
	k1[0], k2[0] = 0x02, 0x03

	script, err := MultiSigScript(1, [][]byte{k1, k2})
	require.NoError(t, err)
	require.Equal(t, MultiSigTy, ClassifyScript(script))
}

func TestConditionalExecution(t *testing.T) {
	tokens := []Token{
		commandToken(OP_1),
		commandToken(OP_IF),
		commandToken(OP_2),
		commandToken(OP_ELSE),
		commandToken(OP_3),
		commandToken(OP_ENDIF),
	}
	script, err := Serialize(tokens)
	require.NoError(t, err)

	e, err := NewEngine(script, big.NewInt(0))
	require.NoError(t, err)
	require.NoError(t, e.Evaluate())
	require.True(t, e.IsValid())
	require.Equal(t, int64(2), scriptNumDecode(e.stack[0]))
}

func TestUnbalancedConditionalRejected(t *testing.T) {
	script, err := Serialize([]Token{commandToken(OP_1), commandToken(OP_IF), commandToken(OP_2)})
	require.NoError(t, err)

	e, err := NewEngine(script, big.NewInt(0))
	require.NoError(t, err)
	require.ErrorIs(t, e.Evaluate(), ErrUnbalancedConditional)
}

// TestOpPick pushes 1 2 3, then PICKs index 2 (0-deep is the top), which
// must duplicate the bottom-most value to the top: 1 2 3 2 PICK -> 1 2 3 1.
func TestOpPick(t *testing.T) {
	script, err := Serialize([]Token{
		commandToken(OP_1), commandToken(OP_2), commandToken(OP_3),
		commandToken(OP_2), commandToken(OP_PICK),
	})
	require.NoError(t, err)

	e, err := NewEngine(script, big.NewInt(0))
	require.NoError(t, err)
	require.NoError(t, e.Evaluate())
	require.Equal(t, []int64{1, 2, 3, 1}, decodeStack(e.stack))
}

// TestOpRoll is the same setup as TestOpPick but ROLL moves the item
// instead of copying it: 1 2 3 2 ROLL -> 2 3 1.
func TestOpRoll(t *testing.T) {
	script, err := Serialize([]Token{
		commandToken(OP_1), commandToken(OP_2), commandToken(OP_3),
		commandToken(OP_2), commandToken(OP_ROLL),
	})
	require.NoError(t, err)

	e, err := NewEngine(script, big.NewInt(0))
	require.NoError(t, err)
	require.NoError(t, e.Evaluate())
	require.Equal(t, []int64{2, 3, 1}, decodeStack(e.stack))
}

// TestOp2Rot pushes six values and 2ROTs them: 1 2 3 4 5 6 2ROT ->
// 3 4 5 6 1 2, moving the third-from-top pair to the top.
func TestOp2Rot(t *testing.T) {
	script, err := Serialize([]Token{
		commandToken(OP_1), commandToken(OP_2), commandToken(OP_3),
		commandToken(OP_4), commandToken(OP_5), commandToken(OP_6),
		commandToken(OP_2ROT),
	})
	require.NoError(t, err)

	e, err := NewEngine(script, big.NewInt(0))
	require.NoError(t, err)
	require.NoError(t, e.Evaluate())
	require.Equal(t, []int64{3, 4, 5, 6, 1, 2}, decodeStack(e.stack))
}

func TestOpPickRejectsOutOfRange(t *testing.T) {
	script, err := Serialize([]Token{
		commandToken(OP_1), commandToken(OP_2), commandToken(OP_PICK),
	})
	require.NoError(t, err)

	e, err := NewEngine(script, big.NewInt(0))
	require.NoError(t, err)
	require.ErrorIs(t, e.Evaluate(), ErrStackUnderflow)
}

func decodeStack(stack [][]byte) []int64 {
	out := make([]int64, len(stack))
	for i, v := range stack {
		out[i] = scriptNumDecode(v)
	}
	return out
}
