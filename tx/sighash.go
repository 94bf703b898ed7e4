// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tx

import (
	"encoding/binary"
	"math/big"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// SigHashAll is the only sighash type this node implements: it commits
// to every input and every output. BIP-143 (SegWit) signature hashing
// and the other legacy sighash flags (NONE, SINGLE, ANYONECANPAY) are
// out of scope.
const SigHashAll uint32 = 0x01

// SigHash computes the legacy SIGHASH_ALL signature hash for input i:
// every input's script is blanked except input i's, which is replaced
// by prevOutScript (the script-pubkey of the output it spends); the
// result is serialized, the 4-byte LE sighash type is appended, and
// HASH256 of that is interpreted as a big-endian integer -- the `z`
// every ECDSA signature in this system signs and verifies against.
func (t *Tx) SigHash(i int, prevOutScript []byte) *big.Int {
	blanked := &Tx{
		Version:  t.Version,
		TxIn:     make([]TxIn, len(t.TxIn)),
		TxOut:    t.TxOut,
		LockTime: t.LockTime,
		Network:  t.Network,
	}

	for j := range t.TxIn {
		blanked.TxIn[j] = TxIn{
			PreviousTxID:  t.TxIn[j].PreviousTxID,
			PreviousIndex: t.TxIn[j].PreviousIndex,
			Sequence:      t.TxIn[j].Sequence,
		}
		if j == i {
			blanked.TxIn[j].ScriptSig = prevOutScript
		}
	}

	serialized := blanked.Serialize()

	var sigHashType [4]byte
	binary.LittleEndian.PutUint32(sigHashType[:], SigHashAll)
	serialized = append(serialized, sigHashType[:]...)

	sum := chainhash.DoubleHashB(serialized)
	return new(big.Int).SetBytes(sum)
}
