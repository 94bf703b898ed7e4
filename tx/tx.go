// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package tx implements legacy (non-SegWit) Bitcoin transactions: the
// wire codec, SIGHASH_ALL signature-hash derivation, fee computation
// and per-input script verification.
package tx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
	"github.com/nicolafiorillo/bitcoinrules/wire"
)

// ErrTruncatedTx is returned when a transaction buffer ends before
// every field its counts promised has been read.
var ErrTruncatedTx = errors.New("tx: truncated transaction")

// TxIn is one transaction input: a reference to a previous output,
// the script that spends it, and the sequence number.
type TxIn struct {
	PreviousTxID  chainhash.Hash
	PreviousIndex uint32
	ScriptSig     []byte
	Sequence      uint32
}

// FinalSequence marks an input as final: once every input carries it,
// the locktime no longer holds the transaction back.
const FinalSequence = 0xffffffff

// TxOut is one transaction output: an amount in satoshis and the
// locking script that must be satisfied to spend it.
type TxOut struct {
	Amount       uint64
	ScriptPubKey []byte
}

// Tx is a legacy transaction. Network is carried only for rendering
// addresses derived from the transaction's scripts -- it plays no
// part in serialization or in the transaction's identity.
type Tx struct {
	Version  uint32
	TxIn     []TxIn
	TxOut    []TxOut
	LockTime uint32
	Network  wire.BitcoinNet
}

// Serialize renders the transaction in its legacy wire form:
// version ‖ varint(len(TxIn)) ‖ inputs ‖ varint(len(TxOut)) ‖ outputs ‖ locktime.
func (t *Tx) Serialize() []byte {
	var buf []byte

	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], t.Version)
	buf = append(buf, v[:]...)

	buf = append(buf, wire.VarIntEncode(uint64(len(t.TxIn)))...)
	for i := range t.TxIn {
		buf = append(buf, t.TxIn[i].serialize()...)
	}

	buf = append(buf, wire.VarIntEncode(uint64(len(t.TxOut)))...)
	for i := range t.TxOut {
		buf = append(buf, t.TxOut[i].serialize()...)
	}

	var lt [4]byte
	binary.LittleEndian.PutUint32(lt[:], t.LockTime)
	buf = append(buf, lt[:]...)

	return buf
}

func (in *TxIn) serialize() []byte {
	var buf []byte
	buf = append(buf, in.PreviousTxID[:]...)

	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], in.PreviousIndex)
	buf = append(buf, idx[:]...)

	buf = append(buf, wire.VarIntEncode(uint64(len(in.ScriptSig)))...)
	buf = append(buf, in.ScriptSig...)

	var seq [4]byte
	binary.LittleEndian.PutUint32(seq[:], in.Sequence)
	buf = append(buf, seq[:]...)

	return buf
}

func (out *TxOut) serialize() []byte {
	var buf []byte

	var amt [8]byte
	binary.LittleEndian.PutUint64(amt[:], out.Amount)
	buf = append(buf, amt[:]...)

	buf = append(buf, wire.VarIntEncode(uint64(len(out.ScriptPubKey)))...)
	buf = append(buf, out.ScriptPubKey...)

	return buf
}

// Deserialize decodes a legacy transaction from buf, tagging the
// result with network for later address display.
func Deserialize(buf []byte, network wire.BitcoinNet) (*Tx, error) {
	if len(buf) < 4+1+4+1 {
		return nil, ErrTruncatedTx
	}

	cursor := 0
	version := binary.LittleEndian.Uint32(buf[cursor : cursor+4])
	cursor += 4

	inCount, n, err := wire.VarIntDecode(buf, cursor)
	if err != nil {
		return nil, ErrTruncatedTx
	}
	cursor += n

	ins := make([]TxIn, inCount)
	for i := range ins {
		if cursor+32+4+1 > len(buf) {
			return nil, ErrTruncatedTx
		}
		copy(ins[i].PreviousTxID[:], buf[cursor:cursor+32])
		cursor += 32

		ins[i].PreviousIndex = binary.LittleEndian.Uint32(buf[cursor : cursor+4])
		cursor += 4

		sigLen, n, err := wire.VarIntDecode(buf, cursor)
		if err != nil {
			return nil, ErrTruncatedTx
		}
		cursor += n

		end := cursor + int(sigLen)
		if end+4 > len(buf) {
			return nil, ErrTruncatedTx
		}
		ins[i].ScriptSig = append([]byte(nil), buf[cursor:end]...)
		cursor = end

		ins[i].Sequence = binary.LittleEndian.Uint32(buf[cursor : cursor+4])
		cursor += 4
	}

	outCount, n, err := wire.VarIntDecode(buf, cursor)
	if err != nil {
		return nil, ErrTruncatedTx
	}
	cursor += n

	outs := make([]TxOut, outCount)
	for i := range outs {
		if cursor+8+1 > len(buf) {
			return nil, ErrTruncatedTx
		}
		outs[i].Amount = binary.LittleEndian.Uint64(buf[cursor : cursor+8])
		cursor += 8

		pkLen, n, err := wire.VarIntDecode(buf, cursor)
		if err != nil {
			return nil, ErrTruncatedTx
		}
		cursor += n

		end := cursor + int(pkLen)
		if end > len(buf) {
			return nil, ErrTruncatedTx
		}
		outs[i].ScriptPubKey = append([]byte(nil), buf[cursor:end]...)
		cursor = end
	}

	if cursor+4 > len(buf) {
		return nil, ErrTruncatedTx
	}
	lockTime := binary.LittleEndian.Uint32(buf[cursor : cursor+4])
	cursor += 4

	if cursor != len(buf) {
		return nil, fmt.Errorf("%w: %d bytes unconsumed", ErrTruncatedTx, len(buf)-cursor)
	}

	return &Tx{Version: version, TxIn: ins, TxOut: outs, LockTime: lockTime, Network: network}, nil
}

// Hash returns HASH256(serialize(t)) in its internal little-endian
// byte order.
func (t *Tx) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(t.Serialize())
}

// ID renders the transaction's hash as big-endian, lowercase hex -- a
// transaction id as it appears in block explorers and RPC output.
func (t *Tx) ID() string {
	return strings.ToLower(t.Hash().String())
}

// IsFinal reports whether every input carries FinalSequence, meaning
// the locktime no longer constrains the transaction.
func (t *Tx) IsFinal() bool {
	for i := range t.TxIn {
		if t.TxIn[i].Sequence != FinalSequence {
			return false
		}
	}
	return true
}
