// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tx

import (
	"errors"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
	"github.com/nicolafiorillo/bitcoinrules/txscript"
)

// ErrPreviousOutputNotFound is returned when PreviousOutputLookup can't
// find the output an input claims to spend.
var ErrPreviousOutputNotFound = errors.New("tx: previous output not found")

// ErrNegativeFee is returned when a transaction's outputs would spend
// more than its inputs provide.
var ErrNegativeFee = errors.New("tx: fee is negative")

// ErrInvalidInputScript is returned when an input's combined script
// fails to evaluate to a single truthy element.
var ErrInvalidInputScript = errors.New("tx: input script verification failed")

// PreviousOutputLookup resolves the output a TxIn references. This
// node validates transactions against outputs it already holds; it
// never assembles or validates full blocks (no UTXO set, no coinbase
// maturity), so the lookup is an external collaborator -- typically
// backed by a UTXO index this repository doesn't implement.
type PreviousOutputLookup interface {
	PreviousOutput(txid chainhash.Hash, vout uint32) (*TxOut, error)
}

// VerifyInput checks that input i's scriptSig, combined with the
// script-pubkey of the output it spends, evaluates to valid under
// input i's signature hash.
func (t *Tx) VerifyInput(i int, lookup PreviousOutputLookup) error {
	in := t.TxIn[i]

	prevOut, err := lookup.PreviousOutput(in.PreviousTxID, in.PreviousIndex)
	if err != nil {
		return err
	}
	if prevOut == nil {
		return ErrPreviousOutputNotFound
	}

	combined := append(append([]byte(nil), in.ScriptSig...), prevOut.ScriptPubKey...)
	z := t.SigHash(i, prevOut.ScriptPubKey)

	e, err := txscript.NewEngine(combined, z)
	if err != nil {
		return err
	}
	if err := e.Evaluate(); err != nil {
		return ErrInvalidInputScript
	}
	if !e.IsValid() {
		return ErrInvalidInputScript
	}
	return nil
}

// Fee computes the sum of referenced input amounts minus the sum of
// output amounts. A negative result means the transaction spends more
// than it is given.
func (t *Tx) Fee(lookup PreviousOutputLookup) (int64, error) {
	var in int64
	for i := range t.TxIn {
		prevOut, err := lookup.PreviousOutput(t.TxIn[i].PreviousTxID, t.TxIn[i].PreviousIndex)
		if err != nil {
			return 0, err
		}
		if prevOut == nil {
			return 0, ErrPreviousOutputNotFound
		}
		in += int64(prevOut.Amount)
	}

	var out int64
	for i := range t.TxOut {
		out += int64(t.TxOut[i].Amount)
	}

	return in - out, nil
}

// Validate runs the two whole-transaction checks this node
// implements: a non-negative fee, and a valid combined script for
// every input. Mempool acceptance policy beyond fee >= 0 is out of
// scope.
func (t *Tx) Validate(lookup PreviousOutputLookup) error {
	fee, err := t.Fee(lookup)
	if err != nil {
		return err
	}
	if fee < 0 {
		return ErrNegativeFee
	}

	for i := range t.TxIn {
		if err := t.VerifyInput(i, lookup); err != nil {
			return err
		}
	}
	return nil
}
