// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"github.com/nicolafiorillo/bitcoinrules/chain"
	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// HeaderRepository is the persistence contract the peer package
// depends on: a tabular header store keyed on id, fed by CreateHeaders
// batches the node expects to be handled idempotently on retry. This
// package depends only on the interface; storage/leveldb supplies the
// one concrete implementation shipped.
type HeaderRepository interface {
	// CreateHeaders persists headers, tolerating re-insertion of a
	// header it has already stored (keyed on hash).
	CreateHeaders(headers []*chain.Header) error
	// Tip returns the hash of the most recently persisted header, and
	// false if the repository is empty.
	Tip() (chainhash.Hash, bool, error)
}
