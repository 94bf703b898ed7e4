// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/nicolafiorillo/bitcoinrules/chain"
	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

func mustHash(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return *h
}

// genesisHeader is the first header of the main network.
var genesisHeader = chain.Header{
	Version:       1,
	PreviousBlock: chainhash.Hash{},
	MerkleRoot:    mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
	Timestamp:     1231006505,
	Bits:          0x1d00ffff,
	Nonce:         2083236893,
}

// testNet3GenesisHeader is the first header of the test network
// (version 3); it shares the main network's genesis merkle root but has
// its own timestamp and nonce.
var testNet3GenesisHeader = chain.Header{
	Version:       1,
	PreviousBlock: chainhash.Hash{},
	MerkleRoot:    mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
	Timestamp:     1296688602,
	Bits:          0x1d00ffff,
	Nonce:         414098458,
}

// testNetGenesisHeader is the first header of the original regression
// test network; its fields are the same as testNet3GenesisHeader's.
var testNetGenesisHeader = chain.Header{
	Version:       1,
	PreviousBlock: chainhash.Hash{},
	MerkleRoot:    mustHash("4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"),
	Timestamp:     1296688602,
	Bits:          0x1d00ffff,
	Nonce:         414098458,
}
