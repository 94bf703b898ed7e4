// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the chain parameters distinguishing the
// networks a peer can join: the network magic, the genesis header, and
// the address version bytes used for Base58Check encoding.
package chaincfg

import (
	"errors"

	"github.com/nicolafiorillo/bitcoinrules/chain"
	"github.com/nicolafiorillo/bitcoinrules/wire"
)

// ErrUnknownNet is returned when looking up parameters for a network
// this package doesn't define.
var ErrUnknownNet = errors.New("chaincfg: unknown network")

// Params holds the set of parameters a node needs to validate headers
// and render addresses for one network.
//
// Address prefix tables here enumerate only P2PKH version bytes; BIP-16
// P2SH prefixes are not wired in.
type Params struct {
	Name         string
	Net          wire.BitcoinNet
	GenesisBlock *chain.Header

	// PubKeyHashAddrID is the version byte prepended before
	// Base58Check-encoding a HASH160 pubkey hash into a P2PKH address.
	PubKeyHashAddrID byte

	// PrivateKeyID is the version byte prepended before Base58Check
	// encoding a WIF private key.
	PrivateKeyID byte
}

// MainNetParams defines the network parameters for the main network.
var MainNetParams = Params{
	Name:             "mainnet",
	Net:              wire.MainNet,
	GenesisBlock:     &genesisHeader,
	PubKeyHashAddrID: 0x00,
	PrivateKeyID:     0x80,
}

// TestNet3Params defines the network parameters for the test network
// (version 3).
var TestNet3Params = Params{
	Name:             "testnet3",
	Net:              wire.TestNet3,
	GenesisBlock:     &testNet3GenesisHeader,
	PubKeyHashAddrID: 0x6f,
	PrivateKeyID:     0xef,
}

// TestNetParams defines the network parameters for the regression test
// network. It shares its address prefixes with TestNet3 -- Bitcoin
// never gave the original testnet its own -- and uses a genesis header
// with the same values as TestNet3's.
var TestNetParams = Params{
	Name:             "testnet",
	Net:              wire.TestNet,
	GenesisBlock:     &testNetGenesisHeader,
	PubKeyHashAddrID: 0x6f,
	PrivateKeyID:     0xef,
}

var registeredParams = map[wire.BitcoinNet]*Params{
	wire.MainNet:  &MainNetParams,
	wire.TestNet:  &TestNetParams,
	wire.TestNet3: &TestNet3Params,
}

// ParamsForNet looks up the registered Params for a network magic.
func ParamsForNet(net wire.BitcoinNet) (*Params, error) {
	p, ok := registeredParams[net]
	if !ok {
		return nil, ErrUnknownNet
	}
	return p, nil
}
