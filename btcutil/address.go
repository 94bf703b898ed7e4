// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"errors"

	"github.com/nicolafiorillo/bitcoinrules/chaincfg"
	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// ErrInvalidAddress is returned when a string fails to decode as a
// valid P2PKH address for the network it is decoded against.
var ErrInvalidAddress = errors.New("btcutil: invalid address")

// AddressPubKeyHash is a Base58Check-encoded P2PKH address: a
// network's version byte followed by a 20-byte HASH160 pubkey hash.
// This is the only address form implemented -- P2SH and the
// bech32-encoded SegWit witness-program addresses are out of scope
// alongside the rest of this node's SegWit non-goals.
type AddressPubKeyHash struct {
	hash   [20]byte
	params *chaincfg.Params
}

// NewAddressPubKeyHash builds a P2PKH address from a 20-byte pubkey
// hash for the given network.
func NewAddressPubKeyHash(pkHash []byte, params *chaincfg.Params) (*AddressPubKeyHash, error) {
	if len(pkHash) != 20 {
		return nil, errors.New("btcutil: pubkey hash must be 20 bytes")
	}
	a := &AddressPubKeyHash{params: params}
	copy(a.hash[:], pkHash)
	return a, nil
}

// DecodeAddress parses a Base58Check address string against the given
// network's P2PKH version byte.
func DecodeAddress(addr string, params *chaincfg.Params) (*AddressPubKeyHash, error) {
	version, payload, err := Base58CheckDecode(addr)
	if err != nil {
		return nil, ErrInvalidAddress
	}
	if version != params.PubKeyHashAddrID || len(payload) != 20 {
		return nil, ErrInvalidAddress
	}
	return NewAddressPubKeyHash(payload, params)
}

// EncodeAddress renders the address in its Base58Check string form.
func (a *AddressPubKeyHash) EncodeAddress() string {
	return Base58CheckEncode(a.params.PubKeyHashAddrID, a.hash[:])
}

// Hash160 returns the 20-byte pubkey hash the address encodes.
func (a *AddressPubKeyHash) Hash160() [20]byte { return a.hash }

func (a *AddressPubKeyHash) String() string { return a.EncodeAddress() }

// HashPubKey computes the HASH160 of a SEC-encoded public key, the
// quantity a P2PKH address and scriptPubKey both commit to.
func HashPubKey(pubKey []byte) []byte {
	return chainhash.Hash160(pubKey)
}
