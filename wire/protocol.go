// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ProtocolVersion is the protocol version this package advertises in
	// its version message.
	ProtocolVersion uint32 = 70016

	// BIP0031Version is the protocol version after which a pong message
	// and nonce field in ping were added.
	BIP0031Version uint32 = 60000

	// FeeFilterVersion is the protocol version which added the feefilter
	// message.
	FeeFilterVersion uint32 = 70013

	// AddrV2Version is the protocol version which added the sendaddrv2
	// handshake message.
	AddrV2Version uint32 = 70016
)

// ServiceFlag identifies services supported by a bitcoin peer.
type ServiceFlag uint64

const (
	// SFNodeNetwork indicates the peer is a full node that can serve the
	// complete block chain.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO indicates the peer supports the getutxos/utxos
	// commands (BIP0064).
	SFNodeGetUTXO

	// SFNodeBloom indicates the peer supports bloom filtering.
	SFNodeBloom

	// SFNodeWitness indicates the peer supports SegWit blocks and
	// transactions. Not exercised by this node -- SegWit validation is
	// out of scope -- and not advertised in its version message, which
	// offers SFNodeNetwork only; it is defined to name remote peers' bits.
	SFNodeWitness
)

var sfStrings = map[ServiceFlag]string{
	SFNodeNetwork: "SFNodeNetwork",
	SFNodeGetUTXO: "SFNodeGetUTXO",
	SFNodeBloom:   "SFNodeBloom",
	SFNodeWitness: "SFNodeWitness",
}

var orderedSFStrings = []ServiceFlag{
	SFNodeNetwork,
	SFNodeGetUTXO,
	SFNodeBloom,
	SFNodeWitness,
}

// HasFlag reports whether f has the given service flag set.
func (f ServiceFlag) HasFlag(s ServiceFlag) bool {
	return f&s == s
}

// String returns the ServiceFlag in human-readable form.
func (f ServiceFlag) String() string {
	if f == 0 {
		return "0x0"
	}

	s := ""
	for _, flag := range orderedSFStrings {
		if f&flag == flag {
			s += sfStrings[flag] + "|"
			f -= flag
		}
	}

	s = strings.TrimRight(s, "|")
	if f != 0 {
		s += "|0x" + strconv.FormatUint(uint64(f), 16)
	}
	return strings.TrimLeft(s, "|")
}

// BitcoinNet identifies which Bitcoin network a message belongs to. It is
// transmitted little-endian as the first four bytes of every message
// envelope.
type BitcoinNet uint32

const (
	// MainNet is the production Bitcoin network.
	MainNet BitcoinNet = 0xd9b4bef9

	// TestNet is the regression test network.
	TestNet BitcoinNet = 0xdab5bffa

	// TestNet3 is the public test network (version 3).
	TestNet3 BitcoinNet = 0x0709110b
)

var bnStrings = map[BitcoinNet]string{
	MainNet:  "MainNet",
	TestNet:  "TestNet",
	TestNet3: "TestNet3",
}

// String returns the BitcoinNet in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown BitcoinNet (%d)", uint32(n))
}
