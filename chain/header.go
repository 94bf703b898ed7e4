// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chain implements block-header validation: the 80-byte header
// codec, the compact-bits/256-bit-target conversion, difficulty
// retargeting and the proof-of-work check.
package chain

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// HeaderSize is the fixed wire length of a block header.
const HeaderSize = 80

// Header is an 80-byte Bitcoin block header. It is a value object:
// immutable once constructed, with its hash serving as identity.
type Header struct {
	Version       uint32
	PreviousBlock chainhash.Hash
	MerkleRoot    chainhash.Hash
	Timestamp     uint32
	Bits          uint32
	Nonce         uint32
}

// Serialize renders the header as exactly 80 little-endian bytes.
func (h *Header) Serialize() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Version)
	copy(buf[4:36], h.PreviousBlock[:])
	copy(buf[36:68], h.MerkleRoot[:])
	binary.LittleEndian.PutUint32(buf[68:72], h.Timestamp)
	binary.LittleEndian.PutUint32(buf[72:76], h.Bits)
	binary.LittleEndian.PutUint32(buf[76:80], h.Nonce)
	return buf
}

// DeserializeHeader decodes an 80-byte block header. The previous-block
// and merkle-root fields are read as raw 32-byte hash values -- they are
// transmitted and stored in the same little-endian byte order a hash
// function produces.
func DeserializeHeader(buf []byte) (*Header, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("chain: header requires %d bytes, got %d", HeaderSize, len(buf))
	}

	h := &Header{
		Version:   binary.LittleEndian.Uint32(buf[0:4]),
		Timestamp: binary.LittleEndian.Uint32(buf[68:72]),
		Bits:      binary.LittleEndian.Uint32(buf[72:76]),
		Nonce:     binary.LittleEndian.Uint32(buf[76:80]),
	}
	copy(h.PreviousBlock[:], buf[4:36])
	copy(h.MerkleRoot[:], buf[36:68])
	return h, nil
}

// Hash returns HASH256(serialize(h)) in its internal little-endian byte
// order.
func (h *Header) Hash() chainhash.Hash {
	return chainhash.DoubleHashH(h.Serialize())
}

// ID renders the header's hash as big-endian, uppercase, zero-padded hex
// -- the form used to identify a block.
func (h *Header) ID() string {
	return strings.ToUpper(h.Hash().String())
}

// idBytesLE returns the header's HASH256, reinterpreted as a
// little-endian 256-bit integer for comparison against a target.
func (h *Header) idBytesLE() []byte {
	sum := h.Hash()
	return sum[:]
}
