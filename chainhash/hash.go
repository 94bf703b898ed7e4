// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainhash implements the hash primitives used throughout the
// node: SHA256, HASH256 (SHA256 composed with itself), HASH160
// (RIPEMD160 composed with SHA256), SHA1 and HMAC-SHA256.
package chainhash

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the number of bytes in a double-SHA256-sized hash.
const HashSize = 32

// MaxHashStringSize is the maximum length of a Hash hex string.
const MaxHashStringSize = HashSize * 2

// ErrHashStrSize describes an error raised when converting an invalid hash
// string to a Hash.
var ErrHashStrSize = fmt.Errorf("max hash string length is %v bytes", MaxHashStringSize)

// Hash is a 32-byte array used to represent block and transaction hashes.
// Internally the bytes are stored in the order produced by a hash
// function (little-endian, matching how they arrive and are transmitted
// on the wire); String renders them big-endian, as Bitcoin convention
// displays hashes.
type Hash [HashSize]byte

// String returns the Hash as the big-endian, hex-encoded string used for
// display (block explorers, logs) -- the reverse of the internal
// little-endian byte order.
func (h Hash) String() string {
	var reversed [HashSize]byte
	for i := 0; i < HashSize/2; i++ {
		reversed[i], reversed[HashSize-1-i] = h[HashSize-1-i], h[i]
	}
	return hex.EncodeToString(reversed[:])
}

// CloneBytes returns a copy of the bytes backing the Hash, in their
// internal (little-endian) order.
func (h *Hash) CloneBytes() []byte {
	b := make([]byte, HashSize)
	copy(b, h[:])
	return b
}

// SetBytes sets the bytes backing h. An error is returned if the byte
// slice is not exactly HashSize bytes.
func (h *Hash) SetBytes(newHash []byte) error {
	if len(newHash) != HashSize {
		return fmt.Errorf("invalid hash length of %v, want %v", len(newHash), HashSize)
	}
	copy(h[:], newHash)
	return nil
}

// IsEqual returns true if the two hashes are identical. Two nil hashes
// are equal; a nil and a non-nil hash are never equal, even when the
// non-nil one is the zero hash.
func (h *Hash) IsEqual(target *Hash) bool {
	if h == nil && target == nil {
		return true
	}
	if h == nil || target == nil {
		return false
	}
	return *h == *target
}

// NewHash returns a new Hash from a byte slice in internal (little-endian)
// order.
func NewHash(newHash []byte) (*Hash, error) {
	var sh Hash
	if err := sh.SetBytes(newHash); err != nil {
		return nil, err
	}
	return &sh, nil
}

// NewHashFromStr creates a Hash from a big-endian hex string (the display
// form produced by String).
func NewHashFromStr(hash string) (*Hash, error) {
	ret := new(Hash)
	if err := Decode(ret, hash); err != nil {
		return nil, err
	}
	return ret, nil
}

// Decode decodes the big-endian, hex-encoded hash string into dst,
// reversing it into the internal little-endian byte order.
func Decode(dst *Hash, src string) error {
	if len(src) > MaxHashStringSize {
		return ErrHashStrSize
	}

	var srcBytes []byte
	if len(src)%2 == 0 {
		srcBytes = []byte(src)
	} else {
		srcBytes = make([]byte, 1+len(src))
		srcBytes[0] = '0'
		copy(srcBytes[1:], src)
	}

	var reversedHash Hash
	_, err := hex.Decode(reversedHash[HashSize-hex.DecodedLen(len(srcBytes)):], srcBytes)
	if err != nil {
		return err
	}

	for i, b := range reversedHash[:HashSize/2] {
		dst[i], dst[HashSize-1-i] = reversedHash[HashSize-1-i], b
	}
	return nil
}
