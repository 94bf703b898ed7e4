// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Sha256 returns the SHA256 hash of data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// DoubleHashB computes HASH256 = SHA256(SHA256(data)) and returns it as a
// byte slice.
func DoubleHashB(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:]
}

// DoubleHashH computes HASH256 = SHA256(SHA256(data)) and returns it as a
// Hash.
func DoubleHashH(data []byte) Hash {
	first := sha256.Sum256(data)
	return Hash(sha256.Sum256(first[:]))
}

// Ripemd160 returns the RIPEMD160 hash of data.
func Ripemd160(data []byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	return h.Sum(nil)
}

// Hash160 computes HASH160 = RIPEMD160(SHA256(data)), the digest Bitcoin
// uses for public-key and script hashes.
func Hash160(data []byte) []byte {
	sum := sha256.Sum256(data)
	return Ripemd160(sum[:])
}

// Sha1 returns the SHA1 hash of data. Used only by the SHA1 script opcode;
// not part of any consensus-critical path.
func Sha1(data []byte) []byte {
	sum := sha1.Sum(data)
	return sum[:]
}

// HmacSha256 computes HMAC-SHA-256(key, data), the building block RFC 6979
// uses to derive deterministic ECDSA nonces.
func HmacSha256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
