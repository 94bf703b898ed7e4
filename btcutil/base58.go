// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package btcutil collects the address and key encodings built on top
// of the chain and script primitives: Base58Check, P2PKH addresses,
// and WIF-encoded private keys.
package btcutil

import (
	"math/big"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

var base58Index = func() map[byte]int64 {
	m := make(map[byte]int64, len(base58Alphabet))
	for i := 0; i < len(base58Alphabet); i++ {
		m[base58Alphabet[i]] = int64(i)
	}
	return m
}()

// Base58Encode renders b in Bitcoin's Base58 alphabet. Each leading
// zero byte becomes a leading '1', since zero has no representation in
// a positional base-58 number.
func Base58Encode(b []byte) string {
	zeroes := 0
	for zeroes < len(b) && b[zeroes] == 0 {
		zeroes++
	}

	num := new(big.Int).SetBytes(b)
	base := big.NewInt(58)
	mod := new(big.Int)

	var digits []byte
	for num.Sign() > 0 {
		num.DivMod(num, base, mod)
		digits = append(digits, base58Alphabet[mod.Int64()])
	}

	out := make([]byte, 0, zeroes+len(digits))
	for i := 0; i < zeroes; i++ {
		out = append(out, '1')
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, digits[i])
	}
	return string(out)
}

// ErrInvalidBase58Char is returned when decoding a string containing a
// byte outside Bitcoin's 58-character alphabet.
var ErrInvalidBase58Char = errInvalidBase58Char{}

type errInvalidBase58Char struct{}

func (errInvalidBase58Char) Error() string { return "btcutil: invalid base58 character" }

// Base58Decode is the inverse of Base58Encode. Leading '1' characters
// decode back to leading zero bytes.
func Base58Decode(s string) ([]byte, error) {
	ones := 0
	for ones < len(s) && s[ones] == '1' {
		ones++
	}

	num := new(big.Int)
	base := big.NewInt(58)
	for i := 0; i < len(s); i++ {
		digit, ok := base58Index[s[i]]
		if !ok {
			return nil, ErrInvalidBase58Char
		}
		num.Mul(num, base)
		num.Add(num, big.NewInt(digit))
	}

	decoded := num.Bytes()
	out := make([]byte, ones+len(decoded))
	copy(out[ones:], decoded)
	return out, nil
}

const checksumLength = 4

// ErrChecksumMismatch is returned when a Base58Check-decoded payload's
// trailing 4 bytes don't match HASH256 of the payload that precedes
// them.
var ErrChecksumMismatch = errChecksumMismatch{}

type errChecksumMismatch struct{}

func (errChecksumMismatch) Error() string { return "btcutil: base58check checksum mismatch" }

// ErrInvalidFormat is returned when a Base58Check-decoded payload is
// too short to contain a checksum.
var ErrInvalidFormat = errInvalidFormat{}

type errInvalidFormat struct{}

func (errInvalidFormat) Error() string { return "btcutil: base58check payload too short" }

// Base58CheckEncode appends a 4-byte HASH256 checksum to version||payload
// and Base58-encodes the result.
func Base58CheckEncode(version byte, payload []byte) string {
	b := make([]byte, 0, 1+len(payload)+checksumLength)
	b = append(b, version)
	b = append(b, payload...)

	checksum := chainhash.DoubleHashB(b)
	b = append(b, checksum[:checksumLength]...)

	return Base58Encode(b)
}

// Base58CheckDecode decodes a Base58Check string, verifies its
// checksum, and returns the version byte and payload separately.
func Base58CheckDecode(s string) (version byte, payload []byte, err error) {
	decoded, err := Base58Decode(s)
	if err != nil {
		return 0, nil, err
	}
	if len(decoded) < 1+checksumLength {
		return 0, nil, ErrInvalidFormat
	}

	body := decoded[:len(decoded)-checksumLength]
	checksum := decoded[len(decoded)-checksumLength:]

	want := chainhash.DoubleHashB(body)
	for i := 0; i < checksumLength; i++ {
		if checksum[i] != want[i] {
			return 0, nil, ErrChecksumMismatch
		}
	}

	return body[0], body[1:], nil
}
