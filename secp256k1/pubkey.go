// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"errors"
	"math/big"
)

// PublicKey is a secp256k1 public key: a point on the curve.
type PublicKey struct {
	Point *Point
}

// NewPublicKey wraps a curve point as a public key.
func NewPublicKey(p *Point) *PublicKey {
	return &PublicKey{Point: p}
}

// SerializeUncompressed returns the 65-byte SEC encoding:
// 0x04 || X(32) || Y(32).
func (k *PublicKey) SerializeUncompressed() []byte {
	out := make([]byte, 65)
	out[0] = 0x04
	x := k.Point.X().Bytes()
	y := k.Point.Y().Bytes()
	copy(out[1:33], x[:])
	copy(out[33:65], y[:])
	return out
}

// SerializeCompressed returns the 33-byte SEC encoding: 0x02 || X(32) if Y
// is even, 0x03 || X(32) if Y is odd.
func (k *PublicKey) SerializeCompressed() []byte {
	out := make([]byte, 33)
	if k.Point.Y().IsOdd() {
		out[0] = 0x03
	} else {
		out[0] = 0x02
	}
	x := k.Point.X().Bytes()
	copy(out[1:33], x[:])
	return out
}

// ErrInvalidPubKeyLength is returned when a SEC-encoded public key has
// neither a valid compressed nor uncompressed length.
var ErrInvalidPubKeyLength = errors.New("secp256k1: invalid public key length")

// ErrInvalidPubKeyPrefix is returned when a SEC-encoded key's leading byte
// does not match 0x02, 0x03 or 0x04.
var ErrInvalidPubKeyPrefix = errors.New("secp256k1: invalid public key prefix")

// ErrPointNotOnCurve is returned when a decoded public key does not
// satisfy the curve equation.
var ErrPointNotOnCurve = errors.New("secp256k1: point not on curve")

// ParsePubKey decodes a SEC-encoded public key (compressed or
// uncompressed).
func ParsePubKey(data []byte) (*PublicKey, error) {
	switch {
	case len(data) == 65 && data[0] == 0x04:
		x := NewFieldVal(new(big.Int).SetBytes(data[1:33]))
		y := NewFieldVal(new(big.Int).SetBytes(data[33:65]))
		p, ok := NewPointChecked(x, y)
		if !ok {
			return nil, ErrPointNotOnCurve
		}
		return NewPublicKey(p), nil

	case len(data) == 33 && (data[0] == 0x02 || data[0] == 0x03):
		x := NewFieldVal(new(big.Int).SetBytes(data[1:33]))
		// y^2 = x^3 + 7 (mod P); recover y via y = r^((p+1)/4) mod p,
		// valid because p ≡ 3 (mod 4), then pick the root whose parity
		// matches the prefix byte.
		rhs := x.Mul(x).Mul(x).Add(curveB)
		y := rhs.Sqrt()
		wantOdd := data[0] == 0x03
		if y.IsOdd() != wantOdd {
			y = y.Neg()
		}
		p, ok := NewPointChecked(x, y)
		if !ok {
			return nil, ErrPointNotOnCurve
		}
		return NewPublicKey(p), nil

	case len(data) != 33 && len(data) != 65:
		return nil, ErrInvalidPubKeyLength

	default:
		return nil, ErrInvalidPubKeyPrefix
	}
}
