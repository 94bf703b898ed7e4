// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"errors"
	"math/big"
)

// PrivateKey is a secp256k1 private scalar in [1, N-1].
type PrivateKey struct {
	D *big.Int
}

// ErrPrivateKeyOutOfRange is returned when a scalar isn't in [1, N-1].
var ErrPrivateKeyOutOfRange = errors.New("secp256k1: private key out of range")

// NewPrivateKey validates and wraps a private scalar.
func NewPrivateKey(d *big.Int) (*PrivateKey, error) {
	if d.Sign() <= 0 || d.Cmp(N) >= 0 {
		return nil, ErrPrivateKeyOutOfRange
	}
	return &PrivateKey{D: new(big.Int).Set(d)}, nil
}

// PubKey derives the public point k*G for this private scalar.
func (k *PrivateKey) PubKey() *PublicKey {
	return NewPublicKey(ScalarBaseMult(k.D))
}

// Bytes returns the private scalar as 32 big-endian bytes.
func (k *PrivateKey) Bytes() [32]byte {
	var out [32]byte
	b := k.D.Bytes()
	copy(out[32-len(b):], b)
	return out
}
