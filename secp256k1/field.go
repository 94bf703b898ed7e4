// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package secp256k1 implements the finite-field and elliptic-curve
// arithmetic, SEC point encoding, ECDSA signing/verification (with an
// RFC 6979 deterministic nonce) and DER signature codec this node uses
// to authorize spending Bitcoin outputs.
package secp256k1

import "math/big"

// P is the secp256k1 field prime: 2^256 - 2^32 - 977.
var P = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 256)
	p.Sub(p, new(big.Int).Lsh(big.NewInt(1), 32))
	p.Sub(p, big.NewInt(977))
	return p
}()

// FieldVal is an element of the field modulo P.
type FieldVal struct {
	n *big.Int
}

// NewFieldVal reduces x modulo P and returns the resulting element.
func NewFieldVal(x *big.Int) *FieldVal {
	n := new(big.Int).Mod(x, P)
	return &FieldVal{n: n}
}

// NewFieldValFromUint64 builds a FieldVal from a small unsigned constant.
func NewFieldValFromUint64(x uint64) *FieldVal {
	return NewFieldVal(new(big.Int).SetUint64(x))
}

// Int returns the element's big.Int representation in [0, P).
func (f *FieldVal) Int() *big.Int {
	return new(big.Int).Set(f.n)
}

// Equal reports whether f and other represent the same field element.
func (f *FieldVal) Equal(other *FieldVal) bool {
	return f.n.Cmp(other.n) == 0
}

// IsZero reports whether f is the additive identity.
func (f *FieldVal) IsZero() bool {
	return f.n.Sign() == 0
}

// Add returns f + other mod P.
func (f *FieldVal) Add(other *FieldVal) *FieldVal {
	sum := new(big.Int).Add(f.n, other.n)
	return NewFieldVal(sum)
}

// Sub returns f - other mod P.
func (f *FieldVal) Sub(other *FieldVal) *FieldVal {
	diff := new(big.Int).Sub(f.n, other.n)
	return NewFieldVal(diff)
}

// Mul returns f * other mod P.
func (f *FieldVal) Mul(other *FieldVal) *FieldVal {
	prod := new(big.Int).Mul(f.n, other.n)
	return NewFieldVal(prod)
}

// Neg returns -f mod P.
func (f *FieldVal) Neg() *FieldVal {
	return NewFieldVal(new(big.Int).Neg(f.n))
}

// Pow returns f^e mod P.
func (f *FieldVal) Pow(e *big.Int) *FieldVal {
	return NewFieldVal(new(big.Int).Exp(f.n, e, P))
}

// Inv returns f^-1 mod P via Fermat's little theorem: a^(p-2) = a^-1.
func (f *FieldVal) Inv() *FieldVal {
	exp := new(big.Int).Sub(P, big.NewInt(2))
	return f.Pow(exp)
}

// Div returns f / other mod P.
func (f *FieldVal) Div(other *FieldVal) *FieldVal {
	return f.Mul(other.Inv())
}

// Sqrt returns a square root of f mod P, relying on P ≡ 3 (mod 4):
// r = f^((p+1)/4) is a root whenever f is a quadratic residue. The
// caller is responsible for checking r*r == f if that matters; secp256k1
// SEC decoding only needs *a* root and picks the parity it wants.
func (f *FieldVal) Sqrt() *FieldVal {
	exp := new(big.Int).Add(P, big.NewInt(1))
	exp.Rsh(exp, 2)
	return f.Pow(exp)
}

// IsOdd reports whether the element's canonical integer representation is
// odd -- used to pick the SEC compressed-point prefix byte.
func (f *FieldVal) IsOdd() bool {
	return f.n.Bit(0) == 1
}

// Bytes returns the element as a 32-byte big-endian encoding.
func (f *FieldVal) Bytes() [32]byte {
	var out [32]byte
	b := f.n.Bytes()
	copy(out[32-len(b):], b)
	return out
}
