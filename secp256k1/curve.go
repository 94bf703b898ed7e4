// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/big"

// secp256k1 curve parameters: y^2 = x^3 + a*x + b (mod P), with a = 0,
// b = 7, generator G and group order N.
var (
	curveA = NewFieldValFromUint64(0)
	curveB = NewFieldValFromUint64(7)

	// N is the order of the secp256k1 group.
	N = func() *big.Int {
		n, ok := new(big.Int).SetString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141", 16)
		if !ok {
			panic("secp256k1: invalid group order constant")
		}
		return n
	}()

	gx = func() *FieldVal {
		x, _ := new(big.Int).SetString("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798", 16)
		return NewFieldVal(x)
	}()
	gy = func() *FieldVal {
		y, _ := new(big.Int).SetString("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8", 16)
		return NewFieldVal(y)
	}()

	// G is the secp256k1 base point.
	G = &Point{x: gx, y: gy, infinity: false}
)

// Point is an affine point on the secp256k1 curve, or the point at
// infinity (the additive identity).
type Point struct {
	x, y     *FieldVal
	infinity bool
}

// Infinity is the secp256k1 point at infinity.
var Infinity = &Point{infinity: true}

// NewPoint constructs the affine point (x, y) without checking it lies on
// the curve; callers that parse untrusted input should use
// NewPointChecked.
func NewPoint(x, y *FieldVal) *Point {
	return &Point{x: x, y: y}
}

// NewPointChecked constructs (x, y) after verifying it satisfies
// y^2 = x^3 + 7 (mod P).
func NewPointChecked(x, y *FieldVal) (*Point, bool) {
	lhs := y.Mul(y)
	rhs := x.Mul(x).Mul(x).Add(curveB)
	if !lhs.Equal(rhs) {
		return nil, false
	}
	return NewPoint(x, y), true
}

// X returns the point's x-coordinate. Panics for the point at infinity.
func (p *Point) X() *FieldVal {
	if p.infinity {
		panic("secp256k1: point at infinity has no x-coordinate")
	}
	return p.x
}

// Y returns the point's y-coordinate. Panics for the point at infinity.
func (p *Point) Y() *FieldVal {
	if p.infinity {
		panic("secp256k1: point at infinity has no y-coordinate")
	}
	return p.y
}

// IsInfinity reports whether p is the identity element.
func (p *Point) IsInfinity() bool {
	return p.infinity
}

// Equal reports whether p and other are the same point.
func (p *Point) Equal(other *Point) bool {
	if p.infinity || other.infinity {
		return p.infinity == other.infinity
	}
	return p.x.Equal(other.x) && p.y.Equal(other.y)
}

// Neg returns -p, the point with the same x and the negated y.
func (p *Point) Neg() *Point {
	if p.infinity {
		return Infinity
	}
	return NewPoint(p.x, p.y.Neg())
}

// Add returns p + q. It handles identity, mutual negation, the
// distinct-x secant case and the doubling (tangent) case. Point carries
// no curve parameters: every point is taken to be on secp256k1, and Add
// does not check curve membership.
func (p *Point) Add(q *Point) *Point {
	if p.infinity {
		return q
	}
	if q.infinity {
		return p
	}
	if p.x.Equal(q.x) && !p.y.Equal(q.y) {
		// p == -q
		return Infinity
	}

	var slope *FieldVal
	if p.x.Equal(q.x) {
		if p.y.IsZero() {
			return Infinity
		}
		// Tangent slope: (3x^2 + a) / 2y, a = 0 on secp256k1.
		three := NewFieldValFromUint64(3)
		two := NewFieldValFromUint64(2)
		num := three.Mul(p.x).Mul(p.x)
		den := two.Mul(p.y)
		slope = num.Div(den)
	} else {
		// Secant slope: (y2 - y1) / (x2 - x1).
		num := q.y.Sub(p.y)
		den := q.x.Sub(p.x)
		slope = num.Div(den)
	}

	x3 := slope.Mul(slope).Sub(p.x).Sub(q.x)
	y3 := slope.Mul(p.x.Sub(x3)).Sub(p.y)
	return NewPoint(x3, y3)
}

// Double returns p + p.
func (p *Point) Double() *Point {
	return p.Add(p)
}

// ScalarMult returns k*p using double-and-add, with k first reduced
// modulo the group order N.
func (p *Point) ScalarMult(k *big.Int) *Point {
	k = new(big.Int).Mod(k, N)
	result := Infinity
	addend := p

	for i := 0; i < k.BitLen(); i++ {
		if k.Bit(i) == 1 {
			result = result.Add(addend)
		}
		addend = addend.Double()
	}
	return result
}

// ScalarBaseMult returns k*G.
func ScalarBaseMult(k *big.Int) *Point {
	return G.ScalarMult(k)
}
