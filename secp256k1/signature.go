// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"errors"
	"fmt"
	"math/big"
)

// Signature is an ECDSA signature (r, s) over secp256k1.
type Signature struct {
	R, S *big.Int
}

// halfN is N/2, used to enforce the low-s normalization rule.
var halfN = new(big.Int).Rsh(N, 1)

// Sign produces a deterministic ECDSA signature over the message hash z
// (interpreted as a big-endian integer) using priv, per RFC 6979 for the
// nonce and the low-s malleability-avoidance rule: if s > N/2, replace it
// with N-s.
func Sign(priv *PrivateKey, z *big.Int) (*Signature, error) {
	for {
		k := deterministicNonce(priv.D, z)
		r := ScalarBaseMult(k).X().Int()
		r.Mod(r, N)
		if r.Sign() == 0 {
			continue
		}

		kInv := new(big.Int).ModInverse(k, N)
		if kInv == nil {
			continue
		}
		s := new(big.Int).Mul(r, priv.D)
		s.Add(s, z)
		s.Mul(s, kInv)
		s.Mod(s, N)
		if s.Sign() == 0 {
			continue
		}
		if s.Cmp(halfN) > 0 {
			s.Sub(N, s)
		}
		return &Signature{R: r, S: s}, nil
	}
}

// Verify reports whether sig is a valid signature by pub over message
// hash z.
func Verify(pub *PublicKey, z *big.Int, sig *Signature) bool {
	if sig.R.Sign() <= 0 || sig.R.Cmp(N) >= 0 {
		return false
	}
	if sig.S.Sign() <= 0 || sig.S.Cmp(N) >= 0 {
		return false
	}

	sInv := new(big.Int).ModInverse(sig.S, N)
	if sInv == nil {
		return false
	}

	u := new(big.Int).Mul(z, sInv)
	u.Mod(u, N)
	v := new(big.Int).Mul(sig.R, sInv)
	v.Mod(v, N)

	point := ScalarBaseMult(u).Add(pub.Point.ScalarMult(v))
	if point.IsInfinity() {
		return false
	}

	x := point.X().Int()
	x.Mod(x, N)
	return x.Cmp(sig.R) == 0
}

// DER errors, distinguished so callers can report why a signature failed
// to decode rather than just that it did.
var (
	ErrDERTooShort       = errors.New("secp256k1: DER signature too short")
	ErrDERTooLong        = errors.New("secp256k1: DER signature too long")
	ErrDERBadSequence    = errors.New("secp256k1: DER signature missing 0x30 sequence marker")
	ErrDERBadLength      = errors.New("secp256k1: DER signature length does not match payload")
	ErrDERBadIntMarker   = errors.New("secp256k1: DER integer missing 0x02 marker")
	ErrDERBadIntLength   = errors.New("secp256k1: DER integer length out of bounds")
	ErrDERTrailingBytes  = errors.New("secp256k1: DER signature has trailing bytes")
	ErrDERZeroComponent  = errors.New("secp256k1: DER r or s is zero")
)

// Serialize encodes sig as DER: 0x30 len 0x02 rlen r 0x02 slen s, with
// each of r and s trimmed of leading zero bytes and re-padded with a
// single 0x00 if their high bit would otherwise read as negative.
func (sig *Signature) Serialize() []byte {
	rBytes := derEncodeInt(sig.R)
	sBytes := derEncodeInt(sig.S)

	body := make([]byte, 0, 4+len(rBytes)+len(sBytes))
	body = append(body, 0x02, byte(len(rBytes)))
	body = append(body, rBytes...)
	body = append(body, 0x02, byte(len(sBytes)))
	body = append(body, sBytes...)

	out := make([]byte, 0, 2+len(body))
	out = append(out, 0x30, byte(len(body)))
	out = append(out, body...)
	return out
}

func derEncodeInt(n *big.Int) []byte {
	b := n.Bytes()
	if len(b) == 0 {
		b = []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		b = append([]byte{0x00}, b...)
	}
	return b
}

// ParseDERSignature decodes a DER-encoded ECDSA signature, validating the
// overall length (9-73 bytes), both 0x02 integer markers and each
// component's length.
func ParseDERSignature(sig []byte) (*Signature, error) {
	if len(sig) < 9 {
		return nil, ErrDERTooShort
	}
	if len(sig) > 73 {
		return nil, ErrDERTooLong
	}
	if sig[0] != 0x30 {
		return nil, ErrDERBadSequence
	}
	if int(sig[1]) != len(sig)-2 {
		return nil, ErrDERBadLength
	}

	offset := 2
	r, n, err := derReadInt(sig, offset)
	if err != nil {
		return nil, err
	}
	offset += n

	s, n, err := derReadInt(sig, offset)
	if err != nil {
		return nil, err
	}
	offset += n

	if offset != len(sig) {
		return nil, ErrDERTrailingBytes
	}
	if r.Sign() == 0 || s.Sign() == 0 {
		return nil, ErrDERZeroComponent
	}

	return &Signature{R: r, S: s}, nil
}

// derReadInt reads one DER INTEGER starting at offset and returns its
// value plus the number of bytes consumed (marker + length + payload).
func derReadInt(buf []byte, offset int) (*big.Int, int, error) {
	if offset+2 > len(buf) {
		return nil, 0, fmt.Errorf("%w: truncated integer header", ErrDERBadIntLength)
	}
	if buf[offset] != 0x02 {
		return nil, 0, ErrDERBadIntMarker
	}
	length := int(buf[offset+1])
	start := offset + 2
	end := start + length
	if length == 0 || end > len(buf) {
		return nil, 0, ErrDERBadIntLength
	}
	return new(big.Int).SetBytes(buf[start:end]), end - offset, nil
}
