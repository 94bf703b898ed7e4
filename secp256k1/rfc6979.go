// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/big"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// deterministicNonce derives the per-signature nonce k from the private
// scalar and message hash z per RFC 6979, using HMAC-SHA-256 as the
// underlying PRF. The same (priv, z) pair always yields the same nonce,
// and no system RNG is used.
func deterministicNonce(priv, z *big.Int) *big.Int {
	privBytes := leftPad32(priv.Bytes())
	zBytes := leftPad32(z.Bytes())

	v := make([]byte, 32)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, 32)

	k = chainhash.HmacSha256(k, append(append(append(append([]byte{}, v...), 0x00), privBytes...), zBytes...))
	v = chainhash.HmacSha256(k, v)
	k = chainhash.HmacSha256(k, append(append(append(append([]byte{}, v...), 0x01), privBytes...), zBytes...))
	v = chainhash.HmacSha256(k, v)

	for {
		v = chainhash.HmacSha256(k, v)
		candidate := new(big.Int).SetBytes(v)
		if candidate.Sign() > 0 && candidate.Cmp(N) < 0 {
			return candidate
		}
		k = chainhash.HmacSha256(k, append(append([]byte{}, v...), 0x00))
		v = chainhash.HmacSha256(k, v)
	}
}

func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}
