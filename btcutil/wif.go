// Copyright (c) 2013-2015 The btcsuite developers
// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"errors"
	"math/big"

	"github.com/nicolafiorillo/bitcoinrules/chaincfg"
	"github.com/nicolafiorillo/bitcoinrules/secp256k1"
)

// compressedFlag is appended after the 32-byte secret when the
// encoded WIF should select a public key's compressed SEC encoding.
const compressedFlag = 0x01

// ErrMalformedWIF is returned when a WIF string's decoded payload
// doesn't have one of the two valid lengths (33 bytes uncompressed,
// 34 with the compression flag byte).
var ErrMalformedWIF = errors.New("btcutil: malformed WIF payload")

// ErrWIFWrongNetwork is returned when a WIF string's version byte
// doesn't match the network it's being decoded against.
var ErrWIFWrongNetwork = errors.New("btcutil: WIF encodes a key for a different network")

// WIF is a private key together with the network and compression
// preference its Base58Check encoding commits to.
type WIF struct {
	PrivKey    *secp256k1.PrivateKey
	Compressed bool
	Params     *chaincfg.Params
}

// NewWIF wraps a private key for encoding against params.
func NewWIF(priv *secp256k1.PrivateKey, compressed bool, params *chaincfg.Params) *WIF {
	return &WIF{PrivKey: priv, Compressed: compressed, Params: params}
}

// String renders the Base58Check-encoded WIF.
func (w *WIF) String() string {
	secret := w.PrivKey.Bytes()
	payload := secret[:]
	if w.Compressed {
		payload = append(append([]byte(nil), secret[:]...), compressedFlag)
	}
	return Base58CheckEncode(w.Params.PrivateKeyID, payload)
}

// DecodeWIF parses a Base58Check-encoded WIF string against params.
func DecodeWIF(s string, params *chaincfg.Params) (*WIF, error) {
	version, payload, err := Base58CheckDecode(s)
	if err != nil {
		return nil, err
	}
	if version != params.PrivateKeyID {
		return nil, ErrWIFWrongNetwork
	}

	var secretBytes []byte
	var compressed bool
	switch len(payload) {
	case 32:
		secretBytes, compressed = payload, false
	case 33:
		if payload[32] != compressedFlag {
			return nil, ErrMalformedWIF
		}
		secretBytes, compressed = payload[:32], true
	default:
		return nil, ErrMalformedWIF
	}

	priv, err := secp256k1.NewPrivateKey(new(big.Int).SetBytes(secretBytes))
	if err != nil {
		return nil, err
	}

	return &WIF{PrivKey: priv, Compressed: compressed, Params: params}, nil
}
