// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"testing"

	"github.com/nicolafiorillo/bitcoinrules/chaincfg"
	"github.com/stretchr/testify/require"
)

func TestAddressPubKeyHashRoundTrip(t *testing.T) {
	hash := make([]byte, 20)
	for i := range hash {
		hash[i] = byte(i)
	}

	addr, err := NewAddressPubKeyHash(hash, &chaincfg.MainNetParams)
	require.NoError(t, err)

	encoded := addr.EncodeAddress()
	decoded, err := DecodeAddress(encoded, &chaincfg.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, addr.Hash160(), decoded.Hash160())
}

func TestDecodeAddressRejectsWrongNetwork(t *testing.T) {
	hash := make([]byte, 20)
	addr, err := NewAddressPubKeyHash(hash, &chaincfg.MainNetParams)
	require.NoError(t, err)

	_, err = DecodeAddress(addr.EncodeAddress(), &chaincfg.TestNet3Params)
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestNewAddressPubKeyHashRejectsWrongLength(t *testing.T) {
	_, err := NewAddressPubKeyHash([]byte{0x01, 0x02}, &chaincfg.MainNetParams)
	require.Error(t, err)
}
