// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package btcutil

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBase58EncodeKnownVectors(t *testing.T) {
	cases := []struct{ hexIn, want string }{
		{"7c076ff316692a3d7eb3c3bb0f8b1488cf72e1afcd929e29307032997a838a3d", "9MA8fRQrT4u8Zj8ZRd6MAiiyaxb2Y1CMpvVkHQu5hVM6"},
		{"eff69ef2b1bd93a66ed5219add4fb51e11a840f404876325a1e8ffe0529a2c", "4fE3H2E6XMp4SsxtwinF7w9a34ooUrwWe4WsW1458Pd"},
	}
	for _, c := range cases {
		b, err := hex.DecodeString(c.hexIn)
		require.NoError(t, err)
		require.Equal(t, c.want, Base58Encode(b))
	}
}

func TestBase58DecodeRoundTrip(t *testing.T) {
	b, err := hex.DecodeString("c7207fee197d27c618aea621406f6bf5ef6fca38681d82b2f06fddbdce6feab6")
	require.NoError(t, err)

	enc := Base58Encode(b)
	dec, err := Base58Decode(enc)
	require.NoError(t, err)
	require.Equal(t, b, dec)
}

func TestBase58CheckRoundTrip(t *testing.T) {
	payload := []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee}
	enc := Base58CheckEncode(0x00, payload)

	version, decoded, err := Base58CheckDecode(enc)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), version)
	require.Equal(t, payload, decoded)
}

func TestBase58CheckDecodeRejectsTamperedChecksum(t *testing.T) {
	enc := Base58CheckEncode(0x00, []byte{0x01, 0x02, 0x03})
	tampered := enc[:len(enc)-1] + "z"

	_, _, err := Base58CheckDecode(tampered)
	require.Error(t, err)
}

func TestBase58DecodeRejectsInvalidChar(t *testing.T) {
	_, err := Base58Decode("0OIl")
	require.ErrorIs(t, err, ErrInvalidBase58Char)
}
