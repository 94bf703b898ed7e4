// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"net"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/nicolafiorillo/bitcoinrules/chain"
	"github.com/nicolafiorillo/bitcoinrules/chainhash"
	"github.com/stretchr/testify/require"
)

func TestPingPongKnownVector(t *testing.T) {
	expected := []byte{21, 205, 91, 7, 0, 0, 0, 0}

	ping := &PingPayload{Nonce: 123456789}
	require.Equal(t, expected, ping.Encode())

	decoded, err := DecodePingPayload(expected)
	require.NoError(t, err)
	require.Equal(t, uint64(123456789), decoded.Nonce)

	pong := &PongPayload{Nonce: decoded.Nonce}
	require.Equal(t, expected, pong.Encode())
}

func TestFeeFilterKnownVector(t *testing.T) {
	expected := []byte{21, 205, 91, 7, 0, 0, 0, 0}

	f := &FeeFilterPayload{FeeRate: 123456789}
	require.Equal(t, expected, f.Encode())

	decoded, err := DecodeFeeFilterPayload(expected)
	require.NoError(t, err)
	require.Equal(t, uint64(123456789), decoded.FeeRate)
}

func TestSendCmpctKnownVectors(t *testing.T) {
	s1 := &SendCmpctPayload{Announce: true, Version: 123456789}
	require.Equal(t, []byte{1, 21, 205, 91, 7, 0, 0, 0, 0}, s1.Encode())

	s2 := &SendCmpctPayload{Announce: false, Version: 987654321}
	require.Equal(t, []byte{0, 177, 104, 222, 58, 0, 0, 0, 0}, s2.Encode())

	decoded, err := DecodeSendCmpctPayload([]byte{1, 21, 205, 91, 7, 0, 0, 0, 0})
	require.NoError(t, err)
	require.True(t, decoded.Announce)
	require.Equal(t, uint64(123456789), decoded.Version)
}

func TestVersionPayloadRoundTrip(t *testing.T) {
	addr := NetAddress{Services: SFNodeNetwork, IP: net.ParseIP("127.0.0.1"), Port: 8333}

	v := &VersionPayload{
		ProtocolVersion: ProtocolVersion,
		Services:        SFNodeNetwork,
		Timestamp:       1700000000,
		Receiver:        addr,
		Sender:          addr,
		Nonce:           42,
		UserAgent:       "/bitcoinrules:0.0/",
		StartHeight:     100,
		Relay:           true,
	}

	decoded, err := DecodeVersionPayload(v.Encode())
	require.NoError(t, err)
	require.Equal(t, v.ProtocolVersion, decoded.ProtocolVersion)
	require.Equal(t, v.UserAgent, decoded.UserAgent)
	require.Equal(t, v.StartHeight, decoded.StartHeight)
	require.True(t, decoded.Relay)
	require.Equal(t, v.Nonce, decoded.Nonce)
}

func TestGetHeadersPayloadRoundTrip(t *testing.T) {
	var locator chainhash.Hash
	locator[0] = 0xaa
	var stop chainhash.Hash

	g := &GetHeadersPayload{ProtocolVersion: ProtocolVersion, LocatorHash: locator, StopHash: stop}

	decoded, err := DecodeGetHeadersPayload(g.Encode())
	require.NoError(t, err)
	require.Equal(t, g.LocatorHash, decoded.LocatorHash)
	require.Equal(t, g.StopHash, decoded.StopHash)
}

func TestGetHeadersPayloadRejectsMultipleLocators(t *testing.T) {
	buf := append(VarIntEncode(2) /* hashes */, make([]byte, 64)...)
	var v [4]byte
	full := append(v[:], buf...)

	_, err := DecodeGetHeadersPayload(full)
	require.Error(t, err)
}

func TestEncodeDecodeHeaders(t *testing.T) {
	h := &chain.Header{Version: 1, Timestamp: 1231006505, Bits: 0x1d00ffff, Nonce: 2083236893}
	payload := EncodeHeaders([]*chain.Header{h})

	decoded, err := DecodeHeaders(payload)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, h.Hash(), decoded[0].Hash())
}

// TestEncodeDecodeHeadersMultiple round-trips a batch and dumps both
// sides on mismatch, since a field-by-field diff across a header slice
// is hard to read from a plain require.Equal failure.
func TestEncodeDecodeHeadersMultiple(t *testing.T) {
	headers := []*chain.Header{
		{Version: 1, Timestamp: 1231006505, Bits: 0x1d00ffff, Nonce: 2083236893},
		{Version: 2, Timestamp: 1296688602, Bits: 0x1d00ffff, Nonce: 414098458},
	}

	decoded, err := DecodeHeaders(EncodeHeaders(headers))
	require.NoError(t, err)

	if !reflect.DeepEqual(headers, decoded) {
		t.Errorf("header round-trip mismatch\n got: %s want: %s",
			spew.Sdump(decoded), spew.Sdump(headers))
	}
}

func TestDecodeHeadersRejectsTruncated(t *testing.T) {
	_, err := DecodeHeaders([]byte{1})
	require.Error(t, err)
}
