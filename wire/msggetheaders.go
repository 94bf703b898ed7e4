// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// GetHeadersPayload requests headers starting after LocatorHash, up to
// StopHash (the zero hash meaning "as many as the peer will send"). This
// node issues single-locator queries only -- block-locator chains with
// multiple candidate hashes are a reorg-handling feature out of scope
// here.
type GetHeadersPayload struct {
	ProtocolVersion uint32
	LocatorHash     chainhash.Hash
	StopHash        chainhash.Hash
}

// Encode renders the payload as version(4 LE) || varint(1) ||
// locator_hash(32) || stop_hash(32).
func (g *GetHeadersPayload) Encode() []byte {
	buf := make([]byte, 0, 4+1+32+32)

	var v [4]byte
	binary.LittleEndian.PutUint32(v[:], g.ProtocolVersion)
	buf = append(buf, v[:]...)

	buf = append(buf, VarIntEncode(1)...)
	buf = append(buf, g.LocatorHash[:]...)
	buf = append(buf, g.StopHash[:]...)
	return buf
}

// DecodeGetHeadersPayload decodes a getheaders payload from buf.
func DecodeGetHeadersPayload(buf []byte) (*GetHeadersPayload, error) {
	if len(buf) < 4+1 {
		return nil, fmt.Errorf("%w: truncated getheaders payload", ErrInvalidLength)
	}

	g := &GetHeadersPayload{ProtocolVersion: binary.LittleEndian.Uint32(buf[0:4])}
	cursor := 4

	count, n, err := VarIntDecode(buf, cursor)
	if err != nil {
		return nil, err
	}
	cursor += n
	if count != 1 {
		return nil, fmt.Errorf("wire: getheaders with %d locator hashes unsupported", count)
	}

	if cursor+64 > len(buf) {
		return nil, fmt.Errorf("%w: truncated getheaders hashes", ErrInvalidLength)
	}
	copy(g.LocatorHash[:], buf[cursor:cursor+32])
	cursor += 32
	copy(g.StopHash[:], buf[cursor:cursor+32])

	return g, nil
}
