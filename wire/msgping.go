// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
)

// PingPayload is an 8-byte LE nonce a peer must echo back in a pong.
type PingPayload struct {
	Nonce uint64
}

// Encode renders the nonce as 8 little-endian bytes.
func (p *PingPayload) Encode() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, p.Nonce)
	return buf
}

// DecodePingPayload decodes a ping payload from buf.
func DecodePingPayload(buf []byte) (*PingPayload, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("%w: truncated ping payload", ErrInvalidLength)
	}
	return &PingPayload{Nonce: binary.LittleEndian.Uint64(buf[0:8])}, nil
}
