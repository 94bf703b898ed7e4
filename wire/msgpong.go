// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
)

// PongPayload echoes the nonce carried in the ping it answers.
type PongPayload struct {
	Nonce uint64
}

// Encode renders the nonce as 8 little-endian bytes.
func (p *PongPayload) Encode() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, p.Nonce)
	return buf
}

// DecodePongPayload decodes a pong payload from buf.
func DecodePongPayload(buf []byte) (*PongPayload, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("%w: truncated pong payload", ErrInvalidLength)
	}
	return &PongPayload{Nonce: binary.LittleEndian.Uint64(buf[0:8])}, nil
}
