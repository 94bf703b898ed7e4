// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
)

// SendCmpctPayload announces compact-block relay support (BIP-152).
// This node never requests or serves compact blocks -- BIP-152 is a
// named non-goal -- so it only logs the announcement.
type SendCmpctPayload struct {
	Announce bool
	Version  uint64
}

// Encode renders the payload as announce(1) || version(8 LE).
func (s *SendCmpctPayload) Encode() []byte {
	buf := make([]byte, 9)
	if s.Announce {
		buf[0] = 1
	}
	binary.LittleEndian.PutUint64(buf[1:9], s.Version)
	return buf
}

// DecodeSendCmpctPayload decodes a sendcmpct payload from buf.
func DecodeSendCmpctPayload(buf []byte) (*SendCmpctPayload, error) {
	if len(buf) < 9 {
		return nil, fmt.Errorf("%w: truncated sendcmpct payload", ErrInvalidLength)
	}
	return &SendCmpctPayload{
		Announce: buf[0] == 1,
		Version:  binary.LittleEndian.Uint64(buf[1:9]),
	}, nil
}
