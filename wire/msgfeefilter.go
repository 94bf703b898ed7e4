// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
)

// FeeFilterPayload carries the minimum relay feerate, in satoshis per
// 1000 bytes, the sender wants to receive transaction announcements
// for (BIP-133). This node only records the value; it has no mempool
// to apply it against.
type FeeFilterPayload struct {
	FeeRate uint64
}

// Encode renders the feerate as 8 little-endian bytes.
func (f *FeeFilterPayload) Encode() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, f.FeeRate)
	return buf
}

// DecodeFeeFilterPayload decodes a feefilter payload from buf.
func DecodeFeeFilterPayload(buf []byte) (*FeeFilterPayload, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("%w: truncated feefilter payload", ErrInvalidLength)
	}
	return &FeeFilterPayload{FeeRate: binary.LittleEndian.Uint64(buf[0:8])}, nil
}
