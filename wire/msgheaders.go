// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"

	"github.com/nicolafiorillo/bitcoinrules/chain"
)

// headerRecordSize is a bare 80-byte header plus its trailing
// transaction-count varint, which is always 0 -- headers messages carry
// no transactions, unlike the blocks they summarize.
const headerRecordSize = chain.HeaderSize + 1

// EncodeHeaders renders a headers payload: varint(count) followed by,
// for each header, its 80 bytes plus a zero tx-count byte.
func EncodeHeaders(headers []*chain.Header) []byte {
	buf := make([]byte, 0, VarIntSerializeSize(uint64(len(headers)))+len(headers)*headerRecordSize)
	buf = append(buf, VarIntEncode(uint64(len(headers)))...)
	for _, h := range headers {
		buf = append(buf, h.Serialize()...)
		buf = append(buf, 0x00)
	}
	return buf
}

// DecodeHeaders decodes a headers payload, rejecting a buffer that ends
// before every header its count promised has been read.
func DecodeHeaders(buf []byte) ([]*chain.Header, error) {
	count, n, err := VarIntDecode(buf, 0)
	if err != nil {
		return nil, err
	}
	cursor := n

	headers := make([]*chain.Header, 0, count)
	for i := uint64(0); i < count; i++ {
		if cursor+headerRecordSize > len(buf) {
			return nil, fmt.Errorf("%w: truncated headers payload", ErrInvalidLength)
		}

		h, err := chain.DeserializeHeader(buf[cursor : cursor+chain.HeaderSize])
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
		cursor += headerRecordSize
	}

	if cursor != len(buf) {
		return nil, fmt.Errorf("%w: %d bytes unconsumed in headers payload", ErrInvalidLength, len(buf)-cursor)
	}

	return headers, nil
}
