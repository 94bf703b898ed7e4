// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
)

// VersionPayload is the payload of a version message: the first message
// either side of a connection sends, announcing protocol version,
// services, and chain height.
type VersionPayload struct {
	ProtocolVersion uint32
	Services        ServiceFlag
	Timestamp       uint64
	Receiver        NetAddress
	Sender          NetAddress
	Nonce           uint64
	UserAgent       string
	StartHeight     uint32
	Relay           bool
}

// Encode renders the payload as version(4 LE) || services(8 LE) ||
// timestamp(8 LE) || receiver_addr(26) || sender_addr(26) || nonce(8
// LE) || varstring(user_agent) || start_height(4 LE) || relay(1).
func (v *VersionPayload) Encode() []byte {
	var buf []byte

	var head [20]byte
	binary.LittleEndian.PutUint32(head[0:4], v.ProtocolVersion)
	binary.LittleEndian.PutUint64(head[4:12], uint64(v.Services))
	binary.LittleEndian.PutUint64(head[12:20], v.Timestamp)
	buf = append(buf, head[:]...)

	buf = append(buf, v.Receiver.Encode()...)
	buf = append(buf, v.Sender.Encode()...)

	var nonce [8]byte
	binary.LittleEndian.PutUint64(nonce[:], v.Nonce)
	buf = append(buf, nonce[:]...)

	buf = append(buf, VarStringEncode(v.UserAgent)...)

	var tail [5]byte
	binary.LittleEndian.PutUint32(tail[0:4], v.StartHeight)
	if v.Relay {
		tail[4] = 1
	}
	buf = append(buf, tail[:]...)

	return buf
}

// DecodeVersionPayload decodes a version payload from buf.
func DecodeVersionPayload(buf []byte) (*VersionPayload, error) {
	if len(buf) < 20+NetAddressSize+NetAddressSize+8 {
		return nil, fmt.Errorf("%w: truncated version payload", ErrInvalidLength)
	}

	v := &VersionPayload{
		ProtocolVersion: binary.LittleEndian.Uint32(buf[0:4]),
		Services:        ServiceFlag(binary.LittleEndian.Uint64(buf[4:12])),
		Timestamp:       binary.LittleEndian.Uint64(buf[12:20]),
	}
	cursor := 20

	receiver, err := DecodeNetAddress(buf, cursor)
	if err != nil {
		return nil, err
	}
	v.Receiver = *receiver
	cursor += NetAddressSize

	sender, err := DecodeNetAddress(buf, cursor)
	if err != nil {
		return nil, err
	}
	v.Sender = *sender
	cursor += NetAddressSize

	if cursor+8 > len(buf) {
		return nil, fmt.Errorf("%w: truncated version nonce", ErrInvalidLength)
	}
	v.Nonce = binary.LittleEndian.Uint64(buf[cursor : cursor+8])
	cursor += 8

	userAgent, n, err := VarStringDecode(buf, cursor)
	if err != nil {
		return nil, err
	}
	v.UserAgent = userAgent
	cursor += n

	if cursor+5 > len(buf) {
		return nil, fmt.Errorf("%w: truncated version tail", ErrInvalidLength)
	}
	v.StartHeight = binary.LittleEndian.Uint32(buf[cursor : cursor+4])
	v.Relay = buf[cursor+4] != 0

	return v, nil
}
