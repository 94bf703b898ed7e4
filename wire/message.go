// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// HeaderSize is the fixed width of a message envelope header: magic(4) +
// command(12) + payload length(4) + checksum(4).
const HeaderSize = 4 + CommandSize + 4 + 4

// ErrMagicMismatch is returned when a decoded envelope's magic doesn't
// match the expected network.
var ErrMagicMismatch = errors.New("wire: network magic mismatch")

// ErrChecksumMismatch is returned when a decoded envelope's checksum
// doesn't match HASH256(payload)[:4].
var ErrChecksumMismatch = errors.New("wire: checksum mismatch")

// ErrUnknownCommand is returned when a decoded envelope names a command
// this node doesn't implement.
var ErrUnknownCommand = errors.New("wire: unknown command")

// ErrPayloadTooLarge is returned when an envelope's declared payload
// length exceeds MaxPayloadSize.
var ErrPayloadTooLarge = errors.New("wire: payload too large")

// NetworkMessage is the wire envelope wrapping every message exchanged
// with a peer: a four-byte network magic, a 12-byte zero-padded ASCII
// command, and the raw payload. LenSerialized caches the encoded size so
// callers don't need to recompute it.
type NetworkMessage struct {
	Magic         BitcoinNet
	Command       string
	Payload       []byte
	LenSerialized int
}

// NewNetworkMessage builds an envelope around payload for the named
// command on the given network.
func NewNetworkMessage(magic BitcoinNet, command string, payload []byte) *NetworkMessage {
	m := &NetworkMessage{Magic: magic, Command: command, Payload: payload}
	m.LenSerialized = HeaderSize + len(payload)
	return m
}

// checksum returns the first four bytes of HASH256(payload), the value
// transmitted in the envelope's checksum field.
func checksum(payload []byte) [4]byte {
	var out [4]byte
	sum := chainhash.DoubleHashB(payload)
	copy(out[:], sum[:4])
	return out
}

// Serialize encodes the envelope: magic(4 LE) || command(12) ||
// payload_len(4 LE) || checksum(4) || payload.
func (m *NetworkMessage) Serialize() []byte {
	out := make([]byte, 0, HeaderSize+len(m.Payload))
	var magicBuf [4]byte
	binary.LittleEndian.PutUint32(magicBuf[:], uint32(m.Magic))
	out = append(out, magicBuf[:]...)

	cmd := encodeCommand(m.Command)
	out = append(out, cmd[:]...)

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(m.Payload)))
	out = append(out, lenBuf[:]...)

	sum := checksum(m.Payload)
	out = append(out, sum[:]...)

	out = append(out, m.Payload...)
	return out
}

// DeserializeNetworkMessage decodes a full envelope from buf, validating
// the checksum and the declared payload length against the actual bytes
// present.
func DeserializeNetworkMessage(buf []byte) (*NetworkMessage, error) {
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("%w: envelope shorter than header", ErrInvalidLength)
	}

	magic := BitcoinNet(binary.LittleEndian.Uint32(buf[0:4]))

	var cmdRaw [CommandSize]byte
	copy(cmdRaw[:], buf[4:4+CommandSize])
	command := decodeCommand(cmdRaw)

	lenOffset := 4 + CommandSize
	payloadLen := binary.LittleEndian.Uint32(buf[lenOffset : lenOffset+4])
	if payloadLen > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	var declaredChecksum [4]byte
	copy(declaredChecksum[:], buf[lenOffset+4:lenOffset+8])

	payloadStart := HeaderSize
	payloadEnd := payloadStart + int(payloadLen)
	if payloadEnd > len(buf) {
		return nil, fmt.Errorf("%w: truncated payload", ErrInvalidLength)
	}
	payload := buf[payloadStart:payloadEnd]

	if checksum(payload) != declaredChecksum {
		return nil, ErrChecksumMismatch
	}

	return &NetworkMessage{
		Magic:         magic,
		Command:       command,
		Payload:       payload,
		LenSerialized: payloadEnd,
	}, nil
}

// WriteMessage writes an envelope for command/payload on the given
// network to w.
func WriteMessage(w io.Writer, magic BitcoinNet, command string, payload []byte) error {
	msg := NewNetworkMessage(magic, command, payload)
	_, err := w.Write(msg.Serialize())
	return err
}

// ReadMessage reads one framed message from r: exactly HeaderSize bytes
// of header, then resolves the payload length and reads exactly that
// many bytes. It verifies the magic matches expected, the checksum
// matches the payload, and the command is one this node implements.
func ReadMessage(r io.Reader, expected BitcoinNet) (*NetworkMessage, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}

	magic := BitcoinNet(binary.LittleEndian.Uint32(header[0:4]))
	if magic != expected {
		return nil, ErrMagicMismatch
	}

	var cmdRaw [CommandSize]byte
	copy(cmdRaw[:], header[4:4+CommandSize])
	command := decodeCommand(cmdRaw)
	if !IsKnownCommand(command) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}

	lenOffset := 4 + CommandSize
	payloadLen := binary.LittleEndian.Uint32(header[lenOffset : lenOffset+4])
	if payloadLen > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	var declaredChecksum [4]byte
	copy(declaredChecksum[:], header[lenOffset+4:lenOffset+8])

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}

	if checksum(payload) != declaredChecksum {
		return nil, ErrChecksumMismatch
	}

	return &NetworkMessage{
		Magic:         magic,
		Command:       command,
		Payload:       payload,
		LenSerialized: HeaderSize + len(payload),
	}, nil
}

// bytesReader is a tiny helper so tests and callers that already hold a
// full buffer can reuse ReadMessage without standing up a net.Conn.
func bytesReader(buf []byte) io.Reader {
	return bytes.NewReader(buf)
}
