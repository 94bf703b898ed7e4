// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// Command names for every message this node's wire protocol subset
// implements. An incoming envelope whose command doesn't match one of
// these is unknown and aborts the peer session.
const (
	CmdVersion    = "version"
	CmdVerAck     = "verack"
	CmdGetHeaders = "getheaders"
	CmdHeaders    = "headers"
	CmdPing       = "ping"
	CmdPong       = "pong"
	CmdFeeFilter  = "feefilter"
	CmdSendCmpct  = "sendcmpct"
	CmdSendAddrV2 = "sendaddrv2"
	CmdWTxIdRelay = "wtxidrelay"
)

// CommandSize is the fixed width, in bytes, of the ASCII command field in
// a message envelope.
const CommandSize = 12

// MaxPayloadSize is the largest payload this node will accept in a single
// message.
const MaxPayloadSize = 32 * 1000 * 1000

// knownCommands is the set of commands this node's read loop accepts.
var knownCommands = map[string]bool{
	CmdVersion:    true,
	CmdVerAck:     true,
	CmdGetHeaders: true,
	CmdHeaders:    true,
	CmdPing:       true,
	CmdPong:       true,
	CmdFeeFilter:  true,
	CmdSendCmpct:  true,
	CmdSendAddrV2: true,
	CmdWTxIdRelay: true,
}

// IsKnownCommand reports whether cmd is one of the commands this node
// understands.
func IsKnownCommand(cmd string) bool {
	return knownCommands[cmd]
}

// encodeCommand renders cmd into a 12-byte ASCII field, left-aligned and
// zero-padded on the right.
func encodeCommand(cmd string) [CommandSize]byte {
	var out [CommandSize]byte
	copy(out[:], cmd)
	return out
}

// decodeCommand trims the trailing zero padding from a 12-byte command
// field.
func decodeCommand(raw [CommandSize]byte) string {
	n := CommandSize
	for n > 0 && raw[n-1] == 0 {
		n--
	}
	return string(raw[:n])
}
