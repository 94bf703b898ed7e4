// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/nicolafiorillo/bitcoinrules/wire"
)

// HandshakeState is the peer session's handshake progress. Transitions
// are monotonic -- only the forward moves this type's methods expose
// are legal; there is no way to go back to an earlier state.
type HandshakeState int

const (
	Connected HandshakeState = iota
	LocalVersionSent
	RemoteVersionReceived
	LocalVerackSent
	RemoteVerackReceived
	HandshakeCompleted
)

func (s HandshakeState) String() string {
	switch s {
	case Connected:
		return "Connected"
	case LocalVersionSent:
		return "LocalVersionSent"
	case RemoteVersionReceived:
		return "RemoteVersionReceived"
	case LocalVerackSent:
		return "LocalVerackSent"
	case RemoteVerackReceived:
		return "RemoteVerackReceived"
	case HandshakeCompleted:
		return "HandshakeCompleted"
	default:
		return fmt.Sprintf("HandshakeState(%d)", int(s))
	}
}

// ErrUnexpectedMessage is returned when a message arrives that the
// current handshake state doesn't expect; the session is aborted.
var ErrUnexpectedMessage = errors.New("peer: unexpected message for handshake state")

// userAgent is this node's self-reported identity in the version
// message.
const userAgent = "/bitcoinrules:0.0/"

// RemoteInfo is what the handshake learns about the other side of the
// connection from its version message.
type RemoteInfo struct {
	UserAgent string
	Version   uint32
	Height    uint32
}

// Session is one peer connection: its stream, handshake state, and the
// feerate filter the main loop maintains for it.
type Session struct {
	ID      string
	stream  Stream
	network wire.BitcoinNet
	state   HandshakeState
	Remote  RemoteInfo
	FeeRate uint64

	reader io.Reader
	writer io.Writer
}

// NewSession wraps stream as a peer session on network, identified by
// id (typically the remote address).
func NewSession(id string, stream Stream, network wire.BitcoinNet) *Session {
	return &Session{
		ID:      id,
		stream:  stream,
		network: network,
		state:   Connected,
		reader:  &streamReader{stream: stream},
		writer:  &streamWriter{stream: stream},
	}
}

// streamReader adapts a Stream's Readable/TryRead pair into a
// blocking io.Reader: WouldBlock is retried transparently, so callers
// can drive it with ordinary io.ReadFull-style code and still get the
// length-delimited framing the wire protocol requires (a read is never
// bounded by however much the last TryRead happened to return).
type streamReader struct {
	stream Stream
}

func (r *streamReader) Read(p []byte) (int, error) {
	for {
		if err := r.stream.Readable(); err != nil {
			return 0, err
		}

		n, err := r.stream.TryRead(p)
		if errors.Is(err, ErrWouldBlock) {
			continue
		}
		return n, err
	}
}

// streamWriter adapts a Stream's WriteAll into io.Writer.
type streamWriter struct {
	stream Stream
}

func (w *streamWriter) Write(p []byte) (int, error) {
	if err := w.stream.WriteAll(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// sendMessage frames and writes payload under command.
func (s *Session) sendMessage(command string, payload []byte) error {
	return wire.WriteMessage(s.writer, s.network, command, payload)
}

// waitForMessage reads exactly one framed message, honoring the 24-byte
// envelope framing regardless of how the underlying stream chunks its
// bytes.
func (s *Session) waitForMessage() (*wire.NetworkMessage, error) {
	return wire.ReadMessage(s.reader, s.network)
}

// localNetAddress builds the NetAddress this session advertises for
// itself, derived from the stream's local endpoint.
func (s *Session) localNetAddress() wire.NetAddress {
	addr := wire.NetAddress{Services: wire.SFNodeNetwork, Port: 8333}
	if tcpAddr, ok := s.stream.LocalAddr().(*net.TCPAddr); ok {
		addr.IP = tcpAddr.IP
		addr.Port = uint16(tcpAddr.Port)
	} else {
		addr.IP = net.IPv4zero
	}
	return addr
}

// randomNonce returns a fresh 64-bit nonce for the version message.
func randomNonce() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// versionPayload builds this node's outgoing version message.
func (s *Session) versionPayload() (*wire.VersionPayload, error) {
	nonce, err := randomNonce()
	if err != nil {
		return nil, err
	}

	addr := s.localNetAddress()
	return &wire.VersionPayload{
		ProtocolVersion: wire.ProtocolVersion,
		Services:        wire.SFNodeNetwork,
		Receiver:        addr,
		Sender:          addr,
		Nonce:           nonce,
		UserAgent:       userAgent,
		Relay:           false,
	}, nil
}

// Handshake drives the session through the version/verack exchange: one
// pass, no retries within a session. Any unexpected message aborts it
// with ErrUnexpectedMessage.
func (s *Session) Handshake() error {
	for s.state != HandshakeCompleted {
		switch s.state {
		case Connected:
			v, err := s.versionPayload()
			if err != nil {
				return err
			}
			if err := s.sendMessage(wire.CmdVersion, v.Encode()); err != nil {
				return err
			}
			s.state = LocalVersionSent

		case LocalVersionSent:
			msg, err := s.waitForMessage()
			if err != nil {
				return err
			}
			if msg.Command != wire.CmdVersion {
				return fmt.Errorf("%w: got %q in state %s", ErrUnexpectedMessage, msg.Command, s.state)
			}
			v, err := wire.DecodeVersionPayload(msg.Payload)
			if err != nil {
				return err
			}
			s.Remote = RemoteInfo{UserAgent: v.UserAgent, Version: v.ProtocolVersion, Height: v.StartHeight}
			s.state = RemoteVersionReceived

		case RemoteVersionReceived:
			if err := s.sendMessage(wire.CmdVerAck, wire.VerAckPayload()); err != nil {
				return err
			}
			s.state = LocalVerackSent

		case LocalVerackSent:
			msg, err := s.waitForMessage()
			if err != nil {
				return err
			}
			if msg.Command != wire.CmdVerAck {
				return fmt.Errorf("%w: got %q in state %s", ErrUnexpectedMessage, msg.Command, s.state)
			}
			s.state = RemoteVerackReceived

		case RemoteVerackReceived:
			s.state = HandshakeCompleted
		}
	}

	return nil
}

// State reports the session's current handshake state.
func (s *Session) State() HandshakeState {
	return s.state
}
