// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"bytes"
	"net"
	"sync"
	"testing"

	"github.com/nicolafiorillo/bitcoinrules/wire"
	"github.com/stretchr/testify/require"
)

// pipeStream is an in-memory Stream backed by buffered byte pipes, so
// handshake tests don't need a real socket. Reads return ErrWouldBlock
// once the available bytes are drained, matching the production
// TCPStream's behavior when nothing is ready yet.
type pipeStream struct {
	mu  sync.Mutex
	in  *bytes.Buffer
	out *bytes.Buffer
}

func newPipeStream() *pipeStream {
	return &pipeStream{in: new(bytes.Buffer), out: new(bytes.Buffer)}
}

func (p *pipeStream) feed(b []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.in.Write(b)
}

func (p *pipeStream) written() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.out.Bytes()...)
}

func (p *pipeStream) Readable() error { return nil }

func (p *pipeStream) TryRead(buf []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.in.Len() == 0 {
		return 0, ErrWouldBlock
	}
	return p.in.Read(buf)
}

func (p *pipeStream) WriteAll(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := p.out.Write(buf)
	return err
}

func (p *pipeStream) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 8333}
}

func (p *pipeStream) Shutdown() error { return nil }

func remoteVersionMessage(t *testing.T) []byte {
	t.Helper()
	addr := wire.NetAddress{Services: wire.SFNodeNetwork, IP: net.IPv4(1, 2, 3, 4), Port: 8333}
	v := &wire.VersionPayload{
		ProtocolVersion: wire.ProtocolVersion,
		Services:        wire.SFNodeNetwork,
		Receiver:        addr,
		Sender:          addr,
		Nonce:           7,
		UserAgent:       "/remote:1.0/",
		StartHeight:     500,
	}
	msg := wire.NewNetworkMessage(wire.TestNet3, wire.CmdVersion, v.Encode())
	return msg.Serialize()
}

func remoteVerAckMessage() []byte {
	msg := wire.NewNetworkMessage(wire.TestNet3, wire.CmdVerAck, wire.VerAckPayload())
	return msg.Serialize()
}

func TestHandshakeHappyPath(t *testing.T) {
	stream := newPipeStream()
	stream.feed(remoteVersionMessage(t))
	stream.feed(remoteVerAckMessage())

	session := NewSession("peer-1", stream, wire.TestNet3)
	require.NoError(t, session.Handshake())
	require.Equal(t, HandshakeCompleted, session.State())
	require.Equal(t, "/remote:1.0/", session.Remote.UserAgent)
	require.Equal(t, uint32(500), session.Remote.Height)

	// Both a version and a verack should have gone out.
	r := bytes.NewReader(stream.written())
	out, err := wire.ReadMessage(r, wire.TestNet3)
	require.NoError(t, err)
	require.Equal(t, wire.CmdVersion, out.Command)
	out, err = wire.ReadMessage(r, wire.TestNet3)
	require.NoError(t, err)
	require.Equal(t, wire.CmdVerAck, out.Command)
}

func TestHandshakeRejectsUnexpectedMessage(t *testing.T) {
	stream := newPipeStream()
	stream.feed(remoteVerAckMessage()) // verack before version: unexpected

	session := NewSession("peer-2", stream, wire.TestNet3)
	err := session.Handshake()
	require.ErrorIs(t, err, ErrUnexpectedMessage)
}

func TestPingIsAnsweredWithPong(t *testing.T) {
	stream := newPipeStream()
	ping := &wire.PingPayload{Nonce: 99}
	msg := wire.NewNetworkMessage(wire.TestNet3, wire.CmdPing, ping.Encode())

	session := NewSession("peer-3", stream, wire.TestNet3)
	events := make(chan Event, 1)
	require.NoError(t, session.handleMessage(msg, events))

	out, err := wire.ReadMessage(bytes.NewReader(stream.written()), wire.TestNet3)
	require.NoError(t, err)
	require.Equal(t, wire.CmdPong, out.Command)

	pong, err := wire.DecodePongPayload(out.Payload)
	require.NoError(t, err)
	require.Equal(t, uint64(99), pong.Nonce)
}

func TestFeeFilterUpdatesSession(t *testing.T) {
	stream := newPipeStream()
	ff := &wire.FeeFilterPayload{FeeRate: 1000}
	msg := wire.NewNetworkMessage(wire.TestNet3, wire.CmdFeeFilter, ff.Encode())

	session := NewSession("peer-4", stream, wire.TestNet3)
	events := make(chan Event, 1)
	require.NoError(t, session.handleMessage(msg, events))
	require.Equal(t, uint64(1000), session.FeeRate)
}

func TestHeadersMessageEmitsEvent(t *testing.T) {
	stream := newPipeStream()
	payload := wire.EncodeHeaders(nil)
	msg := wire.NewNetworkMessage(wire.TestNet3, wire.CmdHeaders, payload)

	session := NewSession("peer-5", stream, wire.TestNet3)
	events := make(chan Event, 1)
	require.NoError(t, session.handleMessage(msg, events))

	ev := <-events
	resp, ok := ev.(HeadersResponse)
	require.True(t, ok)
	require.Equal(t, "peer-5", resp.ID)
	require.Empty(t, resp.Headers)
}
