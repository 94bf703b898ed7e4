// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func tcpLoopback(t *testing.T) (client, server net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	acceptErr := make(chan error, 1)
	var serverConn net.Conn
	go func() {
		var err error
		serverConn, err = ln.Accept()
		acceptErr <- err
	}()

	clientConn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	require.NoError(t, <-acceptErr)

	return clientConn, serverConn
}

func TestTCPStreamWriteAndTryRead(t *testing.T) {
	client, server := tcpLoopback(t)
	defer client.Close()
	defer server.Close()

	clientStream, err := NewTCPStream(client)
	require.NoError(t, err)
	serverStream, err := NewTCPStream(server)
	require.NoError(t, err)

	require.NoError(t, clientStream.WriteAll([]byte("hello")))

	buf := make([]byte, 16)
	n, err := serverStream.TryRead(buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf[:n]))
}

func TestTCPStreamTryReadWouldBlock(t *testing.T) {
	_, server := tcpLoopback(t)
	defer server.Close()

	serverStream, err := NewTCPStream(server)
	require.NoError(t, err)

	buf := make([]byte, 16)
	_, err = serverStream.TryRead(buf)
	require.ErrorIs(t, err, ErrWouldBlock)
}

func TestTCPStreamTryReadClosedByPeer(t *testing.T) {
	client, server := tcpLoopback(t)
	defer server.Close()

	clientStream, err := NewTCPStream(client)
	require.NoError(t, err)
	serverStream, err := NewTCPStream(server)
	require.NoError(t, err)

	require.NoError(t, clientStream.Shutdown())

	buf := make([]byte, 16)
	_, err = serverStream.TryRead(buf)
	require.ErrorIs(t, err, ErrConnectionClosed)
}

func TestTCPStreamLocalAddr(t *testing.T) {
	client, server := tcpLoopback(t)
	defer client.Close()
	defer server.Close()

	clientStream, err := NewTCPStream(client)
	require.NoError(t, err)
	require.NotNil(t, clientStream.LocalAddr())
}
