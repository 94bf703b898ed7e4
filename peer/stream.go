// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package peer implements a Bitcoin peer session: the stream
// abstraction a connection is read and written through, the handshake
// finite-state machine, and the header-sync coordinator that drives
// getheaders/headers exchange against a persistence repository.
package peer

import (
	"errors"
	"io"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// readPollInterval is how long TryRead waits for data before returning
// ErrWouldBlock, mirroring the ~100ms back-off the reference
// implementation sleeps for on WouldBlock.
const readPollInterval = 100 * time.Millisecond

// ErrWouldBlock is returned by TryRead when no data is available within
// readPollInterval. Callers retry; it is not a session-ending error.
var ErrWouldBlock = errors.New("peer: read would block")

// ErrConnectionClosed is returned when a peer closes its write side:
// TryRead observes a clean EOF rather than an error.
var ErrConnectionClosed = errors.New("peer: connection_closed_by_peer")

// ErrConnectionReset is returned when the underlying transport reports
// the connection was reset by the remote peer.
var ErrConnectionReset = errors.New("peer: connection_reset_by_peer")

// Stream is any bidirectional byte stream a peer session can run over:
// Readable, TryRead, WriteAll, LocalAddr, Shutdown. The abstraction
// exists so the handshake and main loop can be driven by a fake in
// tests without standing up a real socket; TCPStream is the production
// implementation.
type Stream interface {
	// Readable blocks until at least one byte is available to read, or
	// returns an error if the stream can never produce one again.
	Readable() error
	// TryRead reads whatever is currently available into buf without
	// blocking past readPollInterval, returning ErrWouldBlock if
	// nothing arrived in that window.
	TryRead(buf []byte) (int, error)
	// WriteAll writes every byte of buf, blocking until done or error.
	WriteAll(buf []byte) error
	LocalAddr() net.Addr
	Shutdown() error
}

// TCPStream adapts a net.Conn (in practice a *net.TCPConn) to Stream,
// tuning it for low-latency small-message exchange: Nagle's algorithm
// disabled and TCP keepalive enabled so a dead peer is eventually
// noticed without an application-level heartbeat.
type TCPStream struct {
	conn net.Conn
}

// NewTCPStream wraps conn, applying TCP_NODELAY and SO_KEEPALIVE via
// the raw socket when conn is a *net.TCPConn. A failure to set either
// option is returned as an error and no stream is created.
func NewTCPStream(conn net.Conn) (*TCPStream, error) {
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		if err := tuneSocket(tcpConn); err != nil {
			return nil, err
		}
	}
	return &TCPStream{conn: conn}, nil
}

// tuneSocket sets TCP_NODELAY and SO_KEEPALIVE on conn's underlying
// file descriptor.
func tuneSocket(conn *net.TCPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}

	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
		if sockErr != nil {
			return
		}
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

// Readable returns immediately without checking the socket; the waiting
// is done by TryRead, whose read deadline bounds each attempt.
func (s *TCPStream) Readable() error {
	return nil
}

// TryRead reads into buf, translating the stream's blocking Read into
// the Readable/TryRead split the session loop expects: a short
// deadline stands in for "would this call block".
func (s *TCPStream) TryRead(buf []byte) (int, error) {
	if err := s.conn.SetReadDeadline(time.Now().Add(readPollInterval)); err != nil {
		return 0, err
	}

	n, err := s.conn.Read(buf)
	if err == nil {
		return n, nil
	}

	if errors.Is(err, io.EOF) {
		return 0, ErrConnectionClosed
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return 0, ErrWouldBlock
	}
	if errors.Is(err, unix.ECONNRESET) {
		return 0, ErrConnectionReset
	}
	return 0, err
}

// WriteAll writes every byte of buf to the underlying connection.
func (s *TCPStream) WriteAll(buf []byte) error {
	_, err := s.conn.Write(buf)
	return err
}

// LocalAddr returns the local endpoint of the connection.
func (s *TCPStream) LocalAddr() net.Addr {
	return s.conn.LocalAddr()
}

// Shutdown closes the connection.
func (s *TCPStream) Shutdown() error {
	return s.conn.Close()
}
