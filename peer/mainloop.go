// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"log"

	"github.com/nicolafiorillo/bitcoinrules/wire"
)

// requestQueueSize bounds the coordinator-to-session request channel.
const requestQueueSize = 16

// Run performs the handshake and then services the post-handshake main
// loop until the stream closes or an unrecoverable error occurs:
// ping is answered with pong, feefilter updates FeeRate, sendcmpct is
// logged and otherwise ignored, and headers messages are forwarded to
// the coordinator as HeadersResponse. Once the handshake completes, a
// NodeReady event is posted and the session begins accepting
// GetHeadersRequest values addressed to it.
func (s *Session) Run(events chan<- Event, coord *Coordinator) error {
	if err := s.Handshake(); err != nil {
		return err
	}

	requests := make(chan GetHeadersRequest, requestQueueSize)
	coord.Register(s.ID, requests)
	defer coord.Unregister(s.ID)

	events <- NodeReady{ID: s.ID}

	incoming := make(chan inboundMessage, requestQueueSize)
	go s.readLoop(incoming)

	for {
		select {
		case in, ok := <-incoming:
			if !ok {
				return nil
			}
			if in.err != nil {
				return in.err
			}
			if err := s.handleMessage(in.msg, events); err != nil {
				return err
			}

		case req := <-requests:
			if err := s.sendGetHeaders(req.Start); err != nil {
				return err
			}
		}
	}
}

// inboundMessage pairs a decoded message with any error encountered
// reading it; readLoop sends exactly one of these per iteration, then
// stops after the first error.
type inboundMessage struct {
	msg *wire.NetworkMessage
	err error
}

// readLoop feeds decoded post-handshake messages to out until an error
// ends the connection.
func (s *Session) readLoop(out chan<- inboundMessage) {
	defer close(out)
	for {
		msg, err := s.waitForMessage()
		out <- inboundMessage{msg: msg, err: err}
		if err != nil {
			return
		}
	}
}

// handleMessage dispatches one post-handshake message.
func (s *Session) handleMessage(msg *wire.NetworkMessage, events chan<- Event) error {
	switch msg.Command {
	case wire.CmdPing:
		ping, err := wire.DecodePingPayload(msg.Payload)
		if err != nil {
			return err
		}
		pong := &wire.PongPayload{Nonce: ping.Nonce}
		return s.sendMessage(wire.CmdPong, pong.Encode())

	case wire.CmdFeeFilter:
		ff, err := wire.DecodeFeeFilterPayload(msg.Payload)
		if err != nil {
			return err
		}
		s.FeeRate = ff.FeeRate

	case wire.CmdSendCmpct:
		sc, err := wire.DecodeSendCmpctPayload(msg.Payload)
		if err != nil {
			return err
		}
		log.Printf("peer %s: sendcmpct received (announce=%v version=%d)", s.ID, sc.Announce, sc.Version)

	case wire.CmdHeaders:
		headers, err := wire.DecodeHeaders(msg.Payload)
		if err != nil {
			return err
		}
		events <- HeadersResponse{ID: s.ID, Headers: headers}

	default:
		log.Printf("peer %s: ignoring %q in main loop", s.ID, msg.Command)
	}

	return nil
}

// sendGetHeaders renders and sends a single-locator getheaders message
// requesting headers after start.
func (s *Session) sendGetHeaders(start [32]byte) error {
	g := &wire.GetHeadersPayload{ProtocolVersion: wire.ProtocolVersion, LocatorHash: start}
	return s.sendMessage(wire.CmdGetHeaders, g.Encode())
}
