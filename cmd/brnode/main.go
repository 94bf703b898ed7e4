// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command brnode dials a single remote peer, performs the handshake,
// and syncs block headers into a local LevelDB store. It is the thin
// process shell around the peer and storage packages: everything it
// does is orchestration, not consensus logic.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/nicolafiorillo/bitcoinrules/peer"
	"github.com/nicolafiorillo/bitcoinrules/storage/leveldb"
	"github.com/nicolafiorillo/bitcoinrules/wire"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(cfg.LogDir); err != nil {
		return fmt.Errorf("init log rotator: %w", err)
	}
	defer logRotator.Close()
	setLogLevels(btclog.LevelInfo)

	params, err := cfg.netParams()
	if err != nil {
		return err
	}

	store, err := leveldb.Open(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open header store: %w", err)
	}
	defer store.Close()

	genesis := params.GenesisBlock.Hash()
	coord := peer.NewCoordinator(store, genesis)

	events := make(chan peer.Event, 32)
	go coord.Run(events)

	sessionErr := make(chan error, 1)
	go func() {
		sessionErr <- dialAndRun(cfg, params.Net, events, coord)
	}()

	return cliLoop(sessionErr)
}

// dialAndRun connects to the configured remote peer and drives one
// session to completion.
func dialAndRun(cfg *config, network wire.BitcoinNet, events chan<- peer.Event, coord *peer.Coordinator) error {
	addr := fmt.Sprintf("%s:%d", cfg.RemoteNodeAddress, cfg.RemoteNodePort)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	stream, err := peer.NewTCPStream(conn)
	if err != nil {
		return fmt.Errorf("wrap stream: %w", err)
	}

	log.Infof("connecting to %s", addr)
	session := peer.NewSession(addr, stream, network)
	return session.Run(events, coord)
}

// cliLoop is the operator-facing read-loop: it accepts the single
// command "exit" and reports anything else as unknown. It returns when
// the user types exit, or when the peer session itself terminates.
func cliLoop(sessionErr <-chan error) error {
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	for {
		select {
		case err := <-sessionErr:
			return err
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			switch line {
			case "exit":
				return nil
			default:
				log.Warnf("unknown command %q", line)
			}
		}
	}
}
