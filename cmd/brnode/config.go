// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
	"github.com/nicolafiorillo/bitcoinrules/chaincfg"
)

const (
	defaultNetwork         = "mainnet"
	defaultRemoteNodePort  = 8333
	defaultHeaderStorePath = "./data/headers"
	defaultLogFilename     = "brnode.log"
)

// config holds the node's network and peer-connection options, plus
// the ambient options (log/data paths) CLI tooling in this ecosystem
// always carries alongside them.
type config struct {
	Network           string `long:"network" description:"Network to connect to {mainnet, testnet, testnet3}" default:"mainnet"`
	RemoteNodeAddress string `long:"rpcconnect" description:"Remote peer to connect to (host or IP)" required:"true"`
	RemoteNodePort    uint16 `long:"rpcport" description:"Remote peer port" default:"8333"`
	DataDir           string `long:"datadir" description:"Directory for the header store" default:"./data/headers"`
	LogDir            string `long:"logdir" description:"Directory to log to" default:"./log"`
}

// netParams resolves the configured network name to its chaincfg.Params.
func (c *config) netParams() (*chaincfg.Params, error) {
	switch c.Network {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet":
		return &chaincfg.TestNetParams, nil
	case "testnet3":
		return &chaincfg.TestNet3Params, nil
	default:
		return nil, fmt.Errorf("unknown network %q", c.Network)
	}
}

// loadConfig parses command-line flags into a config, applying the
// defaults above.
func loadConfig() (*config, error) {
	cfg := config{
		Network:        defaultNetwork,
		RemoteNodePort: defaultRemoteNodePort,
		DataDir:        defaultHeaderStorePath,
		LogDir:         "./log",
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if _, err := cfg.netParams(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
