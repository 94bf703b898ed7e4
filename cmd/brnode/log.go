// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logRotator rotates the node's log file; it must be closed on shutdown
// so buffered writes reach disk.
var logRotator *rotator.Rotator

// logWriter sends log output to both stdout and a rotating log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

var backendLog = btclog.NewBackend(logWriter{})

var log = backendLog.Logger("BRND")

// initLogRotator opens a rotating log file under logDir, replacing any
// prior rotator. Subsequent log writes go to both stdout and this file.
func initLogRotator(logDir string) error {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}

	logFile := filepath.Join(logDir, defaultLogFilename)
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// setLogLevels applies level to brnode's logger. brnode runs a single
// subsystem, so this sets the level of that one logger.
func setLogLevels(level btclog.Level) {
	log.SetLevel(level)
}
