// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// WTxIdRelayPayload is empty: wtxidrelay announces witness-transaction-id
// relay support. SegWit transaction relay is out of scope: this node
// never sends it, its handshake rejects it as unexpected, and its main
// loop logs and ignores it.
func WTxIdRelayPayload() []byte {
	return nil
}
